package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"microshop/internal/domain"
	"microshop/internal/store"
	"microshop/internal/trace"
)

type Products struct {
	store  *store.ProductStore
	logger *slog.Logger
}

func NewProducts(s *store.ProductStore, logger *slog.Logger) *Products {
	return &Products{store: s, logger: logger}
}

func (h *Products) Register(e *echo.Echo) {
	e.GET("/products", h.List)
	e.GET("/products/slow", Slow)
	e.GET("/products/slow/:delay", Slow)
	e.GET("/products/error", ControlledError)
	e.GET("/products/:id", h.Get)
	e.POST("/products/create", h.Create)
}

func (h *Products) List(c echo.Context) error {
	h.logger.Info("fetching all products", trace.Attr(c.Request().Context()))
	return c.JSON(http.StatusOK, h.store.List())
}

func (h *Products) Get(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return domain.Validation("Invalid product id")
	}

	product, ok := h.store.Get(id)
	if !ok {
		h.logger.Warn("product not found",
			slog.Int("product_id", id),
			trace.Attr(c.Request().Context()),
		)
		return domain.NotFound("Product not found")
	}
	return c.JSON(http.StatusOK, product)
}

func (h *Products) Create(c echo.Context) error {
	var req domain.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return domain.Validation("Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return domain.Validation("Product name is required")
	}

	product, err := h.store.Create(req.Name, req.Price)
	if err != nil {
		h.logger.Error("failed to create product",
			slog.String("name", req.Name),
			slog.String("error", err.Error()),
			trace.Attr(c.Request().Context()),
		)
		return err
	}

	h.logger.Info("product created",
		slog.Int("product_id", product.ID),
		trace.Attr(c.Request().Context()),
	)
	return c.JSON(http.StatusOK, product)
}
