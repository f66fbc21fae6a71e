package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"microshop/internal/client"
	"microshop/internal/domain"
	"microshop/internal/store"
	"microshop/internal/trace"
)

type Orders struct {
	store    *store.OrderStore
	users    *client.Client
	products *client.Client
	logger   *slog.Logger
}

func NewOrders(s *store.OrderStore, users, products *client.Client, logger *slog.Logger) *Orders {
	return &Orders{store: s, users: users, products: products, logger: logger}
}

func (h *Orders) Register(e *echo.Echo) {
	e.GET("/orders", h.List)
	e.GET("/orders/slow", Slow)
	e.GET("/orders/slow/:delay", Slow)
	e.GET("/orders/error", ControlledError)
	e.GET("/orders/cascade-error", h.CascadeError)
	e.GET("/orders/:id", h.Get)
	e.POST("/orders/create", h.Create)
}

func (h *Orders) List(c echo.Context) error {
	h.logger.Info("fetching all orders", trace.Attr(c.Request().Context()))
	return c.JSON(http.StatusOK, h.store.List())
}

func (h *Orders) Get(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return domain.Validation("Invalid order id")
	}

	order, ok := h.store.Get(id)
	if !ok {
		h.logger.Warn("order not found",
			slog.Int("order_id", id),
			trace.Attr(c.Request().Context()),
		)
		return domain.NotFound("Order not found")
	}
	return c.JSON(http.StatusOK, order)
}

// Create validates the referenced user and product against their owning
// services before appending the order. Both checks ride the caller's
// correlation id; either failing fails the creation with the dependency's
// own classification (404 passthrough, 503 when unreachable).
func (h *Orders) Create(c echo.Context) error {
	var req domain.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return domain.Validation("Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return orderValidationError(err)
	}

	ctx := c.Request().Context()

	if err := h.users.GetJSON(ctx, fmt.Sprintf("/users/%d", req.UserID), nil); err != nil {
		return err
	}
	if err := h.products.GetJSON(ctx, fmt.Sprintf("/products/%d", req.ProductID), nil); err != nil {
		return err
	}

	order := h.store.Create(req.UserID, req.ProductID, req.Quantity)
	h.logger.Info("order created",
		slog.Int("order_id", order.ID),
		slog.Int("user_id", order.UserID),
		slog.Int("product_id", order.ProductID),
		trace.Attr(ctx),
	)
	return c.JSON(http.StatusOK, order)
}

// CascadeError deliberately calls the products service's error endpoint and
// re-surfaces the failure as this service's own. An upstream 500 becomes a
// local 500 classified cascade_error; an unreachable dependency stays a 503.
func (h *Orders) CascadeError(c echo.Context) error {
	ctx := c.Request().Context()

	err := h.products.GetJSON(ctx, "/products/error", nil)
	if appErr, ok := domain.AsError(err); ok && appErr.Kind == domain.KindServiceUnavailable {
		return err
	}

	h.logger.Error("cascade failure induced",
		slog.String("target", h.products.Target()),
		trace.Attr(ctx),
	)
	return domain.Cascade(fmt.Sprintf("Cascade failure: %s returned an error", h.products.Target()))
}

func orderValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			if fe.Field() == "Quantity" {
				return domain.Validation("Quantity must be positive")
			}
		}
	}
	return domain.Validation("user_id, product_id and quantity are required")
}
