// Package handler implements the route handlers of all three services, plus
// the fault injection routes they share. Handlers return *domain.Error for
// every failure; the server's error translator assigns the final status and
// records the error sample.
package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"microshop/internal/domain"
	"microshop/internal/store"
	"microshop/internal/trace"
)

type Users struct {
	store  *store.UserStore
	logger *slog.Logger
}

func NewUsers(s *store.UserStore, logger *slog.Logger) *Users {
	return &Users{store: s, logger: logger}
}

func (h *Users) Register(e *echo.Echo) {
	e.GET("/users", h.List)
	e.GET("/users/slow", Slow)
	e.GET("/users/slow/:delay", Slow)
	e.GET("/users/error", ControlledError)
	e.GET("/users/:id", h.Get)
	e.POST("/users/create", h.Create)
}

func (h *Users) List(c echo.Context) error {
	h.logger.Info("fetching all users", trace.Attr(c.Request().Context()))
	return c.JSON(http.StatusOK, h.store.List())
}

func (h *Users) Get(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return domain.Validation("Invalid user id")
	}

	user, ok := h.store.Get(id)
	if !ok {
		h.logger.Warn("user not found",
			slog.Int("user_id", id),
			trace.Attr(c.Request().Context()),
		)
		return domain.NotFound("User not found")
	}
	return c.JSON(http.StatusOK, user)
}

func (h *Users) Create(c echo.Context) error {
	var req domain.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return domain.Validation("Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return userValidationError(err)
	}

	user, err := h.store.Create(req.Name, req.Email)
	if err != nil {
		h.logger.Error("failed to create user",
			slog.String("email", req.Email),
			slog.String("error", err.Error()),
			trace.Attr(c.Request().Context()),
		)
		return err
	}

	h.logger.Info("user created",
		slog.Int("user_id", user.ID),
		trace.Attr(c.Request().Context()),
	)
	return c.JSON(http.StatusOK, user)
}

func userValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			if fe.Field() == "Email" && fe.Tag() == "email" {
				return domain.Validation("Invalid email address")
			}
		}
	}
	return domain.Validation("Name and email are required")
}
