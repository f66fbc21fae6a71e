// Package server assembles the echo application shared by the three services:
// the middleware chain, the health and metrics routes, and the single point
// where application errors are translated to HTTP responses and counted.
package server

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"golang.org/x/net/netutil"

	"microshop/internal/config"
	"microshop/internal/domain"
	"microshop/internal/metrics"
	"microshop/internal/middleware"
	"microshop/internal/trace"
)

type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

// New builds the echo app with the common middleware chain. Recover sits
// inside the metrics middleware so a panicking handler still produces a 500
// request sample.
func New(service string, cfg *config.Config, reg *metrics.Registry, logger *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &payloadValidator{validate: validator.New()}
	e.HTTPErrorHandler = newErrorHandler(reg, logger)

	e.Use(middleware.Trace())
	e.Use(middleware.Metrics(reg))
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.BodyLimit("1M"))
	if cfg.RateLimit.Enabled {
		e.Use(middleware.RateLimit(&cfg.RateLimit, logger))
	}

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, healthResponse{Status: "healthy", Service: service})
	})
	e.GET("/metrics", echo.WrapHandler(reg.Handler()))

	if cfg.Pprof.Enabled {
		middleware.RegisterPprof(e, cfg.Pprof.Secret)
		logger.Info("pprof endpoints enabled", slog.String("path", "/debug/pprof/*"))
	}

	return e
}

// WarmMetrics pre-creates the metric series for every registered route so the
// exposition carries all metric names from process start, before any traffic.
// Call after handlers are registered.
func WarmMetrics(e *echo.Echo, reg *metrics.Registry) {
	for _, r := range e.Routes() {
		reg.WarmEndpoint(r.Method, r.Path)
		switch {
		case strings.HasSuffix(r.Path, "/error"):
			reg.WarmError(r.Path, "controlled_500")
		case strings.HasSuffix(r.Path, "/cascade-error"):
			reg.WarmError(r.Path, "cascade_error")
			reg.WarmError(r.Path, "service_unavailable")
		}
	}
}

type payloadValidator struct {
	validate *validator.Validate
}

func (v *payloadValidator) Validate(i any) error {
	return v.validate.Struct(i)
}

// newErrorHandler is the one place an error becomes an HTTP response. It
// resolves the status from the taxonomy, writes {"detail": ...}, and
// increments errors_total exactly once per classified condition. Errors
// already metered by the dependency client arrive here as the same
// *domain.Error and are still counted once, with the inbound endpoint label.
func newErrorHandler(reg *metrics.Registry, logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		endpoint := cmp.Or(c.Path(), "/")
		status := http.StatusInternalServerError
		detail := "Internal server error"
		errType := "internal"

		var httpErr *echo.HTTPError
		if appErr, ok := domain.AsError(err); ok {
			status = appErr.Status()
			detail = appErr.Detail
			errType = appErr.Type
		} else if errors.As(err, &httpErr) {
			status = httpErr.Code
			detail = fmt.Sprintf("%v", httpErr.Message)
			errType = "http_" + strconv.Itoa(status)
		}

		reg.IncError(endpoint, errType)
		logger.Warn("request failed",
			slog.String("endpoint", endpoint),
			slog.Int("status", status),
			slog.String("error_type", errType),
			slog.String("detail", detail),
			trace.Attr(c.Request().Context()),
		)

		if err := c.JSON(status, errorResponse{Detail: detail}); err != nil {
			logger.Error("failed to write error response", slog.String("error", err.Error()))
		}
	}
}

// Serve runs the app until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, e *echo.Echo, cfg *config.ServerConfig, logger *slog.Logger) error {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to create listener: %w", err)
	}
	if cfg.MaxConnections > 0 {
		listener = netutil.LimitListener(listener, cfg.MaxConnections)
	}

	srv := &http.Server{
		Handler:        e,
		ReadTimeout:    5 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    120 * time.Second,
		MaxHeaderBytes: 1 << 14, // 16KB
	}

	logger.Info("starting HTTP server",
		slog.String("addr", addr),
		slog.Int("max_connections", cfg.MaxConnections))

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}
