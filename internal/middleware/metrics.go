package middleware

import (
	"cmp"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"microshop/internal/domain"
)

type RequestRecorder interface {
	IncRequest(method, endpoint string, status int)
	ObserveRequest(method, endpoint string, seconds float64)
}

// Metrics records exactly one request sample per inbound request, after the
// handler completes. Errors returned by the handler are resolved to their
// final HTTP status before the sample is taken, so the registry never sees an
// in-flight or unknown status. The handler's error is passed through
// untouched for the server's translation point.
func Metrics(recorder RequestRecorder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			elapsed := time.Since(start)
			endpoint := cmp.Or(c.Path(), "/")
			status := resolveStatus(c, err)

			recorder.IncRequest(c.Request().Method, endpoint, status)
			recorder.ObserveRequest(c.Request().Method, endpoint, elapsed.Seconds())

			return err
		}
	}
}

func resolveStatus(c echo.Context, err error) int {
	if err == nil {
		return c.Response().Status
	}

	if appErr, ok := domain.AsError(err); ok {
		return appErr.Status()
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}

	return http.StatusInternalServerError
}
