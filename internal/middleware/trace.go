package middleware

import (
	"github.com/labstack/echo/v4"

	"microshop/internal/trace"
)

// Trace assigns the request's correlation id: adopted from the inbound
// X-Trace-ID header when present, freshly minted otherwise. The id is bound to
// the request context and stamped on the response header immediately, so even
// translated error responses carry it.
func Trace() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := trace.Ensure(c.Request().Header.Get(trace.Header))

			ctx := trace.NewContext(c.Request().Context(), id)
			c.SetRequest(c.Request().WithContext(ctx))
			c.Response().Header().Set(trace.Header, id)

			return next(c)
		}
	}
}
