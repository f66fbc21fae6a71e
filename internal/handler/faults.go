package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"microshop/internal/domain"
)

const defaultSlowDelay = 2.0

type slowResponse struct {
	Message string  `json:"message"`
	Delay   float64 `json:"delay"`
}

// Slow suspends for the requested number of seconds and echoes the delay.
// The wait is a select on a timer, so concurrent requests keep being served,
// and a client disconnect ends the wait early.
func Slow(c echo.Context) error {
	delay := defaultSlowDelay
	if raw := c.Param("delay"); raw != "" {
		d, err := strconv.ParseFloat(raw, 64)
		if err != nil || d < 0 {
			return domain.Validation("Invalid delay value")
		}
		delay = d
	}

	timer := time.NewTimer(time.Duration(delay * float64(time.Second)))
	defer timer.Stop()

	select {
	case <-c.Request().Context().Done():
		return c.Request().Context().Err()
	case <-timer.C:
	}

	return c.JSON(http.StatusOK, slowResponse{
		Message: fmt.Sprintf("Slow response completed after %g seconds", delay),
		Delay:   delay,
	})
}

// ControlledError unconditionally fails with the synthetic 500 used to
// exercise error classification and counting.
func ControlledError(c echo.Context) error {
	return domain.Controlled("Controlled internal server error")
}
