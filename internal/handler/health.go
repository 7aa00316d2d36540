package handler // declare the package name; contains HTTP handlers

import (
	"context"  // context carries the ping deadline
	"net/http" // net/http provides status codes and response helpers
	"time"     // ping timeout

	"github.com/labstack/echo/v4" // echo is the web framework used for this project
)

// Health returns a health-check handler.  The store's reachability is
// reported but never fails the check.
func Health(ping func(ctx context.Context) error) echo.HandlerFunc {
	return func(c echo.Context) error {
		db := "up"
		if ping != nil {
			ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
			defer cancel()
			if err := ping(ctx); err != nil {
				db = "down"
			}
		}
		return c.JSON(http.StatusOK, echo.Map{"status": "ok", "database": db})
	}
}
