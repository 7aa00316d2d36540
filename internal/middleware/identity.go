package middleware

import (
	"github.com/labstack/echo/v4" // echo context carries the operator
)

// Operator returns the name of the logged-in operator, or "anonymous" on
// routes outside the session gate.
func Operator(c echo.Context) string {
	if v, ok := c.Get(operatorKey).(string); ok && v != "" {
		return v
	}
	return "anonymous"
}
