package middleware // middleware provides shared request processing for handlers

import (
	"net/http" // HTTP status codes for responses
	"strings"  // prefix checking on the Authorization header

	"github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

	"github.com/iliyamo/vehicle-service-management/internal/utils"
)

// SessionCookie is the cookie the login handler sets with the session token.
const SessionCookie = "vsm_session"

// operatorKey is the context key holding the authenticated operator name.
const operatorKey = "operator"

// SessionAuth returns an Echo middleware that lets a request through only
// when it carries a valid session token, either as a Bearer token in the
// Authorization header or in the session cookie.  The operator name from
// the token is stored in the context for handlers and the request logger.
func SessionAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := bearer(c)
			if raw == "" {
				// fall back to the browser cookie
				if ck, err := c.Cookie(SessionCookie); err == nil {
					raw = ck.Value
				}
			}
			if raw == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "login required"})
			}
			op, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid session"})
			}
			c.Set(operatorKey, op)
			return next(c)
		}
	}
}

// bearer returns the token of a "Bearer <token>" Authorization header.
func bearer(c echo.Context) string {
	auth := c.Request().Header.Get(echo.HeaderAuthorization)
	if !strings.HasPrefix(auth, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
}
