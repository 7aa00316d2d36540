package handler

import (
	"net/http" // status codes and cookies
	"time"     // token expiry

	"github.com/labstack/echo/v4"    // echo request context
	log "github.com/sirupsen/logrus" // structured logging

	"github.com/iliyamo/vehicle-service-management/internal/middleware" // session cookie name
	"github.com/iliyamo/vehicle-service-management/internal/session"    // fixed credential check
	"github.com/iliyamo/vehicle-service-management/internal/utils"      // token issuing
)

// SessionHandler serves the login that gates the rest of the API.
type SessionHandler struct {
	Gate      *session.Gate
	JWTSecret string
	TTLMin    int
	Log       log.FieldLogger
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResp struct {
	Operator    string    `json:"operator"`
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Login handles POST /v1/session/login.  A mismatch answers 401 and the
// client may simply try again; attempts are not counted.
func (h *SessionHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	if !h.Gate.Check(req.Username, req.Password) {
		h.Log.Warn("login rejected")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	tok, err := utils.NewAccessToken(h.JWTSecret, h.Gate.User(), h.TTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    tok.Token,
		Path:     "/",
		Expires:  tok.Exp,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	h.Log.WithField("operator", h.Gate.User()).Info("operator logged in")
	return c.JSON(http.StatusOK, loginResp{Operator: h.Gate.User(), AccessToken: tok.Token, ExpiresAt: tok.Exp})
}

// Logout handles POST /v1/session/logout by clearing the cookie.  Bearer
// tokens stay valid until they expire.
func (h *SessionHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{Name: middleware.SessionCookie, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
	return c.NoContent(http.StatusNoContent)
}
