package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/vehicle-service-management/internal/utils"
)

func newGatedEcho(secret string) *echo.Echo {
	e := echo.New()
	g := e.Group("", SessionAuth(secret))
	g.GET("/who", func(c echo.Context) error {
		return c.String(http.StatusOK, Operator(c))
	})
	return e
}

func TestSessionAuth(t *testing.T) {
	e := newGatedEcho("s3cret")
	tok, err := utils.NewAccessToken("s3cret", "admin", 5)
	require.NoError(t, err)
	forged, err := utils.NewAccessToken("other", "admin", 5)
	require.NoError(t, err)

	cases := []struct {
		name   string
		setup  func(r *http.Request)
		status int
		body   string
	}{
		{"no credentials", func(*http.Request) {}, http.StatusUnauthorized, ""},
		{"bearer", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+tok.Token) }, http.StatusOK, "admin"},
		{"cookie", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: SessionCookie, Value: tok.Token}) }, http.StatusOK, "admin"},
		{"wrong secret", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+forged.Token) }, http.StatusUnauthorized, ""},
		{"garbage", func(r *http.Request) { r.Header.Set("Authorization", "Bearer abc") }, http.StatusUnauthorized, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/who", nil)
			tc.setup(req)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			assert.Equal(t, tc.status, rec.Code)
			if tc.body != "" {
				assert.Equal(t, tc.body, rec.Body.String())
			}
		})
	}
}

func TestRequestLogger(t *testing.T) {
	logger, hook := test.NewNullLogger()
	e := echo.New()
	e.Use(RequestLogger(logger))
	e.GET("/ok", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })
	e.GET("/boom", func(c echo.Context) error { return echo.NewHTTPError(http.StatusInternalServerError, "boom") })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, http.StatusNoContent, hook.LastEntry().Data["status"])
	assert.Equal(t, "anonymous", hook.LastEntry().Data["operator"])

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "request failed", hook.LastEntry().Message)
	assert.Len(t, hook.AllEntries(), 2)
}
