package router // package router defines how HTTP routes are registered for the API

import (
	"context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	echomw "github.com/labstack/echo/v4/middleware"
	log "github.com/sirupsen/logrus"

	"github.com/iliyamo/vehicle-service-management/internal/handler"    // import the handlers that implement the shop operations
	"github.com/iliyamo/vehicle-service-management/internal/middleware" // session gate and request logging
)

// Options is everything New needs to assemble the API.
type Options struct {
	Shop      *handler.ShopHandler
	Session   *handler.SessionHandler
	JWTSecret string
	Ping      func(ctx context.Context) error
	Log       log.FieldLogger
}

// New builds the Echo instance with the common middleware and every route.
func New(o Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.RequestLogger(o.Log))

	RegisterRoutes(e, o.Ping)
	RegisterSession(e, o.Session)
	RegisterShop(e, o.Shop, o.JWTSecret)
	return e
}

// RegisterRoutes registers routes that do not require a session.
// Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo, ping func(ctx context.Context) error) {
	e.GET("/healthz", handler.Health(ping))
}

// RegisterSession registers the login that every other /v1 route sits
// behind.
func RegisterSession(e *echo.Echo, s *handler.SessionHandler) {
	g := e.Group("/v1/session")
	g.POST("/login", s.Login)
	g.POST("/logout", s.Logout)
}
