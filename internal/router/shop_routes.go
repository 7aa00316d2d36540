package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/vehicle-service-management/internal/handler"    // shop handlers
	"github.com/iliyamo/vehicle-service-management/internal/middleware" // session middleware
)

// RegisterShop registers the back-office endpoints under /v1.  All routes
// require a valid session token.
func RegisterShop(e *echo.Echo, h *handler.ShopHandler, jwtSecret string) {
	g := e.Group("/v1", middleware.SessionAuth(jwtSecret))

	// ---- Entity tables ----
	for segment, r := range h.Resources() {
		g.GET("/"+segment, r.List)
		g.GET("/"+segment+"/export", r.Export)
		g.POST("/"+segment, r.Create)
		g.PUT("/"+segment+"/:id", r.Update)
		g.DELETE("/"+segment+"/:id", r.Delete)
	}
	g.PATCH("/spare-parts/:id/stock", h.UpdateStock)
	g.GET("/services/:id/parts", h.ServiceParts)
	g.GET("/services/:id/invoice", h.Invoice)
	g.GET("/refresh", h.RefreshAll)

	// ---- Add service with parts ----
	d := g.Group("/service-drafts")
	d.POST("", h.StartDraft)
	d.GET("/:id", h.GetDraft)
	d.PUT("/:id", h.UpdateDraft)
	d.DELETE("/:id", h.CancelDraft)
	d.POST("/:id/picking", h.BeginPicking)
	d.POST("/:id/picking/add", h.AddParts)
	d.DELETE("/:id/picking", h.CancelPicking)
	d.DELETE("/:id/items/:index", h.RemoveDraftItem)
	d.POST("/:id/save", h.SaveDraft)
}
