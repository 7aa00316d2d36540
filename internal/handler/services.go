package handler

import (
	"errors"   // matching not-found errors
	"fmt"      // operator messages
	"net/http" // status codes
	"time"     // event timestamps

	"github.com/labstack/echo/v4" // echo request context

	"github.com/iliyamo/vehicle-service-management/internal/invoice"    // bill rendering
	"github.com/iliyamo/vehicle-service-management/internal/queue"      // invoice.rendered payload
	"github.com/iliyamo/vehicle-service-management/internal/repository" // ErrNotFound
)

// ServiceParts handles GET /v1/services/:id/parts: the line items of one
// service with part names and stored line totals.
func (h *ShopHandler) ServiceParts(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return badID(c)
	}
	ctx := c.Request().Context()
	if _, err := h.Services.Get(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "service not found"})
		}
		return dbError(c, h.Log, err)
	}
	parts, err := h.Services.Parts(ctx, id)
	if err != nil {
		return dbError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"service_id": id, "parts": parts})
}

// Invoice handles GET /v1/services/:id/invoice.  The bill is written to
// service_bill_<id>.pdf; with ?download=true the file is also sent back.
func (h *ShopHandler) Invoice(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return badID(c)
	}
	ctx := c.Request().Context()
	inv, err := h.Invoices.Render(ctx, id)
	if errors.Is(err, invoice.ErrServiceNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not_found", "message": fmt.Sprintf("Service %d not found.", id)})
	}
	if err != nil {
		return dbError(c, h.Log, err)
	}

	_ = h.Events.PublishInvoiceRendered(ctx, queue.InvoiceRenderedEvent{
		ServiceID:  id,
		File:       inv.Path,
		PartsTotal: inv.PartsTotal.StringFixed(2),
		TotalCost:  inv.StoredTotal.StringFixed(2),
		RenderedAt: time.Now().UTC().Format(time.RFC3339),
	})

	if confirmedParam(c, "download") {
		return c.Attachment(inv.Path, inv.Path)
	}
	msg := "Bill generated: " + inv.Path
	if inv.Opened {
		msg = "Bill generated and opened: " + inv.Path
	}
	return c.JSON(http.StatusOK, echo.Map{"message": msg, "invoice": inv})
}
