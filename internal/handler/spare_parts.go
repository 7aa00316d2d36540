package handler

import (
	"errors"   // matching not-found errors
	"net/http" // status codes
	"strconv"  // strict quantity parsing

	"github.com/labstack/echo/v4"    // echo request context
	log "github.com/sirupsen/logrus" // log fields

	"github.com/iliyamo/vehicle-service-management/internal/repository" // ErrNotFound
	"github.com/iliyamo/vehicle-service-management/internal/utils"      // FormText keeps numbers verbatim
)

// UpdateStock handles PATCH /v1/spare-parts/:id/stock and replaces the
// stock level of one part.  The quantity is required and must be a whole
// number; anything else is refused and the stock is left alone.
func (h *ShopHandler) UpdateStock(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return badID(c)
	}
	var body struct {
		Quantity *utils.FormText `json:"quantity"`
	}
	if err := c.Bind(&body); err != nil {
		return badBody(c)
	}
	if body.Quantity == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "quantity is required"})
	}
	qty, err := strconv.ParseInt(body.Quantity.String(), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid quantity"})
	}
	ctx := c.Request().Context()
	if _, err := h.SpareParts.Get(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "spare_part not found"})
		}
		return dbError(c, h.Log, err)
	}
	if err := h.SpareParts.SetStock(ctx, id, qty); err != nil {
		return dbError(c, h.Log, err)
	}
	h.Log.WithFields(log.Fields{"entity": "spare_part", "id": id, "quantity": qty}).Info("stock updated")

	resp := echo.Map{"part_id": id, "quantity_in_stock": qty}
	rows, err := h.Views.SpareParts.Refresh(ctx)
	if err != nil {
		resp["refresh_error"] = err.Error()
	} else {
		resp["rows"] = rows
	}
	return c.JSON(http.StatusOK, resp)
}
