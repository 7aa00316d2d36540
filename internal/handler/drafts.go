package handler

import (
	"errors"   // matching composer errors
	"net/http" // status codes
	"strconv"  // strict quantity parsing
	"time"     // event timestamps

	"github.com/labstack/echo/v4"    // echo request context
	log "github.com/sirupsen/logrus" // log fields

	"github.com/iliyamo/vehicle-service-management/internal/composer" // draft state machine
	"github.com/iliyamo/vehicle-service-management/internal/queue"    // service.recorded payload
	"github.com/iliyamo/vehicle-service-management/internal/utils"    // form field types
)

// draftHeaderForm is the "Add Service" dialog.  Integer fields follow the
// parse-or-default policy.
type draftHeaderForm struct {
	VehicleID        utils.FormInt  `json:"vehicle_id"`
	MechanicID       utils.FormInt  `json:"mechanic_id"`
	ServiceDate      utils.FormText `json:"service_date"`
	Problem          utils.FormText `json:"problem"`
	Status           utils.FormText `json:"status"`
	MileageAtService utils.FormInt  `json:"mileage_at_service"`
	Duration         utils.FormInt  `json:"duration"`
}

func (f draftHeaderForm) header() composer.Header {
	return composer.Header{
		VehicleID:        f.VehicleID.Int64(),
		MechanicID:       f.MechanicID.Int64(),
		ServiceDate:      f.ServiceDate.String(),
		Problem:          f.Problem.String(),
		Status:           f.Status.String(),
		MileageAtService: f.MileageAtService.Int64(),
		Duration:         f.Duration.Int64(),
	}
}

// draftError maps composer failures onto HTTP statuses.  Anything the
// composer does not recognise came from storage.
func (h *ShopHandler) draftError(c echo.Context, err error) error {
	var low *composer.LowStockError
	switch {
	case errors.As(err, &low):
		return c.JSON(http.StatusConflict, echo.Map{
			"error":    "low_stock",
			"message":  low.Error() + "; repeat with proceed=true to add anyway",
			"warnings": low.Warnings,
		})
	case errors.Is(err, composer.ErrDraftNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "draft not found"})
	case errors.Is(err, composer.ErrNotCollecting), errors.Is(err, composer.ErrNotPicking):
		return c.JSON(http.StatusConflict, echo.Map{"error": "invalid_state", "message": err.Error()})
	case errors.Is(err, composer.ErrInvalidQuantity), errors.Is(err, composer.ErrNoSelection),
		errors.Is(err, composer.ErrUnknownPart), errors.Is(err, composer.ErrItemIndex):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	return dbError(c, h.Log, err)
}

// StartDraft handles POST /v1/service-drafts.
func (h *ShopHandler) StartDraft(c echo.Context) error {
	var form draftHeaderForm
	if err := c.Bind(&form); err != nil {
		return badBody(c)
	}
	d, err := h.Composer.Start(c.Request().Context(), form.header())
	if err != nil {
		return h.draftError(c, err)
	}
	return c.JSON(http.StatusCreated, d)
}

// GetDraft handles GET /v1/service-drafts/:id.
func (h *ShopHandler) GetDraft(c echo.Context) error {
	d, err := h.Composer.Draft(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.draftError(c, err)
	}
	return c.JSON(http.StatusOK, d)
}

// UpdateDraft handles PUT /v1/service-drafts/:id.
func (h *ShopHandler) UpdateDraft(c echo.Context) error {
	var form draftHeaderForm
	if err := c.Bind(&form); err != nil {
		return badBody(c)
	}
	d, err := h.Composer.UpdateHeader(c.Request().Context(), c.Param("id"), form.header())
	if err != nil {
		return h.draftError(c, err)
	}
	return c.JSON(http.StatusOK, d)
}

// BeginPicking handles POST /v1/service-drafts/:id/picking and returns the
// catalog snapshot to choose from.
func (h *ShopHandler) BeginPicking(c echo.Context) error {
	d, err := h.Composer.BeginPicking(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.draftError(c, err)
	}
	return c.JSON(http.StatusOK, d)
}

// AddParts handles POST /v1/service-drafts/:id/picking/add.  Unlike the
// entity forms the quantity is not coerced: it must be a positive integer.
func (h *ShopHandler) AddParts(c echo.Context) error {
	var body struct {
		PartIDs  []int64        `json:"part_ids"`
		Quantity utils.FormText `json:"quantity"`
		Proceed  bool           `json:"proceed"`
	}
	if err := c.Bind(&body); err != nil {
		return badBody(c)
	}
	qty, err := strconv.ParseInt(body.Quantity.String(), 10, 64)
	if err != nil {
		return h.draftError(c, composer.ErrInvalidQuantity)
	}
	d, warnings, err := h.Composer.AddParts(c.Request().Context(), c.Param("id"), body.PartIDs, qty, body.Proceed)
	if err != nil {
		return h.draftError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"draft": d, "warnings": warnings})
}

// CancelPicking handles DELETE /v1/service-drafts/:id/picking.
func (h *ShopHandler) CancelPicking(c echo.Context) error {
	d, err := h.Composer.CancelPicking(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.draftError(c, err)
	}
	return c.JSON(http.StatusOK, d)
}

// RemoveDraftItem handles DELETE /v1/service-drafts/:id/items/:index.
func (h *ShopHandler) RemoveDraftItem(c echo.Context) error {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid index"})
	}
	d, err := h.Composer.RemoveItem(c.Request().Context(), c.Param("id"), index)
	if err != nil {
		return h.draftError(c, err)
	}
	return c.JSON(http.StatusOK, d)
}

// SaveDraft handles POST /v1/service-drafts/:id/save.  The header and all
// line items are written in one transaction; on failure nothing is stored
// and the draft stays open.
func (h *ShopHandler) SaveDraft(c echo.Context) error {
	ctx := c.Request().Context()
	sr, usage, err := h.Composer.Save(ctx, c.Param("id"))
	if err != nil {
		return h.draftError(c, err)
	}
	h.Log.WithFields(log.Fields{"service_id": sr.ID, "parts": len(usage)}).Info("service recorded")

	ev := queue.ServiceRecordedEvent{
		ServiceID:   sr.ID,
		VehicleID:   sr.VehicleID,
		MechanicID:  sr.MechanicID,
		ServiceDate: sr.ServiceDate,
		Status:      sr.Status,
		Parts:       make([]queue.PartUsedLine, len(usage)),
		RecordedAt:  time.Now().UTC().Format(time.RFC3339),
	}
	for i, u := range usage {
		ev.Parts[i] = queue.PartUsedLine{PartID: u.PartID, Quantity: u.QuantityUsed, Price: u.UnitPrice.StringFixed(2)}
	}
	_ = h.Events.PublishServiceRecorded(ctx, ev)

	resp := echo.Map{"service_id": sr.ID}
	if parts, err := h.Services.Parts(ctx, sr.ID); err == nil {
		resp["parts"] = parts
	} else {
		resp["refresh_error"] = err.Error()
	}
	if rows, err := h.Views.Services.Refresh(ctx); err == nil {
		resp["services"] = rows
	} else {
		resp["refresh_error"] = err.Error()
	}
	if rows, err := h.Views.SpareParts.Refresh(ctx); err == nil {
		resp["spare_parts"] = rows
	} else {
		resp["refresh_error"] = err.Error()
	}
	return c.JSON(http.StatusCreated, resp)
}

// CancelDraft handles DELETE /v1/service-drafts/:id.  Nothing is stored.
func (h *ShopHandler) CancelDraft(c echo.Context) error {
	if err := h.Composer.Cancel(c.Request().Context(), c.Param("id")); err != nil {
		return h.draftError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
