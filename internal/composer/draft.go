// Package composer implements the "add service with parts" workflow.  A
// Draft collects the service header and an unsaved list of part line items;
// a picking sub-state lets the operator add a batch of parts from a catalog
// snapshot with one shared quantity.  Saving writes the header and all line
// items as one unit.  Nothing touches storage before Save.
package composer

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/vehicle-service-management/internal/model"
)

// State of a draft.
type State string

const (
	StateCollecting State = "collecting"
	StatePicking    State = "part_picking"
)

var (
	ErrDraftNotFound   = errors.New("draft not found")
	ErrNotCollecting   = errors.New("draft is picking parts")
	ErrNotPicking      = errors.New("draft is not picking parts")
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	ErrNoSelection     = errors.New("no parts selected")
	ErrUnknownPart     = errors.New("part not in catalog")
	ErrItemIndex       = errors.New("line item index out of range")
)

// Header holds the service record fields entered before saving.
type Header struct {
	VehicleID        int64  `json:"vehicle_id"`
	MechanicID       int64  `json:"mechanic_id"`
	ServiceDate      string `json:"service_date"`
	Problem          string `json:"problem"`
	Status           string `json:"status"`
	MileageAtService int64  `json:"mileage_at_service"`
	Duration         int64  `json:"duration"`
}

// withDefaults fills a blank date with today and a blank status with the
// default service status.
func (h Header) withDefaults(now time.Time) Header {
	h.ServiceDate = strings.TrimSpace(h.ServiceDate)
	h.Status = strings.TrimSpace(h.Status)
	if h.ServiceDate == "" {
		h.ServiceDate = now.Format(model.DateLayout)
	}
	if h.Status == "" {
		h.Status = model.DefaultServiceStatus
	}
	return h
}

// LineItem is one chosen part.  UnitPrice is the catalog price at the time
// the part was picked.
type LineItem struct {
	PartID    int64           `json:"part_id"`
	PartName  string          `json:"part_name"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CatalogEntry is a spare part as seen when picking started.
type CatalogEntry struct {
	PartID    int64           `json:"part_id"`
	PartName  string          `json:"part_name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	InStock   int64           `json:"quantity_in_stock"`
}

// StockWarning reports a requested quantity above the stock on hand.
type StockWarning struct {
	PartID    int64  `json:"part_id"`
	PartName  string `json:"part_name"`
	Requested int64  `json:"requested"`
	InStock   int64  `json:"in_stock"`
}

func (w StockWarning) String() string {
	return fmt.Sprintf("only %d of %s in stock, %d requested", w.InStock, w.PartName, w.Requested)
}

// LowStockError is returned when a batch asks for more than is in stock
// and the operator has not chosen to proceed.  Nothing was added.
type LowStockError struct {
	Warnings []StockWarning
}

func (e *LowStockError) Error() string {
	msgs := make([]string, len(e.Warnings))
	for i, w := range e.Warnings {
		msgs[i] = w.String()
	}
	return "low stock: " + strings.Join(msgs, "; ")
}

// Draft is the unsaved state of one new service.
type Draft struct {
	ID        string         `json:"id"`
	State     State          `json:"state"`
	Header    Header         `json:"header"`
	Items     []LineItem     `json:"items"`
	Catalog   []CatalogEntry `json:"catalog,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// SetHeader replaces the header fields.
func (d *Draft) SetHeader(h Header) error {
	if d.State != StateCollecting {
		return ErrNotCollecting
	}
	d.Header = h
	return nil
}

// BeginPicking enters the picking sub-state over a catalog snapshot.
func (d *Draft) BeginPicking(catalog []CatalogEntry) error {
	if d.State != StateCollecting {
		return ErrNotCollecting
	}
	d.State = StatePicking
	d.Catalog = catalog
	return nil
}

// AddParts appends one line item per selected part with the shared
// quantity, in selection order, and returns to collecting.  A part picked
// twice in one batch is added once; parts picked again in a later batch are
// appended again.  If any part is short on stock and proceed is false, a
// *LowStockError is returned and the draft is unchanged.  Stock figures
// are never modified.
func (d *Draft) AddParts(partIDs []int64, quantity int64, proceed bool) ([]StockWarning, error) {
	if d.State != StatePicking {
		return nil, ErrNotPicking
	}
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if len(partIDs) == 0 {
		return nil, ErrNoSelection
	}

	byID := make(map[int64]CatalogEntry, len(d.Catalog))
	for _, e := range d.Catalog {
		byID[e.PartID] = e
	}
	seen := make(map[int64]bool, len(partIDs))
	var (
		picked   []CatalogEntry
		warnings []StockWarning
	)
	for _, id := range partIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		e, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: %d", ErrUnknownPart, id)
		}
		if quantity > e.InStock {
			warnings = append(warnings, StockWarning{PartID: id, PartName: e.PartName, Requested: quantity, InStock: e.InStock})
		}
		picked = append(picked, e)
	}
	if len(warnings) > 0 && !proceed {
		return warnings, &LowStockError{Warnings: warnings}
	}

	for _, e := range picked {
		d.Items = append(d.Items, LineItem{PartID: e.PartID, PartName: e.PartName, Quantity: quantity, UnitPrice: e.UnitPrice})
	}
	d.State = StateCollecting
	d.Catalog = nil
	return warnings, nil
}

// CancelPicking leaves the picking sub-state without adding anything.
func (d *Draft) CancelPicking() error {
	if d.State != StatePicking {
		return ErrNotPicking
	}
	d.State = StateCollecting
	d.Catalog = nil
	return nil
}

// RemoveItem drops the line item at index.
func (d *Draft) RemoveItem(index int) error {
	if d.State != StateCollecting {
		return ErrNotCollecting
	}
	if index < 0 || index >= len(d.Items) {
		return ErrItemIndex
	}
	d.Items = append(d.Items[:index], d.Items[index+1:]...)
	return nil
}

// record converts the draft into the rows written on save.
func (d *Draft) record() (*model.ServiceRecord, []model.PartUsage) {
	h := d.Header
	sr := &model.ServiceRecord{
		VehicleID:        h.VehicleID,
		MechanicID:       h.MechanicID,
		ServiceDate:      h.ServiceDate,
		Problem:          h.Problem,
		Status:           h.Status,
		MileageAtService: h.MileageAtService,
		Duration:         h.Duration,
	}
	parts := make([]model.PartUsage, len(d.Items))
	for i, it := range d.Items {
		parts[i] = model.PartUsage{PartID: it.PartID, QuantityUsed: it.Quantity, UnitPrice: it.UnitPrice}
	}
	return sr, parts
}

func (d *Draft) clone() *Draft {
	c := *d
	c.Items = append([]LineItem(nil), d.Items...)
	c.Catalog = append([]CatalogEntry(nil), d.Catalog...)
	if c.Items == nil {
		c.Items = []LineItem{}
	}
	return &c
}
