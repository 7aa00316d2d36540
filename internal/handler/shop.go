package handler

import (
	"net/http" // status codes

	"github.com/labstack/echo/v4"    // echo request context
	log "github.com/sirupsen/logrus" // fallback logger

	"github.com/iliyamo/vehicle-service-management/internal/composer"   // service drafts
	"github.com/iliyamo/vehicle-service-management/internal/export"     // table builders per entity
	"github.com/iliyamo/vehicle-service-management/internal/invoice"    // PDF bills
	"github.com/iliyamo/vehicle-service-management/internal/model"      // entity rows
	"github.com/iliyamo/vehicle-service-management/internal/queue"      // event publisher
	"github.com/iliyamo/vehicle-service-management/internal/repository" // table access
	"github.com/iliyamo/vehicle-service-management/internal/view"       // per-table display state
)

// ShopDeps lists what the shop handlers need.
type ShopDeps struct {
	Customers  *repository.CustomerRepo
	Vehicles   *repository.VehicleRepo
	Mechanics  *repository.MechanicRepo
	SpareParts *repository.SparePartRepo
	Services   *repository.ServiceRepo
	Views      *view.Views
	Composer   *composer.Composer
	Invoices   *invoice.Renderer
	Events     *queue.Publisher
	Log        log.FieldLogger
}

// ShopHandler serves the five entity tables and the workflows built on
// them.
type ShopHandler struct {
	ShopDeps
	resources map[string]Resource
}

// NewShopHandler constructs a ShopHandler and panics if a dependency is
// missing.
func NewShopHandler(d ShopDeps) *ShopHandler {
	if d.Customers == nil || d.Vehicles == nil || d.Mechanics == nil || d.SpareParts == nil ||
		d.Services == nil || d.Views == nil || d.Composer == nil || d.Invoices == nil {
		panic("nil dependency passed to NewShopHandler")
	}
	if d.Log == nil {
		d.Log = log.StandardLogger()
	}
	if d.Events == nil {
		d.Events = queue.NewPublisher("", false, d.Log)
	}
	h := &ShopHandler{ShopDeps: d}
	h.resources = map[string]Resource{
		"customers": &resource[model.Customer, customerForm]{
			name: "customer", repo: d.Customers, view: d.Views.Customers,
			toModel: customerForm.model,
			setID:   func(c *model.Customer, id int64) { c.ID = id },
			table:   export.Customers, log: d.Log,
		},
		"vehicles": &resource[model.Vehicle, vehicleForm]{
			name: "vehicle", repo: d.Vehicles, view: d.Views.Vehicles,
			toModel: vehicleForm.model,
			setID:   func(v *model.Vehicle, id int64) { v.ID = id },
			table:   export.Vehicles, log: d.Log,
		},
		"mechanics": &resource[model.Mechanic, mechanicForm]{
			name: "mechanic", repo: d.Mechanics, view: d.Views.Mechanics,
			toModel: mechanicForm.model,
			setID:   func(m *model.Mechanic, id int64) { m.ID = id },
			onCreate: func(m *model.Mechanic) {
				if m.HireDate == "" {
					m.HireDate = today()
				}
			},
			table: export.Mechanics, log: d.Log,
		},
		"spare-parts": &resource[model.SparePart, sparePartForm]{
			name: "spare_part", repo: d.SpareParts, view: d.Views.SpareParts,
			toModel: sparePartForm.model,
			setID:   func(p *model.SparePart, id int64) { p.ID = id },
			table:   export.SpareParts, log: d.Log,
		},
		"services": &resource[model.ServiceRecord, serviceForm]{
			name: "service", repo: d.Services, view: d.Views.Services,
			toModel: serviceForm.model,
			setID:   func(s *model.ServiceRecord, id int64) { s.ID = id },
			onCreate: func(s *model.ServiceRecord) {
				if s.ServiceDate == "" {
					s.ServiceDate = today()
				}
				if s.Status == "" {
					s.Status = model.DefaultServiceStatus
				}
			},
			table: export.Services, log: d.Log,
		},
	}
	return h
}

// Resources returns the entity route sets keyed by their path segment.
func (h *ShopHandler) Resources() map[string]Resource { return h.resources }

// RefreshAll handles GET /v1/refresh: every table re-lists with its own
// filter.
func (h *ShopHandler) RefreshAll(c echo.Context) error {
	snap, err := h.Views.RefreshAll(c.Request().Context())
	if err != nil {
		return dbError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, snap)
}
