package composer

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/vehicle-service-management/internal/model"
)

// Store keeps drafts between requests.
type Store interface {
	Get(ctx context.Context, id string) (*Draft, error)
	Put(ctx context.Context, d *Draft) error
	Delete(ctx context.Context, id string) error
}

// Catalog lists every spare part with its current stock.
type Catalog interface {
	Catalog(ctx context.Context) ([]model.SparePart, error)
}

// Recorder writes a service header with its line items as one unit.
type Recorder interface {
	CreateWithParts(ctx context.Context, sr *model.ServiceRecord, parts []model.PartUsage) error
}

// Composer drives drafts through their states and persists them in a
// Store.  Operations are serialized so that two requests never interleave
// a load and a store of the same draft.
type Composer struct {
	store    Store
	catalog  Catalog
	recorder Recorder

	mu    sync.Mutex
	now   func() time.Time
	newID func() string
}

// New constructs a Composer.
func New(store Store, catalog Catalog, recorder Recorder) *Composer {
	return &Composer{
		store:    store,
		catalog:  catalog,
		recorder: recorder,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Start opens a new draft in the collecting state.
func (c *Composer) Start(ctx context.Context, h Header) (*Draft, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	d := &Draft{
		ID:        c.newID(),
		State:     StateCollecting,
		Header:    h.withDefaults(now),
		Items:     []LineItem{},
		CreatedAt: now.UTC(),
	}
	if err := c.store.Put(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Draft returns the current state of a draft.
func (c *Composer) Draft(ctx context.Context, id string) (*Draft, error) {
	return c.store.Get(ctx, id)
}

// update loads a draft, applies fn and stores the result when fn succeeds.
func (c *Composer) update(ctx context.Context, id string, fn func(d *Draft) error) (*Draft, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, err := c.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(d); err != nil {
		return d, err
	}
	if err := c.store.Put(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// UpdateHeader replaces the header, applying the same defaults as Start.
func (c *Composer) UpdateHeader(ctx context.Context, id string, h Header) (*Draft, error) {
	return c.update(ctx, id, func(d *Draft) error {
		return d.SetHeader(h.withDefaults(c.now()))
	})
}

// BeginPicking snapshots the spare-part catalog and enters picking.
func (c *Composer) BeginPicking(ctx context.Context, id string) (*Draft, error) {
	return c.update(ctx, id, func(d *Draft) error {
		if d.State != StateCollecting {
			return ErrNotCollecting
		}
		parts, err := c.catalog.Catalog(ctx)
		if err != nil {
			return err
		}
		entries := make([]CatalogEntry, len(parts))
		for i, p := range parts {
			entries[i] = CatalogEntry{PartID: p.ID, PartName: p.PartName, UnitPrice: p.UnitPrice, InStock: p.QuantityInStock}
		}
		return d.BeginPicking(entries)
	})
}

// AddParts adds a batch of parts; see Draft.AddParts.
func (c *Composer) AddParts(ctx context.Context, id string, partIDs []int64, quantity int64, proceed bool) (*Draft, []StockWarning, error) {
	var warnings []StockWarning
	d, err := c.update(ctx, id, func(d *Draft) error {
		var err error
		warnings, err = d.AddParts(partIDs, quantity, proceed)
		return err
	})
	return d, warnings, err
}

// CancelPicking returns to collecting with the line items unchanged.
func (c *Composer) CancelPicking(ctx context.Context, id string) (*Draft, error) {
	return c.update(ctx, id, func(d *Draft) error { return d.CancelPicking() })
}

// RemoveItem drops one line item.
func (c *Composer) RemoveItem(ctx context.Context, id string, index int) (*Draft, error) {
	return c.update(ctx, id, func(d *Draft) error { return d.RemoveItem(index) })
}

// Save writes the draft as a new service and discards it.  On failure
// nothing was written and the draft is kept so the operator can fix it.
func (c *Composer) Save(ctx context.Context, id string) (*model.ServiceRecord, []model.PartUsage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, err := c.store.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if d.State != StateCollecting {
		return nil, nil, ErrNotCollecting
	}
	sr, parts := d.record()
	if err := c.recorder.CreateWithParts(ctx, sr, parts); err != nil {
		return nil, nil, err
	}
	// the service is committed; a stale draft only lingers until its TTL
	_ = c.store.Delete(ctx, id)
	return sr, parts, nil
}

// Cancel discards a draft without touching storage.
func (c *Composer) Cancel(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := c.store.Get(ctx, id); err != nil {
		return err
	}
	return c.store.Delete(ctx, id)
}
