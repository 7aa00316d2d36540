// Package view holds the state of the five entity tables shown to the
// operator.  Each View owns its current search filter and the rows it last
// displayed, independently of the others; mutating handlers call Refresh so
// the table re-lists with the filter still applied.
package view

import (
	"context"
	"sync"

	"github.com/iliyamo/vehicle-service-management/internal/model"
)

// Source lists rows of one table matching a filter.
type Source[T any] interface {
	List(ctx context.Context, filter string) ([]T, error)
}

// View is the displayed state of one entity table.
type View[T any] struct {
	name string
	src  Source[T]

	mu     sync.Mutex
	filter string
	rows   []T
}

// New constructs an empty View named name.
func New[T any](name string, src Source[T]) *View[T] {
	return &View[T]{name: name, src: src, rows: []T{}}
}

// Name is the entity name used in logs and exports.
func (v *View[T]) Name() string { return v.name }

// Load lists rows matching filter and makes them the displayed table.  On
// failure the previous state is kept.
func (v *View[T]) Load(ctx context.Context, filter string) ([]T, error) {
	rows, err := v.src.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	v.mu.Lock()
	v.filter = filter
	v.rows = rows
	v.mu.Unlock()
	return rows, nil
}

// Refresh re-lists with the current filter.
func (v *View[T]) Refresh(ctx context.Context) ([]T, error) {
	return v.Load(ctx, v.Filter())
}

// Filter returns the search text currently applied.
func (v *View[T]) Filter() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.filter
}

// Rows returns a copy of the displayed rows.
func (v *View[T]) Rows() []T {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]T, len(v.rows))
	copy(out, v.rows)
	return out
}

// Views bundles the five entity tables.
type Views struct {
	Customers  *View[model.Customer]
	Vehicles   *View[model.Vehicle]
	Mechanics  *View[model.Mechanic]
	SpareParts *View[model.SparePart]
	Services   *View[model.ServiceRecord]
}

// Snapshot is the content of every table after a refresh.
type Snapshot struct {
	Customers  []model.Customer      `json:"customers"`
	Vehicles   []model.Vehicle       `json:"vehicles"`
	Mechanics  []model.Mechanic      `json:"mechanics"`
	SpareParts []model.SparePart     `json:"spare_parts"`
	Services   []model.ServiceRecord `json:"services"`
}

// RefreshAll re-lists every table with its own filter, stopping at the
// first failure.
func (vs *Views) RefreshAll(ctx context.Context) (*Snapshot, error) {
	var (
		s   Snapshot
		err error
	)
	if s.Customers, err = vs.Customers.Refresh(ctx); err != nil {
		return nil, err
	}
	if s.Vehicles, err = vs.Vehicles.Refresh(ctx); err != nil {
		return nil, err
	}
	if s.Mechanics, err = vs.Mechanics.Refresh(ctx); err != nil {
		return nil, err
	}
	if s.SpareParts, err = vs.SpareParts.Refresh(ctx); err != nil {
		return nil, err
	}
	if s.Services, err = vs.Services.Refresh(ctx); err != nil {
		return nil, err
	}
	return &s, nil
}
