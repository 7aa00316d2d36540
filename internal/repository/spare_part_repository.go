package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/vehicle-service-management/internal/database"
	"github.com/iliyamo/vehicle-service-management/internal/model"
)

const sparePartColumns = "Part_ID, COALESCE(Part_Name, ''), COALESCE(Manufacturer, ''), COALESCE(Unit_Price, 0), COALESCE(Quantity_In_Stock, 0)"

// SparePartRepo encapsulates the queries against the Spare_Parts table.
type SparePartRepo struct {
	gw  *database.Gateway
	ids *IDAllocator
}

// NewSparePartRepo constructs a SparePartRepo.
func NewSparePartRepo(gw *database.Gateway) *SparePartRepo {
	return &SparePartRepo{gw: gw, ids: NewIDAllocator(gw)}
}

func scanSparePart(s interface{ Scan(...any) error }) (model.SparePart, error) {
	var p model.SparePart
	err := s.Scan(&p.ID, &p.PartName, &p.Manufacturer, &p.UnitPrice, &p.QuantityInStock)
	return p, err
}

// List returns parts whose name contains filter.
func (r *SparePartRepo) List(ctx context.Context, filter string) ([]model.SparePart, error) {
	where, args := searchClause("Part_Name", filter)
	out := []model.SparePart{}
	err := r.gw.Query(ctx, "SELECT "+sparePartColumns+" FROM Spare_Parts"+where, args, func(rows *sql.Rows) error {
		p, err := scanSparePart(rows)
		if err != nil {
			return err
		}
		out = append(out, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list spare parts: %w", err)
	}
	return out, nil
}

// Catalog lists every part.  The composer snapshots it when picking starts.
func (r *SparePartRepo) Catalog(ctx context.Context) ([]model.SparePart, error) {
	return r.List(ctx, "")
}

// Get fetches one part or returns ErrNotFound.
func (r *SparePartRepo) Get(ctx context.Context, id int64) (*model.SparePart, error) {
	var p model.SparePart
	err := r.gw.Do(ctx, func(q database.Queryer) error {
		var err error
		p, err = scanSparePart(q.QueryRowContext(ctx, "SELECT "+sparePartColumns+" FROM Spare_Parts WHERE Part_ID = ?", id))
		return err
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get spare part %d: %w", id, err)
	}
	return &p, nil
}

// Create allocates an id and inserts p.
func (r *SparePartRepo) Create(ctx context.Context, p *model.SparePart) error {
	id, err := r.ids.Next(ctx, SparePartTable)
	if err != nil {
		return err
	}
	const q = "INSERT INTO Spare_Parts (Part_ID, Part_Name, Manufacturer, Unit_Price, Quantity_In_Stock) VALUES (?, ?, ?, ?, ?)"
	if _, err := r.gw.Exec(ctx, q, id, p.PartName, p.Manufacturer, p.UnitPrice.String(), p.QuantityInStock); err != nil {
		return fmt.Errorf("create spare part: %w", err)
	}
	p.ID = id
	return nil
}

// Update overwrites every column of the row keyed by p.ID.
func (r *SparePartRepo) Update(ctx context.Context, p *model.SparePart) error {
	const q = "UPDATE Spare_Parts SET Part_Name = ?, Manufacturer = ?, Unit_Price = ?, Quantity_In_Stock = ? WHERE Part_ID = ?"
	if _, err := r.gw.Exec(ctx, q, p.PartName, p.Manufacturer, p.UnitPrice.String(), p.QuantityInStock, p.ID); err != nil {
		return fmt.Errorf("update spare part %d: %w", p.ID, err)
	}
	return nil
}

// SetStock replaces the stock level of one part.
func (r *SparePartRepo) SetStock(ctx context.Context, id, quantity int64) error {
	if _, err := r.gw.Exec(ctx, "UPDATE Spare_Parts SET Quantity_In_Stock = ? WHERE Part_ID = ?", quantity, id); err != nil {
		return fmt.Errorf("set stock of part %d: %w", id, err)
	}
	return nil
}

// Delete removes the part row.  Line items referencing it are kept.
func (r *SparePartRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.gw.Exec(ctx, "DELETE FROM Spare_Parts WHERE Part_ID = ?", id); err != nil {
		return fmt.Errorf("delete spare part %d: %w", id, err)
	}
	return nil
}
