package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/vehicle-service-management/internal/database"
	"github.com/iliyamo/vehicle-service-management/internal/model"
)

const vehicleColumns = "Vehicle_ID, COALESCE(Reg_No, ''), COALESCE(Color, ''), COALESCE(Mileage, 0), COALESCE(Customer_ID, 0)"

// VehicleRepo encapsulates the queries against the Vehicle table.
type VehicleRepo struct {
	gw  *database.Gateway
	ids *IDAllocator
}

// NewVehicleRepo constructs a VehicleRepo.
func NewVehicleRepo(gw *database.Gateway) *VehicleRepo {
	return &VehicleRepo{gw: gw, ids: NewIDAllocator(gw)}
}

func scanVehicle(s interface{ Scan(...any) error }) (model.Vehicle, error) {
	var v model.Vehicle
	err := s.Scan(&v.ID, &v.RegNo, &v.Color, &v.Mileage, &v.CustomerID)
	return v, err
}

// List returns vehicles whose registration number contains filter.
func (r *VehicleRepo) List(ctx context.Context, filter string) ([]model.Vehicle, error) {
	where, args := searchClause("Reg_No", filter)
	out := []model.Vehicle{}
	err := r.gw.Query(ctx, "SELECT "+vehicleColumns+" FROM Vehicle"+where, args, func(rows *sql.Rows) error {
		v, err := scanVehicle(rows)
		if err != nil {
			return err
		}
		out = append(out, v)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	return out, nil
}

// Get fetches one vehicle or returns ErrNotFound.
func (r *VehicleRepo) Get(ctx context.Context, id int64) (*model.Vehicle, error) {
	var v model.Vehicle
	err := r.gw.Do(ctx, func(q database.Queryer) error {
		var err error
		v, err = scanVehicle(q.QueryRowContext(ctx, "SELECT "+vehicleColumns+" FROM Vehicle WHERE Vehicle_ID = ?", id))
		return err
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get vehicle %d: %w", id, err)
	}
	return &v, nil
}

// Create allocates an id and inserts v.  The customer id is not checked.
func (r *VehicleRepo) Create(ctx context.Context, v *model.Vehicle) error {
	id, err := r.ids.Next(ctx, VehicleTable)
	if err != nil {
		return err
	}
	const q = "INSERT INTO Vehicle (Vehicle_ID, Reg_No, Color, Mileage, Customer_ID) VALUES (?, ?, ?, ?, ?)"
	if _, err := r.gw.Exec(ctx, q, id, v.RegNo, v.Color, v.Mileage, v.CustomerID); err != nil {
		return fmt.Errorf("create vehicle: %w", err)
	}
	v.ID = id
	return nil
}

// Update overwrites every column of the row keyed by v.ID.
func (r *VehicleRepo) Update(ctx context.Context, v *model.Vehicle) error {
	const q = "UPDATE Vehicle SET Reg_No = ?, Color = ?, Mileage = ?, Customer_ID = ? WHERE Vehicle_ID = ?"
	if _, err := r.gw.Exec(ctx, q, v.RegNo, v.Color, v.Mileage, v.CustomerID, v.ID); err != nil {
		return fmt.Errorf("update vehicle %d: %w", v.ID, err)
	}
	return nil
}

// Delete removes the vehicle row; a missing id is not an error.
func (r *VehicleRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.gw.Exec(ctx, "DELETE FROM Vehicle WHERE Vehicle_ID = ?", id); err != nil {
		return fmt.Errorf("delete vehicle %d: %w", id, err)
	}
	return nil
}
