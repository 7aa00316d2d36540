package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/vehicle-service-management/internal/database"
	"github.com/iliyamo/vehicle-service-management/internal/model"
)

const serviceColumns = "Service_ID, COALESCE(Vehicle_ID, 0), COALESCE(Mechanic_ID, 0), COALESCE(Service_Date, ''), " +
	"COALESCE(Problem, ''), COALESCE(Total_Cost, 0), COALESCE(Status, ''), COALESCE(Mileage_At_Service, 0), COALESCE(Duration, 0)"

// ServiceRepo encapsulates the queries against Service_Record and its
// Service_Parts line items.
type ServiceRepo struct {
	gw  *database.Gateway
	ids *IDAllocator
}

// NewServiceRepo constructs a ServiceRepo.
func NewServiceRepo(gw *database.Gateway) *ServiceRepo {
	return &ServiceRepo{gw: gw, ids: NewIDAllocator(gw)}
}

func scanService(s interface{ Scan(...any) error }) (model.ServiceRecord, error) {
	var sr model.ServiceRecord
	err := s.Scan(&sr.ID, &sr.VehicleID, &sr.MechanicID, &sr.ServiceDate, &sr.Problem,
		&sr.TotalCost, &sr.Status, &sr.MileageAtService, &sr.Duration)
	return sr, err
}

// List returns services whose problem description contains filter.
func (r *ServiceRepo) List(ctx context.Context, filter string) ([]model.ServiceRecord, error) {
	where, args := searchClause("Problem", filter)
	out := []model.ServiceRecord{}
	err := r.gw.Query(ctx, "SELECT "+serviceColumns+" FROM Service_Record"+where, args, func(rows *sql.Rows) error {
		sr, err := scanService(rows)
		if err != nil {
			return err
		}
		out = append(out, sr)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	return out, nil
}

// Get fetches one service header or returns ErrNotFound.
func (r *ServiceRepo) Get(ctx context.Context, id int64) (*model.ServiceRecord, error) {
	var sr model.ServiceRecord
	err := r.gw.Do(ctx, func(q database.Queryer) error {
		var err error
		sr, err = scanService(q.QueryRowContext(ctx, "SELECT "+serviceColumns+" FROM Service_Record WHERE Service_ID = ?", id))
		return err
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get service %d: %w", id, err)
	}
	return &sr, nil
}

const insertService = "INSERT INTO Service_Record (Service_ID, Vehicle_ID, Mechanic_ID, Service_Date, Problem, Total_Cost, Status, Mileage_At_Service, Duration) " +
	"VALUES (?, ?, ?, ?, ?, 0, ?, ?, ?)"

// Create inserts a service header without line items.  Total_Cost starts
// at zero and is maintained by the store from then on.
func (r *ServiceRepo) Create(ctx context.Context, sr *model.ServiceRecord) error {
	return r.CreateWithParts(ctx, sr, nil)
}

// CreateWithParts allocates a Service_ID and inserts the header plus one
// Service_Parts row per usage, in order, as a single transaction.  Any
// failure, including a repeated part id hitting the composite key, rolls
// back every row of the batch.  sr.ID is set on success.
func (r *ServiceRepo) CreateWithParts(ctx context.Context, sr *model.ServiceRecord, parts []model.PartUsage) error {
	var id int64
	err := r.gw.InTx(ctx, func(q database.Queryer) error {
		var err error
		if id, err = NextID(ctx, q, ServiceTable); err != nil {
			return err
		}
		if _, err := q.ExecContext(ctx, insertService, id, sr.VehicleID, sr.MechanicID, sr.ServiceDate,
			sr.Problem, sr.Status, sr.MileageAtService, sr.Duration); err != nil {
			return err
		}
		const qPart = "INSERT INTO Service_Parts (Service_ID, Part_ID, Quantity_Used, Unit_Price) VALUES (?, ?, ?, ?)"
		for i, p := range parts {
			if _, err := q.ExecContext(ctx, qPart, id, p.PartID, p.QuantityUsed, p.UnitPrice.String()); err != nil {
				return fmt.Errorf("line item %d (part %d): %w", i+1, p.PartID, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("create service: %w", err)
	}
	sr.ID = id
	return nil
}

// Update overwrites the header columns keyed by sr.ID.  Total_Cost is not
// written.
func (r *ServiceRepo) Update(ctx context.Context, sr *model.ServiceRecord) error {
	const q = "UPDATE Service_Record SET Vehicle_ID = ?, Mechanic_ID = ?, Service_Date = ?, Problem = ?, Status = ?, " +
		"Mileage_At_Service = ?, Duration = ? WHERE Service_ID = ?"
	if _, err := r.gw.Exec(ctx, q, sr.VehicleID, sr.MechanicID, sr.ServiceDate, sr.Problem, sr.Status,
		sr.MileageAtService, sr.Duration, sr.ID); err != nil {
		return fmt.Errorf("update service %d: %w", sr.ID, err)
	}
	return nil
}

// Delete removes the header row.  Its line items are left in place.
func (r *ServiceRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.gw.Exec(ctx, "DELETE FROM Service_Record WHERE Service_ID = ?", id); err != nil {
		return fmt.Errorf("delete service %d: %w", id, err)
	}
	return nil
}

// Parts lists the line items of a service joined with the part names.
// Line items whose part has since been deleted drop out of the join.
func (r *ServiceRepo) Parts(ctx context.Context, serviceID int64) ([]model.ServicePart, error) {
	const q = "SELECT sp.Service_ID, sp.Part_ID, COALESCE(p.Part_Name, ''), COALESCE(sp.Quantity_Used, 0), " +
		"COALESCE(sp.Unit_Price, 0), COALESCE(sp.Total_Part_Cost, 0) " +
		"FROM Service_Parts sp JOIN Spare_Parts p ON p.Part_ID = sp.Part_ID WHERE sp.Service_ID = ?"
	out := []model.ServicePart{}
	err := r.gw.Query(ctx, q, []any{serviceID}, func(rows *sql.Rows) error {
		var sp model.ServicePart
		if err := rows.Scan(&sp.ServiceID, &sp.PartID, &sp.PartName, &sp.QuantityUsed, &sp.UnitPrice, &sp.TotalPartCost); err != nil {
			return err
		}
		out = append(out, sp)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list parts of service %d: %w", serviceID, err)
	}
	return out, nil
}
