package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/iliyamo/vehicle-service-management/internal/database"
)

// Table names a shop table together with its integer key column.
type Table struct {
	Name     string
	IDColumn string
	// Refs are columns of other tables that hold ids of this table and
	// outlive a delete of the row they point at.  Only columns the
	// application fills itself belong here, never operator-typed ones.
	Refs []Table
}

// The five tables with application-assigned identifiers.  Deleting a
// service or a part leaves its Service_Parts rows behind, so those ids
// count as taken for as long as a line item carries them.
var (
	CustomerTable  = Table{Name: "Customer", IDColumn: "Customer_ID"}
	VehicleTable   = Table{Name: "Vehicle", IDColumn: "Vehicle_ID"}
	MechanicTable  = Table{Name: "Mechanic", IDColumn: "Mechanic_ID"}
	SparePartTable = Table{Name: "Spare_Parts", IDColumn: "Part_ID", Refs: lineItems("Part_ID")}
	ServiceTable   = Table{Name: "Service_Record", IDColumn: "Service_ID", Refs: lineItems("Service_ID")}
)

func lineItems(column string) []Table {
	return []Table{{Name: "Service_Parts", IDColumn: column}}
}

// maxQuery selects the largest id held by t or any of its Refs.
func maxQuery(t Table) string {
	if len(t.Refs) == 0 {
		return fmt.Sprintf("SELECT MAX(%s) FROM %s", t.IDColumn, t.Name)
	}
	parts := []string{fmt.Sprintf("SELECT MAX(%s) AS id FROM %s", t.IDColumn, t.Name)}
	for _, r := range t.Refs {
		parts = append(parts, fmt.Sprintf("SELECT MAX(%s) FROM %s", r.IDColumn, r.Name))
	}
	return "SELECT MAX(id) FROM (" + strings.Join(parts, " UNION ALL ") + ") ids"
}

// NextID returns MAX(id)+1 for t, or 1 when t is empty.  Gaps left by
// deletes are never reused below the maximum, and an id still carried by
// one of t.Refs is never handed out again.  Two concurrent callers can
// observe the same maximum; the second insert then fails on the primary key.
func NextID(ctx context.Context, q database.Queryer, t Table) (int64, error) {
	query := maxQuery(t)
	var max sql.NullInt64
	if err := q.QueryRowContext(ctx, query).Scan(&max); err != nil {
		return 0, fmt.Errorf("next id for %s: %w", t.Name, err)
	}
	return max.Int64 + 1, nil
}

// IDAllocator runs NextID on a connection of its own.
type IDAllocator struct {
	gw *database.Gateway
}

// NewIDAllocator constructs an IDAllocator.
func NewIDAllocator(gw *database.Gateway) *IDAllocator {
	return &IDAllocator{gw: gw}
}

// Next allocates the next identifier for t.
func (a *IDAllocator) Next(ctx context.Context, t Table) (int64, error) {
	var id int64
	err := a.gw.Do(ctx, func(q database.Queryer) error {
		var err error
		id, err = NextID(ctx, q, t)
		return err
	})
	return id, err
}
