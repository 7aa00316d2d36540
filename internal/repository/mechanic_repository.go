package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/vehicle-service-management/internal/database"
	"github.com/iliyamo/vehicle-service-management/internal/model"
)

// Hire_Date is a DATE in MySQL and text in SQLite; both scan as text
// because the MySQL DSN disables parseTime.
const mechanicColumns = "Mechanic_ID, COALESCE(Name, ''), COALESCE(Hire_Date, ''), COALESCE(Salary, 0), COALESCE(Phone_Number, '')"

// MechanicRepo encapsulates the queries against the Mechanic table.
type MechanicRepo struct {
	gw  *database.Gateway
	ids *IDAllocator
}

// NewMechanicRepo constructs a MechanicRepo.
func NewMechanicRepo(gw *database.Gateway) *MechanicRepo {
	return &MechanicRepo{gw: gw, ids: NewIDAllocator(gw)}
}

func scanMechanic(s interface{ Scan(...any) error }) (model.Mechanic, error) {
	var m model.Mechanic
	err := s.Scan(&m.ID, &m.Name, &m.HireDate, &m.Salary, &m.PhoneNumber)
	return m, err
}

// List returns mechanics whose name contains filter.
func (r *MechanicRepo) List(ctx context.Context, filter string) ([]model.Mechanic, error) {
	where, args := searchClause("Name", filter)
	out := []model.Mechanic{}
	err := r.gw.Query(ctx, "SELECT "+mechanicColumns+" FROM Mechanic"+where, args, func(rows *sql.Rows) error {
		m, err := scanMechanic(rows)
		if err != nil {
			return err
		}
		out = append(out, m)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list mechanics: %w", err)
	}
	return out, nil
}

// Get fetches one mechanic or returns ErrNotFound.
func (r *MechanicRepo) Get(ctx context.Context, id int64) (*model.Mechanic, error) {
	var m model.Mechanic
	err := r.gw.Do(ctx, func(q database.Queryer) error {
		var err error
		m, err = scanMechanic(q.QueryRowContext(ctx, "SELECT "+mechanicColumns+" FROM Mechanic WHERE Mechanic_ID = ?", id))
		return err
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get mechanic %d: %w", id, err)
	}
	return &m, nil
}

// Create allocates an id and inserts m.
func (r *MechanicRepo) Create(ctx context.Context, m *model.Mechanic) error {
	id, err := r.ids.Next(ctx, MechanicTable)
	if err != nil {
		return err
	}
	const q = "INSERT INTO Mechanic (Mechanic_ID, Name, Hire_Date, Salary, Phone_Number) VALUES (?, ?, ?, ?, ?)"
	if _, err := r.gw.Exec(ctx, q, id, m.Name, m.HireDate, m.Salary.String(), m.PhoneNumber); err != nil {
		return fmt.Errorf("create mechanic: %w", err)
	}
	m.ID = id
	return nil
}

// Update overwrites every column of the row keyed by m.ID.
func (r *MechanicRepo) Update(ctx context.Context, m *model.Mechanic) error {
	const q = "UPDATE Mechanic SET Name = ?, Hire_Date = ?, Salary = ?, Phone_Number = ? WHERE Mechanic_ID = ?"
	if _, err := r.gw.Exec(ctx, q, m.Name, m.HireDate, m.Salary.String(), m.PhoneNumber, m.ID); err != nil {
		return fmt.Errorf("update mechanic %d: %w", m.ID, err)
	}
	return nil
}

// Delete removes the mechanic row; a missing id is not an error.
func (r *MechanicRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.gw.Exec(ctx, "DELETE FROM Mechanic WHERE Mechanic_ID = ?", id); err != nil {
		return fmt.Errorf("delete mechanic %d: %w", id, err)
	}
	return nil
}
