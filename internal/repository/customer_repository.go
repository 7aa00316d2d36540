package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/vehicle-service-management/internal/database"
	"github.com/iliyamo/vehicle-service-management/internal/model"
)

const customerColumns = "Customer_ID, COALESCE(Name, ''), COALESCE(Address, ''), COALESCE(Phone_No, '')"

// CustomerRepo encapsulates the queries against the Customer table.
type CustomerRepo struct {
	gw  *database.Gateway
	ids *IDAllocator
}

// NewCustomerRepo constructs a CustomerRepo.
func NewCustomerRepo(gw *database.Gateway) *CustomerRepo {
	return &CustomerRepo{gw: gw, ids: NewIDAllocator(gw)}
}

func scanCustomer(s interface{ Scan(...any) error }) (model.Customer, error) {
	var c model.Customer
	err := s.Scan(&c.ID, &c.Name, &c.Address, &c.PhoneNo)
	return c, err
}

// List returns customers whose name contains filter, in storage order.
func (r *CustomerRepo) List(ctx context.Context, filter string) ([]model.Customer, error) {
	where, args := searchClause("Name", filter)
	out := []model.Customer{}
	err := r.gw.Query(ctx, "SELECT "+customerColumns+" FROM Customer"+where, args, func(rows *sql.Rows) error {
		c, err := scanCustomer(rows)
		if err != nil {
			return err
		}
		out = append(out, c)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return out, nil
}

// Get fetches one customer or returns ErrNotFound.
func (r *CustomerRepo) Get(ctx context.Context, id int64) (*model.Customer, error) {
	var c model.Customer
	err := r.gw.Do(ctx, func(q database.Queryer) error {
		var err error
		c, err = scanCustomer(q.QueryRowContext(ctx, "SELECT "+customerColumns+" FROM Customer WHERE Customer_ID = ?", id))
		return err
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get customer %d: %w", id, err)
	}
	return &c, nil
}

// Create allocates an id and inserts c.  c.ID is set on success.
func (r *CustomerRepo) Create(ctx context.Context, c *model.Customer) error {
	id, err := r.ids.Next(ctx, CustomerTable)
	if err != nil {
		return err
	}
	const q = "INSERT INTO Customer (Customer_ID, Name, Address, Phone_No) VALUES (?, ?, ?, ?)"
	if _, err := r.gw.Exec(ctx, q, id, c.Name, c.Address, c.PhoneNo); err != nil {
		return fmt.Errorf("create customer: %w", err)
	}
	c.ID = id
	return nil
}

// Update overwrites every column of the row keyed by c.ID.
func (r *CustomerRepo) Update(ctx context.Context, c *model.Customer) error {
	const q = "UPDATE Customer SET Name = ?, Address = ?, Phone_No = ? WHERE Customer_ID = ?"
	if _, err := r.gw.Exec(ctx, q, c.Name, c.Address, c.PhoneNo, c.ID); err != nil {
		return fmt.Errorf("update customer %d: %w", c.ID, err)
	}
	return nil
}

// Delete removes the customer row only.  Vehicles referencing it are kept,
// and a missing id is not an error.
func (r *CustomerRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.gw.Exec(ctx, "DELETE FROM Customer WHERE Customer_ID = ?", id); err != nil {
		return fmt.Errorf("delete customer %d: %w", id, err)
	}
	return nil
}
