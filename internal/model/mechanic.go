package model

import "github.com/shopspring/decimal"

// Mechanic represents a row in the `Mechanic` table.  HireDate is kept as
// the YYYY-MM-DD text the operator entered.
type Mechanic struct {
	ID          int64           `json:"mechanic_id"`  // Mechanic.Mechanic_ID
	Name        string          `json:"name"`         // Mechanic.Name
	HireDate    string          `json:"hire_date"`    // Mechanic.Hire_Date
	Salary      decimal.Decimal `json:"salary"`       // Mechanic.Salary
	PhoneNumber string          `json:"phone_number"` // Mechanic.Phone_Number
}
