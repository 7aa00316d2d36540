package model

import "github.com/shopspring/decimal"

// Default values given to a fresh service header.
const (
	DefaultServiceStatus = "In Progress"
	DateLayout           = "2006-01-02"
)

// ServiceRecord represents a row in the `Service_Record` table.  TotalCost
// is owned by the store: it always equals the sum of the service's line
// item totals and the application never writes it.
//
// Fields:
//  ID               – primary key identifier.
//  VehicleID        – serviced vehicle (unchecked reference).
//  MechanicID       – assigned mechanic (unchecked reference).
//  ServiceDate      – YYYY-MM-DD text.
//  Problem          – reported problem, the search column for the list view.
//  TotalCost        – derived by the store.
//  Status           – free text, "In Progress" by default.
//  MileageAtService – odometer reading when the vehicle came in.
//  Duration         – labour hours.
type ServiceRecord struct {
	ID               int64           `json:"service_id"`         // Service_Record.Service_ID
	VehicleID        int64           `json:"vehicle_id"`         // Service_Record.Vehicle_ID
	MechanicID       int64           `json:"mechanic_id"`        // Service_Record.Mechanic_ID
	ServiceDate      string          `json:"service_date"`       // Service_Record.Service_Date
	Problem          string          `json:"problem"`            // Service_Record.Problem
	TotalCost        decimal.Decimal `json:"total_cost"`         // Service_Record.Total_Cost
	Status           string          `json:"status"`             // Service_Record.Status
	MileageAtService int64           `json:"mileage_at_service"` // Service_Record.Mileage_At_Service
	Duration         int64           `json:"duration"`           // Service_Record.Duration
}

// ServicePart is a line item of a service joined with the part's name.
// TotalPartCost is derived by the store as QuantityUsed * UnitPrice.
type ServicePart struct {
	ServiceID     int64           `json:"service_id"`
	PartID        int64           `json:"part_id"`
	PartName      string          `json:"part_name"`
	QuantityUsed  int64           `json:"quantity_used"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	TotalPartCost decimal.Decimal `json:"total_part_cost"`
}

// PartUsage is what the application writes for one line item.
type PartUsage struct {
	PartID       int64           `json:"part_id"`
	QuantityUsed int64           `json:"quantity_used"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
}
