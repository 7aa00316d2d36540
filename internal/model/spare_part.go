package model

import "github.com/shopspring/decimal"

// SparePart represents a row in the `Spare_Parts` table.  Stock is
// informational only: recording a service never decrements it, and it is
// only consulted to warn the operator while parts are being picked.
//
// Fields:
//  ID              – primary key identifier.
//  PartName        – display name, the search column for the list view.
//  Manufacturer    – free text.
//  UnitPrice       – current catalog price.  Line items copy it at pick time.
//  QuantityInStock – units on hand.
type SparePart struct {
	ID              int64           `json:"part_id"`           // Spare_Parts.Part_ID
	PartName        string          `json:"part_name"`         // Spare_Parts.Part_Name
	Manufacturer    string          `json:"manufacturer"`      // Spare_Parts.Manufacturer
	UnitPrice       decimal.Decimal `json:"unit_price"`        // Spare_Parts.Unit_Price
	QuantityInStock int64           `json:"quantity_in_stock"` // Spare_Parts.Quantity_In_Stock
}
