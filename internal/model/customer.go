package model

// Customer represents a row in the `Customer` table.  Identifiers are
// assigned by the application (max existing id + 1), never by the store.
//
// Fields:
//  ID      – primary key identifier.
//  Name    – customer's full name, the search column for the list view.
//  Address – free text postal address.
//  PhoneNo – contact number as typed.
type Customer struct {
	ID      int64  `json:"customer_id"` // Customer.Customer_ID
	Name    string `json:"name"`        // Customer.Name
	Address string `json:"address"`     // Customer.Address
	PhoneNo string `json:"phone_no"`    // Customer.Phone_No
}

// Vehicle represents a row in the `Vehicle` table.  CustomerID is a soft
// reference: it is never validated and deleting the customer leaves the
// vehicle in place.
//
// Fields:
//  ID         – primary key identifier.
//  RegNo      – registration plate, the search column for the list view.
//  Color      – body colour.
//  Mileage    – odometer reading at registration.
//  CustomerID – owning customer (unchecked).
type Vehicle struct {
	ID         int64  `json:"vehicle_id"`  // Vehicle.Vehicle_ID
	RegNo      string `json:"reg_no"`      // Vehicle.Reg_No
	Color      string `json:"color"`       // Vehicle.Color
	Mileage    int64  `json:"mileage"`     // Vehicle.Mileage
	CustomerID int64  `json:"customer_id"` // Vehicle.Customer_ID
}
