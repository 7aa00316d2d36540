package export

import "github.com/iliyamo/vehicle-service-management/internal/model"

// Money columns are written as text with two decimals so that a
// spreadsheet shows exactly what the store holds.

func Customers(rows []model.Customer) Table {
	t := Table{Sheet: "Customers", Headers: []string{"Customer_ID", "Name", "Address", "Phone_No"}}
	for _, c := range rows {
		t.Rows = append(t.Rows, []any{c.ID, c.Name, c.Address, c.PhoneNo})
	}
	return t
}

func Vehicles(rows []model.Vehicle) Table {
	t := Table{Sheet: "Vehicles", Headers: []string{"Vehicle_ID", "Reg_No", "Color", "Mileage", "Customer_ID"}}
	for _, v := range rows {
		t.Rows = append(t.Rows, []any{v.ID, v.RegNo, v.Color, v.Mileage, v.CustomerID})
	}
	return t
}

func Mechanics(rows []model.Mechanic) Table {
	t := Table{Sheet: "Mechanics", Headers: []string{"Mechanic_ID", "Name", "Hire_Date", "Salary", "Phone_Number"}}
	for _, m := range rows {
		t.Rows = append(t.Rows, []any{m.ID, m.Name, m.HireDate, m.Salary.StringFixed(2), m.PhoneNumber})
	}
	return t
}

func SpareParts(rows []model.SparePart) Table {
	t := Table{Sheet: "Spare Parts", Headers: []string{"Part_ID", "Part_Name", "Manufacturer", "Unit_Price", "Quantity_In_Stock"}}
	for _, p := range rows {
		t.Rows = append(t.Rows, []any{p.ID, p.PartName, p.Manufacturer, p.UnitPrice.StringFixed(2), p.QuantityInStock})
	}
	return t
}

func Services(rows []model.ServiceRecord) Table {
	t := Table{Sheet: "Service Records", Headers: []string{"Service_ID", "Vehicle_ID", "Mechanic_ID", "Service_Date",
		"Problem", "Total_Cost", "Status", "Mileage_At_Service", "Duration"}}
	for _, s := range rows {
		t.Rows = append(t.Rows, []any{s.ID, s.VehicleID, s.MechanicID, s.ServiceDate, s.Problem,
			s.TotalCost.StringFixed(2), s.Status, s.MileageAtService, s.Duration})
	}
	return t
}
