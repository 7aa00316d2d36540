package handler

import (
	"github.com/iliyamo/vehicle-service-management/internal/model" // entity rows built from forms
	"github.com/iliyamo/vehicle-service-management/internal/utils" // parse-or-default form field types
)

// Entity forms mirror the text fields of the operator's dialogs.  Integer
// fields decode with the parse-or-default policy of utils.FormInt; money
// fields are parsed strictly and rejected when malformed.

type customerForm struct {
	Name    utils.FormText `json:"name"`
	Address utils.FormText `json:"address"`
	PhoneNo utils.FormText `json:"phone_no"`
}

func (f customerForm) model() (model.Customer, error) {
	return model.Customer{Name: f.Name.String(), Address: f.Address.String(), PhoneNo: f.PhoneNo.String()}, nil
}

type vehicleForm struct {
	RegNo      utils.FormText `json:"reg_no"`
	Color      utils.FormText `json:"color"`
	Mileage    utils.FormInt  `json:"mileage"`
	CustomerID utils.FormInt  `json:"customer_id"`
}

func (f vehicleForm) model() (model.Vehicle, error) {
	return model.Vehicle{
		RegNo:      f.RegNo.String(),
		Color:      f.Color.String(),
		Mileage:    f.Mileage.Int64(),
		CustomerID: f.CustomerID.Int64(),
	}, nil
}

type mechanicForm struct {
	Name        utils.FormText `json:"name"`
	HireDate    utils.FormText `json:"hire_date"`
	Salary      utils.FormText `json:"salary"`
	PhoneNumber utils.FormText `json:"phone_number"`
}

func (f mechanicForm) model() (model.Mechanic, error) {
	salary, err := utils.ParseDecimal(f.Salary.String())
	if err != nil {
		return model.Mechanic{}, invalidField("salary")
	}
	return model.Mechanic{
		Name:        f.Name.String(),
		HireDate:    f.HireDate.String(),
		Salary:      salary,
		PhoneNumber: f.PhoneNumber.String(),
	}, nil
}

type sparePartForm struct {
	PartName        utils.FormText `json:"part_name"`
	Manufacturer    utils.FormText `json:"manufacturer"`
	UnitPrice       utils.FormText `json:"unit_price"`
	QuantityInStock utils.FormInt  `json:"quantity_in_stock"`
}

func (f sparePartForm) model() (model.SparePart, error) {
	price, err := utils.ParseDecimal(f.UnitPrice.String())
	if err != nil {
		return model.SparePart{}, invalidField("unit_price")
	}
	return model.SparePart{
		PartName:        f.PartName.String(),
		Manufacturer:    f.Manufacturer.String(),
		UnitPrice:       price,
		QuantityInStock: f.QuantityInStock.Int64(),
	}, nil
}

// serviceForm carries the header columns only; Total_Cost is never taken
// from the operator.
type serviceForm struct {
	VehicleID        utils.FormInt  `json:"vehicle_id"`
	MechanicID       utils.FormInt  `json:"mechanic_id"`
	ServiceDate      utils.FormText `json:"service_date"`
	Problem          utils.FormText `json:"problem"`
	Status           utils.FormText `json:"status"`
	MileageAtService utils.FormInt  `json:"mileage_at_service"`
	Duration         utils.FormInt  `json:"duration"`
}

func (f serviceForm) model() (model.ServiceRecord, error) {
	return model.ServiceRecord{
		VehicleID:        f.VehicleID.Int64(),
		MechanicID:       f.MechanicID.Int64(),
		ServiceDate:      f.ServiceDate.String(),
		Problem:          f.Problem.String(),
		Status:           f.Status.String(),
		MileageAtService: f.MileageAtService.Int64(),
		Duration:         f.Duration.Int64(),
	}, nil
}
