// Package queue defines the events the shop publishes to the message
// broker and the publisher that sends them.
package queue

// Queue names.  The routing key on the default exchange is the queue name.
const (
	ServiceRecordedQueue = "service.recorded"
	InvoiceRenderedQueue = "invoice.rendered"
)

// ServiceRecordedEvent is published after a service and its line items
// were saved.  TotalCost is not included: the store derives it after the
// line items land and the event does not re-read it.
type ServiceRecordedEvent struct {
	ServiceID   int64          `json:"service_id"`
	VehicleID   int64          `json:"vehicle_id"`
	MechanicID  int64          `json:"mechanic_id"`
	ServiceDate string         `json:"service_date"`
	Status      string         `json:"status"`
	Parts       []PartUsedLine `json:"parts"`
	RecordedAt  string         `json:"recorded_at"`
}

// PartUsedLine is one line item of a recorded service.
type PartUsedLine struct {
	PartID   int64  `json:"part_id"`
	Quantity int64  `json:"quantity"`
	Price    string `json:"unit_price"`
}

// InvoiceRenderedEvent is published after a bill was written to disk.
type InvoiceRenderedEvent struct {
	ServiceID  int64  `json:"service_id"`
	File       string `json:"file"`
	PartsTotal string `json:"parts_total"`
	TotalCost  string `json:"total_cost"`
	RenderedAt string `json:"rendered_at"`
}
