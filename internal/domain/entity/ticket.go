package entity

import "time"

// Ticket statuses.
const (
	TicketStatusNew       = "new"
	TicketStatusTriaged   = "triaged"
	TicketStatusConverted = "converted" // turned into a technician job
	TicketStatusClosed    = "closed"
)

// Ticket priorities.
const (
	TicketPriorityLow    = "low"
	TicketPriorityNormal = "normal"
	TicketPriorityUrgent = "urgent"
)

// Ticket is an intake request from a customer (breakdown, service due, query).
type Ticket struct {
	ID          string
	CustomerID  string
	Subject     string
	Description string
	Priority    string
	Status      string
	JobID       string // set when the ticket is converted to a job
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
