package dto

// CreateTicketRequest body for POST /api/tickets.
type CreateTicketRequest struct {
	CustomerID  string `json:"customer_id" validate:"required"`
	Subject     string `json:"subject" validate:"required"`
	Description string `json:"description,omitempty"`
	Priority    string `json:"priority" validate:"omitempty,oneof=low normal urgent"`
}

// UpdateTicketRequest body for PATCH /api/tickets/:id.
type UpdateTicketRequest struct {
	Status   string `json:"status,omitempty" validate:"omitempty,oneof=new triaged closed"`
	Priority string `json:"priority,omitempty" validate:"omitempty,oneof=low normal urgent"`
}

// ConvertTicketRequest body for POST /api/tickets/:id/convert.
type ConvertTicketRequest struct {
	TechnicianName string `json:"technician_name" validate:"required"`
	ScheduledFor   string `json:"scheduled_for,omitempty"` // 2006-01-02
}

// TicketResponse ticket in responses.
type TicketResponse struct {
	ID          string `json:"id"`
	CustomerID  string `json:"customer_id"`
	Subject     string `json:"subject"`
	Description string `json:"description,omitempty"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
	JobID       string `json:"job_id,omitempty"`
	CreatedAt   string `json:"created_at"`
}
