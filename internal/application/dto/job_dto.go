package dto

import "github.com/shopspring/decimal"

// JobServiceRequest labour line in a job payload.
type JobServiceRequest struct {
	ServiceTypeID string          `json:"service_type_id,omitempty"`
	Description   string          `json:"description"`
	Duration      string          `json:"duration"`
	Rate          decimal.Decimal `json:"rate"`
}

// JobPartRequest part line in a job payload.
type JobPartRequest struct {
	PartID    string           `json:"part_id,omitempty"`
	Name      string           `json:"name,omitempty"`
	Quantity  int64            `json:"quantity"`
	UnitCost  decimal.Decimal  `json:"unit_cost"`
	TotalCost *decimal.Decimal `json:"total_cost,omitempty"`
}

// CreateJobRequest body for POST /api/technician-jobs.
type CreateJobRequest struct {
	CustomerID     string              `json:"customer_id" validate:"required"`
	TechnicianName string              `json:"technician_name" validate:"required"`
	Equipment      string              `json:"equipment,omitempty"`
	Summary        string              `json:"summary,omitempty"`
	ScheduledFor   string              `json:"scheduled_for,omitempty"` // 2006-01-02
	Services       []JobServiceRequest `json:"services"`
	Parts          []JobPartRequest    `json:"parts"`
}

// RecordActivityRequest body for POST /api/technician-jobs/:id/activities.
type RecordActivityRequest struct {
	Note string `json:"note" validate:"required"`
}

// UpdateJobStatusRequest body for PATCH /api/technician-jobs/:id/status.
type UpdateJobStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=open in_progress completed invoiced"`
}

// JobServiceResponse labour line in job responses.
type JobServiceResponse struct {
	ID            string          `json:"id"`
	ServiceTypeID string          `json:"service_type_id,omitempty"`
	Description   string          `json:"description"`
	Duration      string          `json:"duration"`
	Rate          decimal.Decimal `json:"rate"`
}

// JobPartResponse part line in job responses.
type JobPartResponse struct {
	ID        string           `json:"id"`
	PartID    string           `json:"part_id,omitempty"`
	Name      string           `json:"name"`
	Quantity  int64            `json:"quantity"`
	UnitCost  decimal.Decimal  `json:"unit_cost"`
	TotalCost *decimal.Decimal `json:"total_cost,omitempty"`
}

// JobActivityResponse activity note in job responses.
type JobActivityResponse struct {
	ID         string `json:"id"`
	RecordedBy string `json:"recorded_by"`
	Note       string `json:"note"`
	RecordedAt string `json:"recorded_at"`
}

// JobResponse full job for GET /api/technician-jobs/:id. Services and Parts
// are what an invoice raised from this job is pre-populated with.
type JobResponse struct {
	ID             string                `json:"id"`
	CustomerID     string                `json:"customer_id"`
	CustomerName   string                `json:"customer_name,omitempty"`
	TechnicianName string                `json:"technician_name"`
	Equipment      string                `json:"equipment,omitempty"`
	Summary        string                `json:"summary,omitempty"`
	Status         string                `json:"status"`
	ScheduledFor   string                `json:"scheduled_for,omitempty"`
	IsActive       bool                  `json:"is_active"`
	Services       []JobServiceResponse  `json:"services"`
	Parts          []JobPartResponse     `json:"parts"`
	Activities     []JobActivityResponse `json:"activities"`
}

// JobSummaryResponse list row for GET /api/technician-jobs.
type JobSummaryResponse struct {
	ID             string `json:"id"`
	CustomerID     string `json:"customer_id"`
	TechnicianName string `json:"technician_name"`
	Equipment      string `json:"equipment,omitempty"`
	Status         string `json:"status"`
	ScheduledFor   string `json:"scheduled_for,omitempty"`
	IsActive       bool   `json:"is_active"`
}
