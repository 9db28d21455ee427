package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Technician job statuses.
const (
	JobStatusOpen       = "open"
	JobStatusInProgress = "in_progress"
	JobStatusCompleted  = "completed"
	JobStatusInvoiced   = "invoiced" // a customer invoice has been raised from this job
)

// TechnicianJob is a visit/repair job carried out for a customer.
// Its service and part lines are the source data when an invoice is
// raised from the job.
type TechnicianJob struct {
	ID             string
	CustomerID     string
	TechnicianName string
	Equipment      string // free text: "Pride Colt scooter", "Acorn 130 stairlift"...
	Summary        string
	Status         string
	ScheduledFor   time.Time
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// JobService is a labour line on a job. Duration keeps the technician's raw
// entry ("1:30" or "1.5"); normalisation to fractional hours happens in the
// billing engine.
type JobService struct {
	ID            string
	JobID         string
	ServiceTypeID string
	Description   string
	Duration      string
	Rate          decimal.Decimal // zero means "use the default rate"
}

// JobPart is a part fitted during a job. TotalCost, when set, is authoritative
// over Quantity*UnitCost (e.g. a negotiated bundle price).
type JobPart struct {
	ID        string
	JobID     string
	PartID    string // empty for manual (non-catalogue) parts
	Name      string
	Quantity  int64
	UnitCost  decimal.Decimal
	TotalCost *decimal.Decimal
}

// JobActivity is a timestamped note recorded against a job by a technician.
type JobActivity struct {
	ID         string
	JobID      string
	RecordedBy string // user ID
	Note       string
	RecordedAt time.Time
}
