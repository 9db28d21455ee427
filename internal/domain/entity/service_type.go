package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ServiceType is a technician service offered by the retailer
// (repair, annual service, installation, assessment visit...).
type ServiceType struct {
	ID          string
	Name        string
	Description string
	HourlyRate  decimal.Decimal // default rate; a job/invoice line may override it
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
