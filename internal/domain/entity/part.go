package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MobilityPart is a catalogue part (wheelchair wheel, scooter battery, stairlift rail...).
// UnitCost is the default charged per unit; a job or invoice line may override it.
type MobilityPart struct {
	ID          string
	SKU         string // unique part code
	Name        string
	Description string
	Category    string // wheelchair, scooter, stairlift, bed, other
	UnitCost    decimal.Decimal
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
