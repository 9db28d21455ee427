package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice statuses.
const (
	InvoiceStatusDraft  = "draft"
	InvoiceStatusIssued = "issued"
	InvoiceStatusPaid   = "paid"
	InvoiceStatusVoid   = "void"
)

// Discount types. Values match the wire format used by the office clients.
const (
	DiscountPercentage  = "Percentage"
	DiscountFixedAmount = "FixedAmount"
)

// Invoice is a customer invoice header. The six monetary fields after the
// adjustments block are derived by the billing engine and are never edited
// directly; they are recomputed from the lines on every create/update.
type Invoice struct {
	ID          string
	Number      string
	CustomerID  string
	JobID       string // source technician job, empty for ad-hoc invoices
	Status      string
	InvoiceDate time.Time
	DueDate     time.Time

	// Adjustments
	CalloutFee    decimal.Decimal
	DiscountType  string
	DiscountValue decimal.Decimal
	VATExempt     bool
	VATRate       decimal.Decimal // percent; zero means "use the stored default"

	// Derived totals
	PartsTotal     decimal.Decimal
	LabourTotal    decimal.Decimal
	SubTotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxAmount      decimal.Decimal
	NetTotal       decimal.Decimal

	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// InvoiceService is a labour line on an invoice.
type InvoiceService struct {
	ID            string
	InvoiceID     string
	ServiceTypeID string
	Description   string
	Duration      string // "H:MM" or decimal hours, as entered
	Rate          decimal.Decimal
	Amount        decimal.Decimal // durationHours * rate, derived
}

// InvoicePart is a part line on an invoice.
type InvoicePart struct {
	ID        string
	InvoiceID string
	PartID    string // empty for manual parts
	Name      string
	Quantity  int64
	UnitCost  decimal.Decimal
	TotalCost *decimal.Decimal // authoritative when set
	Amount    decimal.Decimal  // effective line amount, derived
}
