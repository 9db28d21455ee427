package dto

import "github.com/shopspring/decimal"

// InvoiceServiceRequest is a labour line in an invoice payload.
type InvoiceServiceRequest struct {
	ServiceTypeID string          `json:"service_type_id,omitempty"`
	Description   string          `json:"description"`
	Duration      string          `json:"duration"` // "H:MM" or decimal hours
	Rate          decimal.Decimal `json:"rate"`     // zero -> default rate
}

// InvoicePartRequest is a part line in an invoice payload. A line must name
// either a catalogue part or a manual description.
type InvoicePartRequest struct {
	PartID    string           `json:"part_id,omitempty"`
	Name      string           `json:"name,omitempty"`
	Quantity  int64            `json:"quantity"`
	UnitCost  decimal.Decimal  `json:"unit_cost"`
	TotalCost *decimal.Decimal `json:"total_cost,omitempty"` // authoritative when set
}

// TotalsPayload carries client-computed totals. When present on a write they
// are cross-checked against the server computation within tolerance.
type TotalsPayload struct {
	PartsTotal     decimal.Decimal `json:"parts_total"`
	LabourTotal    decimal.Decimal `json:"labour_total"`
	SubTotal       decimal.Decimal `json:"sub_total"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	NetTotal       decimal.Decimal `json:"net_total"`
}

// CreateInvoiceRequest body for POST /api/customer-invoices (and PUT /:id).
// JobID, when set on create with no lines, pre-populates services and parts
// from the technician job.
type CreateInvoiceRequest struct {
	CustomerID    string                  `json:"customer_id" validate:"required"`
	JobID         string                  `json:"job_id,omitempty"`
	InvoiceDate   string                  `json:"invoice_date" validate:"required"` // 2006-01-02
	DueDate       string                  `json:"due_date" validate:"required"`
	CalloutFee    decimal.Decimal         `json:"callout_fee"`
	DiscountType  string                  `json:"discount_type" validate:"omitempty,oneof=Percentage FixedAmount"`
	DiscountValue decimal.Decimal         `json:"discount_value"`
	VATExempt     bool                    `json:"vat_exempt"`
	VATRate       decimal.Decimal         `json:"vat_rate"` // percent; zero -> stored default
	Services      []InvoiceServiceRequest `json:"services"`
	Parts         []InvoicePartRequest    `json:"parts"`
	Totals        *TotalsPayload          `json:"totals,omitempty"`
	Notes         string                  `json:"notes,omitempty"`
}

// InvoiceServiceResponse labour line in responses.
type InvoiceServiceResponse struct {
	ID            string          `json:"id"`
	ServiceTypeID string          `json:"service_type_id,omitempty"`
	Description   string          `json:"description"`
	Duration      string          `json:"duration"`
	Rate          decimal.Decimal `json:"rate"`
	Amount        decimal.Decimal `json:"amount"`
}

// InvoicePartResponse part line in responses.
type InvoicePartResponse struct {
	ID        string           `json:"id"`
	PartID    string           `json:"part_id,omitempty"`
	Name      string           `json:"name"`
	Quantity  int64            `json:"quantity"`
	UnitCost  decimal.Decimal  `json:"unit_cost"`
	TotalCost *decimal.Decimal `json:"total_cost,omitempty"`
	Amount    decimal.Decimal  `json:"amount"`
}

// InvoiceResponse full invoice for GET /api/customer-invoices/:id.
type InvoiceResponse struct {
	ID            string                   `json:"id"`
	Number        string                   `json:"number"`
	CustomerID    string                   `json:"customer_id"`
	CustomerName  string                   `json:"customer_name,omitempty"`
	JobID         string                   `json:"job_id,omitempty"`
	Status        string                   `json:"status"`
	InvoiceDate   string                   `json:"invoice_date"`
	DueDate       string                   `json:"due_date"`
	CalloutFee    decimal.Decimal          `json:"callout_fee"`
	DiscountType  string                   `json:"discount_type"`
	DiscountValue decimal.Decimal          `json:"discount_value"`
	VATExempt     bool                     `json:"vat_exempt"`
	VATRate       decimal.Decimal          `json:"vat_rate"`
	Totals        TotalsPayload            `json:"totals"`
	Services      []InvoiceServiceResponse `json:"services"`
	Parts         []InvoicePartResponse    `json:"parts"`
	Notes         string                   `json:"notes,omitempty"`
}

// InvoiceSummaryResponse list row for GET /api/customer-invoices.
type InvoiceSummaryResponse struct {
	ID          string          `json:"id"`
	Number      string          `json:"number"`
	CustomerID  string          `json:"customer_id"`
	Status      string          `json:"status"`
	InvoiceDate string          `json:"invoice_date"`
	DueDate     string          `json:"due_date"`
	NetTotal    decimal.Decimal `json:"net_total"`
}

// UpdateInvoiceStatusRequest body for PATCH /api/customer-invoices/:id/status.
type UpdateInvoiceStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft issued paid void"`
}

// DefaultTaxResponse body for GET /api/default-tax.
type DefaultTaxResponse struct {
	TaxPercentage decimal.Decimal `json:"taxPercentage"`
}

// DraftChangeRequest body for PUT /api/customer-invoices/:id/draft.
type DraftChangeRequest struct {
	CalloutFee    decimal.Decimal         `json:"callout_fee"`
	DiscountType  string                  `json:"discount_type" validate:"omitempty,oneof=Percentage FixedAmount"`
	DiscountValue decimal.Decimal         `json:"discount_value"`
	VATExempt     bool                    `json:"vat_exempt"`
	VATRate       decimal.Decimal         `json:"vat_rate"`
	Services      []InvoiceServiceRequest `json:"services"`
	Parts         []InvoicePartRequest    `json:"parts"`
}

// DraftTotalsResponse body for GET /api/customer-invoices/:id/draft/totals.
type DraftTotalsResponse struct {
	State  string        `json:"state"` // idle | recomputing | settled
	Totals TotalsPayload `json:"totals"`
}
