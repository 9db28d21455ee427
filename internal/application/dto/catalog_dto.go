package dto

import "github.com/shopspring/decimal"

// CreatePartRequest body for POST /api/mobility-parts.
type CreatePartRequest struct {
	SKU         string          `json:"sku" validate:"required"`
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category" validate:"omitempty,oneof=wheelchair scooter stairlift bed other"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
}

// UpdatePartRequest body for PUT /api/mobility-parts/:id.
type UpdatePartRequest struct {
	Name        string          `json:"name,omitempty"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category,omitempty" validate:"omitempty,oneof=wheelchair scooter stairlift bed other"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	IsActive    *bool           `json:"is_active,omitempty"`
}

// PartResponse part in responses.
type PartResponse struct {
	ID          string          `json:"id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	IsActive    bool            `json:"is_active"`
}

// CreateServiceTypeRequest body for POST /api/technician-service-types.
type CreateServiceTypeRequest struct {
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description,omitempty"`
	HourlyRate  decimal.Decimal `json:"hourly_rate"`
}

// ServiceTypeResponse service type in responses.
type ServiceTypeResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	HourlyRate  decimal.Decimal `json:"hourly_rate"`
	IsActive    bool            `json:"is_active"`
}

// CreateCustomerRequest body for POST /api/customers.
type CreateCustomerRequest struct {
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	Postcode  string `json:"postcode,omitempty"`
	VATExempt bool   `json:"vat_exempt"`
}

// UpdateCustomerRequest body for PUT /api/customers/:id. Nil pointers leave
// the field untouched.
type UpdateCustomerRequest struct {
	Name      string `json:"name,omitempty"`
	Email     string `json:"email,omitempty" validate:"omitempty,email"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	Postcode  string `json:"postcode,omitempty"`
	VATExempt *bool  `json:"vat_exempt,omitempty"`
	IsActive  *bool  `json:"is_active,omitempty"`
}

// CustomerResponse customer in responses.
type CustomerResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	Postcode  string `json:"postcode,omitempty"`
	VATExempt bool   `json:"vat_exempt"`
	IsActive  bool   `json:"is_active"`
}
