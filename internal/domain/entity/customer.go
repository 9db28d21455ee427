package entity

import "time"

// Customer is an invoiceable customer of the retailer.
type Customer struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Address   string
	Postcode  string
	VATExempt bool // eligible customers (e.g. chronic illness relief) are zero-rated
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
