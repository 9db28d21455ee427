package repository

import "github.com/mobiquip/backoffice-api/internal/domain/entity"

// InvoiceRepository is the persistence port for Invoice headers and lines.
// DeleteLines removes all lines for an invoice; callers re-insert inside the
// billing transaction so header and lines stay consistent.
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	Update(invoice *entity.Invoice) error
	CreateService(line *entity.InvoiceService) error
	CreatePart(line *entity.InvoicePart) error
	DeleteLines(invoiceID string) error
	GetByID(id string) (*entity.Invoice, error)
	GetServicesByInvoiceID(invoiceID string) ([]*entity.InvoiceService, error)
	GetPartsByInvoiceID(invoiceID string) ([]*entity.InvoicePart, error)
	List(limit, offset int) ([]*entity.Invoice, error)
	NextNumber(prefix string) (string, error)
}
