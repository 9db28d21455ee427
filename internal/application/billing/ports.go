package billing

import (
	"context"

	"github.com/mobiquip/backoffice-api/internal/domain/entity"
	"github.com/mobiquip/backoffice-api/internal/domain/repository"
)

// BillingTxRunner runs a function inside one transaction covering invoice
// and job repositories, so writing an invoice and flagging its source job
// invoiced are atomic.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		invoiceRepo repository.InvoiceRepository,
		jobRepo repository.JobRepository,
	) error) error
}

// InvoicePDFGenerator renders the printable invoice. The rendered figures
// must be exactly the stored totals; the generator formats, never computes.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(
		ctx context.Context,
		invoice *entity.Invoice,
		customer *entity.Customer,
		services []*entity.InvoiceService,
		parts []*entity.InvoicePart,
	) ([]byte, error)
}

// InvoiceXMLExporter renders the accounting-import XML for an invoice.
type InvoiceXMLExporter interface {
	ExportInvoiceXML(
		ctx context.Context,
		invoice *entity.Invoice,
		customer *entity.Customer,
		services []*entity.InvoiceService,
		parts []*entity.InvoicePart,
	) ([]byte, error)
}
