package billing

import (
	"context"
	"fmt"

	"github.com/mobiquip/backoffice-api/internal/domain"
	"github.com/mobiquip/backoffice-api/internal/domain/repository"
)

// ExportUseCase renders the accounting-import XML for an invoice. Unlike the
// PDF, drafts may be exported; accountants reconcile work in progress too.
type ExportUseCase struct {
	invoiceRepo  repository.InvoiceRepository
	customerRepo repository.CustomerRepository
	exporter     InvoiceXMLExporter
}

// NewExportUseCase builds the use case.
func NewExportUseCase(
	invoiceRepo repository.InvoiceRepository,
	customerRepo repository.CustomerRepository,
	exporter InvoiceXMLExporter,
) *ExportUseCase {
	return &ExportUseCase{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		exporter:     exporter,
	}
}

// ExportInvoiceXML loads the invoice and renders it as XML.
func (uc *ExportUseCase) ExportInvoiceXML(ctx context.Context, invoiceID string) (xmlBytes []byte, filename string, err error) {
	inv, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("export: load invoice: %w", err)
	}
	if inv == nil {
		return nil, "", domain.ErrNotFound
	}
	customer, err := uc.customerRepo.GetByID(inv.CustomerID)
	if err != nil || customer == nil {
		return nil, "", fmt.Errorf("export: load customer: %w", err)
	}
	services, err := uc.invoiceRepo.GetServicesByInvoiceID(invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("export: load service lines: %w", err)
	}
	parts, err := uc.invoiceRepo.GetPartsByInvoiceID(invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("export: load part lines: %w", err)
	}

	xmlBytes, err = uc.exporter.ExportInvoiceXML(ctx, inv, customer, services, parts)
	if err != nil {
		return nil, "", fmt.Errorf("export: render failed: %w", err)
	}
	return xmlBytes, fmt.Sprintf("Invoice-%s.xml", inv.Number), nil
}
