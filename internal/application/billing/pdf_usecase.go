package billing

import (
	"context"
	"fmt"

	"github.com/mobiquip/backoffice-api/internal/domain"
	"github.com/mobiquip/backoffice-api/internal/domain/entity"
	"github.com/mobiquip/backoffice-api/internal/domain/repository"
)

// PDFUseCase produces the printable invoice. Drafts are still being edited,
// so only issued (or later) invoices can be downloaded.
type PDFUseCase struct {
	invoiceRepo  repository.InvoiceRepository
	customerRepo repository.CustomerRepository
	generator    InvoicePDFGenerator
}

// NewPDFUseCase builds the use case.
func NewPDFUseCase(
	invoiceRepo repository.InvoiceRepository,
	customerRepo repository.CustomerRepository,
	generator InvoicePDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		generator:    generator,
	}
}

// DownloadInvoicePDF loads the invoice with its lines and renders the PDF.
//
// Returns:
//   - (pdfBytes, filename, nil) on success
//   - domain.ErrNotFound when the invoice does not exist
//   - domain.ErrInvalidInput when the invoice is still a draft
func (uc *PDFUseCase) DownloadInvoicePDF(ctx context.Context, invoiceID string) (pdfBytes []byte, filename string, err error) {
	inv, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: load invoice: %w", err)
	}
	if inv == nil {
		return nil, "", domain.ErrNotFound
	}
	if inv.Status == entity.InvoiceStatusDraft {
		return nil, "", fmt.Errorf("%w: invoice is still a draft, issue it before downloading the PDF", domain.ErrInvalidInput)
	}

	customer, err := uc.customerRepo.GetByID(inv.CustomerID)
	if err != nil || customer == nil {
		return nil, "", fmt.Errorf("pdf: load customer: %w", err)
	}

	services, err := uc.invoiceRepo.GetServicesByInvoiceID(invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: load service lines: %w", err)
	}
	parts, err := uc.invoiceRepo.GetPartsByInvoiceID(invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: load part lines: %w", err)
	}

	pdfBytes, err = uc.generator.GenerateInvoicePDF(ctx, inv, customer, services, parts)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generation failed: %w", err)
	}

	filename = fmt.Sprintf("Invoice-%s.pdf", inv.Number)
	return pdfBytes, filename, nil
}
