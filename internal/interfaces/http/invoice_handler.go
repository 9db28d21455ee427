package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mobiquip/backoffice-api/internal/application/billing"
	"github.com/mobiquip/backoffice-api/internal/application/dto"
)

// InvoiceHandler handles customer invoice endpoints (protected), including
// the live draft editing session and the PDF/XML downloads.
type InvoiceHandler struct {
	invoices *billing.InvoiceUseCase
	drafts   *billing.DraftUseCase
	pdf      *billing.PDFUseCase
	export   *billing.ExportUseCase
}

// NewInvoiceHandler builds the handler.
func NewInvoiceHandler(
	invoices *billing.InvoiceUseCase,
	drafts *billing.DraftUseCase,
	pdf *billing.PDFUseCase,
	export *billing.ExportUseCase,
) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices, drafts: drafts, pdf: pdf, export: export}
}

// Create raises an invoice, recomputing totals server-side.
// POST /api/customer-invoices
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if !parseAndValidate(c, &in) {
		return nil
	}
	invoice, err := h.invoices.CreateInvoice(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(invoice)
}

// Update re-validates and replaces an editable invoice.
// PUT /api/customer-invoices/:id
func (h *InvoiceHandler) Update(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if !parseAndValidate(c, &in) {
		return nil
	}
	invoice, err := h.invoices.UpdateInvoice(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(invoice)
}

// GetByID returns one invoice with its lines.
// GET /api/customer-invoices/:id
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	invoice, err := h.invoices.GetInvoice(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(invoice)
}

// List returns invoice summaries, newest first.
// GET /api/customer-invoices
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "bad query parameters"})
	}
	page.DefaultPage()
	list, err := h.invoices.ListInvoices(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// UpdateStatus moves an invoice along draft -> issued -> paid, or voids it.
// PATCH /api/customer-invoices/:id/status
func (h *InvoiceHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateInvoiceStatusRequest
	if !parseAndValidate(c, &in) {
		return nil
	}
	if err := h.invoices.UpdateStatus(c.Context(), c.Params("id"), in.Status); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DownloadPDF streams the printable invoice.
// GET /api/customer-invoices/:id/pdf
func (h *InvoiceHandler) DownloadPDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.pdf.DownloadInvoicePDF(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

// ExportXML streams the accounting-import XML.
// GET /api/customer-invoices/:id/xml
func (h *InvoiceHandler) ExportXML(c *fiber.Ctx) error {
	xmlBytes, filename, err := h.export.ExportInvoiceXML(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/xml")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(xmlBytes)
}

// OpenDraft starts a live editing session for a draft invoice.
// POST /api/customer-invoices/:id/draft
func (h *InvoiceHandler) OpenDraft(c *fiber.Ctx) error {
	if err := h.drafts.Open(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusCreated)
}

// ApplyDraftChange feeds an edit into the session's debounced recalculator.
// PUT /api/customer-invoices/:id/draft
func (h *InvoiceHandler) ApplyDraftChange(c *fiber.Ctx) error {
	var in dto.DraftChangeRequest
	if !parseAndValidate(c, &in) {
		return nil
	}
	if err := h.drafts.ApplyChange(c.Context(), c.Params("id"), in); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusAccepted)
}

// DraftTotals returns the session's settled totals.
// GET /api/customer-invoices/:id/draft/totals
func (h *InvoiceHandler) DraftTotals(c *fiber.Ctx) error {
	totals, err := h.drafts.Totals(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(totals)
}

// CloseDraft ends the session, discarding in-flight work.
// DELETE /api/customer-invoices/:id/draft
func (h *InvoiceHandler) CloseDraft(c *fiber.Ctx) error {
	if err := h.drafts.Close(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
