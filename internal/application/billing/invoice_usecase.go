package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mobiquip/backoffice-api/internal/application/dto"
	"github.com/mobiquip/backoffice-api/internal/domain"
	domainbilling "github.com/mobiquip/backoffice-api/internal/domain/billing"
	"github.com/mobiquip/backoffice-api/internal/domain/entity"
	"github.com/mobiquip/backoffice-api/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// InvoiceUseCase creates, updates and reads customer invoices. Totals are
// always recomputed here through the billing engine; client-supplied totals
// are only ever cross-checked, never stored as-is.
type InvoiceUseCase struct {
	txRunner     BillingTxRunner
	invoiceRepo  repository.InvoiceRepository
	customerRepo repository.CustomerRepository
	jobRepo      repository.JobRepository
	partRepo     repository.PartRepository
	tax          *DefaultTaxUseCase
	numberPrefix string
	labourRate   decimal.Decimal // hourly rate billed on service lines with no rate
}

// NewInvoiceUseCase builds the use case. A non-positive labourRate uses the
// engine's standard rate.
func NewInvoiceUseCase(
	txRunner BillingTxRunner,
	invoiceRepo repository.InvoiceRepository,
	customerRepo repository.CustomerRepository,
	jobRepo repository.JobRepository,
	partRepo repository.PartRepository,
	tax *DefaultTaxUseCase,
	numberPrefix string,
	labourRate decimal.Decimal,
) *InvoiceUseCase {
	if numberPrefix == "" {
		numberPrefix = "INV"
	}
	if !labourRate.IsPositive() {
		labourRate = domainbilling.DefaultLabourRate
	}
	return &InvoiceUseCase{
		txRunner:     txRunner,
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		jobRepo:      jobRepo,
		partRepo:     partRepo,
		tax:          tax,
		numberPrefix: numberPrefix,
		labourRate:   labourRate,
	}
}

// CreateInvoice validates the payload, recomputes the totals and persists
// header and lines in one transaction. When the invoice is raised from a
// technician job and carries no lines of its own, the job's service and part
// lines are copied in and the job is marked invoiced.
func (uc *InvoiceUseCase) CreateInvoice(ctx context.Context, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil || customer == nil {
		return nil, fmt.Errorf("%w: customer", domain.ErrNotFound)
	}

	invoiceDate, dueDate, err := parseInvoiceDates(in.InvoiceDate, in.DueDate)
	if err != nil {
		return nil, err
	}

	var job *entity.TechnicianJob
	if in.JobID != "" {
		job, err = uc.jobRepo.GetByID(in.JobID)
		if err != nil || job == nil {
			return nil, fmt.Errorf("%w: technician job", domain.ErrNotFound)
		}
		if len(in.Services) == 0 && len(in.Parts) == 0 {
			in.Services, in.Parts, err = uc.linesFromJob(job.ID)
			if err != nil {
				return nil, err
			}
		}
	}

	services, parts, err := uc.resolveLines(in.Services, in.Parts)
	if err != nil {
		return nil, err
	}

	adj := domainbilling.Adjustments{
		CalloutFee:     in.CalloutFee,
		DiscountType:   defaultDiscountType(in.DiscountType),
		DiscountValue:  in.DiscountValue,
		VATExempt:      in.VATExempt || customer.VATExempt,
		VATRatePercent: uc.tax.Resolve(in.VATRate),
	}
	totals, err := uc.computeAndCrossCheck(services, parts, adj, in.Totals)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	inv := &entity.Invoice{
		ID:             uuid.New().String(),
		CustomerID:     in.CustomerID,
		JobID:          in.JobID,
		Status:         entity.InvoiceStatusDraft,
		InvoiceDate:    invoiceDate,
		DueDate:        dueDate,
		CalloutFee:     in.CalloutFee,
		DiscountType:   adj.DiscountType,
		DiscountValue:  in.DiscountValue,
		VATExempt:      adj.VATExempt,
		VATRate:        adj.VATRatePercent,
		PartsTotal:     totals.PartsTotal,
		LabourTotal:    totals.LabourTotal,
		SubTotal:       totals.SubTotal,
		DiscountAmount: totals.DiscountAmount,
		TaxAmount:      totals.TaxAmount,
		NetTotal:       totals.NetTotal,
		Notes:          in.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	svcLines, partLines := uc.buildLines(inv.ID, in.Services, in.Parts)

	err = uc.txRunner.RunBilling(ctx, func(invoiceRepo repository.InvoiceRepository, jobRepo repository.JobRepository) error {
		number, err := invoiceRepo.NextNumber(uc.numberPrefix)
		if err != nil {
			return err
		}
		inv.Number = number
		if err := invoiceRepo.Create(inv); err != nil {
			return err
		}
		for _, l := range svcLines {
			if err := invoiceRepo.CreateService(l); err != nil {
				return err
			}
		}
		for _, l := range partLines {
			if err := invoiceRepo.CreatePart(l); err != nil {
				return err
			}
		}
		if job != nil {
			if err := jobRepo.UpdateStatus(job.ID, entity.JobStatusInvoiced); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return uc.toResponse(inv, customer.Name, svcLines, partLines), nil
}

// UpdateInvoice re-validates, recomputes and replaces the stored lines.
// Paid and void invoices are immutable.
func (uc *InvoiceUseCase) UpdateInvoice(ctx context.Context, id string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil || inv == nil {
		return nil, domain.ErrNotFound
	}
	if inv.Status == entity.InvoiceStatusPaid || inv.Status == entity.InvoiceStatusVoid {
		return nil, fmt.Errorf("%w: %s invoice cannot be edited", domain.ErrConflict, inv.Status)
	}

	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil || customer == nil {
		return nil, fmt.Errorf("%w: customer", domain.ErrNotFound)
	}
	invoiceDate, dueDate, err := parseInvoiceDates(in.InvoiceDate, in.DueDate)
	if err != nil {
		return nil, err
	}
	services, parts, err := uc.resolveLines(in.Services, in.Parts)
	if err != nil {
		return nil, err
	}
	adj := domainbilling.Adjustments{
		CalloutFee:     in.CalloutFee,
		DiscountType:   defaultDiscountType(in.DiscountType),
		DiscountValue:  in.DiscountValue,
		VATExempt:      in.VATExempt || customer.VATExempt,
		VATRatePercent: uc.tax.Resolve(in.VATRate),
	}
	totals, err := uc.computeAndCrossCheck(services, parts, adj, in.Totals)
	if err != nil {
		return nil, err
	}

	inv.CustomerID = in.CustomerID
	inv.InvoiceDate = invoiceDate
	inv.DueDate = dueDate
	inv.CalloutFee = in.CalloutFee
	inv.DiscountType = adj.DiscountType
	inv.DiscountValue = in.DiscountValue
	inv.VATExempt = adj.VATExempt
	inv.VATRate = adj.VATRatePercent
	inv.PartsTotal = totals.PartsTotal
	inv.LabourTotal = totals.LabourTotal
	inv.SubTotal = totals.SubTotal
	inv.DiscountAmount = totals.DiscountAmount
	inv.TaxAmount = totals.TaxAmount
	inv.NetTotal = totals.NetTotal
	inv.Notes = in.Notes
	inv.UpdatedAt = time.Now()

	svcLines, partLines := uc.buildLines(inv.ID, in.Services, in.Parts)

	err = uc.txRunner.RunBilling(ctx, func(invoiceRepo repository.InvoiceRepository, _ repository.JobRepository) error {
		if err := invoiceRepo.Update(inv); err != nil {
			return err
		}
		if err := invoiceRepo.DeleteLines(inv.ID); err != nil {
			return err
		}
		for _, l := range svcLines {
			if err := invoiceRepo.CreateService(l); err != nil {
				return err
			}
		}
		for _, l := range partLines {
			if err := invoiceRepo.CreatePart(l); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return uc.toResponse(inv, customer.Name, svcLines, partLines), nil
}

// GetInvoice loads one invoice with its lines.
func (uc *InvoiceUseCase) GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil || inv == nil {
		return nil, domain.ErrNotFound
	}
	svcLines, err := uc.invoiceRepo.GetServicesByInvoiceID(id)
	if err != nil {
		return nil, err
	}
	partLines, err := uc.invoiceRepo.GetPartsByInvoiceID(id)
	if err != nil {
		return nil, err
	}
	customerName := ""
	if customer, _ := uc.customerRepo.GetByID(inv.CustomerID); customer != nil {
		customerName = customer.Name
	}
	return uc.toResponse(inv, customerName, svcLines, partLines), nil
}

// ListInvoices returns summary rows.
func (uc *InvoiceUseCase) ListInvoices(ctx context.Context, limit, offset int) ([]*dto.InvoiceSummaryResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.invoiceRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.InvoiceSummaryResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, &dto.InvoiceSummaryResponse{
			ID:          inv.ID,
			Number:      inv.Number,
			CustomerID:  inv.CustomerID,
			Status:      inv.Status,
			InvoiceDate: inv.InvoiceDate.Format(dateLayout),
			DueDate:     inv.DueDate.Format(dateLayout),
			NetTotal:    inv.NetTotal,
		})
	}
	return out, nil
}

// Allowed invoice status transitions.
var invoiceTransitions = map[string][]string{
	entity.InvoiceStatusDraft:  {entity.InvoiceStatusIssued, entity.InvoiceStatusVoid},
	entity.InvoiceStatusIssued: {entity.InvoiceStatusPaid, entity.InvoiceStatusVoid},
}

// UpdateStatus moves an invoice along draft -> issued -> paid, or voids it.
func (uc *InvoiceUseCase) UpdateStatus(ctx context.Context, id, status string) error {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil || inv == nil {
		return domain.ErrNotFound
	}
	allowed := false
	for _, next := range invoiceTransitions[inv.Status] {
		if next == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return fmt.Errorf("%w: %s -> %s", domain.ErrConflict, inv.Status, status)
	}
	inv.Status = status
	inv.UpdatedAt = time.Now()
	return uc.invoiceRepo.Update(inv)
}

// ── internals ────────────────────────────────────────────────────────────────

func parseInvoiceDates(invoiceDate, dueDate string) (time.Time, time.Time, error) {
	invDate, err := time.Parse(dateLayout, invoiceDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: invoice date", domain.ErrInvalidInput)
	}
	due, err := time.Parse(dateLayout, dueDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: due date", domain.ErrInvalidInput)
	}
	if due.Before(invDate) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: due date before invoice date", domain.ErrInvalidInput)
	}
	return invDate, due, nil
}

func defaultDiscountType(t string) string {
	if t == "" {
		return entity.DiscountPercentage
	}
	return t
}

// resolveLines validates the payload lines and produces the engine input.
// Part lines referencing a catalogue part are enriched with its name and
// default unit cost; the enriched cost is reflected back into the payload so
// the stored line matches what was billed.
func (uc *InvoiceUseCase) resolveLines(services []dto.InvoiceServiceRequest, parts []dto.InvoicePartRequest) ([]domainbilling.ServiceLine, []domainbilling.PartLine, error) {
	svcLines := make([]domainbilling.ServiceLine, 0, len(services))
	for _, s := range services {
		if s.Rate.IsNegative() {
			return nil, nil, fmt.Errorf("%w: negative service rate", domain.ErrInvalidInput)
		}
		if strings.HasPrefix(strings.TrimSpace(s.Duration), "-") {
			return nil, nil, fmt.Errorf("%w: negative service duration", domain.ErrInvalidInput)
		}
		rate := s.Rate
		if rate.IsZero() {
			rate = uc.labourRate
		}
		svcLines = append(svcLines, domainbilling.ServiceLine{Duration: s.Duration, Rate: rate})
	}

	partLines := make([]domainbilling.PartLine, 0, len(parts))
	for i := range parts {
		p := &parts[i]
		if p.PartID == "" && p.Name == "" {
			return nil, nil, fmt.Errorf("%w: part line needs a catalogue part or a description", domain.ErrInvalidInput)
		}
		if p.Quantity < 0 || p.UnitCost.IsNegative() || (p.TotalCost != nil && p.TotalCost.IsNegative()) {
			return nil, nil, fmt.Errorf("%w: negative part quantity or cost", domain.ErrInvalidInput)
		}
		if p.PartID != "" {
			part, err := uc.partRepo.GetByID(p.PartID)
			if err != nil || part == nil {
				return nil, nil, fmt.Errorf("%w: mobility part %s", domain.ErrNotFound, p.PartID)
			}
			if p.Name == "" {
				p.Name = part.Name
			}
			if p.UnitCost.IsZero() && p.TotalCost == nil {
				p.UnitCost = part.UnitCost
			}
		}
		partLines = append(partLines, domainbilling.PartLine{
			Quantity:  p.Quantity,
			UnitCost:  p.UnitCost,
			TotalCost: p.TotalCost,
		})
	}
	return svcLines, partLines, nil
}

// computeAndCrossCheck runs the engine and, when the client sent its own
// totals, verifies them within tolerance. Drift beyond tolerance means the
// client computed against stale inputs and must not be persisted.
func (uc *InvoiceUseCase) computeAndCrossCheck(
	services []domainbilling.ServiceLine,
	parts []domainbilling.PartLine,
	adj domainbilling.Adjustments,
	submitted *dto.TotalsPayload,
) (domainbilling.Totals, error) {
	totals, err := domainbilling.Compute(services, parts, adj)
	if err != nil {
		return totals, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if submitted != nil {
		client := domainbilling.Totals{
			PartsTotal:     submitted.PartsTotal,
			LabourTotal:    submitted.LabourTotal,
			SubTotal:       submitted.SubTotal,
			DiscountAmount: submitted.DiscountAmount,
			TaxAmount:      submitted.TaxAmount,
			NetTotal:       submitted.NetTotal,
		}
		if !domainbilling.TotalsWithinTolerance(totals, client) {
			return totals, domain.ErrTotalsMismatch
		}
	}
	return totals, nil
}

// linesFromJob copies a job's service and part lines into invoice payload form.
func (uc *InvoiceUseCase) linesFromJob(jobID string) ([]dto.InvoiceServiceRequest, []dto.InvoicePartRequest, error) {
	jobServices, err := uc.jobRepo.GetServicesByJobID(jobID)
	if err != nil {
		return nil, nil, err
	}
	jobParts, err := uc.jobRepo.GetPartsByJobID(jobID)
	if err != nil {
		return nil, nil, err
	}
	services := make([]dto.InvoiceServiceRequest, 0, len(jobServices))
	for _, s := range jobServices {
		services = append(services, dto.InvoiceServiceRequest{
			ServiceTypeID: s.ServiceTypeID,
			Description:   s.Description,
			Duration:      s.Duration,
			Rate:          s.Rate,
		})
	}
	parts := make([]dto.InvoicePartRequest, 0, len(jobParts))
	for _, p := range jobParts {
		parts = append(parts, dto.InvoicePartRequest{
			PartID:    p.PartID,
			Name:      p.Name,
			Quantity:  p.Quantity,
			UnitCost:  p.UnitCost,
			TotalCost: p.TotalCost,
		})
	}
	return services, parts, nil
}

// buildLines materialises invoice line entities with their derived amounts.
func (uc *InvoiceUseCase) buildLines(invoiceID string, services []dto.InvoiceServiceRequest, parts []dto.InvoicePartRequest) ([]*entity.InvoiceService, []*entity.InvoicePart) {
	svcLines := make([]*entity.InvoiceService, 0, len(services))
	for _, s := range services {
		rate := s.Rate
		if rate.IsZero() {
			rate = uc.labourRate
		}
		svcLines = append(svcLines, &entity.InvoiceService{
			ID:            uuid.New().String(),
			InvoiceID:     invoiceID,
			ServiceTypeID: s.ServiceTypeID,
			Description:   s.Description,
			Duration:      s.Duration,
			Rate:          rate,
			Amount:        domainbilling.ServiceAmount(domainbilling.ServiceLine{Duration: s.Duration, Rate: rate}),
		})
	}
	partLines := make([]*entity.InvoicePart, 0, len(parts))
	for _, p := range parts {
		partLines = append(partLines, &entity.InvoicePart{
			ID:        uuid.New().String(),
			InvoiceID: invoiceID,
			PartID:    p.PartID,
			Name:      p.Name,
			Quantity:  p.Quantity,
			UnitCost:  p.UnitCost,
			TotalCost: p.TotalCost,
			Amount: domainbilling.PartAmount(domainbilling.PartLine{
				Quantity:  p.Quantity,
				UnitCost:  p.UnitCost,
				TotalCost: p.TotalCost,
			}),
		})
	}
	return svcLines, partLines
}

func (uc *InvoiceUseCase) toResponse(inv *entity.Invoice, customerName string, services []*entity.InvoiceService, parts []*entity.InvoicePart) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:            inv.ID,
		Number:        inv.Number,
		CustomerID:    inv.CustomerID,
		CustomerName:  customerName,
		JobID:         inv.JobID,
		Status:        inv.Status,
		InvoiceDate:   inv.InvoiceDate.Format(dateLayout),
		DueDate:       inv.DueDate.Format(dateLayout),
		CalloutFee:    inv.CalloutFee,
		DiscountType:  inv.DiscountType,
		DiscountValue: inv.DiscountValue,
		VATExempt:     inv.VATExempt,
		VATRate:       inv.VATRate,
		Totals: dto.TotalsPayload{
			PartsTotal:     inv.PartsTotal,
			LabourTotal:    inv.LabourTotal,
			SubTotal:       inv.SubTotal,
			DiscountAmount: inv.DiscountAmount,
			TaxAmount:      inv.TaxAmount,
			NetTotal:       inv.NetTotal,
		},
		Services: make([]dto.InvoiceServiceResponse, 0, len(services)),
		Parts:    make([]dto.InvoicePartResponse, 0, len(parts)),
		Notes:    inv.Notes,
	}
	for _, l := range services {
		resp.Services = append(resp.Services, dto.InvoiceServiceResponse{
			ID:            l.ID,
			ServiceTypeID: l.ServiceTypeID,
			Description:   l.Description,
			Duration:      l.Duration,
			Rate:          l.Rate,
			Amount:        l.Amount,
		})
	}
	for _, l := range parts {
		resp.Parts = append(resp.Parts, dto.InvoicePartResponse{
			ID:        l.ID,
			PartID:    l.PartID,
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitCost:  l.UnitCost,
			TotalCost: l.TotalCost,
			Amount:    l.Amount,
		})
	}
	return resp
}
