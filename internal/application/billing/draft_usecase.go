package billing

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mobiquip/backoffice-api/internal/application/dto"
	"github.com/mobiquip/backoffice-api/internal/domain"
	domainbilling "github.com/mobiquip/backoffice-api/internal/domain/billing"
	"github.com/mobiquip/backoffice-api/internal/domain/entity"
	"github.com/mobiquip/backoffice-api/internal/domain/repository"
)

// draftSession pairs the Recalculator with the facts fixed at Open time.
// customerExempt is captured once so every preview applies the same VAT
// exemption rule the invoice write path applies on commit.
type draftSession struct {
	rec            *domainbilling.Recalculator
	customerExempt bool
}

// DraftUseCase manages live editing sessions for draft invoices. Each open
// session owns a Recalculator: edits stream in, the debounce coalesces them,
// and the change-detection guard suppresses writes when nothing material
// moved. Totals shown here are previews; nothing is persisted until the
// invoice itself is updated through InvoiceUseCase. Adjustments are resolved
// exactly as InvoiceUseCase resolves them, so a preview never diverges from
// what a commit would compute.
type DraftUseCase struct {
	invoiceRepo  repository.InvoiceRepository
	customerRepo repository.CustomerRepository
	tax          *DefaultTaxUseCase
	labourRate   decimal.Decimal
	debounce     time.Duration

	mu       sync.Mutex
	sessions map[string]*draftSession
}

// NewDraftUseCase builds the use case. debounce <= 0 uses the engine
// default; a non-positive labourRate uses the engine's standard rate.
func NewDraftUseCase(
	invoiceRepo repository.InvoiceRepository,
	customerRepo repository.CustomerRepository,
	tax *DefaultTaxUseCase,
	labourRate decimal.Decimal,
	debounce time.Duration,
) *DraftUseCase {
	if !labourRate.IsPositive() {
		labourRate = domainbilling.DefaultLabourRate
	}
	return &DraftUseCase{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		tax:          tax,
		labourRate:   labourRate,
		debounce:     debounce,
		sessions:     make(map[string]*draftSession),
	}
}

// Open starts an editing session for a draft invoice, seeded from its stored
// lines so the first totals readout matches what is persisted.
func (uc *DraftUseCase) Open(ctx context.Context, invoiceID string) error {
	inv, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil || inv == nil {
		return domain.ErrNotFound
	}
	if inv.Status != entity.InvoiceStatusDraft {
		return fmt.Errorf("%w: only draft invoices can be edited live", domain.ErrConflict)
	}
	customerExempt := false
	if customer, _ := uc.customerRepo.GetByID(inv.CustomerID); customer != nil {
		customerExempt = customer.VATExempt
	}
	snap, err := uc.snapshotFromStored(inv, customerExempt)
	if err != nil {
		return err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()
	if _, ok := uc.sessions[invoiceID]; ok {
		return fmt.Errorf("%w: draft session already open", domain.ErrConflict)
	}
	rec := domainbilling.NewRecalculator(uc.debounce, nil)
	rec.Apply(snap)
	rec.Flush()
	uc.sessions[invoiceID] = &draftSession{rec: rec, customerExempt: customerExempt}
	return nil
}

// ApplyChange feeds an edit into the session's debounced recalculator.
func (uc *DraftUseCase) ApplyChange(ctx context.Context, invoiceID string, in dto.DraftChangeRequest) error {
	sess := uc.session(invoiceID)
	if sess == nil {
		return domain.ErrNotFound
	}

	services := make([]domainbilling.ServiceLine, 0, len(in.Services))
	for _, s := range in.Services {
		rate := s.Rate
		if rate.IsZero() {
			rate = uc.labourRate
		}
		services = append(services, domainbilling.ServiceLine{Duration: s.Duration, Rate: rate})
	}
	parts := make([]domainbilling.PartLine, 0, len(in.Parts))
	for _, p := range in.Parts {
		parts = append(parts, domainbilling.PartLine{Quantity: p.Quantity, UnitCost: p.UnitCost, TotalCost: p.TotalCost})
	}
	sess.rec.Apply(domainbilling.Snapshot{
		Services: services,
		Parts:    parts,
		Adjustments: domainbilling.Adjustments{
			CalloutFee:     in.CalloutFee,
			DiscountType:   defaultDiscountType(in.DiscountType),
			DiscountValue:  in.DiscountValue,
			VATExempt:      in.VATExempt || sess.customerExempt,
			VATRatePercent: uc.tax.Resolve(in.VATRate),
		},
	})
	return nil
}

// Totals flushes any pending recomputation and returns the settled totals.
func (uc *DraftUseCase) Totals(ctx context.Context, invoiceID string) (*dto.DraftTotalsResponse, error) {
	sess := uc.session(invoiceID)
	if sess == nil {
		return nil, domain.ErrNotFound
	}
	sess.rec.Flush()
	if err := sess.rec.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	t := sess.rec.Totals()
	return &dto.DraftTotalsResponse{
		State: sess.rec.State(),
		Totals: dto.TotalsPayload{
			PartsTotal:     t.PartsTotal,
			LabourTotal:    t.LabourTotal,
			SubTotal:       t.SubTotal,
			DiscountAmount: t.DiscountAmount,
			TaxAmount:      t.TaxAmount,
			NetTotal:       t.NetTotal,
		},
	}, nil
}

// Close ends the session, discarding any in-flight recomputation.
func (uc *DraftUseCase) Close(ctx context.Context, invoiceID string) error {
	uc.mu.Lock()
	sess, ok := uc.sessions[invoiceID]
	delete(uc.sessions, invoiceID)
	uc.mu.Unlock()
	if !ok {
		return domain.ErrNotFound
	}
	sess.rec.Close()
	return nil
}

// CloseAll discards every open session. Used on shutdown.
func (uc *DraftUseCase) CloseAll() {
	uc.mu.Lock()
	sessions := uc.sessions
	uc.sessions = make(map[string]*draftSession)
	uc.mu.Unlock()
	for _, sess := range sessions {
		sess.rec.Close()
	}
}

func (uc *DraftUseCase) session(invoiceID string) *draftSession {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.sessions[invoiceID]
}

func (uc *DraftUseCase) snapshotFromStored(inv *entity.Invoice, customerExempt bool) (domainbilling.Snapshot, error) {
	svcLines, err := uc.invoiceRepo.GetServicesByInvoiceID(inv.ID)
	if err != nil {
		return domainbilling.Snapshot{}, err
	}
	partLines, err := uc.invoiceRepo.GetPartsByInvoiceID(inv.ID)
	if err != nil {
		return domainbilling.Snapshot{}, err
	}
	services := make([]domainbilling.ServiceLine, 0, len(svcLines))
	for _, l := range svcLines {
		rate := l.Rate
		if rate.IsZero() {
			rate = uc.labourRate
		}
		services = append(services, domainbilling.ServiceLine{Duration: l.Duration, Rate: rate})
	}
	parts := make([]domainbilling.PartLine, 0, len(partLines))
	for _, l := range partLines {
		parts = append(parts, domainbilling.PartLine{Quantity: l.Quantity, UnitCost: l.UnitCost, TotalCost: l.TotalCost})
	}
	return domainbilling.Snapshot{
		Services: services,
		Parts:    parts,
		Adjustments: domainbilling.Adjustments{
			CalloutFee:     inv.CalloutFee,
			DiscountType:   inv.DiscountType,
			DiscountValue:  inv.DiscountValue,
			VATExempt:      inv.VATExempt || customerExempt,
			VATRatePercent: uc.tax.Resolve(inv.VATRate),
		},
	}, nil
}
