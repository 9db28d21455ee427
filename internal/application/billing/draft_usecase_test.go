package billing

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mobiquip/backoffice-api/internal/application/dto"
	"github.com/mobiquip/backoffice-api/internal/domain"
	domainbilling "github.com/mobiquip/backoffice-api/internal/domain/billing"
	"github.com/mobiquip/backoffice-api/internal/domain/entity"
)

func newDraftFixture(t *testing.T, customers ...*entity.Customer) (*DraftUseCase, *fakeInvoiceRepo) {
	t.Helper()
	invoices := newFakeInvoiceRepo()
	tax := NewDefaultTaxUseCase(&fakeTaxRepo{}, nil, decimal.Zero)
	// Short debounce keeps the tests fast; Flush makes them deterministic.
	uc := NewDraftUseCase(invoices, newFakeCustomerRepo(customers...), tax, decimal.Zero, 10*time.Millisecond)
	return uc, invoices
}

func storedDraft(t *testing.T, invoices *fakeInvoiceRepo) *entity.Invoice {
	t.Helper()
	inv := &entity.Invoice{
		ID:           "inv-1",
		Number:       "INV-000001",
		CustomerID:   "cust-1",
		Status:       entity.InvoiceStatusDraft,
		DiscountType: entity.DiscountPercentage,
		VATRate:      dec("20"),
	}
	require.NoError(t, invoices.Create(inv))
	require.NoError(t, invoices.CreateService(&entity.InvoiceService{
		ID: "l-1", InvoiceID: "inv-1", Description: "Repair", Duration: "1:00", Rate: dec("50"),
	}))
	return inv
}

func TestDraftSession_OpenRequiresDraftStatus(t *testing.T) {
	uc, invoices := newDraftFixture(t)
	inv := storedDraft(t, invoices)
	inv.Status = entity.InvoiceStatusIssued

	err := uc.Open(context.Background(), "inv-1")
	require.ErrorIs(t, err, domain.ErrConflict)
}

func TestDraftSession_OpenUnknownInvoice(t *testing.T) {
	uc, _ := newDraftFixture(t)
	require.ErrorIs(t, uc.Open(context.Background(), "missing"), domain.ErrNotFound)
}

func TestDraftSession_OpenSeedsFromStoredLines(t *testing.T) {
	uc, invoices := newDraftFixture(t)
	storedDraft(t, invoices)
	ctx := context.Background()

	require.NoError(t, uc.Open(ctx, "inv-1"))
	defer uc.Close(ctx, "inv-1")

	resp, err := uc.Totals(ctx, "inv-1")
	require.NoError(t, err)
	// 1:00 at 50/h, VAT 20%
	assert.True(t, resp.Totals.LabourTotal.Equal(dec("50")))
	assert.True(t, resp.Totals.NetTotal.Equal(dec("60")))
}

func TestDraftSession_DoubleOpenRejected(t *testing.T) {
	uc, invoices := newDraftFixture(t)
	storedDraft(t, invoices)
	ctx := context.Background()

	require.NoError(t, uc.Open(ctx, "inv-1"))
	defer uc.Close(ctx, "inv-1")
	require.ErrorIs(t, uc.Open(ctx, "inv-1"), domain.ErrConflict)
}

func TestDraftSession_ApplyChangeRecomputes(t *testing.T) {
	uc, invoices := newDraftFixture(t)
	storedDraft(t, invoices)
	ctx := context.Background()

	require.NoError(t, uc.Open(ctx, "inv-1"))
	defer uc.Close(ctx, "inv-1")

	require.NoError(t, uc.ApplyChange(ctx, "inv-1", dto.DraftChangeRequest{
		CalloutFee: dec("20"),
		Services: []dto.InvoiceServiceRequest{
			{Description: "Repair", Duration: "1:00", Rate: dec("50")},
		},
		Parts: []dto.InvoicePartRequest{
			{Name: "Drive belt", Quantity: 2, UnitCost: dec("50")},
		},
	}))

	resp, err := uc.Totals(ctx, "inv-1")
	require.NoError(t, err)
	assert.Equal(t, domainbilling.StateSettled, resp.State)
	// 100 parts + 50 labour + 20 callout = 170, VAT 20% = 34
	assert.True(t, resp.Totals.NetTotal.Equal(dec("204")), "got %s", resp.Totals.NetTotal)
}

func TestDraftSession_ExemptCustomerPreviewsWithoutVAT(t *testing.T) {
	exempt := &entity.Customer{ID: "cust-1", Name: "Joan Whitfield", IsActive: true, VATExempt: true}
	uc, invoices := newDraftFixture(t, exempt)
	storedDraft(t, invoices)
	ctx := context.Background()

	require.NoError(t, uc.Open(ctx, "inv-1"))
	defer uc.Close(ctx, "inv-1")

	resp, err := uc.Totals(ctx, "inv-1")
	require.NoError(t, err)
	assert.True(t, resp.Totals.TaxAmount.IsZero())
	assert.True(t, resp.Totals.NetTotal.Equal(dec("50")))

	// An edit that does not flag the exemption itself still previews the
	// totals the invoice write path would store for this customer.
	require.NoError(t, uc.ApplyChange(ctx, "inv-1", dto.DraftChangeRequest{
		CalloutFee: dec("20"),
		Services: []dto.InvoiceServiceRequest{
			{Description: "Repair", Duration: "1:00", Rate: dec("50")},
		},
		Parts: []dto.InvoicePartRequest{
			{Name: "Drive belt", Quantity: 2, UnitCost: dec("50")},
		},
	}))

	resp, err = uc.Totals(ctx, "inv-1")
	require.NoError(t, err)
	assert.True(t, resp.Totals.TaxAmount.IsZero())
	assert.True(t, resp.Totals.NetTotal.Equal(dec("170")), "got %s", resp.Totals.NetTotal)
}

func TestDraftSession_ChangesForUnknownSession(t *testing.T) {
	uc, _ := newDraftFixture(t)
	ctx := context.Background()
	require.ErrorIs(t, uc.ApplyChange(ctx, "missing", dto.DraftChangeRequest{}), domain.ErrNotFound)
	_, err := uc.Totals(ctx, "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDraftSession_CloseEndsSession(t *testing.T) {
	uc, invoices := newDraftFixture(t)
	storedDraft(t, invoices)
	ctx := context.Background()

	require.NoError(t, uc.Open(ctx, "inv-1"))
	require.NoError(t, uc.Close(ctx, "inv-1"))

	_, err := uc.Totals(ctx, "inv-1")
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.ErrorIs(t, uc.Close(ctx, "inv-1"), domain.ErrNotFound)

	// A fresh session can be opened again afterwards.
	require.NoError(t, uc.Open(ctx, "inv-1"))
	require.NoError(t, uc.Close(ctx, "inv-1"))
}
