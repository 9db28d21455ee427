package billing

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mobiquip/backoffice-api/internal/application/dto"
	"github.com/mobiquip/backoffice-api/internal/domain"
	"github.com/mobiquip/backoffice-api/internal/domain/entity"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

type invoiceFixture struct {
	uc       *InvoiceUseCase
	invoices *fakeInvoiceRepo
	jobs     *fakeJobRepo
	parts    *fakePartRepo
}

func newInvoiceFixture(t *testing.T, customers ...*entity.Customer) *invoiceFixture {
	t.Helper()
	invoices := newFakeInvoiceRepo()
	jobs := newFakeJobRepo()
	parts := newFakePartRepo()
	tax := NewDefaultTaxUseCase(&fakeTaxRepo{}, nil, decimal.Zero)
	uc := NewInvoiceUseCase(
		&fakeTxRunner{invoiceRepo: invoices, jobRepo: jobs},
		invoices,
		newFakeCustomerRepo(customers...),
		jobs,
		parts,
		tax,
		"INV",
		decimal.Zero,
	)
	return &invoiceFixture{uc: uc, invoices: invoices, jobs: jobs, parts: parts}
}

func testCustomer() *entity.Customer {
	return &entity.Customer{ID: "cust-1", Name: "Joan Whitfield", IsActive: true}
}

func baseRequest() dto.CreateInvoiceRequest {
	return dto.CreateInvoiceRequest{
		CustomerID:    "cust-1",
		InvoiceDate:   "2026-03-01",
		DueDate:       "2026-03-31",
		CalloutFee:    dec("20"),
		DiscountType:  entity.DiscountPercentage,
		DiscountValue: dec("10"),
		Services: []dto.InvoiceServiceRequest{
			{Description: "Stairlift service", Duration: "2:00", Rate: dec("50")},
		},
		Parts: []dto.InvoicePartRequest{
			{Name: "Drive belt", Quantity: 2, UnitCost: dec("50")},
		},
	}
}

func TestCreateInvoice_RecomputesTotals(t *testing.T) {
	f := newInvoiceFixture(t, testCustomer())

	resp, err := f.uc.CreateInvoice(context.Background(), baseRequest())
	require.NoError(t, err)

	// 100 parts + 100 labour = 220 with the callout fee, minus 10% = 198,
	// plus 20% VAT = 237.60.
	assert.Equal(t, "INV-000001", resp.Number)
	assert.Equal(t, entity.InvoiceStatusDraft, resp.Status)
	assert.True(t, resp.Totals.PartsTotal.Equal(dec("100")))
	assert.True(t, resp.Totals.LabourTotal.Equal(dec("100")))
	assert.True(t, resp.Totals.SubTotal.Equal(dec("220")))
	assert.True(t, resp.Totals.DiscountAmount.Equal(dec("22")))
	assert.True(t, resp.Totals.TaxAmount.Equal(dec("39.6")))
	assert.True(t, resp.Totals.NetTotal.Equal(dec("237.6")))

	stored, err := f.invoices.GetByID(resp.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, stored.NetTotal.Equal(dec("237.6")))
	assert.Len(t, f.invoices.services[resp.ID], 1)
	assert.Len(t, f.invoices.parts[resp.ID], 1)
}

func TestCreateInvoice_ClientTotalsWithinToleranceAccepted(t *testing.T) {
	f := newInvoiceFixture(t, testCustomer())

	in := baseRequest()
	// Client rounding drift under a penny is tolerated; the server's own
	// figures are what gets stored.
	in.Totals = &dto.TotalsPayload{
		PartsTotal:     dec("100"),
		LabourTotal:    dec("100"),
		SubTotal:       dec("220"),
		DiscountAmount: dec("22"),
		TaxAmount:      dec("39.604"),
		NetTotal:       dec("237.604"),
	}
	resp, err := f.uc.CreateInvoice(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, resp.Totals.NetTotal.Equal(dec("237.6")))
}

func TestCreateInvoice_ClientTotalsMismatchRejected(t *testing.T) {
	f := newInvoiceFixture(t, testCustomer())

	in := baseRequest()
	in.Totals = &dto.TotalsPayload{
		PartsTotal:     dec("100"),
		LabourTotal:    dec("100"),
		SubTotal:       dec("220"),
		DiscountAmount: dec("22"),
		TaxAmount:      dec("39.6"),
		NetTotal:       dec("240"), // stale client figure
	}
	_, err := f.uc.CreateInvoice(context.Background(), in)
	require.ErrorIs(t, err, domain.ErrTotalsMismatch)
	assert.Empty(t, f.invoices.invoices)
}

func TestCreateInvoice_PrefillsLinesFromJob(t *testing.T) {
	f := newInvoiceFixture(t, testCustomer())
	job := &entity.TechnicianJob{ID: "job-1", CustomerID: "cust-1", Status: entity.JobStatusCompleted, IsActive: true}
	require.NoError(t, f.jobs.Create(job))
	require.NoError(t, f.jobs.CreateService(&entity.JobService{
		ID: "js-1", JobID: "job-1", Description: "Scooter repair", Duration: "1:30", Rate: dec("40"),
	}))
	require.NoError(t, f.jobs.CreatePart(&entity.JobPart{
		ID: "jp-1", JobID: "job-1", Name: "Battery", Quantity: 1, UnitCost: dec("85"),
	}))

	in := baseRequest()
	in.JobID = "job-1"
	in.CalloutFee = decimal.Zero
	in.DiscountValue = decimal.Zero
	in.Services = nil
	in.Parts = nil

	resp, err := f.uc.CreateInvoice(context.Background(), in)
	require.NoError(t, err)

	require.Len(t, resp.Services, 1)
	require.Len(t, resp.Parts, 1)
	assert.Equal(t, "Scooter repair", resp.Services[0].Description)
	// 1:30 at 40/h labour + 85 part = 145, VAT 20% = 29.
	assert.True(t, resp.Totals.NetTotal.Equal(dec("174")), "got %s", resp.Totals.NetTotal)
	assert.Equal(t, entity.JobStatusInvoiced, job.Status)
}

func TestCreateInvoice_DueDateBeforeInvoiceDate(t *testing.T) {
	f := newInvoiceFixture(t, testCustomer())
	in := baseRequest()
	in.DueDate = "2026-02-01"
	_, err := f.uc.CreateInvoice(context.Background(), in)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateInvoice_UnknownCustomer(t *testing.T) {
	f := newInvoiceFixture(t)
	_, err := f.uc.CreateInvoice(context.Background(), baseRequest())
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateInvoice_ExemptCustomerPaysNoVAT(t *testing.T) {
	customer := testCustomer()
	customer.VATExempt = true
	f := newInvoiceFixture(t, customer)

	resp, err := f.uc.CreateInvoice(context.Background(), baseRequest())
	require.NoError(t, err)
	assert.True(t, resp.VATExempt)
	assert.True(t, resp.Totals.TaxAmount.IsZero())
	assert.True(t, resp.Totals.NetTotal.Equal(dec("198")))
}

func TestCreateInvoice_CataloguePartEnrichesLine(t *testing.T) {
	f := newInvoiceFixture(t, testCustomer())
	f.parts.parts["part-7"] = &entity.MobilityPart{
		ID: "part-7", SKU: "WHL-200", Name: "Rear wheel 200mm", UnitCost: dec("32.50"), IsActive: true,
	}

	in := baseRequest()
	in.CalloutFee = decimal.Zero
	in.DiscountValue = decimal.Zero
	in.Services = nil
	in.Parts = []dto.InvoicePartRequest{{PartID: "part-7", Quantity: 2}}

	resp, err := f.uc.CreateInvoice(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, resp.Parts, 1)
	assert.Equal(t, "Rear wheel 200mm", resp.Parts[0].Name)
	assert.True(t, resp.Parts[0].UnitCost.Equal(dec("32.50")))
	assert.True(t, resp.Totals.PartsTotal.Equal(dec("65")))
}

func TestCreateInvoice_NegativeServiceRate(t *testing.T) {
	f := newInvoiceFixture(t, testCustomer())
	in := baseRequest()
	in.Services[0].Rate = dec("-5")
	_, err := f.uc.CreateInvoice(context.Background(), in)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateInvoice_NegativeServiceDuration(t *testing.T) {
	f := newInvoiceFixture(t, testCustomer())
	in := baseRequest()
	in.Services[0].Duration = "-2"
	_, err := f.uc.CreateInvoice(context.Background(), in)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateInvoice_ConfiguredLabourRateOnUnratedLines(t *testing.T) {
	invoices := newFakeInvoiceRepo()
	jobs := newFakeJobRepo()
	tax := NewDefaultTaxUseCase(&fakeTaxRepo{}, nil, decimal.Zero)
	uc := NewInvoiceUseCase(
		&fakeTxRunner{invoiceRepo: invoices, jobRepo: jobs},
		invoices,
		newFakeCustomerRepo(testCustomer()),
		jobs,
		newFakePartRepo(),
		tax,
		"INV",
		dec("60"),
	)

	resp, err := uc.CreateInvoice(context.Background(), dto.CreateInvoiceRequest{
		CustomerID:  "cust-1",
		InvoiceDate: "2026-03-01",
		DueDate:     "2026-03-31",
		Services: []dto.InvoiceServiceRequest{
			{Description: "Stairlift service", Duration: "1:00"},
		},
	})
	require.NoError(t, err)
	assert.True(t, resp.Totals.LabourTotal.Equal(dec("60")))

	stored := invoices.services[resp.ID]
	require.Len(t, stored, 1)
	assert.True(t, stored[0].Rate.Equal(dec("60")))
	assert.True(t, stored[0].Amount.Equal(dec("60")))
}

func TestUpdateInvoice_PaidIsImmutable(t *testing.T) {
	f := newInvoiceFixture(t, testCustomer())
	resp, err := f.uc.CreateInvoice(context.Background(), baseRequest())
	require.NoError(t, err)

	f.invoices.invoices[resp.ID].Status = entity.InvoiceStatusPaid

	_, err = f.uc.UpdateInvoice(context.Background(), resp.ID, baseRequest())
	require.ErrorIs(t, err, domain.ErrConflict)
}

func TestUpdateInvoice_ReplacesLinesAndTotals(t *testing.T) {
	f := newInvoiceFixture(t, testCustomer())
	resp, err := f.uc.CreateInvoice(context.Background(), baseRequest())
	require.NoError(t, err)

	in := baseRequest()
	in.Parts = append(in.Parts, dto.InvoicePartRequest{Name: "Charger", Quantity: 1, UnitCost: dec("0"), TotalCost: decPtr("45")})
	updated, err := f.uc.UpdateInvoice(context.Background(), resp.ID, in)
	require.NoError(t, err)

	require.Len(t, updated.Parts, 2)
	assert.True(t, updated.Totals.PartsTotal.Equal(dec("145")))
	assert.Len(t, f.invoices.parts[resp.ID], 2)
}

func TestInvoiceStatusTransitions(t *testing.T) {
	f := newInvoiceFixture(t, testCustomer())
	resp, err := f.uc.CreateInvoice(context.Background(), baseRequest())
	require.NoError(t, err)
	ctx := context.Background()

	// draft -> paid skips issuing and is rejected
	require.ErrorIs(t, f.uc.UpdateStatus(ctx, resp.ID, entity.InvoiceStatusPaid), domain.ErrConflict)

	require.NoError(t, f.uc.UpdateStatus(ctx, resp.ID, entity.InvoiceStatusIssued))
	require.NoError(t, f.uc.UpdateStatus(ctx, resp.ID, entity.InvoiceStatusPaid))

	// paid is terminal
	require.ErrorIs(t, f.uc.UpdateStatus(ctx, resp.ID, entity.InvoiceStatusVoid), domain.ErrConflict)
}

func TestListInvoices(t *testing.T) {
	f := newInvoiceFixture(t, testCustomer())
	_, err := f.uc.CreateInvoice(context.Background(), baseRequest())
	require.NoError(t, err)

	list, err := f.uc.ListInvoices(context.Background(), 0, -1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "2026-03-01", list[0].InvoiceDate)
}

func TestGetInvoice_NotFound(t *testing.T) {
	f := newInvoiceFixture(t, testCustomer())
	_, err := f.uc.GetInvoice(context.Background(), "nope")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateInvoice_SequentialNumbers(t *testing.T) {
	f := newInvoiceFixture(t, testCustomer())
	first, err := f.uc.CreateInvoice(context.Background(), baseRequest())
	require.NoError(t, err)
	second, err := f.uc.CreateInvoice(context.Background(), baseRequest())
	require.NoError(t, err)
	assert.Equal(t, "INV-000001", first.Number)
	assert.Equal(t, "INV-000002", second.Number)
	assert.NotEqual(t, first.ID, second.ID)
}
