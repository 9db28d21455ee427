package export

import (
	"context"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mobiquip/backoffice-api/internal/domain/entity"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestExportInvoiceXML(t *testing.T) {
	total := dec("45")
	invoice := &entity.Invoice{
		ID:             "inv-1",
		Number:         "INV-000042",
		CustomerID:     "cust-1",
		Status:         entity.InvoiceStatusIssued,
		InvoiceDate:    time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		DueDate:        time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		DiscountType:   entity.DiscountPercentage,
		VATRate:        dec("20"),
		PartsTotal:     dec("145"),
		LabourTotal:    dec("60"),
		SubTotal:       dec("205"),
		DiscountAmount: dec("0"),
		TaxAmount:      dec("41"),
		NetTotal:       dec("246"),
	}
	customer := &entity.Customer{ID: "cust-1", Name: "Joan Whitfield", Postcode: "PL4 8AA"}
	services := []*entity.InvoiceService{
		{ID: "s-1", InvoiceID: "inv-1", Description: "Stairlift service", Duration: "1:30", Rate: dec("40"), Amount: dec("60")},
	}
	parts := []*entity.InvoicePart{
		{ID: "p-1", InvoiceID: "inv-1", Name: "Drive belt", Quantity: 2, UnitCost: dec("50"), Amount: dec("100")},
		{ID: "p-2", InvoiceID: "inv-1", Name: "Charger", Quantity: 1, TotalCost: &total, Amount: dec("45")},
	}

	out, err := NewXMLExporter().ExportInvoiceXML(context.Background(), invoice, customer, services, parts)
	require.NoError(t, err)

	// Parse it back and pick values out with paths, not string matching.
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))

	root := doc.SelectElement("invoice")
	require.NotNil(t, root)
	assert.Equal(t, "INV-000042", root.SelectAttrValue("number", ""))
	assert.Equal(t, "issued", root.SelectAttrValue("status", ""))
	assert.Equal(t, "2026-03-01", root.SelectElement("invoiceDate").Text())

	cust := root.SelectElement("customer")
	require.NotNil(t, cust)
	assert.Equal(t, "Joan Whitfield", cust.SelectElement("name").Text())
	assert.Nil(t, cust.SelectElement("email")) // empty fields are omitted

	assert.Len(t, root.SelectElement("services").SelectElements("service"), 1)
	partEls := root.SelectElement("parts").SelectElements("part")
	require.Len(t, partEls, 2)
	assert.Equal(t, "45.00", partEls[1].SelectElement("totalCost").Text())
	assert.Nil(t, partEls[0].SelectElement("totalCost"))

	totals := root.SelectElement("totals")
	require.NotNil(t, totals)
	assert.Equal(t, "246.00", totals.SelectElement("netTotal").Text())
	assert.Nil(t, totals.SelectElement("calloutFee")) // zero fee omitted
	taxEl := totals.SelectElement("taxAmount")
	assert.Equal(t, "41.00", taxEl.Text())
	assert.Equal(t, "20.00", taxEl.SelectAttrValue("ratePercent", ""))
}
