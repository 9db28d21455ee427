// Package pdf renders the printable customer invoice.
//
// A4 page layout:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Retailer name + VAT no  │  Invoice no + dates      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  BILL TO: customer name, address, postcode                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  LABOUR: Description | Duration | Rate | Amount             │
//	│  PARTS:  Qty | Part | Unit cost | Amount                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALS: Parts / Labour / Callout / Discount / VAT / DUE    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: payment terms + VAT relief note                    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	appbilling "github.com/mobiquip/backoffice-api/internal/application/billing"
	"github.com/mobiquip/backoffice-api/internal/domain/entity"
)

var _ appbilling.InvoicePDFGenerator = (*MarotoInvoiceGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 16, Green: 84, Blue: 60}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// gbp renders monetary amounts with British grouping ("£1,234.56").
var gbp = message.NewPrinter(language.BritishEnglish)

func money(d decimal.Decimal) string {
	f, _ := d.Float64() // display only, stored values stay decimal
	return gbp.Sprintf("£%.2f", f)
}

// Retailer identifies the issuing business in the invoice header.
type Retailer struct {
	Name      string
	Address   string
	Phone     string
	Email     string
	VATNumber string
}

// MarotoInvoiceGenerator implements billing.InvoicePDFGenerator with Maroto v2.
type MarotoInvoiceGenerator struct {
	retailer Retailer
}

// NewMarotoInvoiceGenerator builds the generator.
func NewMarotoInvoiceGenerator(retailer Retailer) *MarotoInvoiceGenerator {
	return &MarotoInvoiceGenerator{retailer: retailer}
}

// GenerateInvoicePDF renders the invoice and returns its bytes. Every figure
// comes straight off the stored invoice; nothing is recomputed here.
func (g *MarotoInvoiceGenerator) GenerateInvoicePDF(
	_ context.Context,
	invoice *entity.Invoice,
	customer *entity.Customer,
	services []*entity.InvoiceService,
	parts []*entity.InvoicePart,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Invoice "+invoice.Number, true).
		WithAuthor(g.retailer.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(invoice))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(billToRow(customer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	if len(services) > 0 {
		m.AddRows(sectionTitleRow("LABOUR"))
		m.AddRows(serviceHeaderRow())
		for _, r := range serviceRows(services) {
			m.AddRows(r)
		}
	}
	if len(parts) > 0 {
		m.AddRows(sectionTitleRow("PARTS"))
		m.AddRows(partHeaderRow())
		for _, r := range partRows(parts) {
			m.AddRows(r)
		}
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRows(invoice)...)
	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(invoice))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: retailer identity (left), invoice number and dates (right).
func (g *MarotoInvoiceGenerator) headerRow(invoice *entity.Invoice) core.Row {
	return row.New(24).Add(
		col.New(7).Add(
			text.New(g.retailer.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(g.retailer.Address, props.Text{Size: 8, Top: 9, Color: colorGray}),
			text.New(fmt.Sprintf("Tel: %s   |   %s", nonEmpty(g.retailer.Phone, "—"), nonEmpty(g.retailer.Email, "—")),
				props.Text{Size: 8, Top: 14, Color: colorGray}),
			text.New("VAT Reg No: "+nonEmpty(g.retailer.VATNumber, "—"),
				props.Text{Size: 8, Top: 19, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("INVOICE", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(invoice.Number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Date: "+invoice.InvoiceDate.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
			text.New("Due: "+invoice.DueDate.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 19, Color: colorGray,
			}),
		),
	)
}

// billToRow: customer block.
func billToRow(customer *entity.Customer) core.Row {
	contact := fmt.Sprintf("%s   |   %s",
		nonEmpty(customer.Phone, "—"), nonEmpty(customer.Email, "—"))
	address := customer.Address
	if customer.Postcode != "" {
		address = nonEmpty(address, "") + ", " + customer.Postcode
	}
	return row.New(16).Add(
		col.New(12).Add(
			text.New("BILL TO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(customer.Name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(nonEmpty(address, "—"), props.Text{Size: 8, Top: 11, Color: colorGray}),
			text.New(contact, props.Text{Size: 8, Top: 15, Color: colorGray}),
		),
	)
}

func sectionTitleRow(title string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2}),
	))
}

func serviceHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1,
		}))
	}
	return row.New(6).Add(
		h("Description", 6, align.Left),
		h("Duration", 2, align.Center),
		h("Rate/h", 2, align.Right),
		h("Amount", 2, align.Right),
	)
}

func serviceRows(services []*entity.InvoiceService) []core.Row {
	result := make([]core.Row, 0, len(services))
	for _, s := range services {
		result = append(result, row.New(6).Add(
			col.New(6).Add(text.New(s.Description, props.Text{Size: 8, Top: 1})),
			col.New(2).Add(text.New(s.Duration, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(money(s.Rate), props.Text{Size: 8, Align: align.Right, Top: 1})),
			col.New(2).Add(text.New(money(s.Amount), props.Text{Size: 8, Align: align.Right, Top: 1})),
		))
	}
	return result
}

func partHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1,
		}))
	}
	return row.New(6).Add(
		h("Qty", 1, align.Center),
		h("Part", 7, align.Left),
		h("Unit cost", 2, align.Right),
		h("Amount", 2, align.Right),
	)
}

func partRows(parts []*entity.InvoicePart) []core.Row {
	result := make([]core.Row, 0, len(parts))
	for _, p := range parts {
		result = append(result, row.New(6).Add(
			col.New(1).Add(text.New(fmt.Sprintf("%d", p.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(7).Add(text.New(p.Name, props.Text{Size: 8, Top: 1})),
			col.New(2).Add(text.New(money(p.UnitCost), props.Text{Size: 8, Align: align.Right, Top: 1})),
			col.New(2).Add(text.New(money(p.Amount), props.Text{Size: 8, Align: align.Right, Top: 1})),
		))
	}
	return result
}

// totalsRows: right-aligned totals block. Discount and callout fee rows are
// omitted when zero to keep short invoices short.
func totalsRows(invoice *entity.Invoice) []core.Row {
	pair := func(label, value string) core.Row {
		return row.New(5).Add(
			col.New(6),
			col.New(3).Add(text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
			})),
			col.New(3).Add(text.New(value, props.Text{Size: 9, Align: align.Right, Right: 1})),
		)
	}

	rows := []core.Row{
		pair("Parts:", money(invoice.PartsTotal)),
		pair("Labour:", money(invoice.LabourTotal)),
	}
	if !invoice.CalloutFee.IsZero() {
		rows = append(rows, pair("Callout fee:", money(invoice.CalloutFee)))
	}
	rows = append(rows, pair("Subtotal:", money(invoice.SubTotal)))
	if !invoice.DiscountAmount.IsZero() {
		rows = append(rows, pair("Discount:", "-"+money(invoice.DiscountAmount)))
	}
	vatLabel := fmt.Sprintf("VAT (%s%%):", invoice.VATRate.StringFixed(0))
	if invoice.VATExempt {
		vatLabel = "VAT (exempt):"
	}
	rows = append(rows, pair(vatLabel, money(invoice.TaxAmount)))

	rows = append(rows, row.New(7).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL DUE:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2,
		})),
		col.New(3).Add(text.New(money(invoice.NetTotal), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1,
		})),
	))
	return rows
}

// footerRow: payment terms plus the VAT relief note for exempt customers.
func footerRow(invoice *entity.Invoice) core.Row {
	note := fmt.Sprintf("Payment due by %s. Please quote invoice number %s with your payment.",
		invoice.DueDate.Format("02/01/2006"), invoice.Number)
	if invoice.VATExempt {
		note += " VAT relief applied: the customer has declared eligibility for zero-rating."
	}
	return row.New(10).Add(col.New(12).Add(
		text.New(note, props.Text{Size: 7, Color: colorGray, Top: 2}),
	))
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
