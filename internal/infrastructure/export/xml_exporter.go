// Package export renders customer invoices as XML for import into the
// retailer's accounts package.
package export

import (
	"context"
	"fmt"

	"github.com/beevik/etree"

	appbilling "github.com/mobiquip/backoffice-api/internal/application/billing"
	"github.com/mobiquip/backoffice-api/internal/domain/entity"
)

var _ appbilling.InvoiceXMLExporter = (*XMLExporter)(nil)

// XMLExporter implements billing.InvoiceXMLExporter.
type XMLExporter struct{}

// NewXMLExporter builds the exporter.
func NewXMLExporter() *XMLExporter {
	return &XMLExporter{}
}

// ExportInvoiceXML serialises the invoice. All amounts carry two decimal
// places; the figures are the stored totals, never recomputed.
func (e *XMLExporter) ExportInvoiceXML(
	_ context.Context,
	invoice *entity.Invoice,
	customer *entity.Customer,
	services []*entity.InvoiceService,
	parts []*entity.InvoicePart,
) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("invoice")
	root.CreateAttr("number", invoice.Number)
	root.CreateAttr("status", invoice.Status)

	root.CreateElement("invoiceDate").SetText(invoice.InvoiceDate.Format("2006-01-02"))
	root.CreateElement("dueDate").SetText(invoice.DueDate.Format("2006-01-02"))

	cust := root.CreateElement("customer")
	cust.CreateAttr("id", invoice.CustomerID)
	cust.CreateElement("name").SetText(customer.Name)
	if customer.Email != "" {
		cust.CreateElement("email").SetText(customer.Email)
	}
	if customer.Address != "" {
		cust.CreateElement("address").SetText(customer.Address)
	}
	if customer.Postcode != "" {
		cust.CreateElement("postcode").SetText(customer.Postcode)
	}
	cust.CreateElement("vatExempt").SetText(fmt.Sprintf("%t", customer.VATExempt))

	if len(services) > 0 {
		svcEl := root.CreateElement("services")
		for _, s := range services {
			el := svcEl.CreateElement("service")
			el.CreateElement("description").SetText(s.Description)
			el.CreateElement("duration").SetText(s.Duration)
			el.CreateElement("rate").SetText(s.Rate.StringFixed(2))
			el.CreateElement("amount").SetText(s.Amount.StringFixed(2))
		}
	}
	if len(parts) > 0 {
		partEl := root.CreateElement("parts")
		for _, p := range parts {
			el := partEl.CreateElement("part")
			el.CreateElement("name").SetText(p.Name)
			el.CreateElement("quantity").SetText(fmt.Sprintf("%d", p.Quantity))
			el.CreateElement("unitCost").SetText(p.UnitCost.StringFixed(2))
			if p.TotalCost != nil {
				el.CreateElement("totalCost").SetText(p.TotalCost.StringFixed(2))
			}
			el.CreateElement("amount").SetText(p.Amount.StringFixed(2))
		}
	}

	totals := root.CreateElement("totals")
	totals.CreateElement("partsTotal").SetText(invoice.PartsTotal.StringFixed(2))
	totals.CreateElement("labourTotal").SetText(invoice.LabourTotal.StringFixed(2))
	if !invoice.CalloutFee.IsZero() {
		totals.CreateElement("calloutFee").SetText(invoice.CalloutFee.StringFixed(2))
	}
	totals.CreateElement("subTotal").SetText(invoice.SubTotal.StringFixed(2))
	totals.CreateElement("discountAmount").SetText(invoice.DiscountAmount.StringFixed(2))
	tax := totals.CreateElement("taxAmount")
	tax.CreateAttr("ratePercent", invoice.VATRate.StringFixed(2))
	tax.CreateAttr("exempt", fmt.Sprintf("%t", invoice.VATExempt))
	tax.SetText(invoice.TaxAmount.StringFixed(2))
	totals.CreateElement("netTotal").SetText(invoice.NetTotal.StringFixed(2))

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("export: serialise invoice XML: %w", err)
	}
	return out, nil
}
