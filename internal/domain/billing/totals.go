// Package billing implements the invoice total computation engine: line-item
// aggregation, discount resolution, VAT calculation and settlement, plus the
// change-detection guard used by live draft editing.
//
// The pipeline is pure:
//
//	services, parts, adjustments
//	    -> AggregateLabour / AggregateParts
//	    -> ResolveDiscount
//	    -> CalculateTax
//	    -> net total
//
// All amounts are shopspring decimals; rounding to two places happens only at
// the display edge (PDF, XML export), never inside the pipeline.
package billing

import (
	"github.com/shopspring/decimal"

	"github.com/mobiquip/backoffice-api/internal/domain"
	"github.com/mobiquip/backoffice-api/internal/domain/entity"
)

// Defaults applied inside the engine.
var (
	// DefaultLabourRate is charged per hour when a service line has no rate.
	DefaultLabourRate = decimal.NewFromInt(50)
	// DefaultVATPercent is the UK standard rate, used when no stored rate is
	// available.
	DefaultVATPercent = decimal.NewFromInt(20)
)

var oneHundred = decimal.NewFromInt(100)

// ServiceLine is the engine's view of a labour line.
type ServiceLine struct {
	Duration string          // "H:MM" or decimal hours
	Rate     decimal.Decimal // zero means DefaultLabourRate
}

// PartLine is the engine's view of a part line. TotalCost, when set, is
// authoritative over Quantity*UnitCost.
type PartLine struct {
	Quantity  int64
	UnitCost  decimal.Decimal
	TotalCost *decimal.Decimal
}

// Adjustments are the invoice-level inputs that shape the totals.
type Adjustments struct {
	CalloutFee     decimal.Decimal
	DiscountType   string // entity.DiscountPercentage | entity.DiscountFixedAmount
	DiscountValue  decimal.Decimal
	VATExempt      bool
	VATRatePercent decimal.Decimal // already resolved; the engine applies it as given
}

// Totals are the derived monetary fields. They are never independently
// mutable; every field is a function of the inputs above.
type Totals struct {
	PartsTotal     decimal.Decimal
	LabourTotal    decimal.Decimal
	SubTotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxAmount      decimal.Decimal
	NetTotal       decimal.Decimal
}

// ServiceAmount derives a single labour line's amount: durationHours * rate.
func ServiceAmount(l ServiceLine) decimal.Decimal {
	rate := l.Rate
	if rate.IsZero() {
		rate = DefaultLabourRate
	}
	return ParseDurationHours(l.Duration).Mul(rate)
}

// PartAmount derives a single part line's amount: the explicit total when
// present, otherwise quantity * unit cost.
func PartAmount(l PartLine) decimal.Decimal {
	if l.TotalCost != nil {
		return *l.TotalCost
	}
	return decimal.NewFromInt(l.Quantity).Mul(l.UnitCost)
}

// AggregateLabour sums the labour lines. Empty input yields zero.
func AggregateLabour(services []ServiceLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range services {
		total = total.Add(ServiceAmount(l))
	}
	return total
}

// AggregateParts sums the part lines. Empty input yields zero. Negative
// quantities or costs are not clamped here; form validation rejects them
// before they reach the engine.
func AggregateParts(parts []PartLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range parts {
		total = total.Add(PartAmount(l))
	}
	return total
}

// ResolveDiscount turns the discount inputs into an amount, never exceeding
// the subtotal. Percentage values are rounded to one decimal place before
// applying so a displayed "12.5%" and the applied rate cannot drift apart.
func ResolveDiscount(subTotal decimal.Decimal, discountType string, value decimal.Decimal) decimal.Decimal {
	if value.LessThanOrEqual(decimal.Zero) || subTotal.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	var amount decimal.Decimal
	switch discountType {
	case entity.DiscountFixedAmount:
		amount = value
	default: // entity.DiscountPercentage
		amount = subTotal.Mul(value.Round(1)).Div(oneHundred)
	}
	if amount.GreaterThan(subTotal) {
		return subTotal
	}
	return amount
}

// CalculateTax applies VAT to the discounted base. Exempt customers pay no
// VAT regardless of the rate.
func CalculateTax(taxableBase decimal.Decimal, vatExempt bool, ratePercent decimal.Decimal) decimal.Decimal {
	if vatExempt {
		return decimal.Zero
	}
	return taxableBase.Mul(ratePercent).Div(oneHundred)
}

// Compute runs the full pipeline and returns the derived totals.
//
// A negative net total cannot occur through this path (the discount is
// clamped to the subtotal), so one indicates an upstream invariant violation
// and is surfaced as an error rather than silently clamped.
func Compute(services []ServiceLine, parts []PartLine, adj Adjustments) (Totals, error) {
	partsTotal := AggregateParts(parts)
	labourTotal := AggregateLabour(services)
	subTotal := partsTotal.Add(labourTotal).Add(adj.CalloutFee)

	discountAmount := ResolveDiscount(subTotal, adj.DiscountType, adj.DiscountValue)
	taxAmount := CalculateTax(subTotal.Sub(discountAmount), adj.VATExempt, adj.VATRatePercent)
	netTotal := subTotal.Sub(discountAmount).Add(taxAmount)

	t := Totals{
		PartsTotal:     partsTotal,
		LabourTotal:    labourTotal,
		SubTotal:       subTotal,
		DiscountAmount: discountAmount,
		TaxAmount:      taxAmount,
		NetTotal:       netTotal,
	}
	if netTotal.IsNegative() {
		return t, domain.ErrNegativeNetTotal
	}
	return t, nil
}
