package billing

import "github.com/shopspring/decimal"

// Tolerance under which two amounts are considered materially equal. Matches
// the sub-penny noise a float round-trip through a display field can add.
var Tolerance = decimal.RequireFromString("0.01")

// WithinTolerance reports whether two amounts differ by less than Tolerance.
func WithinTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThan(Tolerance)
}

// TotalsWithinTolerance reports whether every derived field of two totals is
// within tolerance. Used by the change-detection guard to suppress redundant
// writes; it never alters the computed values.
func TotalsWithinTolerance(a, b Totals) bool {
	return WithinTolerance(a.PartsTotal, b.PartsTotal) &&
		WithinTolerance(a.LabourTotal, b.LabourTotal) &&
		WithinTolerance(a.SubTotal, b.SubTotal) &&
		WithinTolerance(a.DiscountAmount, b.DiscountAmount) &&
		WithinTolerance(a.TaxAmount, b.TaxAmount) &&
		WithinTolerance(a.NetTotal, b.NetTotal)
}
