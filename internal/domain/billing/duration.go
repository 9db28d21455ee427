package billing

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	oneHour = decimal.NewFromInt(1)
	sixty   = decimal.NewFromInt(60)
)

// ParseDurationHours normalises a technician's duration entry to fractional
// hours. Accepted forms:
//
//	"1:30"  -> 1.5   (hours:minutes)
//	"2.25"  -> 2.25  (decimal hours)
//
// Anything unparsable (including negatives) falls back to 1.0 hour, so a
// mistyped duration bills a single hour rather than zero.
func ParseDurationHours(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return oneHour
	}
	if strings.Contains(s, ":") {
		parts := strings.SplitN(s, ":", 2)
		h, errH := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
		m, errM := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
		if errH != nil || errM != nil || h < 0 || m < 0 || m >= 60 {
			return oneHour
		}
		return decimal.NewFromInt(h).Add(decimal.NewFromInt(m).Div(sixty))
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return oneHour
	}
	return d
}
