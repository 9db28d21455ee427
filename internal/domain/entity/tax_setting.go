package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaxSetting holds the process-wide default VAT rate. There is a single
// current row; historical rates keep their EffectiveFrom for audit.
type TaxSetting struct {
	ID            string
	TaxPercentage decimal.Decimal
	EffectiveFrom time.Time
	CreatedAt     time.Time
}
