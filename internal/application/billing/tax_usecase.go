package billing

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/mobiquip/backoffice-api/internal/application/dto"
	domainbilling "github.com/mobiquip/backoffice-api/internal/domain/billing"
	"github.com/mobiquip/backoffice-api/internal/domain/repository"
	"github.com/mobiquip/backoffice-api/pkg/logger"
)

// DefaultTaxUseCase serves the process-wide default VAT rate. The stored
// rate is looked up once and cached; a failed lookup is non-fatal and falls
// back to the configured rate so invoice editing is never blocked on it.
type DefaultTaxUseCase struct {
	repo     repository.TaxRepository
	log      *logger.Logger
	fallback decimal.Decimal

	once sync.Once
	rate decimal.Decimal
}

// NewDefaultTaxUseCase builds the use case. log may be nil; a non-positive
// fallback uses the engine's standard rate.
func NewDefaultTaxUseCase(repo repository.TaxRepository, log *logger.Logger, fallback decimal.Decimal) *DefaultTaxUseCase {
	if !fallback.IsPositive() {
		fallback = domainbilling.DefaultVATPercent
	}
	return &DefaultTaxUseCase{repo: repo, log: log, fallback: fallback}
}

// DefaultRate returns the default VAT percentage, loading it on first use.
func (uc *DefaultTaxUseCase) DefaultRate() decimal.Decimal {
	uc.once.Do(func() {
		uc.rate = uc.fallback
		setting, err := uc.repo.GetCurrent()
		if err != nil {
			if uc.log != nil {
				uc.log.Warn().Err(err).Msg("default tax lookup failed, using fallback rate")
			}
			return
		}
		if setting != nil {
			uc.rate = setting.TaxPercentage
		}
	})
	return uc.rate
}

// Get builds the GET /api/default-tax response.
func (uc *DefaultTaxUseCase) Get() dto.DefaultTaxResponse {
	return dto.DefaultTaxResponse{TaxPercentage: uc.DefaultRate()}
}

// Resolve picks the per-invoice override when present, the default otherwise.
func (uc *DefaultTaxUseCase) Resolve(override decimal.Decimal) decimal.Decimal {
	if override.GreaterThan(decimal.Zero) {
		return override
	}
	return uc.DefaultRate()
}
