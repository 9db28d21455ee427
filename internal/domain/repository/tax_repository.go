package repository

import "github.com/mobiquip/backoffice-api/internal/domain/entity"

// TaxRepository is the persistence port for the default VAT rate.
type TaxRepository interface {
	// GetCurrent returns the current default rate, nil when none is stored.
	GetCurrent() (*entity.TaxSetting, error)
	Create(setting *entity.TaxSetting) error
}
