package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mobiquip/backoffice-api/internal/domain/entity"
	"github.com/mobiquip/backoffice-api/internal/domain/repository"
)

var _ repository.TaxRepository = (*TaxRepo)(nil)

// TaxRepo TaxRepository over PostgreSQL (usable with pool or tx).
type TaxRepo struct {
	q Querier
}

// NewTaxRepository builds the adapter. Pass pool or tx (Querier).
func NewTaxRepository(q Querier) *TaxRepo {
	return &TaxRepo{q: q}
}

// GetCurrent returns the most recently effective rate, nil when none stored.
func (r *TaxRepo) GetCurrent() (*entity.TaxSetting, error) {
	query := `
		SELECT id, tax_percentage, effective_from, created_at
		FROM tax_settings
		WHERE effective_from <= NOW()
		ORDER BY effective_from DESC
		LIMIT 1`
	var s entity.TaxSetting
	err := r.q.QueryRow(context.Background(), query).Scan(
		&s.ID, &s.TaxPercentage, &s.EffectiveFrom, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get current tax: %w", err)
	}
	return &s, nil
}

// Create stores a new rate; older rows stay for audit.
func (r *TaxRepo) Create(setting *entity.TaxSetting) error {
	query := `
		INSERT INTO tax_settings (id, tax_percentage, effective_from, created_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query,
		setting.ID, setting.TaxPercentage, setting.EffectiveFrom, setting.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert tax setting: %w", err)
	}
	return nil
}
