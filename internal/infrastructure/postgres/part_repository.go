package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mobiquip/backoffice-api/internal/domain"
	"github.com/mobiquip/backoffice-api/internal/domain/entity"
	"github.com/mobiquip/backoffice-api/internal/domain/repository"
)

var _ repository.PartRepository = (*PartRepo)(nil)

// PartRepo PartRepository over PostgreSQL (usable with pool or tx).
type PartRepo struct {
	q Querier
}

// NewPartRepository builds the adapter. Pass pool or tx (Querier).
func NewPartRepository(q Querier) *PartRepo {
	return &PartRepo{q: q}
}

// Create persists a new catalogue part. SKU is unique.
func (r *PartRepo) Create(part *entity.MobilityPart) error {
	query := `
		INSERT INTO mobility_parts (id, sku, name, description, category, unit_cost, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		part.ID, part.SKU, part.Name, nullIfEmpty(part.Description), part.Category,
		part.UnitCost, part.IsActive, part.CreatedAt, part.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert part: %w", err)
	}
	return nil
}

const partColumns = `id, sku, name, COALESCE(description, ''), category, unit_cost, is_active, created_at, updated_at`

func scanPart(row pgx.Row) (*entity.MobilityPart, error) {
	var p entity.MobilityPart
	err := row.Scan(
		&p.ID, &p.SKU, &p.Name, &p.Description, &p.Category,
		&p.UnitCost, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByID returns a part by ID, nil when missing.
func (r *PartRepo) GetByID(id string) (*entity.MobilityPart, error) {
	query := `SELECT ` + partColumns + ` FROM mobility_parts WHERE id = $1`
	p, err := scanPart(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get part: %w", err)
	}
	return p, nil
}

// GetBySKU returns a part by SKU, nil when missing.
func (r *PartRepo) GetBySKU(sku string) (*entity.MobilityPart, error) {
	query := `SELECT ` + partColumns + ` FROM mobility_parts WHERE sku = $1`
	p, err := scanPart(r.q.QueryRow(context.Background(), query, sku))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get part by sku: %w", err)
	}
	return p, nil
}

// List returns catalogue parts ordered by name.
func (r *PartRepo) List(onlyActive bool, limit, offset int) ([]*entity.MobilityPart, error) {
	query := `
		SELECT ` + partColumns + `
		FROM mobility_parts
		WHERE ($1 = false OR is_active = true)
		ORDER BY name
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, onlyActive, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list parts: %w", err)
	}
	defer rows.Close()

	var out []*entity.MobilityPart
	for rows.Next() {
		p, err := scanPart(rows)
		if err != nil {
			return nil, fmt.Errorf("scan part: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Update persists all editable part fields. The SKU is immutable.
func (r *PartRepo) Update(part *entity.MobilityPart) error {
	query := `
		UPDATE mobility_parts
		SET name = $2, description = $3, category = $4, unit_cost = $5, is_active = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		part.ID, part.Name, nullIfEmpty(part.Description), part.Category,
		part.UnitCost, part.IsActive, part.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update part: %w", err)
	}
	return nil
}
