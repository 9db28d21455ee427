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

var _ repository.ServiceTypeRepository = (*ServiceTypeRepo)(nil)

// ServiceTypeRepo ServiceTypeRepository over PostgreSQL (usable with pool or tx).
type ServiceTypeRepo struct {
	q Querier
}

// NewServiceTypeRepository builds the adapter. Pass pool or tx (Querier).
func NewServiceTypeRepository(q Querier) *ServiceTypeRepo {
	return &ServiceTypeRepo{q: q}
}

// Create persists a new service type.
func (r *ServiceTypeRepo) Create(st *entity.ServiceType) error {
	query := `
		INSERT INTO service_types (id, name, description, hourly_rate, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		st.ID, st.Name, nullIfEmpty(st.Description), st.HourlyRate, st.IsActive, st.CreatedAt, st.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert service type: %w", err)
	}
	return nil
}

// GetByID returns a service type by ID, nil when missing.
func (r *ServiceTypeRepo) GetByID(id string) (*entity.ServiceType, error) {
	query := `
		SELECT id, name, COALESCE(description, ''), hourly_rate, is_active, created_at, updated_at
		FROM service_types WHERE id = $1`
	var st entity.ServiceType
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&st.ID, &st.Name, &st.Description, &st.HourlyRate, &st.IsActive, &st.CreatedAt, &st.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get service type: %w", err)
	}
	return &st, nil
}

// List returns service types ordered by name.
func (r *ServiceTypeRepo) List(onlyActive bool, limit, offset int) ([]*entity.ServiceType, error) {
	query := `
		SELECT id, name, COALESCE(description, ''), hourly_rate, is_active, created_at, updated_at
		FROM service_types
		WHERE ($1 = false OR is_active = true)
		ORDER BY name
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, onlyActive, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list service types: %w", err)
	}
	defer rows.Close()

	var out []*entity.ServiceType
	for rows.Next() {
		var st entity.ServiceType
		if err := rows.Scan(
			&st.ID, &st.Name, &st.Description, &st.HourlyRate, &st.IsActive, &st.CreatedAt, &st.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan service type: %w", err)
		}
		out = append(out, &st)
	}
	return out, rows.Err()
}
