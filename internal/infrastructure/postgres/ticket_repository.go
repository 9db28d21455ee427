package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mobiquip/backoffice-api/internal/domain/entity"
	"github.com/mobiquip/backoffice-api/internal/domain/repository"
)

var _ repository.TicketRepository = (*TicketRepo)(nil)

// TicketRepo TicketRepository over PostgreSQL (usable with pool or tx).
type TicketRepo struct {
	q Querier
}

// NewTicketRepository builds the adapter. Pass pool or tx (Querier).
func NewTicketRepository(q Querier) *TicketRepo {
	return &TicketRepo{q: q}
}

// Create persists a new ticket.
func (r *TicketRepo) Create(ticket *entity.Ticket) error {
	query := `
		INSERT INTO tickets (id, customer_id, subject, description, priority, status, job_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		ticket.ID, ticket.CustomerID, ticket.Subject, nullIfEmpty(ticket.Description),
		ticket.Priority, ticket.Status, nullIfEmpty(ticket.JobID), ticket.CreatedAt, ticket.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert ticket: %w", err)
	}
	return nil
}

// GetByID returns a ticket by ID, nil when missing.
func (r *TicketRepo) GetByID(id string) (*entity.Ticket, error) {
	query := `
		SELECT id, customer_id, subject, COALESCE(description, ''), priority, status, COALESCE(job_id, ''), created_at, updated_at
		FROM tickets WHERE id = $1`
	var t entity.Ticket
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&t.ID, &t.CustomerID, &t.Subject, &t.Description, &t.Priority, &t.Status, &t.JobID, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ticket: %w", err)
	}
	return &t, nil
}

// List returns tickets, newest first, optionally filtered by status.
func (r *TicketRepo) List(status string, limit, offset int) ([]*entity.Ticket, error) {
	query := `
		SELECT id, customer_id, subject, COALESCE(description, ''), priority, status, COALESCE(job_id, ''), created_at, updated_at
		FROM tickets
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	defer rows.Close()

	var out []*entity.Ticket
	for rows.Next() {
		var t entity.Ticket
		if err := rows.Scan(
			&t.ID, &t.CustomerID, &t.Subject, &t.Description, &t.Priority, &t.Status, &t.JobID, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan ticket: %w", err)
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}

// Update persists status, priority and the converted-to job reference.
func (r *TicketRepo) Update(ticket *entity.Ticket) error {
	query := `
		UPDATE tickets
		SET subject = $2, description = $3, priority = $4, status = $5, job_id = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		ticket.ID, ticket.Subject, nullIfEmpty(ticket.Description), ticket.Priority, ticket.Status,
		nullIfEmpty(ticket.JobID), ticket.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update ticket: %w", err)
	}
	return nil
}
