package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/mobiquip/backoffice-api/internal/domain/entity"
	"github.com/mobiquip/backoffice-api/internal/domain/repository"
)

var _ repository.JobRepository = (*JobRepo)(nil)

// JobRepo JobRepository over PostgreSQL (usable with pool or tx).
type JobRepo struct {
	q Querier
}

// NewJobRepository builds the adapter. Pass pool or tx (Querier).
func NewJobRepository(q Querier) *JobRepo {
	return &JobRepo{q: q}
}

// Create persists a job header.
func (r *JobRepo) Create(job *entity.TechnicianJob) error {
	query := `
		INSERT INTO technician_jobs (id, customer_id, technician_name, equipment, summary, status, scheduled_for, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	var scheduled *time.Time
	if !job.ScheduledFor.IsZero() {
		scheduled = &job.ScheduledFor
	}
	_, err := r.q.Exec(context.Background(), query,
		job.ID, job.CustomerID, job.TechnicianName, nullIfEmpty(job.Equipment), nullIfEmpty(job.Summary),
		job.Status, scheduled, job.IsActive, job.CreatedAt, job.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	return nil
}

// CreateService persists a labour line.
func (r *JobRepo) CreateService(svc *entity.JobService) error {
	query := `
		INSERT INTO job_services (id, job_id, service_type_id, description, duration, rate)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		svc.ID, svc.JobID, nullIfEmpty(svc.ServiceTypeID), svc.Description, svc.Duration, svc.Rate,
	)
	if err != nil {
		return fmt.Errorf("insert job service: %w", err)
	}
	return nil
}

// CreatePart persists a part line.
func (r *JobRepo) CreatePart(part *entity.JobPart) error {
	query := `
		INSERT INTO job_parts (id, job_id, part_id, name, quantity, unit_cost, total_cost)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		part.ID, part.JobID, nullIfEmpty(part.PartID), part.Name, part.Quantity, part.UnitCost, part.TotalCost,
	)
	if err != nil {
		return fmt.Errorf("insert job part: %w", err)
	}
	return nil
}

// CreateActivity appends a note to the job's activity log.
func (r *JobRepo) CreateActivity(act *entity.JobActivity) error {
	query := `
		INSERT INTO job_activities (id, job_id, recorded_by, note, recorded_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		act.ID, act.JobID, act.RecordedBy, act.Note, act.RecordedAt,
	)
	if err != nil {
		return fmt.Errorf("insert job activity: %w", err)
	}
	return nil
}

// GetByID returns a job header by ID, nil when missing.
func (r *JobRepo) GetByID(id string) (*entity.TechnicianJob, error) {
	query := `
		SELECT id, customer_id, technician_name, COALESCE(equipment, ''), COALESCE(summary, ''),
		       status, scheduled_for, is_active, created_at, updated_at
		FROM technician_jobs WHERE id = $1`
	var j entity.TechnicianJob
	var scheduled *time.Time
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&j.ID, &j.CustomerID, &j.TechnicianName, &j.Equipment, &j.Summary,
		&j.Status, &scheduled, &j.IsActive, &j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get job: %w", err)
	}
	if scheduled != nil {
		j.ScheduledFor = *scheduled
	}
	return &j, nil
}

// GetServicesByJobID returns the labour lines in insertion order.
func (r *JobRepo) GetServicesByJobID(jobID string) ([]*entity.JobService, error) {
	query := `
		SELECT id, job_id, COALESCE(service_type_id, ''), description, duration, rate
		FROM job_services WHERE job_id = $1
		ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, jobID)
	if err != nil {
		return nil, fmt.Errorf("list job services: %w", err)
	}
	defer rows.Close()

	var out []*entity.JobService
	for rows.Next() {
		var s entity.JobService
		if err := rows.Scan(&s.ID, &s.JobID, &s.ServiceTypeID, &s.Description, &s.Duration, &s.Rate); err != nil {
			return nil, fmt.Errorf("scan job service: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

// GetPartsByJobID returns the part lines in insertion order.
func (r *JobRepo) GetPartsByJobID(jobID string) ([]*entity.JobPart, error) {
	query := `
		SELECT id, job_id, COALESCE(part_id, ''), name, quantity, unit_cost, total_cost
		FROM job_parts WHERE job_id = $1
		ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, jobID)
	if err != nil {
		return nil, fmt.Errorf("list job parts: %w", err)
	}
	defer rows.Close()

	var out []*entity.JobPart
	for rows.Next() {
		var p entity.JobPart
		if err := rows.Scan(&p.ID, &p.JobID, &p.PartID, &p.Name, &p.Quantity, &p.UnitCost, &p.TotalCost); err != nil {
			return nil, fmt.Errorf("scan job part: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

// GetActivitiesByJobID returns the activity log, newest first.
func (r *JobRepo) GetActivitiesByJobID(jobID string) ([]*entity.JobActivity, error) {
	query := `
		SELECT id, job_id, recorded_by, note, recorded_at
		FROM job_activities WHERE job_id = $1
		ORDER BY recorded_at DESC`
	rows, err := r.q.Query(context.Background(), query, jobID)
	if err != nil {
		return nil, fmt.Errorf("list job activities: %w", err)
	}
	defer rows.Close()

	var out []*entity.JobActivity
	for rows.Next() {
		var a entity.JobActivity
		if err := rows.Scan(&a.ID, &a.JobID, &a.RecordedBy, &a.Note, &a.RecordedAt); err != nil {
			return nil, fmt.Errorf("scan job activity: %w", err)
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}

// List returns job headers, newest first.
func (r *JobRepo) List(onlyActive bool, limit, offset int) ([]*entity.TechnicianJob, error) {
	query := `
		SELECT id, customer_id, technician_name, COALESCE(equipment, ''), COALESCE(summary, ''),
		       status, scheduled_for, is_active, created_at, updated_at
		FROM technician_jobs
		WHERE ($1 = false OR is_active = true)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, onlyActive, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	var out []*entity.TechnicianJob
	for rows.Next() {
		var j entity.TechnicianJob
		var scheduled *time.Time
		if err := rows.Scan(
			&j.ID, &j.CustomerID, &j.TechnicianName, &j.Equipment, &j.Summary,
			&j.Status, &scheduled, &j.IsActive, &j.CreatedAt, &j.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		if scheduled != nil {
			j.ScheduledFor = *scheduled
		}
		out = append(out, &j)
	}
	return out, rows.Err()
}

// UpdateStatus flips the job status.
func (r *JobRepo) UpdateStatus(id, status string) error {
	query := `UPDATE technician_jobs SET status = $2, updated_at = NOW() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, status)
	if err != nil {
		return fmt.Errorf("update job status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update job status: job %s not found", id)
	}
	return nil
}
