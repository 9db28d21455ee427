package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mobiquip/backoffice-api/internal/application/dto"
	"github.com/mobiquip/backoffice-api/internal/domain"
	"github.com/mobiquip/backoffice-api/internal/domain/entity"
	"github.com/mobiquip/backoffice-api/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// UseCase technician job management: booking, activity recording and the
// job detail an invoice is pre-populated from.
type UseCase struct {
	jobRepo      repository.JobRepository
	customerRepo repository.CustomerRepository
	partRepo     repository.PartRepository
	stRepo       repository.ServiceTypeRepository
}

// NewUseCase builds the use case.
func NewUseCase(
	jobRepo repository.JobRepository,
	customerRepo repository.CustomerRepository,
	partRepo repository.PartRepository,
	stRepo repository.ServiceTypeRepository,
) *UseCase {
	return &UseCase{jobRepo: jobRepo, customerRepo: customerRepo, partRepo: partRepo, stRepo: stRepo}
}

// Create books a job with its initial service and part lines.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateJobRequest) (*dto.JobResponse, error) {
	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil || customer == nil {
		return nil, fmt.Errorf("%w: customer", domain.ErrNotFound)
	}

	var scheduled time.Time
	if in.ScheduledFor != "" {
		scheduled, err = time.Parse(dateLayout, in.ScheduledFor)
		if err != nil {
			return nil, fmt.Errorf("%w: scheduled_for", domain.ErrInvalidInput)
		}
	}

	now := time.Now()
	job := &entity.TechnicianJob{
		ID:             uuid.New().String(),
		CustomerID:     in.CustomerID,
		TechnicianName: in.TechnicianName,
		Equipment:      in.Equipment,
		Summary:        in.Summary,
		Status:         entity.JobStatusOpen,
		ScheduledFor:   scheduled,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.jobRepo.Create(job); err != nil {
		return nil, err
	}

	for _, s := range in.Services {
		if s.ServiceTypeID != "" {
			st, err := uc.stRepo.GetByID(s.ServiceTypeID)
			if err != nil || st == nil {
				return nil, fmt.Errorf("%w: service type %s", domain.ErrNotFound, s.ServiceTypeID)
			}
			// Service-type rate is the default when the line carries none.
			if s.Rate.IsZero() {
				s.Rate = st.HourlyRate
			}
			if s.Description == "" {
				s.Description = st.Name
			}
		}
		line := &entity.JobService{
			ID:            uuid.New().String(),
			JobID:         job.ID,
			ServiceTypeID: s.ServiceTypeID,
			Description:   s.Description,
			Duration:      s.Duration,
			Rate:          s.Rate,
		}
		if err := uc.jobRepo.CreateService(line); err != nil {
			return nil, err
		}
	}
	for _, p := range in.Parts {
		if p.PartID == "" && p.Name == "" {
			return nil, fmt.Errorf("%w: part line needs a catalogue part or a description", domain.ErrInvalidInput)
		}
		if p.Quantity < 0 || p.UnitCost.IsNegative() {
			return nil, fmt.Errorf("%w: negative part quantity or cost", domain.ErrInvalidInput)
		}
		if p.PartID != "" {
			part, err := uc.partRepo.GetByID(p.PartID)
			if err != nil || part == nil {
				return nil, fmt.Errorf("%w: mobility part %s", domain.ErrNotFound, p.PartID)
			}
			if p.Name == "" {
				p.Name = part.Name
			}
			if p.UnitCost.IsZero() && p.TotalCost == nil {
				p.UnitCost = part.UnitCost
			}
		}
		line := &entity.JobPart{
			ID:        uuid.New().String(),
			JobID:     job.ID,
			PartID:    p.PartID,
			Name:      p.Name,
			Quantity:  p.Quantity,
			UnitCost:  p.UnitCost,
			TotalCost: p.TotalCost,
		}
		if err := uc.jobRepo.CreatePart(line); err != nil {
			return nil, err
		}
	}

	return uc.Get(ctx, job.ID)
}

// Get loads the full job detail: lines plus activity log.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.JobResponse, error) {
	job, err := uc.jobRepo.GetByID(id)
	if err != nil || job == nil {
		return nil, domain.ErrNotFound
	}
	services, err := uc.jobRepo.GetServicesByJobID(id)
	if err != nil {
		return nil, err
	}
	parts, err := uc.jobRepo.GetPartsByJobID(id)
	if err != nil {
		return nil, err
	}
	activities, err := uc.jobRepo.GetActivitiesByJobID(id)
	if err != nil {
		return nil, err
	}

	customerName := ""
	if customer, _ := uc.customerRepo.GetByID(job.CustomerID); customer != nil {
		customerName = customer.Name
	}

	resp := &dto.JobResponse{
		ID:             job.ID,
		CustomerID:     job.CustomerID,
		CustomerName:   customerName,
		TechnicianName: job.TechnicianName,
		Equipment:      job.Equipment,
		Summary:        job.Summary,
		Status:         job.Status,
		IsActive:       job.IsActive,
		Services:       make([]dto.JobServiceResponse, 0, len(services)),
		Parts:          make([]dto.JobPartResponse, 0, len(parts)),
		Activities:     make([]dto.JobActivityResponse, 0, len(activities)),
	}
	if !job.ScheduledFor.IsZero() {
		resp.ScheduledFor = job.ScheduledFor.Format(dateLayout)
	}
	for _, s := range services {
		resp.Services = append(resp.Services, dto.JobServiceResponse{
			ID:            s.ID,
			ServiceTypeID: s.ServiceTypeID,
			Description:   s.Description,
			Duration:      s.Duration,
			Rate:          s.Rate,
		})
	}
	for _, p := range parts {
		resp.Parts = append(resp.Parts, dto.JobPartResponse{
			ID:        p.ID,
			PartID:    p.PartID,
			Name:      p.Name,
			Quantity:  p.Quantity,
			UnitCost:  p.UnitCost,
			TotalCost: p.TotalCost,
		})
	}
	for _, a := range activities {
		resp.Activities = append(resp.Activities, dto.JobActivityResponse{
			ID:         a.ID,
			RecordedBy: a.RecordedBy,
			Note:       a.Note,
			RecordedAt: a.RecordedAt.Format(time.RFC3339),
		})
	}
	return resp, nil
}

// List returns job summaries, active ones only unless asked otherwise.
func (uc *UseCase) List(ctx context.Context, includeInactive bool, limit, offset int) ([]*dto.JobSummaryResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.jobRepo.List(!includeInactive, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.JobSummaryResponse, 0, len(list))
	for _, j := range list {
		row := &dto.JobSummaryResponse{
			ID:             j.ID,
			CustomerID:     j.CustomerID,
			TechnicianName: j.TechnicianName,
			Equipment:      j.Equipment,
			Status:         j.Status,
			IsActive:       j.IsActive,
		}
		if !j.ScheduledFor.IsZero() {
			row.ScheduledFor = j.ScheduledFor.Format(dateLayout)
		}
		out = append(out, row)
	}
	return out, nil
}

// RecordActivity appends a technician note to the job's activity log.
func (uc *UseCase) RecordActivity(ctx context.Context, jobID, userID string, in dto.RecordActivityRequest) (*dto.JobActivityResponse, error) {
	job, err := uc.jobRepo.GetByID(jobID)
	if err != nil || job == nil {
		return nil, domain.ErrNotFound
	}
	if in.Note == "" {
		return nil, domain.ErrInvalidInput
	}
	act := &entity.JobActivity{
		ID:         uuid.New().String(),
		JobID:      jobID,
		RecordedBy: userID,
		Note:       in.Note,
		RecordedAt: time.Now(),
	}
	if err := uc.jobRepo.CreateActivity(act); err != nil {
		return nil, err
	}
	return &dto.JobActivityResponse{
		ID:         act.ID,
		RecordedBy: act.RecordedBy,
		Note:       act.Note,
		RecordedAt: act.RecordedAt.Format(time.RFC3339),
	}, nil
}

// Allowed job status transitions. "invoiced" is only reached through
// invoice creation, never through this endpoint.
var jobTransitions = map[string][]string{
	entity.JobStatusOpen:       {entity.JobStatusInProgress},
	entity.JobStatusInProgress: {entity.JobStatusCompleted, entity.JobStatusOpen},
	entity.JobStatusCompleted:  {entity.JobStatusInProgress},
}

// UpdateStatus moves a job along its lifecycle.
func (uc *UseCase) UpdateStatus(ctx context.Context, id, status string) error {
	job, err := uc.jobRepo.GetByID(id)
	if err != nil || job == nil {
		return domain.ErrNotFound
	}
	allowed := false
	for _, next := range jobTransitions[job.Status] {
		if next == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return fmt.Errorf("%w: %s -> %s", domain.ErrConflict, job.Status, status)
	}
	return uc.jobRepo.UpdateStatus(id, status)
}
