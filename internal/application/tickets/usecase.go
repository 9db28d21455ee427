package tickets

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mobiquip/backoffice-api/internal/application/dto"
	jobsapp "github.com/mobiquip/backoffice-api/internal/application/jobs"
	"github.com/mobiquip/backoffice-api/internal/domain"
	"github.com/mobiquip/backoffice-api/internal/domain/entity"
	"github.com/mobiquip/backoffice-api/internal/domain/repository"
)

// UseCase ticket intake and triage. Tickets arrive from the shop floor or
// the phone line and either get closed or converted into a technician job.
type UseCase struct {
	ticketRepo   repository.TicketRepository
	customerRepo repository.CustomerRepository
	jobs         *jobsapp.UseCase
}

// NewUseCase builds the use case.
func NewUseCase(ticketRepo repository.TicketRepository, customerRepo repository.CustomerRepository, jobs *jobsapp.UseCase) *UseCase {
	return &UseCase{ticketRepo: ticketRepo, customerRepo: customerRepo, jobs: jobs}
}

// Create records a new intake ticket.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateTicketRequest) (*dto.TicketResponse, error) {
	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil || customer == nil {
		return nil, fmt.Errorf("%w: customer", domain.ErrNotFound)
	}
	priority := in.Priority
	if priority == "" {
		priority = entity.TicketPriorityNormal
	}
	now := time.Now()
	t := &entity.Ticket{
		ID:          uuid.New().String(),
		CustomerID:  in.CustomerID,
		Subject:     in.Subject,
		Description: in.Description,
		Priority:    priority,
		Status:      entity.TicketStatusNew,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.ticketRepo.Create(t); err != nil {
		return nil, err
	}
	return toTicketResponse(t), nil
}

// Get returns a single ticket.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.TicketResponse, error) {
	t, err := uc.ticketRepo.GetByID(id)
	if err != nil || t == nil {
		return nil, domain.ErrNotFound
	}
	return toTicketResponse(t), nil
}

// List returns tickets, optionally filtered by status.
func (uc *UseCase) List(ctx context.Context, status string, limit, offset int) ([]*dto.TicketResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.ticketRepo.List(status, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.TicketResponse, 0, len(list))
	for _, t := range list {
		out = append(out, toTicketResponse(t))
	}
	return out, nil
}

// Tickets move forward only. Converted is reachable solely through Convert,
// and closed is terminal.
var ticketTransitions = map[string][]string{
	entity.TicketStatusNew:     {entity.TicketStatusTriaged, entity.TicketStatusClosed},
	entity.TicketStatusTriaged: {entity.TicketStatusClosed},
}

// Update changes status and/or priority. Converted tickets are frozen.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdateTicketRequest) (*dto.TicketResponse, error) {
	t, err := uc.ticketRepo.GetByID(id)
	if err != nil || t == nil {
		return nil, domain.ErrNotFound
	}
	if t.Status == entity.TicketStatusConverted {
		return nil, fmt.Errorf("%w: ticket already converted to a job", domain.ErrConflict)
	}
	if in.Status != "" && in.Status != t.Status {
		allowed := false
		for _, next := range ticketTransitions[t.Status] {
			if next == in.Status {
				allowed = true
				break
			}
		}
		if !allowed {
			return nil, fmt.Errorf("%w: cannot move ticket from %s to %s", domain.ErrConflict, t.Status, in.Status)
		}
		t.Status = in.Status
	}
	if in.Priority != "" {
		t.Priority = in.Priority
	}
	t.UpdatedAt = time.Now()
	if err := uc.ticketRepo.Update(t); err != nil {
		return nil, err
	}
	return toTicketResponse(t), nil
}

// Convert turns a ticket into a technician job and freezes the ticket.
func (uc *UseCase) Convert(ctx context.Context, id string, in dto.ConvertTicketRequest) (*dto.JobResponse, error) {
	t, err := uc.ticketRepo.GetByID(id)
	if err != nil || t == nil {
		return nil, domain.ErrNotFound
	}
	if t.Status == entity.TicketStatusConverted || t.Status == entity.TicketStatusClosed {
		return nil, fmt.Errorf("%w: ticket is %s", domain.ErrConflict, t.Status)
	}

	job, err := uc.jobs.Create(ctx, dto.CreateJobRequest{
		CustomerID:     t.CustomerID,
		TechnicianName: in.TechnicianName,
		Summary:        t.Subject,
		ScheduledFor:   in.ScheduledFor,
	})
	if err != nil {
		return nil, err
	}

	t.Status = entity.TicketStatusConverted
	t.JobID = job.ID
	t.UpdatedAt = time.Now()
	if err := uc.ticketRepo.Update(t); err != nil {
		return nil, err
	}
	return job, nil
}

func toTicketResponse(t *entity.Ticket) *dto.TicketResponse {
	return &dto.TicketResponse{
		ID:          t.ID,
		CustomerID:  t.CustomerID,
		Subject:     t.Subject,
		Description: t.Description,
		Priority:    t.Priority,
		Status:      t.Status,
		JobID:       t.JobID,
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
	}
}
