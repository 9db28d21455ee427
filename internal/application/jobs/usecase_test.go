package jobs

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mobiquip/backoffice-api/internal/application/dto"
	"github.com/mobiquip/backoffice-api/internal/domain"
	"github.com/mobiquip/backoffice-api/internal/domain/entity"
)

// In-memory fakes, implementing only what the use case touches.

type fakeCustomerRepo struct {
	customers map[string]*entity.Customer
}

func (r *fakeCustomerRepo) Create(c *entity.Customer) error { r.customers[c.ID] = c; return nil }
func (r *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	return r.customers[id], nil
}
func (r *fakeCustomerRepo) GetByEmail(email string) (*entity.Customer, error) { return nil, nil }
func (r *fakeCustomerRepo) List(onlyActive bool, limit, offset int) ([]*entity.Customer, error) {
	return nil, nil
}
func (r *fakeCustomerRepo) Update(c *entity.Customer) error { r.customers[c.ID] = c; return nil }

type fakePartRepo struct {
	parts map[string]*entity.MobilityPart
}

func (r *fakePartRepo) Create(p *entity.MobilityPart) error { r.parts[p.ID] = p; return nil }
func (r *fakePartRepo) GetByID(id string) (*entity.MobilityPart, error) {
	return r.parts[id], nil
}
func (r *fakePartRepo) GetBySKU(sku string) (*entity.MobilityPart, error) { return nil, nil }
func (r *fakePartRepo) List(onlyActive bool, limit, offset int) ([]*entity.MobilityPart, error) {
	return nil, nil
}
func (r *fakePartRepo) Update(p *entity.MobilityPart) error { r.parts[p.ID] = p; return nil }

type fakeServiceTypeRepo struct {
	types map[string]*entity.ServiceType
}

func (r *fakeServiceTypeRepo) Create(st *entity.ServiceType) error { r.types[st.ID] = st; return nil }
func (r *fakeServiceTypeRepo) GetByID(id string) (*entity.ServiceType, error) {
	return r.types[id], nil
}
func (r *fakeServiceTypeRepo) List(onlyActive bool, limit, offset int) ([]*entity.ServiceType, error) {
	return nil, nil
}

type fakeJobRepo struct {
	jobs     map[string]*entity.TechnicianJob
	services map[string][]*entity.JobService
	parts    map[string][]*entity.JobPart
	acts     map[string][]*entity.JobActivity
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{
		jobs:     make(map[string]*entity.TechnicianJob),
		services: make(map[string][]*entity.JobService),
		parts:    make(map[string][]*entity.JobPart),
		acts:     make(map[string][]*entity.JobActivity),
	}
}

func (r *fakeJobRepo) Create(j *entity.TechnicianJob) error { r.jobs[j.ID] = j; return nil }
func (r *fakeJobRepo) CreateService(s *entity.JobService) error {
	r.services[s.JobID] = append(r.services[s.JobID], s)
	return nil
}
func (r *fakeJobRepo) CreatePart(p *entity.JobPart) error {
	r.parts[p.JobID] = append(r.parts[p.JobID], p)
	return nil
}
func (r *fakeJobRepo) CreateActivity(a *entity.JobActivity) error {
	r.acts[a.JobID] = append(r.acts[a.JobID], a)
	return nil
}
func (r *fakeJobRepo) GetByID(id string) (*entity.TechnicianJob, error) { return r.jobs[id], nil }
func (r *fakeJobRepo) GetServicesByJobID(jobID string) ([]*entity.JobService, error) {
	return r.services[jobID], nil
}
func (r *fakeJobRepo) GetPartsByJobID(jobID string) ([]*entity.JobPart, error) {
	return r.parts[jobID], nil
}
func (r *fakeJobRepo) GetActivitiesByJobID(jobID string) ([]*entity.JobActivity, error) {
	return r.acts[jobID], nil
}
func (r *fakeJobRepo) List(onlyActive bool, limit, offset int) ([]*entity.TechnicianJob, error) {
	out := make([]*entity.TechnicianJob, 0, len(r.jobs))
	for _, j := range r.jobs {
		if onlyActive && !j.IsActive {
			continue
		}
		out = append(out, j)
	}
	return out, nil
}
func (r *fakeJobRepo) UpdateStatus(id, status string) error {
	j, ok := r.jobs[id]
	if !ok {
		return domain.ErrNotFound
	}
	j.Status = status
	return nil
}

type fixture struct {
	uc       *UseCase
	jobRepo  *fakeJobRepo
	partRepo *fakePartRepo
	stRepo   *fakeServiceTypeRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	customers := &fakeCustomerRepo{customers: map[string]*entity.Customer{
		"cust-1": {ID: "cust-1", Name: "Joan Whitfield", IsActive: true},
	}}
	parts := &fakePartRepo{parts: map[string]*entity.MobilityPart{
		"part-7": {
			ID:       "part-7",
			SKU:      "WHL-200",
			Name:     "Rear wheel 200mm",
			UnitCost: decimal.RequireFromString("32.50"),
			IsActive: true,
		},
	}}
	types := &fakeServiceTypeRepo{types: map[string]*entity.ServiceType{
		"st-1": {
			ID:         "st-1",
			Name:       "Annual service",
			HourlyRate: decimal.NewFromInt(45),
			IsActive:   true,
		},
	}}
	jobRepo := newFakeJobRepo()
	return &fixture{
		uc:       NewUseCase(jobRepo, customers, parts, types),
		jobRepo:  jobRepo,
		partRepo: parts,
		stRepo:   types,
	}
}

func TestCreateJob_ServiceLineEnrichedFromServiceType(t *testing.T) {
	f := newFixture(t)

	job, err := f.uc.Create(context.Background(), dto.CreateJobRequest{
		CustomerID:     "cust-1",
		TechnicianName: "Dave Okafor",
		Equipment:      "Pride Colt scooter",
		ScheduledFor:   "2026-09-14",
		Services: []dto.JobServiceRequest{
			// No rate, no description: both come from the service type.
			{ServiceTypeID: "st-1", Duration: "1:30"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.JobStatusOpen, job.Status)
	assert.Equal(t, "Joan Whitfield", job.CustomerName)
	assert.Equal(t, "2026-09-14", job.ScheduledFor)
	require.Len(t, job.Services, 1)
	assert.Equal(t, "Annual service", job.Services[0].Description)
	assert.True(t, decimal.NewFromInt(45).Equal(job.Services[0].Rate))
}

func TestCreateJob_ExplicitRateWinsOverServiceType(t *testing.T) {
	f := newFixture(t)

	job, err := f.uc.Create(context.Background(), dto.CreateJobRequest{
		CustomerID:     "cust-1",
		TechnicianName: "Dave Okafor",
		Services: []dto.JobServiceRequest{
			{ServiceTypeID: "st-1", Description: "Emergency callout", Duration: "0:45", Rate: decimal.NewFromInt(60)},
		},
	})
	require.NoError(t, err)

	require.Len(t, job.Services, 1)
	assert.Equal(t, "Emergency callout", job.Services[0].Description)
	assert.True(t, decimal.NewFromInt(60).Equal(job.Services[0].Rate))
}

func TestCreateJob_CataloguePartEnrichesLine(t *testing.T) {
	f := newFixture(t)

	job, err := f.uc.Create(context.Background(), dto.CreateJobRequest{
		CustomerID:     "cust-1",
		TechnicianName: "Dave Okafor",
		Parts: []dto.JobPartRequest{
			{PartID: "part-7", Quantity: 2},
		},
	})
	require.NoError(t, err)

	require.Len(t, job.Parts, 1)
	assert.Equal(t, "Rear wheel 200mm", job.Parts[0].Name)
	assert.True(t, decimal.RequireFromString("32.50").Equal(job.Parts[0].UnitCost))
}

func TestCreateJob_UnknownCustomer(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Create(context.Background(), dto.CreateJobRequest{
		CustomerID:     "nope",
		TechnicianName: "Dave Okafor",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateJob_BadScheduledForDate(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Create(context.Background(), dto.CreateJobRequest{
		CustomerID:     "cust-1",
		TechnicianName: "Dave Okafor",
		ScheduledFor:   "14/09/2026",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateJob_PartLineNeedsPartOrName(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Create(context.Background(), dto.CreateJobRequest{
		CustomerID:     "cust-1",
		TechnicianName: "Dave Okafor",
		Parts: []dto.JobPartRequest{
			{Quantity: 1, UnitCost: decimal.NewFromInt(10)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateJob_NegativePartQuantity(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Create(context.Background(), dto.CreateJobRequest{
		CustomerID:     "cust-1",
		TechnicianName: "Dave Okafor",
		Parts: []dto.JobPartRequest{
			{Name: "Battery", Quantity: -1, UnitCost: decimal.NewFromInt(80)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetJob_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecordActivity_AppendsToLog(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	job, err := f.uc.Create(ctx, dto.CreateJobRequest{
		CustomerID:     "cust-1",
		TechnicianName: "Dave Okafor",
	})
	require.NoError(t, err)

	act, err := f.uc.RecordActivity(ctx, job.ID, "user-9", dto.RecordActivityRequest{
		Note: "Replaced both rear wheels, test drive OK",
	})
	require.NoError(t, err)
	assert.Equal(t, "user-9", act.RecordedBy)

	detail, err := f.uc.Get(ctx, job.ID)
	require.NoError(t, err)
	require.Len(t, detail.Activities, 1)
	assert.Equal(t, "Replaced both rear wheels, test drive OK", detail.Activities[0].Note)
}

func TestRecordActivity_EmptyNoteRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	job, err := f.uc.Create(ctx, dto.CreateJobRequest{
		CustomerID:     "cust-1",
		TechnicianName: "Dave Okafor",
	})
	require.NoError(t, err)

	_, err = f.uc.RecordActivity(ctx, job.ID, "user-9", dto.RecordActivityRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestJobStatusTransitions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	job, err := f.uc.Create(ctx, dto.CreateJobRequest{
		CustomerID:     "cust-1",
		TechnicianName: "Dave Okafor",
	})
	require.NoError(t, err)

	// open -> completed skips in_progress
	err = f.uc.UpdateStatus(ctx, job.ID, entity.JobStatusCompleted)
	assert.ErrorIs(t, err, domain.ErrConflict)

	require.NoError(t, f.uc.UpdateStatus(ctx, job.ID, entity.JobStatusInProgress))
	require.NoError(t, f.uc.UpdateStatus(ctx, job.ID, entity.JobStatusCompleted))

	// rework is allowed
	require.NoError(t, f.uc.UpdateStatus(ctx, job.ID, entity.JobStatusInProgress))

	// invoiced is only reachable through invoice creation
	err = f.uc.UpdateStatus(ctx, job.ID, entity.JobStatusInvoiced)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUpdateStatus_UnknownJob(t *testing.T) {
	f := newFixture(t)

	err := f.uc.UpdateStatus(context.Background(), "missing", entity.JobStatusInProgress)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListJobs_ActiveOnlyByDefault(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	job, err := f.uc.Create(ctx, dto.CreateJobRequest{
		CustomerID:     "cust-1",
		TechnicianName: "Dave Okafor",
	})
	require.NoError(t, err)
	f.jobRepo.jobs[job.ID].IsActive = false

	list, err := f.uc.List(ctx, false, 20, 0)
	require.NoError(t, err)
	assert.Empty(t, list)

	list, err = f.uc.List(ctx, true, 20, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
