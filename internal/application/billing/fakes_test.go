package billing

import (
	"context"
	"errors"
	"fmt"

	"github.com/mobiquip/backoffice-api/internal/domain/entity"
	"github.com/mobiquip/backoffice-api/internal/domain/repository"
)

// In-memory fakes for the billing use case tests. They implement only what
// the use cases touch; everything is keyed by ID like the real repositories.

type fakeCustomerRepo struct {
	customers map[string]*entity.Customer
}

func newFakeCustomerRepo(cs ...*entity.Customer) *fakeCustomerRepo {
	r := &fakeCustomerRepo{customers: make(map[string]*entity.Customer)}
	for _, c := range cs {
		r.customers[c.ID] = c
	}
	return r
}

func (r *fakeCustomerRepo) Create(c *entity.Customer) error {
	r.customers[c.ID] = c
	return nil
}

func (r *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	return r.customers[id], nil
}

func (r *fakeCustomerRepo) GetByEmail(email string) (*entity.Customer, error) {
	for _, c := range r.customers {
		if c.Email == email {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeCustomerRepo) List(onlyActive bool, limit, offset int) ([]*entity.Customer, error) {
	out := make([]*entity.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		if onlyActive && !c.IsActive {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeCustomerRepo) Update(c *entity.Customer) error {
	r.customers[c.ID] = c
	return nil
}

type fakePartRepo struct {
	parts map[string]*entity.MobilityPart
}

func newFakePartRepo(ps ...*entity.MobilityPart) *fakePartRepo {
	r := &fakePartRepo{parts: make(map[string]*entity.MobilityPart)}
	for _, p := range ps {
		r.parts[p.ID] = p
	}
	return r
}

func (r *fakePartRepo) Create(p *entity.MobilityPart) error {
	r.parts[p.ID] = p
	return nil
}

func (r *fakePartRepo) GetByID(id string) (*entity.MobilityPart, error) {
	return r.parts[id], nil
}

func (r *fakePartRepo) GetBySKU(sku string) (*entity.MobilityPart, error) {
	for _, p := range r.parts {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakePartRepo) List(onlyActive bool, limit, offset int) ([]*entity.MobilityPart, error) {
	out := make([]*entity.MobilityPart, 0, len(r.parts))
	for _, p := range r.parts {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakePartRepo) Update(p *entity.MobilityPart) error {
	r.parts[p.ID] = p
	return nil
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

func (r *fakeJobRepo) Create(j *entity.TechnicianJob) error {
	r.jobs[j.ID] = j
	return nil
}

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

func (r *fakeJobRepo) GetByID(id string) (*entity.TechnicianJob, error) {
	return r.jobs[id], nil
}

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
		return errors.New("job not found")
	}
	j.Status = status
	return nil
}

type fakeInvoiceRepo struct {
	invoices map[string]*entity.Invoice
	services map[string][]*entity.InvoiceService
	parts    map[string][]*entity.InvoicePart
	seq      int
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{
		invoices: make(map[string]*entity.Invoice),
		services: make(map[string][]*entity.InvoiceService),
		parts:    make(map[string][]*entity.InvoicePart),
	}
}

func (r *fakeInvoiceRepo) Create(inv *entity.Invoice) error {
	r.invoices[inv.ID] = inv
	return nil
}

func (r *fakeInvoiceRepo) Update(inv *entity.Invoice) error {
	if _, ok := r.invoices[inv.ID]; !ok {
		return errors.New("invoice not found")
	}
	r.invoices[inv.ID] = inv
	return nil
}

func (r *fakeInvoiceRepo) CreateService(l *entity.InvoiceService) error {
	r.services[l.InvoiceID] = append(r.services[l.InvoiceID], l)
	return nil
}

func (r *fakeInvoiceRepo) CreatePart(l *entity.InvoicePart) error {
	r.parts[l.InvoiceID] = append(r.parts[l.InvoiceID], l)
	return nil
}

func (r *fakeInvoiceRepo) DeleteLines(invoiceID string) error {
	delete(r.services, invoiceID)
	delete(r.parts, invoiceID)
	return nil
}

func (r *fakeInvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	return r.invoices[id], nil
}

func (r *fakeInvoiceRepo) GetServicesByInvoiceID(invoiceID string) ([]*entity.InvoiceService, error) {
	return r.services[invoiceID], nil
}

func (r *fakeInvoiceRepo) GetPartsByInvoiceID(invoiceID string) ([]*entity.InvoicePart, error) {
	return r.parts[invoiceID], nil
}

func (r *fakeInvoiceRepo) List(limit, offset int) ([]*entity.Invoice, error) {
	out := make([]*entity.Invoice, 0, len(r.invoices))
	for _, inv := range r.invoices {
		out = append(out, inv)
	}
	return out, nil
}

func (r *fakeInvoiceRepo) NextNumber(prefix string) (string, error) {
	r.seq++
	return fmt.Sprintf("%s-%06d", prefix, r.seq), nil
}

type fakeTaxRepo struct {
	setting *entity.TaxSetting
	err     error
}

func (r *fakeTaxRepo) GetCurrent() (*entity.TaxSetting, error) {
	return r.setting, r.err
}

func (r *fakeTaxRepo) Create(s *entity.TaxSetting) error {
	r.setting = s
	return nil
}

// fakeTxRunner runs the callback against the fakes directly, no transaction.
type fakeTxRunner struct {
	invoiceRepo repository.InvoiceRepository
	jobRepo     repository.JobRepository
}

func (r *fakeTxRunner) RunBilling(ctx context.Context, fn func(repository.InvoiceRepository, repository.JobRepository) error) error {
	return fn(r.invoiceRepo, r.jobRepo)
}
