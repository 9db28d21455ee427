package repository

import "github.com/mobiquip/backoffice-api/internal/domain/entity"

// JobRepository is the persistence port for TechnicianJob and its lines.
type JobRepository interface {
	Create(job *entity.TechnicianJob) error
	CreateService(svc *entity.JobService) error
	CreatePart(part *entity.JobPart) error
	CreateActivity(act *entity.JobActivity) error
	GetByID(id string) (*entity.TechnicianJob, error)
	GetServicesByJobID(jobID string) ([]*entity.JobService, error)
	GetPartsByJobID(jobID string) ([]*entity.JobPart, error)
	GetActivitiesByJobID(jobID string) ([]*entity.JobActivity, error)
	List(onlyActive bool, limit, offset int) ([]*entity.TechnicianJob, error)
	UpdateStatus(id, status string) error
}
