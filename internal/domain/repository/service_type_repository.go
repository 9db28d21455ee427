package repository

import "github.com/mobiquip/backoffice-api/internal/domain/entity"

// ServiceTypeRepository is the persistence port for ServiceType.
type ServiceTypeRepository interface {
	Create(st *entity.ServiceType) error
	GetByID(id string) (*entity.ServiceType, error)
	List(onlyActive bool, limit, offset int) ([]*entity.ServiceType, error)
}
