package repository

import "github.com/mobiquip/backoffice-api/internal/domain/entity"

// CustomerRepository is the persistence port for Customer.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	GetByEmail(email string) (*entity.Customer, error)
	List(onlyActive bool, limit, offset int) ([]*entity.Customer, error)
	Update(customer *entity.Customer) error
}
