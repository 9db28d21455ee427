package repository

import "github.com/mobiquip/backoffice-api/internal/domain/entity"

// UserRepository is the persistence port for back-office users.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
}
