package repository

import "github.com/mobiquip/backoffice-api/internal/domain/entity"

// PartRepository is the persistence port for MobilityPart.
type PartRepository interface {
	Create(part *entity.MobilityPart) error
	GetByID(id string) (*entity.MobilityPart, error)
	GetBySKU(sku string) (*entity.MobilityPart, error)
	List(onlyActive bool, limit, offset int) ([]*entity.MobilityPart, error)
	Update(part *entity.MobilityPart) error
}
