package catalog

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

// UseCase catalogue management: mobility parts and technician service types.
type UseCase struct {
	partRepo repository.PartRepository
	stRepo   repository.ServiceTypeRepository
}

// NewUseCase builds the use case.
func NewUseCase(partRepo repository.PartRepository, stRepo repository.ServiceTypeRepository) *UseCase {
	return &UseCase{partRepo: partRepo, stRepo: stRepo}
}

// CreatePart adds a catalogue part. SKUs are unique.
func (uc *UseCase) CreatePart(ctx context.Context, in dto.CreatePartRequest) (*dto.PartResponse, error) {
	if in.UnitCost.IsNegative() {
		return nil, fmt.Errorf("%w: unit cost cannot be negative", domain.ErrInvalidInput)
	}
	if existing, err := uc.partRepo.GetBySKU(in.SKU); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, fmt.Errorf("%w: sku %s", domain.ErrDuplicate, in.SKU)
	}
	category := in.Category
	if category == "" {
		category = "other"
	}
	now := time.Now()
	part := &entity.MobilityPart{
		ID:          uuid.New().String(),
		SKU:         in.SKU,
		Name:        in.Name,
		Description: in.Description,
		Category:    category,
		UnitCost:    in.UnitCost,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.partRepo.Create(part); err != nil {
		return nil, err
	}
	return toPartResponse(part), nil
}

// GetPart returns a single part by ID.
func (uc *UseCase) GetPart(ctx context.Context, id string) (*dto.PartResponse, error) {
	part, err := uc.partRepo.GetByID(id)
	if err != nil || part == nil {
		return nil, domain.ErrNotFound
	}
	return toPartResponse(part), nil
}

// ListParts returns catalogue parts, active only unless asked otherwise.
func (uc *UseCase) ListParts(ctx context.Context, includeInactive bool, limit, offset int) ([]*dto.PartResponse, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.partRepo.List(!includeInactive, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PartResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toPartResponse(p))
	}
	return out, nil
}

// UpdatePart edits a part. The SKU is immutable.
func (uc *UseCase) UpdatePart(ctx context.Context, id string, in dto.UpdatePartRequest) (*dto.PartResponse, error) {
	part, err := uc.partRepo.GetByID(id)
	if err != nil || part == nil {
		return nil, domain.ErrNotFound
	}
	if in.UnitCost.IsNegative() {
		return nil, fmt.Errorf("%w: unit cost cannot be negative", domain.ErrInvalidInput)
	}
	if in.Name != "" {
		part.Name = in.Name
	}
	if in.Description != "" {
		part.Description = in.Description
	}
	if in.Category != "" {
		part.Category = in.Category
	}
	if !in.UnitCost.IsZero() {
		part.UnitCost = in.UnitCost
	}
	if in.IsActive != nil {
		part.IsActive = *in.IsActive
	}
	part.UpdatedAt = time.Now()
	if err := uc.partRepo.Update(part); err != nil {
		return nil, err
	}
	return toPartResponse(part), nil
}

// CreateServiceType adds a technician service type with its default hourly rate.
func (uc *UseCase) CreateServiceType(ctx context.Context, in dto.CreateServiceTypeRequest) (*dto.ServiceTypeResponse, error) {
	if in.HourlyRate.IsNegative() {
		return nil, fmt.Errorf("%w: hourly rate cannot be negative", domain.ErrInvalidInput)
	}
	now := time.Now()
	st := &entity.ServiceType{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		HourlyRate:  in.HourlyRate,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.stRepo.Create(st); err != nil {
		return nil, err
	}
	return toServiceTypeResponse(st), nil
}

// ListServiceTypes returns the offered service types.
func (uc *UseCase) ListServiceTypes(ctx context.Context, includeInactive bool, limit, offset int) ([]*dto.ServiceTypeResponse, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.stRepo.List(!includeInactive, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ServiceTypeResponse, 0, len(list))
	for _, st := range list {
		out = append(out, toServiceTypeResponse(st))
	}
	return out, nil
}

func toPartResponse(p *entity.MobilityPart) *dto.PartResponse {
	return &dto.PartResponse{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		UnitCost:    p.UnitCost,
		IsActive:    p.IsActive,
	}
}

func toServiceTypeResponse(st *entity.ServiceType) *dto.ServiceTypeResponse {
	return &dto.ServiceTypeResponse{
		ID:          st.ID,
		Name:        st.Name,
		Description: st.Description,
		HourlyRate:  st.HourlyRate,
		IsActive:    st.IsActive,
	}
}
