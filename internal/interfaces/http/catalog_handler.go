package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mobiquip/backoffice-api/internal/application/catalog"
	"github.com/mobiquip/backoffice-api/internal/application/dto"
)

// CatalogHandler handles mobility parts and service types (protected).
type CatalogHandler struct {
	uc *catalog.UseCase
}

// NewCatalogHandler builds the handler.
func NewCatalogHandler(uc *catalog.UseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// CreatePart adds a catalogue part.
// POST /api/mobility-parts
func (h *CatalogHandler) CreatePart(c *fiber.Ctx) error {
	var in dto.CreatePartRequest
	if !parseAndValidate(c, &in) {
		return nil
	}
	part, err := h.uc.CreatePart(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(part)
}

// ListParts returns catalogue parts.
// GET /api/mobility-parts
func (h *CatalogHandler) ListParts(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "bad query parameters"})
	}
	page.DefaultPage()
	list, err := h.uc.ListParts(c.Context(), c.QueryBool("include_inactive"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// GetPart returns one part.
// GET /api/mobility-parts/:id
func (h *CatalogHandler) GetPart(c *fiber.Ctx) error {
	part, err := h.uc.GetPart(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(part)
}

// UpdatePart edits a part.
// PUT /api/mobility-parts/:id
func (h *CatalogHandler) UpdatePart(c *fiber.Ctx) error {
	var in dto.UpdatePartRequest
	if !parseAndValidate(c, &in) {
		return nil
	}
	part, err := h.uc.UpdatePart(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(part)
}

// CreateServiceType adds a technician service type.
// POST /api/technician-service-types
func (h *CatalogHandler) CreateServiceType(c *fiber.Ctx) error {
	var in dto.CreateServiceTypeRequest
	if !parseAndValidate(c, &in) {
		return nil
	}
	st, err := h.uc.CreateServiceType(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(st)
}

// ListServiceTypes returns the offered service types.
// GET /api/technician-service-types
func (h *CatalogHandler) ListServiceTypes(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "bad query parameters"})
	}
	page.DefaultPage()
	list, err := h.uc.ListServiceTypes(c.Context(), c.QueryBool("include_inactive"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}
