package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mobiquip/backoffice-api/internal/application/dto"
	"github.com/mobiquip/backoffice-api/internal/application/tickets"
)

// TicketHandler handles intake ticket endpoints (protected).
type TicketHandler struct {
	uc *tickets.UseCase
}

// NewTicketHandler builds the handler.
func NewTicketHandler(uc *tickets.UseCase) *TicketHandler {
	return &TicketHandler{uc: uc}
}

// Create records a new ticket.
// POST /api/tickets
func (h *TicketHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTicketRequest
	if !parseAndValidate(c, &in) {
		return nil
	}
	ticket, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(ticket)
}

// List returns tickets, newest first.
// GET /api/tickets?status=new
func (h *TicketHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "bad query parameters"})
	}
	page.DefaultPage()
	list, err := h.uc.List(c.Context(), c.Query("status"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// GetByID returns one ticket.
// GET /api/tickets/:id
func (h *TicketHandler) GetByID(c *fiber.Ctx) error {
	ticket, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(ticket)
}

// Update changes status and/or priority.
// PATCH /api/tickets/:id
func (h *TicketHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateTicketRequest
	if !parseAndValidate(c, &in) {
		return nil
	}
	ticket, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(ticket)
}

// Convert turns a ticket into a technician job.
// POST /api/tickets/:id/convert
func (h *TicketHandler) Convert(c *fiber.Ctx) error {
	var in dto.ConvertTicketRequest
	if !parseAndValidate(c, &in) {
		return nil
	}
	job, err := h.uc.Convert(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(job)
}
