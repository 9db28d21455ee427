package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mobiquip/backoffice-api/internal/application/dto"
	"github.com/mobiquip/backoffice-api/internal/application/jobs"
)

// JobHandler handles technician job endpoints (protected).
type JobHandler struct {
	uc *jobs.UseCase
}

// NewJobHandler builds the handler.
func NewJobHandler(uc *jobs.UseCase) *JobHandler {
	return &JobHandler{uc: uc}
}

// Create books a job.
// POST /api/technician-jobs
func (h *JobHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateJobRequest
	if !parseAndValidate(c, &in) {
		return nil
	}
	job, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(job)
}

// List returns job summaries.
// GET /api/technician-jobs
func (h *JobHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "bad query parameters"})
	}
	page.DefaultPage()
	list, err := h.uc.List(c.Context(), c.QueryBool("include_inactive"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// GetByID returns the full job detail with lines and activity log.
// GET /api/technician-jobs/:id
func (h *JobHandler) GetByID(c *fiber.Ctx) error {
	job, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(job)
}

// RecordActivity appends a technician note.
// POST /api/technician-jobs/:id/activities
func (h *JobHandler) RecordActivity(c *fiber.Ctx) error {
	var in dto.RecordActivityRequest
	if !parseAndValidate(c, &in) {
		return nil
	}
	act, err := h.uc.RecordActivity(c.Context(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(act)
}

// UpdateStatus moves the job along its lifecycle.
// PATCH /api/technician-jobs/:id/status
func (h *JobHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateJobStatusRequest
	if !parseAndValidate(c, &in) {
		return nil
	}
	if err := h.uc.UpdateStatus(c.Context(), c.Params("id"), in.Status); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
