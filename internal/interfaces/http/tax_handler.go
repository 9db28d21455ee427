package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mobiquip/backoffice-api/internal/application/billing"
)

// TaxHandler serves the default VAT rate (protected).
type TaxHandler struct {
	uc *billing.DefaultTaxUseCase
}

// NewTaxHandler builds the handler.
func NewTaxHandler(uc *billing.DefaultTaxUseCase) *TaxHandler {
	return &TaxHandler{uc: uc}
}

// Get returns the default VAT percentage.
// GET /api/default-tax
func (h *TaxHandler) Get(c *fiber.Ctx) error {
	return c.JSON(h.uc.Get())
}
