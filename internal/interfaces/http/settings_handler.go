package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/jobledger/internal/application/analytics"
	"github.com/jhoicas/jobledger/internal/application/dto"
	"github.com/jhoicas/jobledger/internal/application/usecase"
)

// SettingsHandler configuración global y resumen del panel.
type SettingsHandler struct {
	uc       *usecase.SettingsUseCase
	overview *analytics.OverviewUseCase
}

// NewSettingsHandler construye el handler.
func NewSettingsHandler(uc *usecase.SettingsUseCase, overview *analytics.OverviewUseCase) *SettingsHandler {
	return &SettingsHandler{uc: uc, overview: overview}
}

// Get GET /api/settings
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update PUT /api/settings (solo se cambian los campos presentes).
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSettingsRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Save(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Overview devuelve el pendiente de cobro y los trabajos por estado.
// GET /api/overview
func (h *SettingsHandler) Overview(c *fiber.Ctx) error {
	out, err := h.overview.Summary(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
