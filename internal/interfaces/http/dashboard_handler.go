package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spatrax/spatrax-api/internal/application/usecase"
)

// DashboardHandler maneja la vista resumen de la app (protegido).
type DashboardHandler struct {
	uc *usecase.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *usecase.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Summary godoc
// @Summary      Resumen del dashboard
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.GetSummary(c.Context(), GetAuthSubject(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
