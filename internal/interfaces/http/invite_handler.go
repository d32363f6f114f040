package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spatrax/spatrax-api/internal/application/dto"
	"github.com/spatrax/spatrax-api/internal/application/usecase"
)

// InviteHandler maneja las peticiones HTTP de invitaciones. La lectura por id
// es pública (la consume la página de sign-up); el resto requiere auth.
type InviteHandler struct {
	uc *usecase.InviteUseCase
}

// NewInviteHandler construye el handler.
func NewInviteHandler(uc *usecase.InviteUseCase) *InviteHandler {
	return &InviteHandler{uc: uc}
}

// GetByID godoc
// @Summary      Obtener invitación por ID (público)
// @Tags         invites
// @Produce      json
// @Param        id   path  int  true  "ID de la invitación"
// @Success      200  {object}  dto.InviteResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invites/{id} [get]
func (h *InviteHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	inv, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToInviteResponse(inv))
}

// Create godoc
// @Summary      Crear invitación para un miembro del equipo
// @Tags         invites
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInviteRequest  true  "Datos de la invitación"
// @Success      201   {object}  dto.InviteResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/invites [post]
func (h *InviteHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInviteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	inv, err := h.uc.Create(c.Context(), GetAuthSubject(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToInviteResponse(inv))
}

// SendEmail godoc
// @Summary      Enviar el email de invitación
// @Tags         invites
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID de la invitación"
// @Param        body  body  dto.SendInviteEmailRequest  true  "Destinatario"
// @Success      200   {object}  map[string]string
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/invites/{id}/send [post]
func (h *InviteHandler) SendEmail(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	var in dto.SendInviteEmailRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	messageID, err := h.uc.SendEmail(c.Context(), GetAuthSubject(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message_id": messageID})
}
