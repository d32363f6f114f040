package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spatrax/spatrax-api/internal/application/dto"
	"github.com/spatrax/spatrax-api/internal/application/usecase"
)

// UserHandler maneja las peticiones HTTP del usuario autenticado (protegido).
type UserHandler struct {
	users *usecase.UserUseCase
	team  *usecase.TeamUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(users *usecase.UserUseCase, team *usecase.TeamUseCase) *UserHandler {
	return &UserHandler{users: users, team: team}
}

// Me godoc
// @Summary      Usuario autenticado
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/me [get]
func (h *UserHandler) Me(c *fiber.Ctx) error {
	user, err := h.users.GetCurrent(c.Context(), GetAuthSubject(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToUserResponse(user))
}

// UpdateSignature godoc
// @Summary      Registrar o cambiar la firma propia
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateSignatureRequest  true  "Firma (data-URL base64)"
// @Success      200   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/me/signature [put]
func (h *UserHandler) UpdateSignature(c *fiber.Ctx) error {
	authSubject := GetAuthSubject(c)
	user, err := h.users.GetCurrent(c.Context(), authSubject)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.UpdateSignatureRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	updated, err := h.team.EditSignature(c.Context(), authSubject, user.ID, in.ESignature)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToUserResponse(updated))
}
