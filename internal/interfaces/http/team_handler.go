package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spatrax/spatrax-api/internal/application/dto"
	"github.com/spatrax/spatrax-api/internal/application/usecase"
)

// TeamHandler maneja las peticiones HTTP del equipo (protegido).
type TeamHandler struct {
	uc *usecase.TeamUseCase
}

// NewTeamHandler construye el handler.
func NewTeamHandler(uc *usecase.TeamUseCase) *TeamHandler {
	return &TeamHandler{uc: uc}
}

// List godoc
// @Summary      Listar el equipo del establecimiento
// @Tags         team
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.UserResponse
// @Router       /api/team [get]
func (h *TeamHandler) List(c *fiber.Ctx) error {
	team, err := h.uc.GetTeam(c.Context(), GetAuthSubject(c))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]*dto.UserResponse, 0, len(team))
	for _, m := range team {
		out = append(out, dto.ToUserResponse(m))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener un miembro del equipo
// @Tags         team
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del miembro"
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/team/{id} [get]
func (h *TeamHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	member, err := h.uc.GetMember(c.Context(), GetAuthSubject(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToUserResponse(member))
}

// Create godoc
// @Summary      Dar de alta un miembro del equipo
// @Tags         team
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTeamMemberRequest  true  "Datos del miembro"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/team [post]
func (h *TeamHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTeamMemberRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	member, err := h.uc.CreateMember(c.Context(), GetAuthSubject(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToUserResponse(member))
}

// Edit godoc
// @Summary      Editar un miembro del equipo
// @Tags         team
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del miembro"
// @Param        body  body  dto.EditTeamMemberRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/team/{id} [put]
func (h *TeamHandler) Edit(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	var in dto.EditTeamMemberRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	member, err := h.uc.EditMember(c.Context(), GetAuthSubject(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToUserResponse(member))
}

// EditSignature godoc
// @Summary      Registrar o cambiar la firma de un miembro
// @Tags         team
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del miembro"
// @Param        body  body  dto.UpdateSignatureRequest  true  "Firma (data-URL base64)"
// @Success      200   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/team/{id}/signature [put]
func (h *TeamHandler) EditSignature(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	var in dto.UpdateSignatureRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	member, err := h.uc.EditSignature(c.Context(), GetAuthSubject(c), id, in.ESignature)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToUserResponse(member))
}
