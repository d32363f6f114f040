package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spatrax/spatrax-api/internal/application/dto"
	"github.com/spatrax/spatrax-api/internal/application/usecase"
)

// EstablishmentHandler maneja las peticiones HTTP de establecimientos (protegido).
type EstablishmentHandler struct {
	uc *usecase.EstablishmentUseCase
}

// NewEstablishmentHandler construye el handler.
func NewEstablishmentHandler(uc *usecase.EstablishmentUseCase) *EstablishmentHandler {
	return &EstablishmentHandler{uc: uc}
}

// Mine godoc
// @Summary      Establecimiento del usuario autenticado
// @Tags         establishments
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.EstablishmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/establishments/mine [get]
func (h *EstablishmentHandler) Mine(c *fiber.Ctx) error {
	e, err := h.uc.Get(c.Context(), GetAuthSubject(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToEstablishmentResponse(e))
}

// Create godoc
// @Summary      Crear establecimiento
// @Tags         establishments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateEstablishmentRequest  true  "Datos del establecimiento"
// @Success      201   {object}  dto.EstablishmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/establishments [post]
func (h *EstablishmentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateEstablishmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	e, err := h.uc.Create(c.Context(), GetAuthSubject(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToEstablishmentResponse(e))
}

// Edit godoc
// @Summary      Editar establecimiento
// @Tags         establishments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del establecimiento"
// @Param        body  body  dto.EditEstablishmentRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.EstablishmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/establishments/{id} [put]
func (h *EstablishmentHandler) Edit(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	var in dto.EditEstablishmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	e, err := h.uc.Edit(c.Context(), GetAuthSubject(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToEstablishmentResponse(e))
}
