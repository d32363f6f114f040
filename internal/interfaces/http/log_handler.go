package http

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spatrax/spatrax-api/internal/application/dto"
	"github.com/spatrax/spatrax-api/internal/application/usecase"
)

// LogHandler maneja las peticiones HTTP de logs de limpieza y su exportación
// (protegido).
type LogHandler struct {
	uc      *usecase.LogUseCase
	exports *usecase.ExportUseCase
}

// NewLogHandler construye el handler.
func NewLogHandler(uc *usecase.LogUseCase, exports *usecase.ExportUseCase) *LogHandler {
	return &LogHandler{uc: uc, exports: exports}
}

// Recent godoc
// @Summary      Logs recientes del establecimiento
// @Tags         logs
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LogResponse
// @Router       /api/logs/recent [get]
func (h *LogHandler) Recent(c *fiber.Ctx) error {
	logs, err := h.uc.GetRecent(c.Context(), GetAuthSubject(c))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]*dto.LogResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, dto.ToLogResponse(l))
	}
	return c.JSON(out)
}

// Search godoc
// @Summary      Buscar logs por rango de fechas
// @Tags         logs
// @Security     Bearer
// @Produce      json
// @Param        date_start  query  string  true   "Inicio (YYYY-MM-DD)"
// @Param        date_end    query  string  true   "Fin (YYYY-MM-DD)"
// @Param        user_id     query  int     false  "Filtrar por técnico"
// @Success      200  {array}   dto.LogResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/logs/search [get]
func (h *LogHandler) Search(c *fiber.Ctx) error {
	userID, dateStart, dateEnd, err := searchParams(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	start, end := usecase.DayRange(dateStart, dateEnd)
	logs, err := h.uc.Search(c.Context(), GetAuthSubject(c), userID, start, end)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]*dto.LogResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, dto.ToLogResponse(l))
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Registrar un log de limpieza
// @Tags         logs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLogRequest  true  "Datos del log"
// @Success      201   {object}  dto.LogResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/logs [post]
func (h *LogHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLogRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	l, err := h.uc.Create(c.Context(), GetAuthSubject(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToLogResponse(l))
}

// ExportCSV godoc
// @Summary      Exportar logs como CSV
// @Tags         logs
// @Security     Bearer
// @Produce      text/csv
// @Param        date_start  query  string  true   "Inicio (YYYY-MM-DD)"
// @Param        date_end    query  string  true   "Fin (YYYY-MM-DD)"
// @Param        user_id     query  int     false  "Filtrar por técnico"
// @Success      200  {string}  string
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/logs/export/csv [get]
func (h *LogHandler) ExportCSV(c *fiber.Ctx) error {
	userID, dateStart, dateEnd, err := searchParams(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	filename, data, err := h.exports.ExportCSV(c.Context(), GetAuthSubject(c), userID, dateStart, dateEnd)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}

// ExportPDF godoc
// @Summary      Exportar logs como planilla PDF
// @Tags         logs
// @Security     Bearer
// @Produce      application/pdf
// @Param        date_start  query  string  true   "Inicio (YYYY-MM-DD)"
// @Param        date_end    query  string  true   "Fin (YYYY-MM-DD)"
// @Param        user_id     query  int     false  "Filtrar por técnico"
// @Success      200  {string}  string
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/logs/export/pdf [get]
func (h *LogHandler) ExportPDF(c *fiber.Ctx) error {
	userID, dateStart, dateEnd, err := searchParams(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	filename, data, err := h.exports.ExportPDF(c.Context(), GetAuthSubject(c), userID, dateStart, dateEnd)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}

// searchParams parsea los query params comunes de búsqueda/exportación:
// date_start y date_end obligatorios (YYYY-MM-DD), user_id opcional.
func searchParams(c *fiber.Ctx) (*int64, time.Time, time.Time, error) {
	dateStart, err := time.Parse("2006-01-02", c.Query("date_start"))
	if err != nil {
		return nil, time.Time{}, time.Time{}, errors.New("date_start requerido (YYYY-MM-DD)")
	}
	dateEnd, err := time.Parse("2006-01-02", c.Query("date_end"))
	if err != nil {
		return nil, time.Time{}, time.Time{}, errors.New("date_end requerido (YYYY-MM-DD)")
	}

	var userID *int64
	if raw := c.Query("user_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, time.Time{}, time.Time{}, errors.New("user_id inválido")
		}
		userID = &id
	}
	return userID, dateStart, dateEnd, nil
}
