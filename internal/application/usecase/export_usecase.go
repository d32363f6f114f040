package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"github.com/spatrax/spatrax-api/internal/domain/entity"
)

// ExportUseCase exportación de logs de limpieza para auditorías: CSV plano y
// planilla PDF con firmas. Ambos formatos salen de la misma búsqueda por rango,
// así que heredan sus reglas de autorización (un employee solo exporta lo suyo).
type ExportUseCase struct {
	users          *UserUseCase
	establishments *EstablishmentUseCase
	logs           *LogUseCase
	sheets         LogSheetGenerator
}

// NewExportUseCase construye el caso de uso con sus colaboradores.
func NewExportUseCase(
	users *UserUseCase,
	establishments *EstablishmentUseCase,
	logs *LogUseCase,
	sheets LogSheetGenerator,
) *ExportUseCase {
	return &ExportUseCase{users: users, establishments: establishments, logs: logs, sheets: sheets}
}

// ExportCSV exporta los logs del rango como CSV. Devuelve el nombre de archivo
// sugerido y el contenido.
func (uc *ExportUseCase) ExportCSV(ctx context.Context, authSubject string, userID *int64, dateStart, dateEnd time.Time) (string, []byte, error) {
	establishment, logs, err := uc.collect(ctx, authSubject, userID, dateStart, dateEnd)
	if err != nil {
		return "", nil, err
	}

	data, err := BuildLogsCSV(logs)
	if err != nil {
		return "", nil, fmt.Errorf("generar csv: %w", err)
	}
	return exportFilename(establishment.BusinessName, "csv"), data, nil
}

// ExportPDF exporta los logs del rango como planilla PDF con los datos del
// negocio y la firma de cada registro.
func (uc *ExportUseCase) ExportPDF(ctx context.Context, authSubject string, userID *int64, dateStart, dateEnd time.Time) (string, []byte, error) {
	establishment, logs, err := uc.collect(ctx, authSubject, userID, dateStart, dateEnd)
	if err != nil {
		return "", nil, err
	}

	data, err := uc.sheets.GenerateLogSheet(ctx, establishment, logs, dateStart, dateEnd)
	if err != nil {
		return "", nil, fmt.Errorf("generar pdf: %w", err)
	}
	return exportFilename(establishment.BusinessName, "pdf"), data, nil
}

// collect resuelve establecimiento y logs del rango para el caller.
func (uc *ExportUseCase) collect(ctx context.Context, authSubject string, userID *int64, dateStart, dateEnd time.Time) (*entity.Establishment, []*entity.LogWithUser, error) {
	user, err := uc.users.GetCurrent(ctx, authSubject)
	if err != nil {
		return nil, nil, err
	}
	establishment, err := uc.establishments.GetForUser(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	start, end := DayRange(dateStart, dateEnd)
	logs, err := uc.logs.Search(ctx, authSubject, userID, start, end)
	if err != nil {
		return nil, nil, err
	}
	return establishment, logs, nil
}

// BuildLogsCSV serializa los logs en CSV con encabezado Date,Name,Chair,Cleaned.
func BuildLogsCSV(logs []*entity.LogWithUser) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"Date", "Name", "Chair", "Cleaned"}); err != nil {
		return nil, err
	}
	for _, l := range logs {
		record := []string{
			l.PerformedAt.Format("1/2/2006 3:04 PM"),
			l.User.FullName(),
			l.Chair,
			strings.Join(l.Presets, ", "),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// exportFilename arma "Mi_Negocio-2026-08-29.csv" a partir del nombre del
// negocio y la fecha de exportación.
func exportFilename(businessName, ext string) string {
	name := strings.ReplaceAll(strings.TrimSpace(businessName), " ", "_")
	return fmt.Sprintf("%s-%s.%s", name, time.Now().Format("2006-01-02"), ext)
}
