// Package pdf implementa la generación de la planilla de logs de limpieza
// para auditorías e inspecciones sanitarias.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del negocio │ Rango de fechas               │
//	│          Dirección / Ciudad                                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Técnico | Silla | Firma | Limpieza          │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/spatrax/spatrax-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 13, Green: 110, Blue: 110}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoLogSheetGenerator implementa usecase.LogSheetGenerator usando Maroto v2.
type MarotoLogSheetGenerator struct{}

// NewMarotoLogSheetGenerator construye el generador.
func NewMarotoLogSheetGenerator() *MarotoLogSheetGenerator { return &MarotoLogSheetGenerator{} }

// GenerateLogSheet genera la planilla y devuelve sus bytes.
func (g *MarotoLogSheetGenerator) GenerateLogSheet(
	_ context.Context,
	establishment *entity.Establishment,
	logs []*entity.LogWithUser,
	dateStart, dateEnd time.Time,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Planilla de Limpieza", true).
		WithAuthor(establishment.BusinessName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(establishment, dateStart, dateEnd))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableLogRows(logs) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: datos del negocio (izq) y rango de fechas (der).
func headerRow(e *entity.Establishment, dateStart, dateEnd time.Time) core.Row {
	location := strings.TrimSpace(fmt.Sprintf("%s, %s %s", e.City, e.State, e.Postal))
	rango := dateStart.Format("01/02/2006") + " - " + dateEnd.Format("01/02/2006")

	return row.New(20).Add(
		col.New(8).Add(
			text.New(e.BusinessName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(e.Address, props.Text{Size: 9, Top: 9, Color: colorGray}),
			text.New(location, props.Text{Size: 9, Top: 14, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("PLANILLA DE LIMPIEZA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(rango, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 8,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de logs.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 3, align.Left),
		h("Técnico", 3, align.Left),
		h("Silla", 1, align.Center),
		h("Firma", 2, align.Center),
		h("Limpieza", 3, align.Left),
	)
}

// tableLogRows: una fila por log, con la imagen de la firma inline.
func tableLogRows(logs []*entity.LogWithUser) []core.Row {
	result := make([]core.Row, 0, len(logs))
	for _, l := range logs {
		result = append(result, row.New(12).Add(
			col.New(3).Add(text.New(
				l.PerformedAt.Format("1/2/2006 3:04 PM"),
				props.Text{Size: 8, Align: align.Left, Top: 4, Left: 1},
			)),
			col.New(3).Add(text.New(
				l.User.FullName(),
				props.Text{Size: 8, Align: align.Left, Top: 4, Left: 1},
			)),
			col.New(1).Add(text.New(
				l.Chair,
				props.Text{Size: 8, Align: align.Center, Top: 4},
			)),
			signatureCol(l.ESignature),
			col.New(3).Add(text.New(
				strings.Join(l.Presets, ", "),
				props.Text{Size: 8, Align: align.Left, Top: 4, Left: 1},
			)),
		))
	}
	return result
}

// signatureCol: celda con la imagen de la firma. La firma llega como data-URL
// base64; sin firma (logs históricos) la celda queda vacía.
func signatureCol(esignature string) core.Col {
	b64, ext := decodeSignatureDataURL(esignature)
	if b64 == "" {
		return col.New(2)
	}
	return col.New(2).Add(image.NewFromBase64(b64, ext, props.Rect{
		Percent: 90,
		Center:  true,
	}))
}

// ── helpers ───────────────────────────────────────────────────────────────────

// decodeSignatureDataURL separa el payload base64 de un data-URL de imagen
// ("data:image/png;base64,...") y deduce la extensión. Devuelve "" si el
// formato no es reconocible.
func decodeSignatureDataURL(dataURL string) (string, extension.Type) {
	header, payload, found := strings.Cut(dataURL, ",")
	if !found || payload == "" {
		return "", extension.Png
	}
	switch {
	case strings.Contains(header, "image/png"):
		return payload, extension.Png
	case strings.Contains(header, "image/jpeg"), strings.Contains(header, "image/jpg"):
		return payload, extension.Jpg
	default:
		return "", extension.Png
	}
}
