// Package pdf implementa la exportación de reportes tabulares a PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título del reporte   │  Subtítulo (rango / filtro)  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: encabezados con fondo primario                       │
//	│         una fila por registro, cebra en gris claro           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: total de filas + fecha de generación                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/hrportal-api/internal/application/ports"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorStripe  = &props.Color{Red: 240, Green: 244, Blue: 248}
)

// Con más columnas que esto la página pasa a horizontal.
const landscapeFrom = 7

var _ ports.PDFRenderer = (*MarotoPDFGenerator)(nil)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa ports.PDFRenderer usando Maroto v2.
type MarotoPDFGenerator struct {
	author string
	now    func() time.Time
}

// NewMarotoPDFGenerator construye el generador; author queda en los metadatos del PDF.
func NewMarotoPDFGenerator(author string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{author: author, now: time.Now}
}

// RenderTable genera el PDF de la tabla y devuelve sus bytes.
func (g *MarotoPDFGenerator) RenderTable(t ports.ReportTable) ([]byte, error) {
	if len(t.Headers) == 0 {
		return nil, fmt.Errorf("pdf: tabla sin encabezados")
	}
	grid := gridSize(len(t.Headers))

	b := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithMaxGridSize(grid).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(nonEmpty(t.Title, "Report"), true).
		WithAuthor(nonEmpty(g.author, "hrportal-api"), true)
	if len(t.Headers) >= landscapeFrom {
		b = b.WithOrientation(orientation.Horizontal)
	}
	m := maroto.New(b.Build())

	if err := m.RegisterFooter(footerRow(grid, len(t.Rows), g.now())); err != nil {
		return nil, fmt.Errorf("pdf: registrar footer: %w", err)
	}

	m.AddRows(headerRow(grid, t.Title, t.Subtitle))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow(grid, t.Headers))
	m.AddRows(tableDetailRows(grid, len(t.Headers), t.Rows)...)
	if len(t.Rows) == 0 {
		m.AddRows(row.New(8).Add(col.New(grid).Add(
			text.New("No data found", props.Text{Size: 8, Align: align.Center, Color: colorGray, Top: 2}),
		)))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y subtítulo (der).
func headerRow(grid int, title, subtitle string) core.Row {
	left := grid * 7 / 12
	return row.New(14).Add(
		col.New(left).Add(text.New(nonEmpty(title, "Report"), props.Text{
			Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
		})),
		col.New(grid-left).Add(text.New(subtitle, props.Text{
			Size: 8, Align: align.Right, Color: colorGray, Top: 3,
		})),
	)
}

// tableHeaderRow: cabecera de la tabla con fondo primario.
func tableHeaderRow(grid int, headers []string) core.Row {
	widths := columnWidths(grid, len(headers))
	cols := make([]core.Col, 0, len(headers))
	for i, h := range headers {
		cols = append(cols, col.New(widths[i]).Add(text.New(h, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Left,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(cols...).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableDetailRows: una fila por registro; celdas faltantes quedan vacías.
func tableDetailRows(grid, ncols int, rows [][]string) []core.Row {
	widths := columnWidths(grid, ncols)
	result := make([]core.Row, 0, len(rows))
	for i, r := range rows {
		cols := make([]core.Col, 0, ncols)
		for j := 0; j < ncols; j++ {
			var v string
			if j < len(r) {
				v = r[j]
			}
			cols = append(cols, col.New(widths[j]).Add(text.New(v, props.Text{
				Size: 8, Align: align.Left, Top: 1, Left: 1, Right: 1,
			})))
		}
		rr := row.New(7).Add(cols...)
		if i%2 == 1 {
			rr = rr.WithStyle(&props.Cell{BackgroundColor: colorStripe})
		}
		result = append(result, rr)
	}
	return result
}

// footerRow: total de filas y fecha de generación en cada página.
func footerRow(grid, total int, at time.Time) core.Row {
	left := grid / 2
	return row.New(6).Add(
		col.New(left).Add(text.New(fmt.Sprintf("Rows: %d", total), props.Text{
			Size: 7, Color: colorGray,
		})),
		col.New(grid-left).Add(text.New("Generated "+at.Format("2006-01-02 15:04"), props.Text{
			Size: 7, Align: align.Right, Color: colorGray,
		})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// gridSize: 12 unidades salvo que haya más columnas que eso.
func gridSize(ncols int) int {
	if ncols <= 12 {
		return 12
	}
	return ncols
}

// columnWidths reparte grid entre ncols; el resto va a las primeras columnas.
func columnWidths(grid, ncols int) []int {
	widths := make([]int, ncols)
	if ncols == 0 {
		return widths
	}
	base, rest := grid/ncols, grid%ncols
	for i := range widths {
		widths[i] = base
		if i < rest {
			widths[i]++
		}
	}
	return widths
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
