package export

import (
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/inventory-sync-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoPDFGenerator genera el reporte PDF del historial usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateLogsPDF genera el reporte y devuelve sus bytes. Layout A4:
// header con título y fecha de generación, tabla de movimientos y un pie
// con el neto del conjunto exportado.
func (g *MarotoPDFGenerator) GenerateLogsPDF(logs []*entity.InventoryLog, generatedAt time.Time) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Historial de Inventario", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(generatedAt, len(logs)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableLogRows(logs) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(netChangeRow(logs))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("export: generar PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: título (izq) y fecha de generación + total de filas (der).
func headerRow(generatedAt time.Time, count int) core.Row {
	return row.New(14).Add(
		col.New(7).Add(
			text.New("HISTORIAL DE INVENTARIO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("Generado: "+generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New(fmt.Sprintf("Movimientos: %d", count), props.Text{
				Size: 8, Align: align.Right, Top: 7, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de movimientos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("ID", 1, align.Center),
		h("Producto", 4, align.Left),
		h("Anterior", 2, align.Right),
		h("Nuevo", 1, align.Right),
		h("Cambio", 1, align.Right),
		h("Fuente", 2, align.Left),
		h("Fecha", 1, align.Left),
	)
}

// tableLogRows: una fila por movimiento.
func tableLogRows(logs []*entity.InventoryLog) []core.Row {
	result := make([]core.Row, 0, len(logs))
	for _, l := range logs {
		name := l.ProductName
		if name == "" {
			name = fmt.Sprintf("#%d", l.ProductID)
		}
		result = append(result, row.New(6).Add(
			col.New(1).Add(text.New(
				strconv.FormatInt(l.ID, 10),
				props.Text{Size: 7, Align: align.Center, Top: 1},
			)),
			col.New(4).Add(text.New(
				name,
				props.Text{Size: 7, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				fmt.Sprintf("%d", l.PreviousStock),
				props.Text{Size: 7, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", l.NewStock),
				props.Text{Size: 7, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				l.FormattedChange(),
				props.Text{Size: 7, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				l.UserSource,
				props.Text{Size: 7, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(1).Add(text.New(
				l.CreatedAt.Format("02/01/06"),
				props.Text{Size: 7, Align: align.Left, Top: 1, Left: 1},
			)),
		))
	}
	return result
}

// netChangeRow: neto del conjunto exportado, alineado a la derecha.
func netChangeRow(logs []*entity.InventoryLog) core.Row {
	var net int64
	for _, l := range logs {
		net += l.ChangeAmount
	}
	value := fmt.Sprintf("%d", net)
	if net > 0 {
		value = "+" + value
	}
	return row.New(10).Add(
		col.New(8),
		col.New(2).Add(text.New("Cambio neto:", props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right,
			Color: colorPrimary, Top: 2, Right: 2,
		})),
		col.New(2).Add(text.New(value, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right,
			Color: colorPrimary, Top: 2, Right: 1,
		})),
	)
}
