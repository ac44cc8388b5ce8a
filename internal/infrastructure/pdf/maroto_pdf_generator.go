// Package pdf implementa la generación del reporte de stock en PDF
// (inventario valorizado por producto, para impresión y conteo físico).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + Fecha de generación                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Código | Producto | Unid | Stock | Mín | Costo |    │
//	│         Valor | Estado                                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Productos listados / Valor total del inventario   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
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
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/producao-api/internal/application/dto"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 40, Blue: 40}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator genera reportes de inventario usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateStockReportPDF genera el PDF del reporte de stock y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateStockReportPDF(_ context.Context, rows []dto.StockReportRow) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Stock", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow())
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, r := range rows {
		m.AddRows(tableDetailRow(r))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(rows))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y fecha de generación (der).
func headerRow() core.Row {
	fecha := time.Now().Format("02/01/2006 15:04")

	return row.New(14).Add(
		col.New(7).Add(
			text.New("REPORTE DE STOCK", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Inventario valorizado por producto", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Generado: "+fecha, props.Text{
				Size: 9, Align: align.Right, Top: 1, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := func(size int, label string, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 1,
		}))
	}
	return row.New(6).Add(
		header(2, "Código", align.Left),
		header(3, "Producto", align.Left),
		header(1, "Unid", align.Center),
		header(1, "Stock", align.Right),
		header(1, "Mín", align.Right),
		header(1, "Costo", align.Right),
		header(2, "Valor", align.Right),
		header(1, "Estado", align.Center),
	)
}

func tableDetailRow(r dto.StockReportRow) core.Row {
	cell := func(size int, s string, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{
			Size: 8, Align: a, Top: 1,
		}))
	}

	statusText := "OK"
	statusColor := colorGray
	if r.Status == dto.StockStatusLow {
		statusText = "BAJO"
		statusColor = colorAlert
	}

	return row.New(5).Add(
		cell(2, r.Code, align.Left),
		cell(3, r.Name, align.Left),
		cell(1, r.Unit, align.Center),
		cell(1, r.CurrentStock.StringFixed(2), align.Right),
		cell(1, r.MinStock.StringFixed(2), align.Right),
		cell(1, r.CurrentCost.StringFixed(2), align.Right),
		cell(2, r.TotalValue.StringFixed(2), align.Right),
		col.New(1).Add(text.New(statusText, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 1, Color: statusColor,
		})),
	)
}

func totalsRow(rows []dto.StockReportRow) core.Row {
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.TotalValue)
	}

	return row.New(8).Add(
		col.New(8).Add(text.New(
			fmt.Sprintf("Productos listados: %d", len(rows)),
			props.Text{Size: 9, Top: 2, Color: colorGray},
		)),
		col.New(4).Add(text.New(
			"Valor total: "+total.StringFixed(2),
			props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 2, Color: colorPrimary},
		)),
	)
}
