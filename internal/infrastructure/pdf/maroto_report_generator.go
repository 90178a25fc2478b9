// Package pdf renderiza el reporte de ganancias y pérdidas de la tienda como PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Tienda + período     │  N° de reporte               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: ingresos / costos / utilidad / pedidos            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA DIARIA (por fecha de entrega)                         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOP PRODUCTOS                                               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

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

	appanalytics "github.com/jhoicas/seller-analytics/internal/application/analytics"
	"github.com/jhoicas/seller-analytics/internal/application/dto"
)

var _ appanalytics.ReportPDFGenerator = (*MarotoReportGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorLoss    = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// MarotoReportGenerator implementa analytics.ReportPDFGenerator usando Maroto v2.
// TODO: registrar una fuente TTF con cirílico (config.WithCustomFonts) para los nombres de producto.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateReportPDF genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateReportPDF(_ context.Context, storeName string, rep *dto.ReportDTO) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Reporte de ganancias y pérdidas", true).
		WithAuthor(storeName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(storeName, rep))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRows(rep)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("DÍAS (por fecha de entrega)"))
	m.AddRows(dailyHeaderRow())
	m.AddRows(dailyRows(rep.DailyData)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(sectionTitle("TOP PRODUCTOS"))
	m.AddRows(productsHeaderRow())
	m.AddRows(productRows(rep.TopProducts)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: tienda + período (izq) y id del reporte (der).
func headerRow(storeName string, rep *dto.ReportDTO) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(storeName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Período: %s a %s", rep.Period.DateFrom, rep.Period.DateTo), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("REPORTE P&L", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(rep.ReportID, props.Text{
				Size: 6, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func summaryRows(rep *dto.ReportDTO) []core.Row {
	cell := func(label string, v decimal.Decimal) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1}),
			text.New(formatMoney(v), props.Text{Style: fontstyle.Bold, Size: 10, Top: 5, Color: amountColor(v)}),
		)
	}
	return []core.Row{
		row.New(13).Add(
			cell("Ingresos", rep.TotalRevenue),
			cell("Costo de mercancía", rep.TotalCost),
			cell("Comisiones", rep.TotalCommissions),
			cell("Impuestos", rep.TotalTax),
		),
		row.New(13).Add(
			cell("Envíos", rep.TotalDelivery),
			cell("Gastos operativos", rep.TotalOperational),
			cell("Publicidad", rep.TotalAdvertising),
			cell("UTILIDAD", rep.TotalProfit),
		),
		row.New(8).Add(col.New(12).Add(text.New(
			fmt.Sprintf("Pedidos: %d   |   Ticket promedio: %s   |   Orgánicos: %d   |   Publicidad: %d   |   Pendientes: %d",
				rep.TotalOrders, formatMoney(rep.AvgOrderValue),
				rep.OrdersBySource.Organic, rep.OrdersBySource.Ads, rep.PendingOrders.Count),
			props.Text{Size: 8, Top: 2, Color: colorGray},
		))),
	}
}

func sectionTitle(s string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 1}),
	))
}

func headerCell(label string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(label, props.Text{
		Style: fontstyle.Bold, Size: 7, Align: a, Top: 1, Left: 1, Right: 1,
	}))
}

func dailyHeaderRow() core.Row {
	return row.New(6).Add(
		headerCell("Fecha", 1, align.Left),
		headerCell("Día", 1, align.Left),
		headerCell("Ped.", 1, align.Center),
		headerCell("Ingresos", 2, align.Right),
		headerCell("Costo", 2, align.Right),
		headerCell("Com.+Imp.", 2, align.Right),
		headerCell("Gastos", 1, align.Right),
		headerCell("Utilidad", 2, align.Right),
	)
}

func dailyRows(days []dto.DailyDataDTO) []core.Row {
	out := make([]core.Row, 0, len(days))
	for _, d := range days {
		cell := func(s string, size int, a align.Type) core.Col {
			return col.New(size).Add(text.New(s, props.Text{Size: 7, Align: a, Top: 1, Left: 1, Right: 1}))
		}
		expenses := d.Operational.Add(d.Advertising).Add(d.Delivery)
		out = append(out, row.New(5).Add(
			cell(d.Date, 1, align.Left),
			cell(d.Day, 1, align.Left),
			cell(fmt.Sprint(d.Orders), 1, align.Center),
			cell(formatMoney(d.Revenue), 2, align.Right),
			cell(formatMoney(d.Cost), 2, align.Right),
			cell(formatMoney(d.Commissions.Add(d.Tax)), 2, align.Right),
			cell(formatMoney(expenses), 1, align.Right),
			col.New(2).Add(text.New(formatMoney(d.Profit), props.Text{
				Size: 7, Align: align.Right, Top: 1, Right: 1, Color: amountColor(d.Profit),
			})),
		))
	}
	return out
}

func productsHeaderRow() core.Row {
	return row.New(6).Add(
		headerCell("SKU", 2, align.Left),
		headerCell("Producto", 4, align.Left),
		headerCell("Uds.", 1, align.Center),
		headerCell("Ingresos", 2, align.Right),
		headerCell("Utilidad", 2, align.Right),
		headerCell("Margen", 1, align.Right),
	)
}

func productRows(products []dto.TopProductDTO) []core.Row {
	out := make([]core.Row, 0, len(products))
	for _, p := range products {
		out = append(out, row.New(5).Add(
			col.New(2).Add(text.New(p.SKU, props.Text{Size: 7, Top: 1, Left: 1})),
			col.New(4).Add(text.New(p.Name, props.Text{Size: 7, Top: 1, Left: 1})),
			col.New(1).Add(text.New(p.Sales.String(), props.Text{Size: 7, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(formatMoney(p.Revenue), props.Text{Size: 7, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(formatMoney(p.Profit), props.Text{
				Size: 7, Align: align.Right, Top: 1, Right: 1, Color: amountColor(p.Profit),
			})),
			col.New(1).Add(text.New(p.Margin.StringFixed(1)+"%", props.Text{Size: 7, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return out
}

// ── helpers ───────────────────────────────────────────────────────────────────

func amountColor(v decimal.Decimal) *props.Color {
	if v.IsNegative() {
		return colorLoss
	}
	return nil
}

// formatMoney redondea a entero e inserta espacios de miles, conservando el signo.
// Ej: 25000 → "25 000", -1234567.8 → "-1 234 568"
func formatMoney(v decimal.Decimal) string {
	s := v.StringFixed(0)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	n := len(s)
	if n <= 3 {
		return sign + s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ' ')
		}
		buf = append(buf, c)
	}
	return sign + string(buf)
}
