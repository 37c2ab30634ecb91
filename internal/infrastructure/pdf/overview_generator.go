package pdf

import (
	"fmt"

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

	"github.com/jhoicas/Etiquetas-api/internal/application/erpdata"
	"github.com/jhoicas/Etiquetas-api/internal/domain/entity"
)

// ── Paleta ─────────────────────────────────────────────────────────────────────

var (
	colorHeader = &props.Color{Red: 20, Green: 60, Blue: 120}
	colorMuted  = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// OverviewGenerator genera la hoja resumen A4 de una carga: una fila por
// pedido u orden, con el conteo de entradas al pie.
type OverviewGenerator struct{}

// NewOverviewGenerator construye el generador.
func NewOverviewGenerator() *OverviewGenerator { return &OverviewGenerator{} }

// title título de la hoja por tipo de carga.
func title(kind erpdata.Kind) string {
	switch kind {
	case erpdata.KindSales:
		return "Verkaufsaufträge"
	case erpdata.KindPurchases:
		return "Einkaufsaufträge"
	default:
		return "Fertigungsaufträge"
	}
}

// Generate produce el PDF de la hoja resumen.
func (g *OverviewGenerator) Generate(res *erpdata.Result) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		Build()

	m := maroto.New(cfg)

	m.AddRows(row.New(10).Add(
		col.New(12).Add(text.New(title(res.Kind), props.Text{
			Style: fontstyle.Bold, Size: 14, Color: colorHeader,
		})),
	))
	m.AddRows(line.NewRow(2, props.Line{Color: colorHeader, Thickness: 0.5}))

	m.AddRows(tableHeader(res.Kind))
	for _, r := range tableRows(res) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(2, props.Line{Color: colorMuted, Thickness: 0.3}))
	m.AddRows(row.New(8).Add(
		col.New(12).Add(text.New(fmt.Sprintf("%d Einträge", res.Count()), props.Text{
			Size: 9, Color: colorMuted, Align: align.Right, Top: 2,
		})),
	))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generar hoja resumen: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Tabla ──────────────────────────────────────────────────────────────────────

func headerCell(width int, label string) core.Col {
	return col.New(width).Add(text.New(label, props.Text{
		Style: fontstyle.Bold, Size: 9,
	}))
}

func cell(width int, value string) core.Col {
	return col.New(width).Add(text.New(value, props.Text{Size: 8}))
}

func tableHeader(kind erpdata.Kind) core.Row {
	if kind == erpdata.KindManufacturing {
		return row.New(7).Add(
			headerCell(3, "Nummer"),
			headerCell(4, "Artikel"),
			headerCell(2, "Lot"),
			headerCell(1, "Menge"),
			headerCell(2, "Start"),
		)
	}
	return row.New(7).Add(
		headerCell(2, "Nummer"),
		headerCell(4, "Partner"),
		headerCell(2, "Datum"),
		headerCell(2, "Betrag"),
		headerCell(2, "Rechnung"),
	)
}

func tableRows(res *erpdata.Result) []core.Row {
	var rows []core.Row
	switch res.Kind {
	case erpdata.KindSales:
		for _, o := range res.Sales {
			rows = append(rows, orderRow(o.Number, o.PartnerName, dateText(o), o.AmountTotal.StringFixed(2), invoiceText(o.Invoices)))
		}
	case erpdata.KindPurchases:
		for _, o := range res.Purchases {
			rows = append(rows, orderRow(o.Number, o.PartnerName, purchaseDateText(o), o.AmountTotal.StringFixed(2), invoiceText(o.Invoices)))
		}
	case erpdata.KindManufacturing:
		for _, mo := range res.Mfg {
			start := ""
			if !mo.DateStart.IsZero() {
				start = mo.DateStart.Format("02.01.2006")
			}
			rows = append(rows, row.New(6).Add(
				cell(3, mo.OrderNumber),
				cell(4, mo.Name),
				cell(2, mo.LotNumber),
				cell(1, mo.Quantity.String()),
				cell(2, start),
			))
		}
	}
	return rows
}

func orderRow(number, partner, date, amount, invoice string) core.Row {
	return row.New(6).Add(
		cell(2, number),
		cell(4, partner),
		cell(2, date),
		cell(2, amount),
		cell(2, invoice),
	)
}

func dateText(o entity.SaleOrder) string {
	if o.Date.IsZero() {
		return ""
	}
	return o.Date.Format("02.01.2006")
}

func purchaseDateText(o entity.PurchaseOrder) string {
	if o.Date.IsZero() {
		return ""
	}
	return o.Date.Format("02.01.2006")
}

func invoiceText(invoices []entity.Invoice) string {
	if len(invoices) == 0 {
		return ""
	}
	return invoices[0].Number
}
