// Package pdf renderiza las etiquetas de 100×50 mm y la hoja resumen A4.
// Las etiquetas usan gofpdf directo porque necesitan colocación absoluta en
// mm; la hoja resumen usa maroto.
package pdf

import (
	"bytes"
	"fmt"

	"github.com/phpdave11/gofpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/jhoicas/Etiquetas-api/internal/domain/label"
)

// Dimensiones de página y colocaciones fijas, en mm. Una sola página; el
// desborde se recorta, nunca se pagina.
const (
	pageW = 100.0
	pageH = 50.0

	qrSizeOrder   = 18.0
	qrSizeProduct = 16.0
)

// LabelRenderer renderiza una etiqueta compuesta a PDF.
type LabelRenderer struct{}

// NewLabelRenderer construye el renderer.
func NewLabelRenderer() *LabelRenderer { return &LabelRenderer{} }

// RenderLabel produce el PDF de una página de la etiqueta.
func (r *LabelRenderer) RenderLabel(m *label.Model) ([]byte, error) {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "mm",
		Size:    gofpdf.SizeType{Wd: pageW, Ht: pageH},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	// Helvetica del núcleo con traducción CP1252 para los umlauts
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	switch m.Kind {
	case label.KindOrder:
		r.renderOrder(pdf, tr, m)
	default:
		r.renderProduct(pdf, tr, m)
	}

	if pdf.Err() {
		return nil, fmt.Errorf("renderizar etiqueta: %w", pdf.Error())
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("escribir PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// ── Etiqueta de pedido ─────────────────────────────────────────────────────────

func (r *LabelRenderer) renderOrder(pdf *gofpdf.Fpdf, tr func(string) string, m *label.Model) {
	drawLogo(pdf, tr, 4, 3, false)

	// Chargennummer a la derecha del logo
	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(56, 8, tr(fmt.Sprintf("Chargennummer   %s", m.BatchNumber)))

	// nombre y código centrados en sus cajas
	centeredBox(pdf, tr, m.Name, 5, 5, 90, 22, 18)
	centeredBox(pdf, tr, m.Code, 5, 27, 90, 10, 14)

	pdf.SetFont("Helvetica", "", 7)
	pdf.Text(5, 42, tr(fmt.Sprintf("Stück   %s", m.QuantityText)))
	pdf.Text(5, 47, tr(fmt.Sprintf("Lieferant   %s", m.PartnerName)))

	drawQR(pdf, m.QRPayload, 79, 29, qrSizeOrder)
}

// ── Etiqueta de producto ───────────────────────────────────────────────────────

func (r *LabelRenderer) renderProduct(pdf *gofpdf.Fpdf, tr func(string) string, m *label.Model) {
	// logo girado −90° pivotando sobre su punto de colocación
	drawLogo(pdf, tr, 91, 2, true)

	centeredBox(pdf, tr, m.Name, 5, 1, 80, 9, 16)

	// REF + código
	drawSymbolCell(pdf, "REF", 4, 11)
	centeredBox(pdf, tr, m.Code, 5, 11, 80, 6, 12)

	pdf.SetFont("Helvetica", "", 7)
	if m.UDI != "" {
		drawSymbolCell(pdf, "UDI", 21, 24)
		pdf.Text(28, 27, tr(m.UDI))
	}
	drawSymbolCell(pdf, "LOT", 21, 29)
	lot := m.LotNumber
	if lot == "" {
		lot = label.NoLot
	}
	pdf.Text(28, 32, tr(lot))

	// QR con su payload impreso debajo
	drawQR(pdf, m.QRPayload, 3, 24, qrSizeProduct)
	pdf.SetFont("Helvetica", "", 5)
	pdf.Text(4, 42, tr(m.QRPayload))

	// fila de símbolos regulatorios
	const iconRowX, iconRowY = 21.0, 34.0
	rowEnd := iconRowX
	for _, ic := range m.Icons {
		x := iconRowX + ic.Offset
		if ic.Code == label.IconDateStamp {
			drawDateStamp(pdf, tr, x, iconRowY, m.ProductionMonth)
		} else {
			drawSymbolCell(pdf, string(ic.Code), x, iconRowY)
		}
		rowEnd = x
	}

	pdf.SetFont("Helvetica", "", 7)
	pdf.Text(rowEnd+9, iconRowY+3, tr(fmt.Sprintf("Stück %s", m.QuantityText)))

	// pie de contacto
	pdf.SetFont("Helvetica", "", 7)
	y := 36.0
	for _, line := range m.AddressLines {
		pdf.Text(70, y, tr(line))
		y += 3
	}
}

// ── Bloques de dibujo ──────────────────────────────────────────────────────────

// drawLogo marca de la empresa: cuadro relleno más razón social en dos
// tamaños. rotated la gira −90° sobre el punto de colocación.
func drawLogo(pdf *gofpdf.Fpdf, tr func(string) string, x, y float64, rotated bool) {
	if rotated {
		pdf.TransformBegin()
		pdf.TransformRotate(-90, x, y)
	}

	pdf.SetFillColor(20, 60, 120)
	pdf.Rect(x, y, 8, 8, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.Text(x+2, y+5.5, "C")
	pdf.SetTextColor(0, 0, 0)

	pdf.SetFont("Helvetica", "B", 8)
	pdf.Text(x+9, y+4, tr("CHW-Technik"))
	pdf.SetFont("Helvetica", "", 5)
	pdf.Text(x+9, y+6.5, tr("OT-Produkte GmbH"))

	if rotated {
		pdf.TransformEnd()
	}
}

// centeredBox escribe texto envuelto y centrado vertical y horizontalmente
// dentro de una caja. El texto que no cabe se recorta por abajo.
func centeredBox(pdf *gofpdf.Fpdf, tr func(string) string, text string, x, y, w, h, fontSize float64) {
	if text == "" {
		return
	}
	pdf.SetFont("Helvetica", "", fontSize)
	lines := pdf.SplitText(tr(text), w)

	lineH := fontSize * 0.3528 * 1.25
	total := float64(len(lines)) * lineH
	top := y + (h-total)/2
	if top < y {
		top = y
	}

	baseline := top + lineH*0.8
	for _, line := range lines {
		lw := pdf.GetStringWidth(line)
		pdf.Text(x+(w-lw)/2, baseline, line)
		baseline += lineH
		if baseline > y+h+lineH {
			break
		}
	}
}

// drawQR genera el bitmap del QR y lo coloca. Payload vacío no dibuja nada.
func drawQR(pdf *gofpdf.Fpdf, payload string, x, y, size float64) {
	if payload == "" {
		return
	}
	png, err := qrcode.Encode(payload, qrcode.Medium, 256)
	if err != nil {
		pdf.SetError(fmt.Errorf("generar QR: %w", err))
		return
	}

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	name := fmt.Sprintf("qr-%s", payload)
	pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(png))
	pdf.ImageOptions(name, x, y, size, size, false, opts, 0, "")
}

// drawSymbolCell celda vectorial de un símbolo regulatorio: recuadro con la
// sigla normalizada dentro.
func drawSymbolCell(pdf *gofpdf.Fpdf, code string, x, y float64) {
	const w, h = 5.0, 4.0
	pdf.SetLineWidth(0.2)
	pdf.Rect(x, y, w, h, "D")
	pdf.SetFont("Helvetica", "B", 6)
	tw := pdf.GetStringWidth(code)
	pdf.Text(x+(w-tw)/2, y+h-1.2, code)
}

// drawDateStamp símbolo de fecha de fabricación: fábrica estilizada con el
// mes de producción debajo.
func drawDateStamp(pdf *gofpdf.Fpdf, tr func(string) string, x, y float64, month string) {
	pdf.SetLineWidth(0.2)
	pdf.Rect(x, y+1.5, 5, 2.5, "D")
	pdf.Polygon([]gofpdf.PointType{
		{X: x, Y: y + 1.5}, {X: x + 1.6, Y: y + 0.5}, {X: x + 1.6, Y: y + 1.5},
		{X: x + 3.2, Y: y + 0.5}, {X: x + 3.2, Y: y + 1.5},
	}, "D")

	if month != "" {
		pdf.SetFont("Helvetica", "", 5)
		pdf.Text(x, y+6, tr(month))
	}
}
