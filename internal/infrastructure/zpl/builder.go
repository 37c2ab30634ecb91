// Package zpl arma el flujo de comandos ZPL de una etiqueta para el envío
// crudo a impresoras térmicas (100×50 mm a 203 dpi: 800×400 puntos).
package zpl

import (
	"fmt"
	"strings"

	"github.com/jhoicas/Etiquetas-api/internal/domain/label"
)

// Builder construye el ZPL a partir de una etiqueta compuesta.
type Builder struct{}

// NewBuilder construye el builder.
func NewBuilder() *Builder { return &Builder{} }

// Build genera el documento ZPL de una etiqueta.
func (b *Builder) Build(m *label.Model) string {
	var sb strings.Builder
	sb.WriteString("^XA\n")
	sb.WriteString("^PW800\n") // 100 mm a 203 dpi
	sb.WriteString("^LL400\n") // 50 mm a 203 dpi

	field(&sb, 30, 30, 40, m.Name)
	field(&sb, 30, 90, 30, m.Code)
	field(&sb, 30, 140, 30, "Stück "+m.QuantityText)

	switch m.Kind {
	case label.KindOrder:
		field(&sb, 30, 190, 30, "Chargennummer "+m.BatchNumber)
		field(&sb, 30, 240, 30, "Lieferant "+m.PartnerName)
	default:
		if m.UDI != "" {
			field(&sb, 30, 190, 30, "UDI "+m.UDI)
		}
		field(&sb, 30, 240, 30, "LOT "+m.LotNumber)
	}

	if m.QRPayload != "" && m.QRPayload != label.NoData {
		// QR nativo de la impresora, corrección de errores M
		sb.WriteString("^FO560,160\n^BQN,2,6\n")
		fmt.Fprintf(&sb, "^FDMA,%s^FS\n", m.QRPayload)
	}

	sb.WriteString("^XZ\n")
	return sb.String()
}

func field(sb *strings.Builder, x, y, size int, text string) {
	if text == "" {
		return
	}
	fmt.Fprintf(sb, "^FO%d,%d\n^A0N,%d,%d\n^FD%s^FS\n", x, y, size, size, text)
}
