package label

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jhoicas/Etiquetas-api/internal/domain"
	"github.com/jhoicas/Etiquetas-api/internal/domain/entity"
)

// Input datos de entrada de una composición. Según Kind se usa Order+Line
// (etiqueta de pedido) o Mfg (etiqueta de producto).
type Input struct {
	Kind Kind

	Order *OrderRef
	Line  *entity.ProductItem

	Mfg *entity.ManufacturingOrder

	// QuantityText texto de cantidad ingresado por el usuario; si es un
	// entero no negativo se muestra "<ingresado>/<nominal>", si no solo
	// el nominal.
	QuantityText string
	// NameText nombre editado por el usuario; vacío = usar el del producto.
	NameText string
}

// Options ajustes de composición que vienen de la configuración de usuario.
type Options struct {
	// BatchPrefix prefijo a quitar del número de factura. Solo se quita si
	// el número realmente empieza con él; números ajenos pasan sin tocar.
	BatchPrefix  string
	AddressLines []string
}

// Compose deriva el Model de una etiqueta. Nunca falla por datos opcionales
// ausentes (degradan a valores por defecto); solo falla si falta el pedido o
// la línea seleccionada.
func Compose(in Input, opts Options) (*Model, error) {
	switch in.Kind {
	case KindOrder:
		return composeOrder(in, opts)
	case KindProduct:
		return composeProduct(in, opts)
	default:
		return nil, fmt.Errorf("%w: tipo de etiqueta %q", domain.ErrInvalidInput, in.Kind)
	}
}

func composeOrder(in Input, opts Options) (*Model, error) {
	if in.Order == nil {
		return nil, fmt.Errorf("%w: falta el pedido", domain.ErrNoSelection)
	}
	if in.Line == nil {
		return nil, fmt.Errorf("%w: falta la línea", domain.ErrNoSelection)
	}

	m := &Model{
		Kind:         KindOrder,
		Name:         displayName(in.NameText, in.Line.Name),
		Code:         in.Line.DefaultCode,
		QuantityText: quantityText(in.QuantityText, in.Line.Quantity.IntPart()),
		PartnerName:  in.Order.PartnerName,
		BatchNumber:  NoCharge,
		QRPayload:    NoData,
	}

	if inv := in.Order.FirstInvoice(); inv != nil {
		m.InvoiceNumber = inv.Number
		m.InvoiceDate = inv.Date
		m.BatchNumber = BatchNumber(inv.Number, opts.BatchPrefix)
	}
	if m.Code != "" && m.InvoiceNumber != "" {
		m.QRPayload = m.Code + "-" + m.InvoiceNumber
	}
	return m, nil
}

func composeProduct(in Input, opts Options) (*Model, error) {
	if in.Mfg == nil {
		return nil, fmt.Errorf("%w: falta la orden de fabricación", domain.ErrNoSelection)
	}
	mo := in.Mfg

	m := &Model{
		Kind:         KindProduct,
		Name:         displayName(in.NameText, mo.Name),
		Code:         mo.DefaultCode,
		QuantityText: quantityText(in.QuantityText, mo.Quantity.IntPart()),
		UDI:          mo.UDI,
		LotNumber:    mo.LotNumber,
		AddressLines: opts.AddressLines,
	}
	if !mo.DateStart.IsZero() {
		m.ProductionMonth = mo.DateStart.Format("2006/01")
	}
	m.QRPayload = GS1Payload(m.UDI, m.LotNumber, m.ProductionMonth)
	m.Icons = planIcons(mo.ProductItem)
	return m, nil
}

// BatchNumber deriva el número de charge a partir del número de factura:
// quita el prefijo configurado solo cuando está presente.
func BatchNumber(invoiceNumber, prefix string) string {
	if invoiceNumber == "" {
		return NoCharge
	}
	if prefix != "" && strings.HasPrefix(invoiceNumber, prefix) {
		return strings.TrimPrefix(invoiceNumber, prefix)
	}
	return invoiceNumber
}

// GS1Payload arma el payload QR de la etiqueta de producto concatenando en
// orden fijo los segmentos presentes: (01)UDI, (10)lote, (11)mes de
// producción. Si no hay ninguno devuelve NoData.
func GS1Payload(udi, lot, productionMonth string) string {
	var b strings.Builder
	if udi != "" {
		b.WriteString("(01)")
		b.WriteString(udi)
	}
	if lot != "" {
		b.WriteString("(10)")
		b.WriteString(lot)
	}
	if productionMonth != "" {
		b.WriteString("(11)")
		b.WriteString(productionMonth)
	}
	if b.Len() == 0 {
		return NoData
	}
	return b.String()
}

// quantityText "<ingresado>/<nominal>" si el texto del usuario es un entero
// no negativo; si no, solo el nominal.
func quantityText(entered string, nominal int64) string {
	if n, err := strconv.Atoi(strings.TrimSpace(entered)); err == nil && n >= 0 {
		return fmt.Sprintf("%d/%d", n, nominal)
	}
	return strconv.FormatInt(nominal, 10)
}

// ValidQuantityText true si el texto está vacío o es un entero no negativo.
// Lo usa la validación de impresión; la composición en sí nunca rechaza.
func ValidQuantityText(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return true
	}
	n, err := strconv.Atoi(s)
	return err == nil && n >= 0
}

func displayName(edited, productName string) string {
	if strings.TrimSpace(edited) != "" {
		return edited
	}
	if productName != "" {
		return productName
	}
	return UnknownName
}

// planIcons fila de símbolos en orden fijo; cada bandera activa reserva su
// ranura y desplaza las siguientes. El sello de fecha es incondicional.
func planIcons(p entity.ProductItem) []IconPlacement {
	var icons []IconPlacement
	x := 0.0
	if p.MedicalDevice {
		icons = append(icons, IconPlacement{Code: IconMedicalDevice, Offset: x})
		x += slotMedicalDevice
	}
	if p.UserManual {
		icons = append(icons, IconPlacement{Code: IconUserManual, Offset: x})
		x += slotUserManual
	}
	if p.SingleUse {
		icons = append(icons, IconPlacement{Code: IconSingleUse, Offset: x})
		x += slotSingleUse
	}
	if p.CE {
		icons = append(icons, IconPlacement{Code: IconCE, Offset: x})
		x += slotCE
	}
	icons = append(icons, IconPlacement{Code: IconDateStamp, Offset: x})
	return icons
}
