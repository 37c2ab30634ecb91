// Package label contiene la lógica pura de composición de etiquetas:
// derivación de número de charge, texto de cantidad, payload QR GS1 y
// planificación de la fila de símbolos regulatorios. No depende de ninguna
// librería de render; el resultado (Model) lo consume el renderer PDF/ZPL.
package label

import (
	"time"

	"github.com/jhoicas/Etiquetas-api/internal/domain/entity"
)

// Kind tipo de etiqueta.
type Kind string

const (
	// KindOrder etiqueta de pedido (Auftragsetikett): charge + proveedor.
	KindOrder Kind = "order"
	// KindProduct etiqueta de producto (Produktetikett): UDI/LOT/GS1.
	KindProduct Kind = "product"
)

// Sentinelas de composición.
const (
	// NoData payload QR cuando no hay ningún dato codificable.
	NoData = "NO DATA"
	// NoCharge número de charge cuando el pedido no tiene factura.
	NoCharge = "NOCHARGE"
	// NoCode código de artículo ausente (solo para nombres de archivo).
	NoCode = "NODEFAULT"
	// NoLot lote ausente (solo para nombres de archivo).
	NoLot = "NOLOT"
	// UnknownName nombre de artículo ausente.
	UnknownName = "Unbekannt"
)

// IconCode identifica un símbolo regulatorio del pie de la etiqueta.
type IconCode string

const (
	IconMedicalDevice IconCode = "MD"
	IconUserManual    IconCode = "IFU"
	IconSingleUse     IconCode = "SU"
	IconCE            IconCode = "CE"
	IconDateStamp     IconCode = "DATE"
)

// IconPlacement un símbolo con su desplazamiento horizontal (mm) dentro de
// la fila. Los anchos de ranura son fijos por símbolo; el orden de la fila
// es fijo: MD, manual, un solo uso, CE, sello de fecha de producción.
type IconPlacement struct {
	Code   IconCode
	Offset float64
}

// Anchos de ranura por símbolo, en mm.
const (
	slotMedicalDevice = 6.0
	slotUserManual    = 5.0
	slotSingleUse     = 5.0
	slotCE            = 7.0
)

// OrderRef vista neutra de un pedido (venta o compra) para la composición.
type OrderRef struct {
	Number      string
	PartnerName string
	Invoices    []entity.Invoice
}

// FirstInvoice devuelve la primera factura (la autoritativa) o nil.
func (o *OrderRef) FirstInvoice() *entity.Invoice {
	if o == nil || len(o.Invoices) == 0 {
		return nil
	}
	return &o.Invoices[0]
}

// Model es el conjunto de campos ya derivados que el renderer coloca en la
// página. Inmutable una vez compuesto.
type Model struct {
	Kind Kind

	Name         string // nombre a mostrar (texto editado o nombre de producto)
	Code         string // referencia de artículo
	QuantityText string // "5/10" o "10"
	QRPayload    string

	// Etiqueta de pedido.
	BatchNumber   string // número de factura sin prefijo, o NoCharge
	PartnerName   string
	InvoiceNumber string
	InvoiceDate   time.Time

	// Etiqueta de producto.
	UDI             string
	LotNumber       string
	ProductionMonth string // "2024/03"; vacío = ausente
	Icons           []IconPlacement
	AddressLines    []string
}
