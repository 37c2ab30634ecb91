package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleOrder pedido de venta con sus líneas y facturas asociadas.
// La primera factura de Invoices se trata como autoritativa para mostrar.
type SaleOrder struct {
	ID          int64
	Number      string
	PartnerName string
	Date        time.Time
	AmountTotal decimal.Decimal
	Lines       []SaleOrderLine
	Invoices    []Invoice
}

// PurchaseOrder pedido de compra con sus líneas y facturas asociadas.
type PurchaseOrder struct {
	ID          int64
	Number      string
	PartnerName string
	Date        time.Time
	AmountTotal decimal.Decimal
	Lines       []PurchaseOrderLine
	Invoices    []Invoice
}
