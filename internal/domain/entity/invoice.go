package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice factura vinculada a un pedido de venta o compra.
// State es el estado de ciclo de vida tal cual lo entrega el ERP
// (p.ej. "posted"); no se interpreta.
type Invoice struct {
	ID          int64
	Number      string // número de documento (p.ej. "RG2024-0042")
	Date        time.Time
	AmountTotal decimal.Decimal
	State       string
}
