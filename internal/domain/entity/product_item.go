package entity

import "github.com/shopspring/decimal"

// ProductItem es la forma base de toda línea de artículo traída del ERP.
// Los campos de identidad y las banderas regulatorias se copian del producto
// en el momento de la carga: son una instantánea, no una referencia viva.
type ProductItem struct {
	ID          int64
	Name        string
	DefaultCode string // referencia interna / código de fabricante
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal

	// Banderas regulatorias (campos personalizados del esquema Odoo).
	CE            bool
	UserManual    bool
	UDI           string
	MedicalDevice bool
	SingleUse     bool
}

// SaleOrderLine línea de un pedido de venta; referencia al pedido por id.
type SaleOrderLine struct {
	ProductItem
	OrderID int64
}

// PurchaseOrderLine línea de un pedido de compra; referencia al pedido por id.
type PurchaseOrderLine struct {
	ProductItem
	OrderID int64
}

// Component componente consumido por una orden de fabricación.
// MoveID es el movimiento de stock que lo originó.
type Component struct {
	ProductItem
	OrderID int64
	MoveID  int64
}
