package entity

import "time"

// ManufacturingOrder orden de fabricación. Es una variante de ProductItem:
// el artículo fabricado aporta la identidad (nombre, código, banderas) y la
// orden agrega número interno, fecha de inicio, lote y componentes.
type ManufacturingOrder struct {
	ProductItem
	OrderNumber string    // número generado internamente (p.ej. "WH/MO/00042")
	DateStart   time.Time // cero = ausente
	LotNumber   string    // lote de producción; vacío = ausente
	Components  []Component
}
