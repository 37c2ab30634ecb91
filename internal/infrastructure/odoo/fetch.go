package odoo

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/Etiquetas-api/internal/domain/entity"
)

// Fetcher lee pedidos de venta, pedidos de compra y órdenes de fabricación
// del ERP. Cada carga es atómica: si falla cualquier etapa se descarta el
// resultado parcial y se devuelve un error que nombra la etapa.
type Fetcher struct {
	client *Client
	fields FieldMap
}

// NewFetcher construye el Fetcher sobre un cliente ya configurado.
func NewFetcher(client *Client, fields FieldMap) *Fetcher {
	return &Fetcher{client: client, fields: fields}
}

// ── Pedidos de venta ───────────────────────────────────────────────────────────

// FetchSales carga los últimos limit pedidos de venta con líneas y facturas.
func (f *Fetcher) FetchSales(ctx context.Context, limit int) ([]entity.SaleOrder, error) {
	headers, err := f.client.searchRead(ctx, "sale.order", []any{},
		[]string{"id", "name", "partner_id", "date_order", "amount_total", "order_line", "invoice_ids"},
		"date_order desc", limit)
	if err != nil {
		return nil, fmt.Errorf("leer pedidos de venta: %w", err)
	}

	var lineIDs, invoiceIDs []int64
	for _, h := range headers {
		lineIDs = append(lineIDs, h.idList("order_line")...)
		invoiceIDs = append(invoiceIDs, h.idList("invoice_ids")...)
	}

	lines, err := f.client.read(ctx, "sale.order.line", lineIDs,
		[]string{"id", "order_id", "product_id", "name", "product_uom_qty", "price_unit"})
	if err != nil {
		return nil, fmt.Errorf("leer líneas de venta: %w", err)
	}

	products, err := f.readProducts(ctx, lines)
	if err != nil {
		return nil, fmt.Errorf("leer productos de venta: %w", err)
	}

	invoices, err := f.readInvoices(ctx, invoiceIDs)
	if err != nil {
		return nil, fmt.Errorf("leer facturas de venta: %w", err)
	}

	linesByOrder := map[int64][]entity.SaleOrderLine{}
	for _, l := range lines {
		orderID, _ := l.many2one("order_id")
		linesByOrder[orderID] = append(linesByOrder[orderID], entity.SaleOrderLine{
			ProductItem: f.lineItem(l, "product_uom_qty", products),
			OrderID:     orderID,
		})
	}

	orders := make([]entity.SaleOrder, 0, len(headers))
	for _, h := range headers {
		_, partner := h.many2one("partner_id")
		orders = append(orders, entity.SaleOrder{
			ID:          h.id(),
			Number:      h.str("name"),
			PartnerName: partner,
			Date:        h.dateField("date_order"),
			AmountTotal: h.dec("amount_total"),
			Lines:       linesByOrder[h.id()],
			Invoices:    pickInvoices(h.idList("invoice_ids"), invoices),
		})
	}
	return orders, nil
}

// ── Pedidos de compra ──────────────────────────────────────────────────────────

// FetchPurchases carga los últimos limit pedidos de compra con líneas y
// facturas.
func (f *Fetcher) FetchPurchases(ctx context.Context, limit int) ([]entity.PurchaseOrder, error) {
	headers, err := f.client.searchRead(ctx, "purchase.order", []any{},
		[]string{"id", "name", "partner_id", "date_order", "amount_total", "order_line", "invoice_ids"},
		"date_order desc", limit)
	if err != nil {
		return nil, fmt.Errorf("leer pedidos de compra: %w", err)
	}

	var lineIDs, invoiceIDs []int64
	for _, h := range headers {
		lineIDs = append(lineIDs, h.idList("order_line")...)
		invoiceIDs = append(invoiceIDs, h.idList("invoice_ids")...)
	}

	lines, err := f.client.read(ctx, "purchase.order.line", lineIDs,
		[]string{"id", "order_id", "product_id", "name", "product_qty", "price_unit"})
	if err != nil {
		return nil, fmt.Errorf("leer líneas de compra: %w", err)
	}

	products, err := f.readProducts(ctx, lines)
	if err != nil {
		return nil, fmt.Errorf("leer productos de compra: %w", err)
	}

	invoices, err := f.readInvoices(ctx, invoiceIDs)
	if err != nil {
		return nil, fmt.Errorf("leer facturas de compra: %w", err)
	}

	linesByOrder := map[int64][]entity.PurchaseOrderLine{}
	for _, l := range lines {
		orderID, _ := l.many2one("order_id")
		linesByOrder[orderID] = append(linesByOrder[orderID], entity.PurchaseOrderLine{
			ProductItem: f.lineItem(l, "product_qty", products),
			OrderID:     orderID,
		})
	}

	orders := make([]entity.PurchaseOrder, 0, len(headers))
	for _, h := range headers {
		_, partner := h.many2one("partner_id")
		orders = append(orders, entity.PurchaseOrder{
			ID:          h.id(),
			Number:      h.str("name"),
			PartnerName: partner,
			Date:        h.dateField("date_order"),
			AmountTotal: h.dec("amount_total"),
			Lines:       linesByOrder[h.id()],
			Invoices:    pickInvoices(h.idList("invoice_ids"), invoices),
		})
	}
	return orders, nil
}

// ── Órdenes de fabricación ─────────────────────────────────────────────────────

// FetchManufacturingOrders carga las últimas limit órdenes de fabricación
// con el artículo fabricado, lote y componentes consumidos.
func (f *Fetcher) FetchManufacturingOrders(ctx context.Context, limit int) ([]entity.ManufacturingOrder, error) {
	headers, err := f.client.searchRead(ctx, "mrp.production", []any{},
		[]string{"id", "name", "product_id", "product_qty", "date_start", "lot_producing_id", "move_raw_ids"},
		"date_start desc", limit)
	if err != nil {
		return nil, fmt.Errorf("leer órdenes de fabricación: %w", err)
	}

	var moveIDs []int64
	for _, h := range headers {
		moveIDs = append(moveIDs, h.idList("move_raw_ids")...)
	}

	moves, err := f.client.read(ctx, "stock.move", moveIDs,
		[]string{"id", "raw_material_production_id", "product_id", "product_uom_qty"})
	if err != nil {
		return nil, fmt.Errorf("leer componentes: %w", err)
	}

	// una sola lectura de productos para artículos fabricados y componentes
	products, err := f.readProducts(ctx, append(append([]record{}, headers...), moves...))
	if err != nil {
		return nil, fmt.Errorf("leer productos de fabricación: %w", err)
	}

	movesByOrder := map[int64][]entity.Component{}
	for _, mv := range moves {
		orderID, _ := mv.many2one("raw_material_production_id")
		productID, fallbackName := mv.many2one("product_id")
		item := productItem(products[productID], f.fields)
		if item.Name == "" {
			item.Name = fallbackName
		}
		item.Quantity = mv.dec("product_uom_qty")
		movesByOrder[orderID] = append(movesByOrder[orderID], entity.Component{
			ProductItem: item,
			OrderID:     orderID,
			MoveID:      mv.id(),
		})
	}

	orders := make([]entity.ManufacturingOrder, 0, len(headers))
	for _, h := range headers {
		productID, fallbackName := h.many2one("product_id")
		item := productItem(products[productID], f.fields)
		if item.Name == "" {
			item.Name = fallbackName
		}
		item.Quantity = h.dec("product_qty")

		_, lot := h.many2one("lot_producing_id")
		orders = append(orders, entity.ManufacturingOrder{
			ProductItem: item,
			OrderNumber: h.str("name"),
			DateStart:   h.dateField("date_start"),
			LotNumber:   lot,
			Components:  movesByOrder[h.id()],
		})
	}
	return orders, nil
}

// ── Lecturas compartidas ───────────────────────────────────────────────────────

// readProducts extrae los product_id distintos de las filas dadas y hace UNA
// lectura de product.product, indexada por id.
func (f *Fetcher) readProducts(ctx context.Context, rows []record) (map[int64]record, error) {
	seen := map[int64]bool{}
	var ids []int64
	for _, r := range rows {
		id, _ := r.many2one("product_id")
		if id != 0 && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	recs, err := f.client.read(ctx, "product.product", ids, f.fields.productFields())
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]record, len(recs))
	for _, r := range recs {
		byID[r.id()] = r
	}
	return byID, nil
}

// readInvoices lee en lote las facturas vinculadas, indexadas por id.
func (f *Fetcher) readInvoices(ctx context.Context, ids []int64) (map[int64]entity.Invoice, error) {
	seen := map[int64]bool{}
	var distinct []int64
	for _, id := range ids {
		if id != 0 && !seen[id] {
			seen[id] = true
			distinct = append(distinct, id)
		}
	}

	recs, err := f.client.read(ctx, "account.move", distinct,
		[]string{"id", "name", "invoice_date", "amount_total", "state"})
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]entity.Invoice, len(recs))
	for _, r := range recs {
		byID[r.id()] = entity.Invoice{
			ID:          r.id(),
			Number:      r.str("name"),
			Date:        r.dateField("invoice_date"),
			AmountTotal: r.dec("amount_total"),
			State:       r.str("state"),
		}
	}
	return byID, nil
}

// pickInvoices resuelve la lista de ids de un pedido contra el índice,
// preservando el orden del ERP.
func pickInvoices(ids []int64, byID map[int64]entity.Invoice) []entity.Invoice {
	var out []entity.Invoice
	for _, id := range ids {
		if inv, ok := byID[id]; ok {
			out = append(out, inv)
		}
	}
	return out
}

// lineItem arma el ProductItem de una línea: banderas del producto más
// cantidad y precio de la línea. Si el producto no se pudo resolver queda
// el nombre de la línea.
func (f *Fetcher) lineItem(line record, qtyField string, products map[int64]record) entity.ProductItem {
	productID, _ := line.many2one("product_id")
	item := productItem(products[productID], f.fields)
	if item.Name == "" {
		item.Name = line.str("name")
	}
	item.Quantity = line.dec(qtyField)
	item.UnitPrice = line.dec("price_unit")
	return item
}

// productItem mapea una fila de product.product a la instantánea de entidad.
func productItem(r record, fields FieldMap) entity.ProductItem {
	if r == nil {
		return entity.ProductItem{}
	}
	return entity.ProductItem{
		ID:            r.id(),
		Name:          r.str("name"),
		DefaultCode:   r.str("default_code"),
		CE:            r.boolField(fields.CE),
		UserManual:    r.boolField(fields.UserManual),
		UDI:           r.str(fields.UDI),
		MedicalDevice: r.boolField(fields.MedicalDevice),
		SingleUse:     r.anyBool(fields.SingleUse),
	}
}
