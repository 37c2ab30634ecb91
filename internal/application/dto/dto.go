// Package dto define los contratos JSON entre el front-end de escritorio y
// la API local.
package dto

import (
	"time"

	"github.com/jhoicas/Etiquetas-api/internal/application/erpdata"
	"github.com/jhoicas/Etiquetas-api/internal/domain/entity"
)

// ErrorResponse respuesta de error uniforme de la API.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ── Estado ─────────────────────────────────────────────────────────────────────

// StatusResponse estados de conexión para la barra de estado.
type StatusResponse struct {
	ERP     string `json:"erp"`
	Printer string `json:"printer"`
}

// ── Trabajos de carga ──────────────────────────────────────────────────────────

// FetchRequest inicia una carga.
type FetchRequest struct {
	Kind  string `json:"kind"` // sales | purchases | manufacturing
	Limit int    `json:"limit,omitempty"`
}

// JobResponse estado de un trabajo; Data solo viene poblado al terminar.
type JobResponse struct {
	ID      string   `json:"id"`
	Kind    string   `json:"kind"`
	Status  string   `json:"status"`
	Entries int      `json:"entries,omitempty"`
	Error   string   `json:"error,omitempty"`
	Data    *JobData `json:"data,omitempty"`
}

// JobData los registros cargados, según el tipo.
type JobData struct {
	Sales     []Order              `json:"sales,omitempty"`
	Purchases []Order              `json:"purchases,omitempty"`
	Mfg       []ManufacturingOrder `json:"manufacturing,omitempty"`
}

// Order pedido de venta o compra.
type Order struct {
	ID          int64     `json:"id"`
	Number      string    `json:"number"`
	PartnerName string    `json:"partner_name"`
	Date        string    `json:"date,omitempty"`
	AmountTotal string    `json:"amount_total"`
	Lines       []Line    `json:"lines"`
	Invoices    []Invoice `json:"invoices"`
}

// Line línea de pedido.
type Line struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Code          string `json:"code"`
	Quantity      string `json:"quantity"`
	UnitPrice     string `json:"unit_price"`
	CE            bool   `json:"ce"`
	UserManual    bool   `json:"user_manual"`
	UDI           string `json:"udi,omitempty"`
	MedicalDevice bool   `json:"medical_device"`
	SingleUse     bool   `json:"single_use"`
}

// Invoice factura vinculada.
type Invoice struct {
	ID          int64  `json:"id"`
	Number      string `json:"number"`
	Date        string `json:"date,omitempty"`
	AmountTotal string `json:"amount_total"`
	State       string `json:"state"`
}

// ManufacturingOrder orden de fabricación.
type ManufacturingOrder struct {
	OrderNumber string `json:"order_number"`
	Name        string `json:"name"`
	Code        string `json:"code"`
	Quantity    string `json:"quantity"`
	DateStart   string `json:"date_start,omitempty"`
	LotNumber   string `json:"lot_number,omitempty"`
	UDI         string `json:"udi,omitempty"`
	Components  []Line `json:"components"`
}

// ── Etiquetas ──────────────────────────────────────────────────────────────────

// LabelRequest identifica el registro a imprimir dentro de un trabajo ya
// cargado, más los textos editables del usuario.
type LabelRequest struct {
	JobID        string `json:"job_id"`
	Kind         string `json:"kind"` // order | product
	OrderIndex   int    `json:"order_index"`
	LineIndex    int    `json:"line_index"`
	QuantityText string `json:"quantity_text,omitempty"`
	NameText     string `json:"name_text,omitempty"`
	Content      string `json:"content,omitempty"` // pdf (default) | zpl
}

// PrintResponse resultado de la impresión.
type PrintResponse struct {
	Accepted  bool   `json:"accepted"`
	Reason    string `json:"reason,omitempty"`
	SavedPath string `json:"saved_path,omitempty"`
	SaveError string `json:"save_error,omitempty"`
}

// PreviewResponse vista previa compuesta.
type PreviewResponse struct {
	Name            string   `json:"name"`
	Code            string   `json:"code"`
	QuantityText    string   `json:"quantity_text"`
	BatchNumber     string   `json:"batch_number,omitempty"`
	PartnerName     string   `json:"partner_name,omitempty"`
	InvoiceNumber   string   `json:"invoice_number,omitempty"`
	UDI             string   `json:"udi,omitempty"`
	LotNumber       string   `json:"lot_number,omitempty"`
	ProductionMonth string   `json:"production_month,omitempty"`
	QRPayload       string   `json:"qr_payload"`
	Icons           []string `json:"icons,omitempty"`
	PDF             []byte   `json:"pdf"` // base64 en el JSON
}

// ── Configuración ──────────────────────────────────────────────────────────────

// OdooSettings sección de credenciales del ERP.
type OdooSettings struct {
	URL      string `json:"url"`
	Database string `json:"db"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// PrintNodeSettings sección del relé de impresión.
type PrintNodeSettings struct {
	APIKey    string `json:"api_key"`
	PrinterID string `json:"printer_id"`
	SaveCopy  bool   `json:"save_copy"`
}

// LabelSettings sección de etiqueta.
type LabelSettings struct {
	PDFPath      string   `json:"pdf_path"`
	AddressLines []string `json:"address_lines"`
	BatchPrefix  string   `json:"batch_prefix"`
}

// ── Mapeo de entidades ─────────────────────────────────────────────────────────

func dateText(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

// FromResult arma el bloque de datos de un trabajo terminado.
func FromResult(res *erpdata.Result) *JobData {
	data := &JobData{}
	for _, o := range res.Sales {
		data.Sales = append(data.Sales, fromSaleOrder(o))
	}
	for _, o := range res.Purchases {
		data.Purchases = append(data.Purchases, fromPurchaseOrder(o))
	}
	for _, mo := range res.Mfg {
		data.Mfg = append(data.Mfg, fromManufacturingOrder(mo))
	}
	return data
}

func fromSaleOrder(o entity.SaleOrder) Order {
	out := Order{
		ID: o.ID, Number: o.Number, PartnerName: o.PartnerName,
		Date: dateText(o.Date), AmountTotal: o.AmountTotal.StringFixed(2),
	}
	for _, l := range o.Lines {
		out.Lines = append(out.Lines, fromItem(l.ProductItem))
	}
	for _, inv := range o.Invoices {
		out.Invoices = append(out.Invoices, fromInvoice(inv))
	}
	return out
}

func fromPurchaseOrder(o entity.PurchaseOrder) Order {
	out := Order{
		ID: o.ID, Number: o.Number, PartnerName: o.PartnerName,
		Date: dateText(o.Date), AmountTotal: o.AmountTotal.StringFixed(2),
	}
	for _, l := range o.Lines {
		out.Lines = append(out.Lines, fromItem(l.ProductItem))
	}
	for _, inv := range o.Invoices {
		out.Invoices = append(out.Invoices, fromInvoice(inv))
	}
	return out
}

func fromManufacturingOrder(mo entity.ManufacturingOrder) ManufacturingOrder {
	out := ManufacturingOrder{
		OrderNumber: mo.OrderNumber,
		Name:        mo.Name,
		Code:        mo.DefaultCode,
		Quantity:    mo.Quantity.String(),
		DateStart:   dateText(mo.DateStart),
		LotNumber:   mo.LotNumber,
		UDI:         mo.UDI,
	}
	for _, comp := range mo.Components {
		out.Components = append(out.Components, fromItem(comp.ProductItem))
	}
	return out
}

func fromItem(p entity.ProductItem) Line {
	return Line{
		ID: p.ID, Name: p.Name, Code: p.DefaultCode,
		Quantity: p.Quantity.String(), UnitPrice: p.UnitPrice.StringFixed(2),
		CE: p.CE, UserManual: p.UserManual, UDI: p.UDI,
		MedicalDevice: p.MedicalDevice, SingleUse: p.SingleUse,
	}
}

func fromInvoice(inv entity.Invoice) Invoice {
	return Invoice{
		ID: inv.ID, Number: inv.Number, Date: dateText(inv.Date),
		AmountTotal: inv.AmountTotal.StringFixed(2), State: inv.State,
	}
}
