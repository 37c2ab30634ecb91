package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Etiquetas-api/internal/application/dto"
	"github.com/jhoicas/Etiquetas-api/internal/application/erpdata"
	"github.com/jhoicas/Etiquetas-api/internal/application/fetchjob"
	"github.com/jhoicas/Etiquetas-api/internal/application/printing"
	"github.com/jhoicas/Etiquetas-api/internal/domain"
	"github.com/jhoicas/Etiquetas-api/internal/domain/entity"
	"github.com/jhoicas/Etiquetas-api/internal/domain/label"
)

// LabelsHandler maneja vista previa e impresión de etiquetas.
type LabelsHandler struct {
	jobs *fetchjob.Registry
	uc   *printing.UseCase
}

// NewLabelsHandler construye el handler.
func NewLabelsHandler(jobs *fetchjob.Registry, uc *printing.UseCase) *LabelsHandler {
	return &LabelsHandler{jobs: jobs, uc: uc}
}

// Preview compone la etiqueta seleccionada sin imprimirla.
// POST /api/labels/preview
func (h *LabelsHandler) Preview(c *fiber.Ctx) error {
	in, err := h.parseRequest(c)
	if err != nil {
		return mapError(c, err)
	}

	p, err := h.uc.Preview(in)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(previewResponse(p))
}

// Print imprime la etiqueta seleccionada.
// POST /api/labels/print
func (h *LabelsHandler) Print(c *fiber.Ctx) error {
	in, err := h.parseRequest(c)
	if err != nil {
		return mapError(c, err)
	}

	out, err := h.uc.Print(c.Context(), in)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(dto.PrintResponse{
		Accepted:  out.Accepted,
		Reason:    out.Reason,
		SavedPath: out.SavedPath,
		SaveError: out.SaveError,
	})
}

// parseRequest resuelve la solicitud contra el trabajo de carga: índices de
// pedido y línea sobre los datos ya traídos.
func (h *LabelsHandler) parseRequest(c *fiber.Ctx) (printing.Input, error) {
	var req dto.LabelRequest
	if err := c.BodyParser(&req); err != nil {
		return printing.Input{}, fmt.Errorf("%w: cuerpo inválido", domain.ErrInvalidInput)
	}

	job, err := h.jobs.Get(req.JobID)
	if err != nil {
		return printing.Input{}, err
	}
	res, err := job.Result()
	if err != nil {
		return printing.Input{}, err
	}

	content := printing.ContentPDF
	if req.Content == string(printing.ContentZPL) {
		content = printing.ContentZPL
	}

	in := printing.Input{Content: content}
	in.Label.QuantityText = req.QuantityText
	in.Label.NameText = req.NameText

	switch label.Kind(req.Kind) {
	case label.KindOrder:
		order, line, err := resolveOrderLine(res, req.OrderIndex, req.LineIndex)
		if err != nil {
			return printing.Input{}, err
		}
		in.Label.Kind = label.KindOrder
		in.Label.Order = order
		in.Label.Line = line
	case label.KindProduct:
		mfg, err := resolveMfg(res, req.OrderIndex)
		if err != nil {
			return printing.Input{}, err
		}
		in.Label.Kind = label.KindProduct
		in.Label.Mfg = mfg
	default:
		return printing.Input{}, fmt.Errorf("%w: tipo de etiqueta %q", domain.ErrInvalidInput, req.Kind)
	}
	return in, nil
}

// resolveOrderLine busca pedido y línea por índice en una carga de ventas o
// compras.
func resolveOrderLine(res *erpdata.Result, orderIdx, lineIdx int) (*label.OrderRef, *entity.ProductItem, error) {
	if orderIdx < 0 || lineIdx < 0 {
		return nil, nil, domain.ErrNoSelection
	}

	switch res.Kind {
	case erpdata.KindSales:
		if orderIdx >= len(res.Sales) {
			return nil, nil, fmt.Errorf("%w: pedido %d", domain.ErrNotFound, orderIdx)
		}
		o := res.Sales[orderIdx]
		if lineIdx >= len(o.Lines) {
			return nil, nil, fmt.Errorf("%w: línea %d", domain.ErrNotFound, lineIdx)
		}
		item := o.Lines[lineIdx].ProductItem
		return &label.OrderRef{Number: o.Number, PartnerName: o.PartnerName, Invoices: o.Invoices}, &item, nil
	case erpdata.KindPurchases:
		if orderIdx >= len(res.Purchases) {
			return nil, nil, fmt.Errorf("%w: pedido %d", domain.ErrNotFound, orderIdx)
		}
		o := res.Purchases[orderIdx]
		if lineIdx >= len(o.Lines) {
			return nil, nil, fmt.Errorf("%w: línea %d", domain.ErrNotFound, lineIdx)
		}
		item := o.Lines[lineIdx].ProductItem
		return &label.OrderRef{Number: o.Number, PartnerName: o.PartnerName, Invoices: o.Invoices}, &item, nil
	default:
		return nil, nil, fmt.Errorf("%w: la carga %q no contiene pedidos", domain.ErrInvalidInput, res.Kind)
	}
}

// resolveMfg busca una orden de fabricación por índice.
func resolveMfg(res *erpdata.Result, idx int) (*entity.ManufacturingOrder, error) {
	if res.Kind != erpdata.KindManufacturing {
		return nil, fmt.Errorf("%w: la carga %q no contiene órdenes de fabricación", domain.ErrInvalidInput, res.Kind)
	}
	if idx < 0 {
		return nil, domain.ErrNoSelection
	}
	if idx >= len(res.Mfg) {
		return nil, fmt.Errorf("%w: orden %d", domain.ErrNotFound, idx)
	}
	mo := res.Mfg[idx]
	return &mo, nil
}

func previewResponse(p *printing.Preview) dto.PreviewResponse {
	out := dto.PreviewResponse{
		Name:            p.Model.Name,
		Code:            p.Model.Code,
		QuantityText:    p.Model.QuantityText,
		BatchNumber:     p.Model.BatchNumber,
		PartnerName:     p.Model.PartnerName,
		InvoiceNumber:   p.Model.InvoiceNumber,
		UDI:             p.Model.UDI,
		LotNumber:       p.Model.LotNumber,
		ProductionMonth: p.Model.ProductionMonth,
		QRPayload:       p.Model.QRPayload,
		PDF:             p.PDF,
	}
	for _, ic := range p.Model.Icons {
		out.Icons = append(out.Icons, string(ic.Code))
	}
	return out
}
