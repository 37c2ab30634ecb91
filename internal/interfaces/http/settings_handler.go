package http

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Etiquetas-api/internal/application/dto"
	"github.com/jhoicas/Etiquetas-api/internal/application/session"
	"github.com/jhoicas/Etiquetas-api/internal/domain"
	"github.com/jhoicas/Etiquetas-api/internal/domain/entity"
)

// SettingsStore persistencia de la configuración por sección.
type SettingsStore interface {
	Current() entity.Settings
	UpdateOdoo(entity.OdooSettings) error
	UpdatePrintNode(entity.PrintNodeSettings) error
	UpdateLabel(entity.LabelSettings) error
}

// PrinterProbe sondeo del relé de impresión.
type PrinterProbe interface {
	Probe(ctx context.Context) error
}

// SettingsHandler maneja lectura y guardado de la configuración. Los
// callbacks On*Saved propagan las credenciales recién guardadas a los
// clientes vivos.
type SettingsHandler struct {
	store   SettingsStore
	probe   PrinterProbe
	tracker *session.Tracker

	OnOdooSaved      func(entity.OdooSettings)
	OnPrintNodeSaved func(entity.PrintNodeSettings)
}

// NewSettingsHandler construye el handler.
func NewSettingsHandler(store SettingsStore, probe PrinterProbe, tracker *session.Tracker) *SettingsHandler {
	return &SettingsHandler{store: store, probe: probe, tracker: tracker}
}

// Get devuelve una sección de la configuración.
// GET /api/settings/:section
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	cfg := h.store.Current()
	switch c.Params("section") {
	case "odoo":
		return c.JSON(dto.OdooSettings{
			URL: cfg.Odoo.URL, Database: cfg.Odoo.Database,
			Username: cfg.Odoo.Username, Password: cfg.Odoo.Password,
		})
	case "printnode":
		return c.JSON(dto.PrintNodeSettings{
			APIKey: cfg.PrintNode.APIKey, PrinterID: cfg.PrintNode.PrinterID,
			SaveCopy: cfg.PrintNode.SaveCopy,
		})
	case "label":
		return c.JSON(dto.LabelSettings{
			PDFPath: cfg.Label.PDFPath, AddressLines: cfg.Label.AddressLines,
			BatchPrefix: cfg.Label.BatchPrefix,
		})
	default:
		return mapError(c, fmt.Errorf("%w: sección %q", domain.ErrNotFound, c.Params("section")))
	}
}

// Put guarda una sección completa.
// PUT /api/settings/:section
func (h *SettingsHandler) Put(c *fiber.Ctx) error {
	switch c.Params("section") {
	case "odoo":
		var in dto.OdooSettings
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
		cfg := entity.OdooSettings{
			URL: in.URL, Database: in.Database,
			Username: in.Username, Password: in.Password,
		}
		if err := h.store.UpdateOdoo(cfg); err != nil {
			return mapError(c, err)
		}
		if h.OnOdooSaved != nil {
			h.OnOdooSaved(cfg)
		}
		return c.SendStatus(fiber.StatusNoContent)

	case "printnode":
		var in dto.PrintNodeSettings
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
		cfg := entity.PrintNodeSettings{
			APIKey: in.APIKey, PrinterID: in.PrinterID, SaveCopy: in.SaveCopy,
		}
		if err := h.store.UpdatePrintNode(cfg); err != nil {
			return mapError(c, err)
		}
		if h.OnPrintNodeSaved != nil {
			h.OnPrintNodeSaved(h.store.Current().PrintNode)
		}
		return c.SendStatus(fiber.StatusNoContent)

	case "label":
		var in dto.LabelSettings
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
		if err := h.store.UpdateLabel(entity.LabelSettings{
			PDFPath: in.PDFPath, AddressLines: in.AddressLines, BatchPrefix: in.BatchPrefix,
		}); err != nil {
			return mapError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)

	default:
		return mapError(c, fmt.Errorf("%w: sección %q", domain.ErrNotFound, c.Params("section")))
	}
}

// ConnectPrinter sondea el relé de impresión con la credencial vigente.
// POST /api/printer/connect
func (h *SettingsHandler) ConnectPrinter(c *fiber.Ctx) error {
	h.tracker.Set(session.Connecting)
	if err := h.probe.Probe(c.Context()); err != nil {
		h.tracker.Set(session.Disconnected)
		return mapError(c, err)
	}
	h.tracker.Set(session.Connected)
	return c.JSON(fiber.Map{"status": session.Connected.String()})
}
