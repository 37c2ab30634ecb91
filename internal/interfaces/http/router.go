package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Etiquetas-api/internal/application/dto"
	"github.com/jhoicas/Etiquetas-api/internal/application/erpdata"
	"github.com/jhoicas/Etiquetas-api/internal/application/fetchjob"
	"github.com/jhoicas/Etiquetas-api/internal/application/printing"
	"github.com/jhoicas/Etiquetas-api/internal/application/session"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ERPService     *erpdata.Service
	Jobs           *fetchjob.Registry
	PrintUC        *printing.UseCase
	Overview       OverviewGenerator
	Store          SettingsStore
	PrinterProbe   PrinterProbe
	ERPTracker     *session.Tracker
	PrinterTracker *session.Tracker

	// handler ya armado con los callbacks de propagación de credenciales;
	// si es nil se construye uno sin callbacks
	SettingsHandler *SettingsHandler
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Estado de conexiones
	api.Get("/status", func(c *fiber.Ctx) error {
		return c.JSON(dto.StatusResponse{
			ERP:     deps.ERPTracker.Get().String(),
			Printer: deps.PrinterTracker.Get().String(),
		})
	})

	// ERP: conexión y trabajos de carga
	erpHandler := NewERPHandler(deps.ERPService, deps.Jobs, deps.Overview, deps.ERPTracker)
	erp := api.Group("/erp")
	erp.Post("/connect", erpHandler.Connect)
	erp.Post("/fetch", erpHandler.StartFetch)
	erp.Get("/fetch/:id", erpHandler.GetJob)
	erp.Delete("/fetch/:id", erpHandler.CancelJob)
	erp.Get("/fetch/:id/overview.pdf", erpHandler.Overview)

	// Etiquetas
	labelsHandler := NewLabelsHandler(deps.Jobs, deps.PrintUC)
	labels := api.Group("/labels")
	labels.Post("/preview", labelsHandler.Preview)
	labels.Post("/print", labelsHandler.Print)

	// Configuración + sondeo del relé
	settingsHandler := deps.SettingsHandler
	if settingsHandler == nil {
		settingsHandler = NewSettingsHandler(deps.Store, deps.PrinterProbe, deps.PrinterTracker)
	}
	settings := api.Group("/settings")
	settings.Get("/:section", settingsHandler.Get)
	settings.Put("/:section", settingsHandler.Put)
	api.Post("/printer/connect", settingsHandler.ConnectPrinter)
}
