package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Etiquetas-api/internal/application/erpdata"
	"github.com/jhoicas/Etiquetas-api/internal/application/fetchjob"
	"github.com/jhoicas/Etiquetas-api/internal/application/printing"
	"github.com/jhoicas/Etiquetas-api/internal/application/session"
	"github.com/jhoicas/Etiquetas-api/internal/domain/entity"
	"github.com/jhoicas/Etiquetas-api/internal/infrastructure/odoo"
	infrapdf "github.com/jhoicas/Etiquetas-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Etiquetas-api/internal/infrastructure/printnode"
	"github.com/jhoicas/Etiquetas-api/internal/infrastructure/settingsstore"
	"github.com/jhoicas/Etiquetas-api/internal/infrastructure/zpl"
	httpRouter "github.com/jhoicas/Etiquetas-api/internal/interfaces/http"
	"github.com/jhoicas/Etiquetas-api/pkg/config"
	"github.com/jhoicas/Etiquetas-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
		App:   cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Msg("iniciando aplicación")

	store, err := settingsstore.Open(cfg.Settings.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir configuración de usuario")
	}
	settings := store.Current()

	// Cliente ERP con las credenciales guardadas; la sesión se abre al
	// primer POST /api/erp/connect (o aquí, si ya hay credenciales)
	odooClient := odoo.NewClient(odoo.Credentials{
		URL:      settings.Odoo.URL,
		Database: settings.Odoo.Database,
		Username: settings.Odoo.Username,
		Password: settings.Odoo.Password,
	})
	fetcher := odoo.NewFetcher(odooClient, odoo.DefaultFieldMap())

	printerClient := printnode.NewClient(printnode.Config{
		APIKey:    settings.PrintNode.APIKey,
		PrinterID: settings.PrintNode.PrinterID,
	})

	erpTracker := session.NewTracker()
	printerTracker := session.NewTracker()

	erpService := erpdata.NewService(odooClient, fetcher, log.Component("erp"))
	jobs := fetchjob.NewRegistry(erpService, log.Component("trabajos"))

	printUC := printing.NewUseCase(
		infrapdf.NewLabelRenderer(),
		zpl.NewBuilder(),
		printerClient,
		store,
		log.Component("impresión"),
	)

	if settings.Odoo.URL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		if err := erpService.Connect(ctx); err == nil {
			erpTracker.Set(session.Connected)
		}
		cancel()
	}

	settingsHandler := httpRouter.NewSettingsHandler(store, printerClient, printerTracker)
	settingsHandler.OnOdooSaved = func(in entity.OdooSettings) {
		odooClient.SetCredentials(odoo.Credentials{
			URL: in.URL, Database: in.Database,
			Username: in.Username, Password: in.Password,
		})
		erpTracker.Set(session.Disconnected)
	}
	settingsHandler.OnPrintNodeSaved = func(in entity.PrintNodeSettings) {
		printerClient.SetConfig(printnode.Config{
			APIKey:    in.APIKey,
			PrinterID: in.PrinterID,
		})
		printerTracker.Set(session.Disconnected)
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ERPService:      erpService,
		Jobs:            jobs,
		PrintUC:         printUC,
		Overview:        infrapdf.NewOverviewGenerator(),
		Store:           store,
		PrinterProbe:    printerClient,
		ERPTracker:      erpTracker,
		PrinterTracker:  printerTracker,
		SettingsHandler: settingsHandler,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
