package main

import (
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"

	"ictinvoice/commands"
	"ictinvoice/config"
	"ictinvoice/handlers"
	"ictinvoice/logging"
	"ictinvoice/services"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	renderer := services.NewRenderer(cfg.Letter, logger)

	var composer services.DraftComposer = services.NewEMLComposer(cfg.Mail, logger)
	if cfg.Mail.OpenDrafts {
		opener := services.NewOpenerComposer(composer, logger)
		opener.App = cfg.Mail.OpenWith
		composer = opener
	}

	desk := handlers.NewDesk(cfg, renderer, composer, logger)

	app := pocketbase.New()
	app.RootCmd.AddCommand(commands.NewRenderCommand(cfg, renderer, composer, logger))

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		se.Router.BindFunc(handlers.RequestLogger(logger))

		se.Router.GET("/", handlers.HandleInvoiceForm(desk))

		// ── Ledger ───────────────────────────────────────────────
		se.Router.POST("/items", handlers.HandleItemAdd(desk))
		se.Router.DELETE("/items/{index}", handlers.HandleItemRemove(desk))
		se.Router.POST("/items/clear", handlers.HandleItemsClear(desk))
		se.Router.GET("/items/export", handlers.HandleItemsExport(desk))

		// ── Letter ───────────────────────────────────────────────
		se.Router.POST("/invoice/generate", handlers.HandleInvoiceGenerate(desk))
		se.Router.POST("/invoice/download", handlers.HandleInvoiceDownload(desk))

		logger.Info("Invoice desk routes registered",
			zap.String("output_dir", cfg.Output.Dir),
			zap.String("draft_dir", cfg.Mail.DraftDir))
		return se.Next()
	})

	if err := app.Start(); err != nil {
		logger.Fatal("Failed to start app", zap.Error(err))
	}
}
