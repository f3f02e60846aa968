package main

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"hawafiz/internal/config"
	"hawafiz/internal/export"
	"hawafiz/internal/handler"
	"hawafiz/internal/port"
	"hawafiz/internal/qoyod"
	"hawafiz/internal/router"
	"hawafiz/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// .env is optional; real deployments set env vars directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Qoyod.APIKey == "" {
		log.Printf("warning: HAWAFIZ_QOYOD_API_KEY is not set; Qoyod requests will be rejected")
	}

	// Initialize the snapshot source
	client := qoyod.NewClient(&cfg.Qoyod)

	// Initialize services
	reportSvc := service.NewReportService(client, &cfg.Qoyod, &cfg.Report)

	// Initialize handlers
	exporters := map[string]port.ReportExporter{
		"csv":  export.NewCSVExporter(),
		"xlsx": export.NewExcelExporter(),
	}
	reportH := handler.NewReportHandler(reportSvc, exporters)
	healthH := handler.NewHealthHandler()

	// Setup router
	r := router.Setup(cfg, reportH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
