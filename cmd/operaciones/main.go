package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ProyectosAstillero/Operaciones/internal/config"
	apphttp "github.com/ProyectosAstillero/Operaciones/internal/http"
	applog "github.com/ProyectosAstillero/Operaciones/internal/log"
	"github.com/ProyectosAstillero/Operaciones/internal/services"
	"github.com/ProyectosAstillero/Operaciones/internal/source"
	"github.com/ProyectosAstillero/Operaciones/internal/source/excel"
	gsource "github.com/ProyectosAstillero/Operaciones/internal/source/google"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	logLevel := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		logLevel = slog.LevelDebug
	}
	logger := applog.New(applog.Config{Level: logLevel, Component: applog.ComponentApp})
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", applog.FieldError, err)
		os.Exit(1)
	}

	var src source.RowSource
	switch cfg.DataBackend {
	case "sheets":
		cli, err := gsource.NewFromEnv(context.Background())
		if err != nil {
			logger.Error("failed to initialize Google Sheets backend", applog.FieldError, err)
			os.Exit(1)
		}
		src = cli
		logger.Info("initialized Google Sheets backend", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	default:
		src = excel.New()
		logger.Info("initialized Excel backend", "data_dir", cfg.DataDir)
	}

	reports := services.New(src, logger, cfg)
	srv := apphttp.NewServer(":"+cfg.Port, reports, logger)

	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	// Graceful shutdown handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown error", applog.FieldError, err)
		}
		cancel()
	}()

	logger.Info("starting operaciones server",
		"port", cfg.Port, "backend", cfg.DataBackend,
		"invoice_file", cfg.InvoiceFile, "budget_files", len(cfg.BudgetFiles))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", applog.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("server stopped gracefully")
}
