package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/mauricevan/bedrijfsbeheer3.0-sub006/internal/config"
	"github.com/mauricevan/bedrijfsbeheer3.0-sub006/internal/email"
	apiHttp "github.com/mauricevan/bedrijfsbeheer3.0-sub006/internal/http"
	documentsHandler "github.com/mauricevan/bedrijfsbeheer3.0-sub006/internal/http/documents"
	emailHandler "github.com/mauricevan/bedrijfsbeheer3.0-sub006/internal/http/email"
	importHandler "github.com/mauricevan/bedrijfsbeheer3.0-sub006/internal/http/importcsv"
	posHandler "github.com/mauricevan/bedrijfsbeheer3.0-sub006/internal/http/pos"
	vatHandler "github.com/mauricevan/bedrijfsbeheer3.0-sub006/internal/http/vat"
	"github.com/mauricevan/bedrijfsbeheer3.0-sub006/internal/importer"
	"github.com/mauricevan/bedrijfsbeheer3.0-sub006/internal/numbering"
	"github.com/mauricevan/bedrijfsbeheer3.0-sub006/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(newLogger(cfg))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := storage.Open(ctx, cfg)
	if err != nil {
		slog.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	importService := importer.NewService()

	if cfg.Import.MappingsFile != "" {
		if err := loadMappings(importService, cfg.Import.MappingsFile); err != nil {
			slog.Error("failed to load import mappings", "file", cfg.Import.MappingsFile, "error", err)
			os.Exit(1)
		}
	}

	numberingService := numbering.NewService(store)
	if err := numberingService.Init(ctx); err != nil {
		slog.Error("failed to initialise document counters", "error", err)
		os.Exit(1)
	}

	var (
		importH    = importHandler.NewHandler(importService, cfg.Server.MaxUploadBytes)
		emailH     = emailHandler.NewHandler(email.NewParser(), cfg.Server.MaxUploadBytes)
		posH       = posHandler.NewHandler(time.Now)
		vatH       = vatHandler.NewHandler()
		documentsH = documentsHandler.NewHandler(numberingService)
	)

	router := apiHttp.New(apiHttp.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Timeout:        cfg.Server.Timeout,
	}, importH, emailH, posH, vatH, documentsH)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown failed", "error", err)
		}
	}()

	slog.Info("starting server", "name", cfg.App.Name, "port", srv.Addr, "storage", cfg.Storage.Backend)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel()}

	if cfg.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}

	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func loadMappings(svc *importer.Service, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return svc.LoadMappings(f)
}
