package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ninocam2680/slidegen-backend/internal/api"
	"github.com/ninocam2680/slidegen-backend/internal/infra/config"
	"github.com/ninocam2680/slidegen-backend/internal/infra/httpclient"
	"github.com/ninocam2680/slidegen-backend/internal/infra/limiter"
	"github.com/ninocam2680/slidegen-backend/internal/infra/logger"
	"github.com/ninocam2680/slidegen-backend/internal/service/assembler"
	"github.com/ninocam2680/slidegen-backend/internal/service/imagefetch"
	"github.com/ninocam2680/slidegen-backend/internal/service/storage"
	"github.com/ninocam2680/slidegen-backend/internal/service/template"
)

func main() {
	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.Auth.SharedSecret == "" {
		log.Fatal("SHARED_SECRET is not configured")
	}

	// Init logger
	zapLogger, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer zapLogger.Sync()

	// Init HTTP client for image fetching
	httpClient := httpclient.New(httpclient.Options{
		Timeout:    time.Duration(cfg.ImageFetch.TimeoutSeconds) * time.Second,
		MaxRetries: cfg.ImageFetch.MaxRetries,
	})

	// Init limiter
	lim := limiter.New(cfg.Limiter.MaxConcurrent, cfg.Limiter.RatePerSecond)

	// Init services
	templateSvc := template.NewResolver(cfg.Templates.Dir, zapLogger)
	fetcherSvc := imagefetch.New(httpClient, time.Duration(cfg.ImageFetch.TimeoutSeconds)*time.Second, zapLogger)
	storageSvc := storage.New(cfg.Storage.BasePath, cfg.Storage.BaseURL, zapLogger)

	// Init assembler
	asm := assembler.New(templateSvc, fetcherSvc, lim, zapLogger)

	// Init router
	handler := api.NewHandler(asm, storageSvc, cfg.Auth.SharedSecret, zapLogger)
	router := api.NewRouter(handler, zapLogger, api.RouterOptions{
		AllowedOrigin: cfg.Server.AllowedOrigin,
		FilesDir:      cfg.Storage.BasePath,
		FilesURL:      cfg.Storage.BaseURL,
	})

	// Create server
	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
	}

	// Start server
	go func() {
		zapLogger.Info("starting server", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Error("server error", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("server forced to shutdown", "error", err)
	}
	zapLogger.Info("server stopped")
}
