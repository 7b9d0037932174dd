// cmd/web/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"tusep-web/config"
	"tusep-web/internal/api/routes"
	"tusep-web/internal/auth"
	"tusep-web/internal/client"
	"tusep-web/internal/database"
	"tusep-web/internal/reports"
	"tusep-web/internal/s3"
	"tusep-web/internal/socket"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	logger := config.GetLogger()

	// 1. Load configuration
	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, using system environment variables")
	}
	cfg, err := config.LoadConfig("./config")
	if err != nil {
		logger.Fatalf("Could not load config: %v", err)
	}
	config.SetupLogger(cfg.Log)
	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	// 2. Credential store behind browser sessions
	store, closeStore, err := database.OpenStore(ctx, cfg)
	if err != nil {
		logger.Fatalf("Failed to open %s session store: %v", cfg.Session.Store, err)
	}
	defer closeStore(context.Background())

	// 3. Optional workbook archive
	var archive reports.Archiver
	if cfg.S3.Enabled() {
		uploader, err := s3.NewUploader(ctx, cfg.S3)
		if err != nil {
			logger.Fatalf("Failed to create S3 uploader: %v", err)
		}
		archive = uploader
	}

	// 4. Backend client, session registry and timer hub
	api := client.New(cfg.Backend.BaseURL, client.WithTimeout(cfg.Backend.Timeout), client.WithLogger(logger))
	registry := auth.NewRegistry(api, store, auth.WithLogger(logger))
	registry.MaxIdle = cfg.Session.MaxAge
	wsHub := socket.NewHub()

	router := routes.SetupRouter(cfg, registry, wsHub, archive)

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		logger.WithField("backend", cfg.Backend.BaseURL).Infof("Starting web server on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Failed to run server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}
	logger.Info("Server stopped")
}
