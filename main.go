package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gchart/internal/config"
	"gchart/internal/logger"
	"gchart/internal/server"
	"gchart/internal/storage"
)

// newHTTPServer wires configuration, storage and routes into an http.Server.
func newHTTPServer(ctx context.Context, cfg *config.Config) (*http.Server, *server.Server, error) {
	store, err := storage.NewPageStore(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	srv := server.NewServer(cfg, store)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv.SetupRoutes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return httpServer, srv, nil
}

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Error("Failed to load configuration", err)
		os.Exit(1)
	}
	if err := logger.Configure(cfg.LogLevel, cfg.LogFormat); err != nil {
		logger.Warn("Invalid logging configuration, using defaults", map[string]interface{}{"error": err.Error()})
	}

	logger.Info("Starting chart service", map[string]interface{}{
		"port":        cfg.Port,
		"environment": cfg.Environment,
		"storage":     cfg.StorageBackend,
		"version":     cfg.Version(),
	})

	httpServer, srv, err := newHTTPServer(ctx, cfg)
	if err != nil {
		logger.Error("Failed to create server", err)
		os.Exit(1)
	}
	defer srv.Close()

	go func() {
		logger.Infof("Server listening on :%s", cfg.Port)
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("HTTP server error", err)
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", err)
	}

	logger.Info("Server stopped")
}
