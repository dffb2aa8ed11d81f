package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ideaforge-backend/infrastructure/config"
	"ideaforge-backend/infrastructure/di"
	"ideaforge-backend/interfaces/http/rest"

	"go.uber.org/zap"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadWithOverlay("")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	container, err := di.InitializeContainer(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	defer container.Shutdown()

	// Watch the config overlay for changes in development
	watcher, err := config.NewWatcher(cfg, config.DefaultOverlayPath(), container.Logger)
	if err != nil {
		container.Logger.Warn("config watcher disabled", zap.Error(err))
	} else if watcher != nil {
		watcher.OnChange(func(updated *config.Config) {
			container.Logger.Info("configuration reloaded",
				zap.String("storageMode", updated.StorageMode))
		})
		defer watcher.Stop()
	}

	router := rest.NewRouter(
		container.CommandBus,
		container.QueryBus,
		container.Verifier,
		container.Collector,
		container.ErrorHandler,
		container.Logger,
	)
	router.ReadyCheck = container.Storage.ReadyCheck
	router.DevTokens = container.DevTokens

	srv := &http.Server{
		Addr:         cfg.ServerAddress,
		Handler:      router.Setup(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second, // analysis calls can run long
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		container.Logger.Info("Starting server",
			zap.String("address", cfg.ServerAddress),
			zap.String("environment", cfg.Environment),
			zap.String("storageMode", cfg.StorageMode),
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			container.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	container.Logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		container.Logger.Error("Server shutdown error", zap.Error(err))
	}

	if err := container.Logger.Sync(); err != nil {
		log.Printf("Failed to sync logger: %v", err)
	}

	log.Println("Server stopped")
}
