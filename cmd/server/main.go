// Storefront API - REST facade over the Shopify Storefront GraphQL API.
// Designed for Cloud Run deployment with stateless operation.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront-api/internal/config"
	"storefront-api/internal/handler"
	"storefront-api/internal/middleware"
	"storefront-api/internal/model"
	"storefront-api/internal/shopify"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Initialize structured logger
	logger := initLogger()

	// Load configuration
	ctx := context.Background()
	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// The access token is deliberately absent here.
	logger.Info("configuration loaded",
		slog.String("environment", cfg.Environment),
		slog.String("store_domain", cfg.Store.Domain),
		slog.String("api_version", cfg.Store.APIVersion),
	)

	// Create upstream client
	client, err := shopify.New(shopify.Config{
		StoreDomain: cfg.Store.Domain,
		AccessToken: cfg.Store.AccessToken,
		APIVersion:  cfg.Store.APIVersion,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("creating storefront client: %w", err)
	}

	// Create handler with the upstream client and the configured shop fallback
	h := handler.New(client, logger, model.Shop{
		Name:    cfg.FallbackShopName(),
		LogoURL: cfg.Store.LogoURL,
	})

	// Setup routes
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	// Apply middleware chain: recovery → logging → handler
	// Recovery must be outermost to catch panics from logging middleware
	httpHandler := middleware.Chain(
		middleware.Recovery(logger),
		middleware.Logging(logger),
	)(mux)

	// Create HTTP server with timeouts
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      httpHandler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Channel for shutdown signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Channel for server errors
	serverErr := make(chan error, 1)

	// Start server in goroutine
	go func() {
		logger.Info("server starting",
			slog.String("port", cfg.Port),
			slog.String("addr", server.Addr),
		)
		serverErr <- server.ListenAndServe()
	}()

	// Wait for shutdown signal or server error
	select {
	case err := <-serverErr:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-shutdown:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		// Give outstanding requests time to complete
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			// Force close if graceful shutdown fails
			server.Close()
			return fmt.Errorf("shutdown error: %w", err)
		}
	}

	logger.Info("server stopped")
	return nil
}

// initLogger creates a structured logger configured for the environment.
// Production uses JSON format for GCP Cloud Logging compatibility.
// Development uses text format for readability.
func initLogger() *slog.Logger {
	level := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
		// Add source location in debug mode
		AddSource: level == slog.LevelDebug,
	}

	// JSON for production (Cloud Logging compatible), text for development
	if os.Getenv("ENVIRONMENT") == "production" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
