package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nutellove/internal/auth"
	"nutellove/internal/config"
	"nutellove/internal/database"
	"nutellove/internal/handler"
	"nutellove/internal/repository"
	"nutellove/internal/router"
	"nutellove/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := cfg.Auth.Validate(); err != nil {
		return fmt.Errorf("invalid auth configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting nutellove API server")

	// The application context ends on SIGINT or SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool, logger); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// Initialize repositories
	productRepo := repository.NewProductRepository(pool, logger)
	categoryRepo := repository.NewCategoryRepository(pool, logger)
	userRepo := repository.NewUserRepository(pool, logger)
	favoriteRepo := repository.NewFavoriteRepository(pool, logger)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TTL())

	// Initialize services
	limits := service.SearchLimits{
		Substitutes: cfg.Search.SubstituteLimit,
		Suggestions: cfg.Search.SuggestionLimit,
	}
	productService := service.NewProductService(productRepo, favoriteRepo, limits, logger)
	catalogService := service.NewCatalogService(categoryRepo, productRepo, favoriteRepo, logger)
	userService := service.NewUserService(userRepo, tokens, logger)
	favoriteService := service.NewFavoriteService(favoriteRepo, productRepo, logger)

	// Initialize HTTP handlers and router
	mux := router.New(router.Handlers{
		Product:  handler.NewProductHandler(productService, logger),
		Catalog:  handler.NewCatalogHandler(catalogService, logger),
		User:     handler.NewUserHandler(userService, logger),
		Favorite: handler.NewFavoriteHandler(favoriteService, logger),
	}, tokens, cfg.RateLimit, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:              cfg.Server.Address(),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		stop()
		logger.Info().Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
