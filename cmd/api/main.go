package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"

	"tndshop/internal/auth"
	"tndshop/internal/checkout"
	"tndshop/internal/config"
	"tndshop/internal/database"
	"tndshop/internal/handler"
	"tndshop/internal/model"
	"tndshop/internal/pricing"
	"tndshop/internal/router"
	"tndshop/internal/service"
	"tndshop/internal/store"
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

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting tndshop API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize the collection stores
	var (
		productStore store.ProductStore
		orderStore   store.OrderStore
	)
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		pool, err := database.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer pool.Close()
		if err := store.EnsureSchema(ctx, pool); err != nil {
			return err
		}
		productStore = store.NewPostgres[model.Product](pool, store.ProductsCollection, logger)
		orderStore = store.NewPostgres[model.Order](pool, store.OrdersCollection, logger)
	default:
		products, err := store.NewFile[model.Product](cfg.Storage.DataDir, store.ProductsCollection, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize product store: %w", err)
		}
		orders, err := store.NewFile[model.Order](cfg.Storage.DataDir, store.OrdersCollection, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize order store: %w", err)
		}
		productStore = products
		orderStore = orders
	}

	// Seed the demo catalogue on first start
	newProductID := func() string { return "prod_" + uuid.NewString() }
	if err := store.SeedProducts(ctx, productStore, newProductID, time.Now, logger); err != nil {
		return err
	}

	// Initialize the core components
	policy := pricing.NewPolicy(cfg.Shop.FreeShippingThreshold, cfg.Shop.DeliveryFee)
	validator := checkout.NewValidator(cfg.Shop.MinPhoneDigits, cfg.Shop.PostalCodeLength)
	adminVerifier := auth.NewStatic(cfg.Auth.AdminKey)
	actionVerifier := auth.NewStatic(cfg.Auth.ProductActionKey)

	// One mutation lock shared by both services: every read-modify-write
	// against the two collections runs to completion without interleaving.
	var mutationLock sync.Mutex

	// Initialize services
	productService := service.NewProductService(productStore, actionVerifier, &mutationLock, logger)
	orderService := service.NewOrderService(orderStore, productStore, policy, validator, &mutationLock, logger)

	// Initialize HTTP handlers
	productHandler := handler.NewProductHandler(productService, logger)
	orderHandler := handler.NewOrderHandler(orderService, logger)
	adminHandler := handler.NewAdminHandler(productService, orderService, logger)

	// Initialize router
	mux := router.New(productHandler, orderHandler, adminHandler, adminVerifier, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Str("storage", cfg.Storage.Driver).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

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
