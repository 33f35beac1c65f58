package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"inventify-hub/internal/auth"
	"inventify-hub/internal/config"
	"inventify-hub/internal/database"
	"inventify-hub/internal/handler"
	"inventify-hub/internal/payment"
	"inventify-hub/internal/plan"
	"inventify-hub/internal/repository"
	"inventify-hub/internal/router"
	"inventify-hub/internal/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
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
	logger.Info().Msg("starting inventify-hub API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(pool, logger)
	shopRepo := repository.NewShopRepository(pool, logger)
	productRepo := repository.NewProductRepository(pool, logger)
	cartRepo := repository.NewCartRepository(pool, logger)
	invoiceRepo := repository.NewInvoiceRepository(pool, logger)
	paymentRepo := repository.NewPaymentRepository(pool, logger)
	joinRepo := repository.NewJoinRequestRepository(pool, logger)

	// Resolve the payment-plan catalog: S3 with file fallback when enabled,
	// plain file when configured, built-in tiers otherwise.
	planCatalog, err := loadPlanCatalog(ctx, cfg.Plan, logger)
	if err != nil {
		return fmt.Errorf("failed to load plan catalog: %w", err)
	}

	// Initialize payment gateway
	gateway := payment.NewStripeGateway(cfg.Stripe.SecretKey, logger)

	// Initialize services
	identityService := service.NewIdentityService(userRepo, shopRepo, joinRepo, logger)
	shopService := service.NewShopService(shopRepo, userRepo, paymentRepo, identityService, planCatalog, cfg.Quota.SequentialShopSerial, logger)
	catalogService := service.NewCatalogService(productRepo, shopRepo, service.QuotaPolicy{AllowAtLimit: cfg.Quota.AllowAtLimit}, logger)
	billingService := service.NewBillingService(cartRepo, invoiceRepo, productRepo, shopRepo, logger)

	// Initialize token verifier and role guard
	verifier := auth.NewVerifier(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLMins)*time.Minute)
	guard := handler.NewRoleGuard(identityService, logger)

	// Initialize HTTP handlers
	userHandler := handler.NewUserHandler(identityService, verifier, guard, logger)
	shopHandler := handler.NewShopHandler(shopService, identityService, guard, logger)
	productHandler := handler.NewProductHandler(catalogService, guard, logger)
	billingHandler := handler.NewBillingHandler(billingService, shopService, guard, logger)
	paymentHandler := handler.NewPaymentHandler(shopService, gateway, guard, logger)

	// Initialize metrics registry with the standard process collectors
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// Initialize router
	mux := router.New(userHandler, shopHandler, productHandler, billingHandler, paymentHandler, verifier, registry, logger)

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

// loadPlanCatalog picks the catalog source from configuration.
func loadPlanCatalog(ctx context.Context, cfg config.PlanConfig, logger zerolog.Logger) (*plan.Catalog, error) {
	if !cfg.S3Enabled && cfg.FilePath == "" {
		logger.Info().Msg("no plan catalog configured, using built-in tiers")
		return plan.DefaultCatalog(), nil
	}

	fileLoader := plan.NewFileLoader(logger)

	if cfg.S3Enabled {
		s3Loader, err := plan.NewS3Loader(ctx, cfg.S3Bucket, cfg.S3Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system only")
		}

		loader := plan.NewFallbackLoader(s3Loader, fileLoader, s3Loader != nil, logger)
		path := cfg.S3Key
		if cfg.FilePath != "" {
			path = cfg.FilePath
		}
		return loader.Load(ctx, path)
	}

	return fileLoader.Load(ctx, cfg.FilePath)
}
