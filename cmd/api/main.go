package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tamu-beverages/sales-api/docs"
	"github.com/tamu-beverages/sales-api/internal/auth"
	"github.com/tamu-beverages/sales-api/internal/config"
	"github.com/tamu-beverages/sales-api/internal/database"
	"github.com/tamu-beverages/sales-api/internal/http/handler"
	"github.com/tamu-beverages/sales-api/internal/http/middleware"
	"github.com/tamu-beverages/sales-api/internal/http/router"
	"github.com/tamu-beverages/sales-api/internal/jobs"
	"github.com/tamu-beverages/sales-api/internal/logger"
	"github.com/tamu-beverages/sales-api/internal/repository"
	"github.com/tamu-beverages/sales-api/internal/service"
	"go.uber.org/zap"
)

// @title Tamu Sales API
// @version 1.0
// @description Sales order API for client, flavor, order and payment management
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@tamubeverages.co.tz

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token
// @Security BearerAuth

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Load basic configuration first (for logging setup)
	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	log, err := logger.NewLogger(&basicCfg.Logging, &basicCfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", basicCfg.App.Name),
		zap.String("env", basicCfg.App.Environment),
		zap.Int("port", basicCfg.App.Port),
	)

	// Configure Swagger host based on environment
	switch basicCfg.App.Environment {
	case "staging":
		docs.SwaggerInfo.Host = "sales-api-staging.tamubeverages.co.tz"
	case "production":
		docs.SwaggerInfo.Host = "sales-api.tamubeverages.co.tz"
	default:
		docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", basicCfg.App.Port)
	}

	// Load full configuration with secrets
	// In development: uses environment variables
	// In staging/production: fetches from Azure Key Vault
	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}

	// Connect to database
	db, err := database.NewDatabase(&cfg.Database, log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// In development the schema is kept in sync automatically;
	// staging/production rely on the migrate binary.
	if cfg.App.Environment == "development" {
		if err := database.AutoMigrate(db); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		log.Info("Database schema migrated")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	clientRepo := repository.NewClientRepository(db)
	flavorRepo := repository.NewFlavorRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	// Initialize services
	tokenIssuer := auth.NewTokenIssuer(&cfg.Auth)
	userService := service.NewUserService(userRepo, profileRepo, tokenIssuer, &cfg.Auth, log)
	clientService := service.NewClientService(clientRepo, profileRepo, log)
	flavorService := service.NewFlavorService(flavorRepo, log)
	orderService := service.NewOrderService(orderRepo, clientRepo, flavorRepo, log)
	paymentService := service.NewPaymentService(paymentRepo, clientRepo, orderRepo, log)
	reportService := service.NewReportService(orderRepo, log)

	// Initialize middleware
	authMiddleware := auth.NewMiddleware(tokenIssuer, userRepo, log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(userService, log)
	clientHandler := handler.NewClientHandler(clientService, log)
	flavorHandler := handler.NewFlavorHandler(flavorService, log)
	orderHandler := handler.NewOrderHandler(orderService, log)
	paymentHandler := handler.NewPaymentHandler(paymentService, log)
	reportHandler := handler.NewReportHandler(reportService, log)

	// Setup router
	rt := router.NewRouter(
		cfg,
		log,
		db,
		authMiddleware,
		rateLimiter,
		authHandler,
		clientHandler,
		flavorHandler,
		orderHandler,
		paymentHandler,
		reportHandler,
	)

	// Initialize and start scheduler for background jobs
	scheduler := jobs.NewScheduler(log)
	pendingJob := jobs.NewPendingRequestsJob(clientRepo, log)
	if err := pendingJob.Register(scheduler); err != nil {
		log.Error("Failed to register pending requests job", zap.Error(err))
	} else {
		scheduler.Start()
		log.Info("Scheduler started")
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	// Wait for interrupt signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		stopCtx := scheduler.Stop()
		<-stopCtx.Done()
		log.Info("Scheduler stopped")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			_ = srv.Close()
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
