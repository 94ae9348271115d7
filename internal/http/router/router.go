package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tamu-beverages/sales-api/internal/auth"
	"github.com/tamu-beverages/sales-api/internal/config"
	"github.com/tamu-beverages/sales-api/internal/database"
	"github.com/tamu-beverages/sales-api/internal/domain"
	"github.com/tamu-beverages/sales-api/internal/http/handler"
	"github.com/tamu-beverages/sales-api/internal/http/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/tamu-beverages/sales-api/docs" // Import generated swagger docs
)

type Router struct {
	cfg            *config.Config
	logger         *zap.Logger
	db             *gorm.DB
	authMiddleware *auth.Middleware
	rateLimiter    *middleware.RateLimiter
	authHandler    *handler.AuthHandler
	clientHandler  *handler.ClientHandler
	flavorHandler  *handler.FlavorHandler
	orderHandler   *handler.OrderHandler
	paymentHandler *handler.PaymentHandler
	reportHandler  *handler.ReportHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	authMiddleware *auth.Middleware,
	rateLimiter *middleware.RateLimiter,
	authHandler *handler.AuthHandler,
	clientHandler *handler.ClientHandler,
	flavorHandler *handler.FlavorHandler,
	orderHandler *handler.OrderHandler,
	paymentHandler *handler.PaymentHandler,
	reportHandler *handler.ReportHandler,
) *Router {
	return &Router{
		cfg:            cfg,
		logger:         logger,
		db:             db,
		authMiddleware: authMiddleware,
		rateLimiter:    rateLimiter,
		authHandler:    authHandler,
		clientHandler:  clientHandler,
		flavorHandler:  flavorHandler,
		orderHandler:   orderHandler,
		paymentHandler: paymentHandler,
		reportHandler:  reportHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.LimitByIP)

	// Health check (basic liveness probe)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Database health check (readiness probe with detailed stats)
	r.Get("/health/db", func(w http.ResponseWriter, r *http.Request) {
		stats, err := database.HealthCheckWithStats(rt.db)
		if err != nil {
			rt.logger.Error("database health check failed", zap.Error(err))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"status":  "unhealthy",
				"error":   err.Error(),
				"service": "database",
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "healthy",
			"service": "database",
			"stats": map[string]interface{}{
				"max_open_connections": stats.MaxOpenConnections,
				"open_connections":     stats.OpenConnections,
				"in_use":               stats.InUse,
				"idle":                 stats.Idle,
				"wait_count":           stats.WaitCount,
				"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
			},
		})
	})

	// Combined readiness check
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		checks := make(map[string]interface{})
		allHealthy := true

		if err := database.HealthCheck(rt.db); err != nil {
			rt.logger.Error("database health check failed", zap.Error(err))
			checks["database"] = map[string]interface{}{
				"status": "unhealthy",
				"error":  err.Error(),
			}
			allHealthy = false
		} else {
			checks["database"] = map[string]interface{}{
				"status": "healthy",
			}
		}

		w.Header().Set("Content-Type", "application/json")
		status := http.StatusOK
		overall := "healthy"
		if !allHealthy {
			status = http.StatusServiceUnavailable
			overall = "unhealthy"
		}
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status": overall,
			"checks": checks,
		})
	})

	// Swagger documentation
	if rt.cfg.Server.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public routes (no auth required)
		r.Post("/auth/login", rt.authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(rt.authMiddleware.Authenticate)
			r.Use(rt.rateLimiter.Limit)

			// Auth
			r.Get("/auth/me", rt.authHandler.Me)
			r.With(rt.authMiddleware.RequireAdmin).Post("/auth/register", rt.authHandler.Register)
			r.With(rt.authMiddleware.RequireAdmin).Get("/salespersons", rt.authHandler.ListSalespersons)

			// Flavors: open reads, admin-only writes
			r.Route("/flavors", func(r chi.Router) {
				r.Get("/", rt.flavorHandler.List)
				r.Get("/{id}", rt.flavorHandler.Get)
				r.Group(func(r chi.Router) {
					r.Use(rt.authMiddleware.RequireAdmin)
					r.Post("/", rt.flavorHandler.Create)
					r.Put("/{id}", rt.flavorHandler.Update)
					r.Delete("/{id}", rt.flavorHandler.Delete)
				})
			})

			// Clients
			r.Route("/clients", func(r chi.Router) {
				r.Get("/", rt.clientHandler.List)
				r.Post("/", rt.clientHandler.Create)
				r.Get("/{id}", rt.clientHandler.Get)
				r.Put("/{id}", rt.clientHandler.Update)
				r.With(rt.authMiddleware.RequireAdmin).Delete("/{id}", rt.clientHandler.Delete)
				r.With(rt.authMiddleware.RequireAdmin).Post("/{id}/approve", rt.clientHandler.Approve)
				r.With(rt.authMiddleware.RequireAdmin).Post("/{id}/reject", rt.clientHandler.Reject)
			})

			// Orders
			r.Route("/orders", func(r chi.Router) {
				r.Get("/", rt.orderHandler.List)
				r.With(rt.authMiddleware.RequireRole(domain.RoleAdmin, domain.RoleSalesperson)).
					Post("/", rt.orderHandler.Create)
				r.Get("/{id}", rt.orderHandler.Get)
				r.Put("/{id}", rt.orderHandler.Update)
				r.Delete("/{id}", rt.orderHandler.Delete)
			})

			// Payments
			r.Route("/payments", func(r chi.Router) {
				r.Get("/", rt.paymentHandler.List)
				r.With(rt.authMiddleware.RequireRole(domain.RoleAdmin, domain.RoleSalesperson)).
					Post("/", rt.paymentHandler.Create)
				r.Get("/{id}", rt.paymentHandler.Get)
				r.Put("/{id}", rt.paymentHandler.Update)
				r.Delete("/{id}", rt.paymentHandler.Delete)
			})

			// Reports
			r.Route("/reports/sales", func(r chi.Router) {
				r.Get("/daily", rt.reportHandler.Daily)
				r.Get("/range", rt.reportHandler.Range)
				r.Get("/monthly", rt.reportHandler.Monthly)
				r.With(rt.authMiddleware.RequireAdmin).Get("/yearly", rt.reportHandler.Yearly)
			})
		})
	})

	return r
}
