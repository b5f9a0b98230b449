package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"backoffice/internal/db"
	"backoffice/internal/domain/audit"
	"backoffice/internal/domain/auth"
	"backoffice/internal/domain/notifications"
	"backoffice/internal/domain/payroll"
	"backoffice/internal/domain/performance"
	"backoffice/internal/domain/roster"
	"backoffice/internal/platform/config"
	"backoffice/internal/platform/email"
	"backoffice/internal/platform/metrics"
	"backoffice/internal/transport/http/api"
	audithandler "backoffice/internal/transport/http/handlers/audit"
	authhandler "backoffice/internal/transport/http/handlers/auth"
	notificationshandler "backoffice/internal/transport/http/handlers/notifications"
	payrollhandler "backoffice/internal/transport/http/handlers/payroll"
	performancehandler "backoffice/internal/transport/http/handlers/performance"
	rosterhandler "backoffice/internal/transport/http/handlers/roster"
	"backoffice/internal/transport/http/middleware"
)

func Run() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config invalid: %v", err)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}

	authStore := auth.NewStore(pool)
	rosterService := roster.NewService(roster.NewStore(pool))
	payrollService := payroll.NewService(payroll.NewStore(pool))
	performanceService := performance.NewService(performance.NewStore(pool))
	notificationService := notifications.New(pool)
	auditService := audit.New(pool)
	mailer := email.New(cfg)

	var collector *metrics.Collector
	if cfg.MetricsEnabled {
		collector = metrics.New()
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(collector))
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		authHandler := authhandler.NewHandler(authStore, mailer, notificationService, cfg.JWTSecret,
			cfg.AccessTokenTTL, cfg.RefreshTokenTTL, cfg.PasswordResetTTL, cfg.EmailFrom)
		r.Post("/auth/login", authHandler.HandleLogin)
		r.Post("/auth/logout", authHandler.HandleLogout)
		r.Post("/auth/refresh", authHandler.HandleRefresh)
		r.Post("/auth/request-reset", authHandler.HandleRequestReset)
		r.Post("/auth/reset", authHandler.HandleResetPassword)

		rosterhandler.NewHandler(rosterService, auditService, authStore).RegisterRoutes(r)
		payrollhandler.NewHandler(payrollService, authStore).RegisterRoutes(r)
		performancehandler.NewHandler(performanceService, auditService, authStore).RegisterRoutes(r)
		notificationshandler.NewHandler(notificationService).RegisterRoutes(r)
		audithandler.NewHandler(auditService, authStore).RegisterRoutes(r)

		if collector != nil {
			r.With(middleware.RequirePermission(auth.PermAuditRead, authStore)).
				Get("/admin/metrics", func(w http.ResponseWriter, r *http.Request) {
					api.Success(w, collector.Snapshot(), middleware.GetRequestID(r.Context()))
				})
		}
	})

	log.Printf("back-office server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
