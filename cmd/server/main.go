package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"hranalytics/internal/domain/analytics"
	"hranalytics/internal/domain/auth"
	"hranalytics/internal/platform/config"
	"hranalytics/internal/platform/db"
	"hranalytics/internal/platform/email"
	"hranalytics/internal/platform/jobs"
	"hranalytics/internal/platform/metrics"
	"hranalytics/internal/transport/http/api"
	analyticshandler "hranalytics/internal/transport/http/handlers/analytics"
	authhandler "hranalytics/internal/transport/http/handlers/auth"
	"hranalytics/internal/transport/http/middleware"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
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

	analyticsService := analytics.NewService(analytics.NewStore(pool), analytics.StaticSamples{})

	mailer := email.New(cfg)
	digest := jobs.New(analyticsService, mailer, cfg)
	digest.Start(ctx)

	var collector *metrics.Collector
	if cfg.MetricsEnabled {
		collector = metrics.New()
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.CollectMetrics(collector))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))
	router.Use(middleware.Auth(cfg.JWTSecret))

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
		loginHandler := authhandler.NewHandler(auth.NewStore(pool), cfg.JWTSecret, cfg.TokenTTL)
		r.Post("/auth/login", loginHandler.HandleLogin)

		analyticsHandler := analyticshandler.NewHandler(analyticsService)
		analyticsHandler.RegisterRoutes(r)

		if collector != nil {
			r.With(middleware.RequireAuth).Get("/system/metrics", func(w http.ResponseWriter, req *http.Request) {
				api.Success(w, collector.Snapshot(), middleware.GetRequestID(req.Context()))
			})
		}
	})

	log.Printf("analytics server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
