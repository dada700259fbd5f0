package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"peoplehub/internal/domain/attendance"
	"peoplehub/internal/domain/audit"
	"peoplehub/internal/domain/auth"
	"peoplehub/internal/domain/core"
	"peoplehub/internal/domain/leave"
	"peoplehub/internal/domain/notifications"
	"peoplehub/internal/domain/recruitment"
	"peoplehub/internal/domain/reports"
	"peoplehub/internal/platform/config"
	"peoplehub/internal/platform/db"
	"peoplehub/internal/platform/email"
	"peoplehub/internal/platform/jobs"
	"peoplehub/internal/platform/metrics"
	attendancehandler "peoplehub/internal/transport/http/handlers/attendance"
	authhandler "peoplehub/internal/transport/http/handlers/auth"
	corehandler "peoplehub/internal/transport/http/handlers/core"
	leavehandler "peoplehub/internal/transport/http/handlers/leave"
	notificationshandler "peoplehub/internal/transport/http/handlers/notifications"
	recruitmenthandler "peoplehub/internal/transport/http/handlers/recruitment"
	reportshandler "peoplehub/internal/transport/http/handlers/reports"
	"peoplehub/internal/transport/http/middleware"
)

func Run() {
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
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}

	var collector *metrics.Collector
	if cfg.MetricsEnabled {
		collector = metrics.New()
	}

	authStore := auth.NewStore(pool)
	coreStore := core.NewStore(pool)
	leaveStore := leave.NewStore(pool)
	leaveSvc := leave.NewService(leaveStore, coreStore)
	recruitmentSvc := recruitment.NewService(recruitment.NewStore(pool))
	attendanceSvc := attendance.NewService(attendance.NewStore(pool))
	notifySvc := notifications.New(pool, email.New(cfg), cfg.EmailFrom)
	auditSvc := audit.New(pool)
	reportsSvc := reports.NewService(leaveSvc, coreStore)

	jobsSvc := jobs.New(pool, cfg, leaveSvc)
	jobsSvc.Start(ctx)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.Metrics(collector))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
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
		authhandler.NewHandler(authStore, cfg.JWTSecret).RegisterRoutes(r)
		corehandler.NewHandler(coreStore, auditSvc).RegisterRoutes(r)
		leavehandler.NewHandler(leaveSvc, notifySvc, auditSvc, jobsSvc, collector).RegisterRoutes(r)
		recruitmenthandler.NewHandler(recruitmentSvc, auditSvc, notifySvc).RegisterRoutes(r)
		attendancehandler.NewHandler(attendanceSvc).RegisterRoutes(r)
		notificationshandler.NewHandler(notifySvc).RegisterRoutes(r)
		reportshandler.NewHandler(reportsSvc, auditSvc, jobsSvc, collector).RegisterRoutes(r)
	})

	log.Printf("peoplehub server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
