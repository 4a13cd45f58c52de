package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"donorcheck/internal/auditlog"
	"donorcheck/internal/inspection/cache"
	"donorcheck/internal/inspection/handler"
	"donorcheck/internal/inspection/service"
	"donorcheck/internal/inspection/store"
	"donorcheck/internal/platform/config"
	"donorcheck/internal/platform/httpserver"
	"donorcheck/internal/platform/logger"
	"donorcheck/internal/platform/metrics"
	platformredis "donorcheck/internal/platform/redis"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		recordStore store.Store
		auditStore  auditlog.Store
	)
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Error("open database failed", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			log.Error("database ping failed", "error", err)
			os.Exit(1)
		}

		pgStore := store.NewPostgresStore(db, cfg.Table)
		if err := pgStore.EnsureTable(ctx); err != nil {
			log.Error("ensure inspection table failed", "error", err)
			os.Exit(1)
		}
		pgAudit := auditlog.NewPostgresStore(db, cfg.AuditTable)
		if err := pgAudit.EnsureTable(ctx); err != nil {
			log.Error("ensure audit table failed", "error", err)
			os.Exit(1)
		}
		recordStore, auditStore = pgStore, pgAudit
	} else {
		log.Warn("no database configured, using in-memory stores")
		recordStore = store.NewInMemoryStore()
		auditStore = auditlog.NewInMemoryStore()
	}

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("redis connect failed", "error", err)
		os.Exit(1)
	}
	var recentCache service.RecentCache
	if redisClient != nil {
		defer redisClient.Close()
		recentCache = cache.NewRecentCache(redisClient.Client, cfg.CacheTTL, log)
	}

	m := metrics.New()
	svc := service.NewService(recordStore, auditStore, recentCache, m, log, cfg.RecentLimit)

	h := handler.New(svc, log, []byte(cfg.JWTSigningKey))
	router := chi.NewRouter()
	h.Register(router)
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if redisClient != nil {
			if err := redisClient.Health(r.Context()); err != nil {
				log.WarnContext(r.Context(), "redis health check failed", "error", err)
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("degraded"))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Handle("/metrics", promhttp.Handler())

	srv := httpserver.New(cfg.Addr, router)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting donorcheck", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
	log.Info("shutdown complete")
}
