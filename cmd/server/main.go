package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	defevents "vardef/internal/definitions/events"
	defhandler "vardef/internal/definitions/handler"
	defmetrics "vardef/internal/definitions/metrics"
	defmodels "vardef/internal/definitions/models"
	defservice "vardef/internal/definitions/service"
	defstore "vardef/internal/definitions/store"
	jwttoken "vardef/internal/jwt_token"
	"vardef/internal/klass"
	klassmetrics "vardef/internal/klass/metrics"
	mighandler "vardef/internal/migration/handler"
	migmetrics "vardef/internal/migration/metrics"
	migservice "vardef/internal/migration/service"
	migstore "vardef/internal/migration/store"
	"vardef/internal/platform/config"
	"vardef/internal/platform/httpserver"
	"vardef/internal/platform/logger"
	"vardef/internal/platform/metrics"
	"vardef/internal/platform/middleware"
	"vardef/internal/platform/postgres"
	"vardef/internal/platform/redis"
	"vardef/internal/platform/scheduler"
	"vardef/internal/vardok"
	"vardef/pkg/platform/httputil"
)

// main wires configuration, storage and services, then serves until SIGINT/SIGTERM.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("vardef exited with error", "error", err)
		os.Exit(1)
	}
}

type stores struct {
	db          *sql.DB
	definitions defservice.Store
	mappings    migservice.Store
}

func openStores(ctx context.Context, cfg config.Server, log *slog.Logger) (*stores, error) {
	if cfg.Database.URL == "" {
		log.Warn("DATABASE_URL not set, using in-memory stores")
		return &stores{definitions: defstore.NewInMemory(), mappings: migstore.NewInMemory()}, nil
	}
	db, err := postgres.Open(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := postgres.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	log.Info("connected to postgres")
	return &stores{db: db, definitions: defstore.NewPostgres(db), mappings: migstore.NewPostgres(db)}, nil
}

func openPublisher(ctx context.Context, cfg config.Server, log *slog.Logger) (defevents.Publisher, func() error, error) {
	if len(cfg.Kafka.Brokers) == 0 {
		p := defevents.NewLogPublisher(log)
		return p, p.Close, nil
	}
	p, err := defevents.NewKafkaPublisher(ctx, cfg.Kafka.Brokers, cfg.Kafka.Topic, log)
	if err != nil {
		return nil, nil, err
	}
	log.Info("publishing definition events to kafka", "topic", cfg.Kafka.Topic)
	return p, p.Close, nil
}

func run(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	st, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	if st.db != nil {
		defer st.db.Close()
	}

	publisher, closePublisher, err := openPublisher(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := closePublisher(); err != nil {
			log.Warn("failed to close event publisher", "error", err)
		}
	}()

	cacheOpts := []klass.Option{klass.WithLogger(log), klass.WithMetrics(klassmetrics.New())}
	rdb, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if rdb != nil {
		defer rdb.Close()
		cacheOpts = append(cacheOpts, klass.WithMirror(klass.NewRedisSnapshotStore(rdb.Client)))
	}
	cache := klass.New(klass.NewClient(cfg.Klass.BaseURL, cfg.Klass.Timeout, log), cfg.Klass.Classifications, cacheOpts...)
	log.Info("classification cache warmed",
		"populated", cache.Warm(ctx),
		"tracked", len(cfg.Klass.Classifications),
	)

	immutable, err := defmodels.ParseFields(cfg.PublishedImmutable)
	if err != nil {
		return err
	}
	definitions := defservice.New(st.definitions, cache,
		defservice.WithLogger(log),
		defservice.WithMetrics(defmetrics.New()),
		defservice.WithPublisher(publisher),
		defservice.WithImmutableFields(immutable),
	)
	migration := migservice.New(
		vardok.NewClient(cfg.Vardok.BaseURL, cfg.Vardok.Timeout, log),
		definitions,
		st.mappings,
		migservice.WithLogger(log),
		migservice.WithMetrics(migmetrics.New()),
	)

	jobs := scheduler.New(log, backgroundJobs(cfg, cache, definitions)...)
	jobs.SetDrainTimeout(cfg.ShutdownTimeout)

	router := newRouter(cfg, log, st, rdb, cache,
		defhandler.New(definitions, log),
		mighandler.New(migration, log),
	)
	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return jobs.Run(gctx)
	})
	g.Go(func() error {
		return httpserver.Serve(gctx, srv, cfg.ShutdownTimeout, log)
	})
	return g.Wait()
}

// backgroundJobs lists the periodic jobs. Both run at boot: an empty classification
// rejects every code.
func backgroundJobs(cfg config.Server, cache *klass.Cache, definitions *defservice.Service) []scheduler.Job {
	return []scheduler.Job{
		{Name: "klass-refresh", Interval: cfg.Klass.RefreshInterval, RunOnStart: true, Fn: cache.Refresh},
		{Name: "status-metrics", Interval: cfg.MetricsExportInterval, RunOnStart: true, Fn: definitions.ExportStatusMetrics},
	}
}

func newRouter(
	cfg config.Server,
	log *slog.Logger,
	st *stores,
	rdb *redis.Client,
	cache *klass.Cache,
	definitions *defhandler.Handler,
	migration *mighandler.Handler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recovery(log))
	r.Use(metrics.New().Middleware)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status, body := http.StatusOK, map[string]any{"status": "ok", "classifications": cache.States()}
		if st.db != nil {
			if err := st.db.PingContext(ctx); err != nil {
				status, body["status"], body["postgres"] = http.StatusServiceUnavailable, "degraded", err.Error()
			}
		}
		if rdb != nil {
			if err := rdb.Health(ctx); err != nil {
				body["redis"] = err.Error()
			}
		}
		httputil.WriteJSON(w, status, body)
	})

	validator := jwttoken.NewJWTServiceAdapter(jwttoken.NewJWTService(cfg.JWTSigningKey, "vardef"))
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(validator, log))
		definitions.Register(r)
		migration.Register(r)
	})
	return r
}
