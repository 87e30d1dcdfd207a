// Command api serves the trip planner HTTP API. It only wires dependencies;
// behaviour lives in internal/.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/sync/errgroup"

	"github.com/pkordes/trip-planner/backend/internal/cache"
	"github.com/pkordes/trip-planner/backend/internal/config"
	"github.com/pkordes/trip-planner/backend/internal/events"
	"github.com/pkordes/trip-planner/backend/internal/handler"
	"github.com/pkordes/trip-planner/backend/internal/middleware"
	"github.com/pkordes/trip-planner/backend/internal/repo"
	"github.com/pkordes/trip-planner/backend/internal/service"
	"github.com/pkordes/trip-planner/backend/migrations"
)

const shutdownGrace = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("api exited", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

// run builds the dependency graph and serves until ctx is cancelled.
func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("creating database pool: %w", err)
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	log.Info("database connection established")

	if cfg.MigrateOnStart {
		db := stdlib.OpenDBFromPool(pool)
		n, err := migrations.Up(ctx, db)
		db.Close()
		if err != nil {
			return err
		}
		log.Info("migrations applied", "count", n)
	}

	trips := repo.NewTripRepo(pool)
	if cfg.RedisURL != "" {
		rdb, err := cache.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			// Run uncached rather than refuse to start.
			log.Warn("redis unavailable, trip cache disabled", "error", err)
		} else {
			defer rdb.Close()
			trips = cache.NewTripRepo(trips, rdb, cfg.TripCacheTTL, log)
			log.Info("trip cache enabled", "ttl", cfg.TripCacheTTL)
		}
	}
	cities := repo.NewCityRepo(pool)
	activities := repo.NewActivityRepo(pool)

	publisher := newPublisher(cfg, log)
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Error("closing event publisher", "error", err)
		}
	}()

	srv := handler.NewServer(handler.Services{
		Trips:      service.NewTripService(trips),
		Cities:     service.NewCityService(cities),
		Activities: service.NewActivityService(activities),
		Itinerary:  service.NewItineraryService(trips, cities, activities, repo.NewEntryRepo(pool), publisher, log),
	}, log)

	router, err := newRouter(cfg, log, srv)
	if err != nil {
		return err
	}

	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server starting", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func newPublisher(cfg config.Config, log *slog.Logger) events.Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		return events.NopPublisher{}
	}
	log.Info("itinerary events enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	return events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
}

// newRouter stacks the middleware in front of the API routes. RequestID runs
// before the logger so every line carries it; RealIP runs before the rate
// limiter, which keys on RemoteAddr.
func newRouter(cfg config.Config, log *slog.Logger, srv *handler.Server) (http.Handler, error) {
	rateLimit, err := middleware.NewRateLimitHandler(cfg.RateLimit)
	if err != nil {
		return nil, fmt.Errorf("RATE_LIMIT: %w", err)
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))
	r.Use(rateLimit)
	r.Mount("/", srv.Routes())
	return r, nil
}
