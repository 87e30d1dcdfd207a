package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/pkordes/trip-planner/backend/internal/client"
	"github.com/pkordes/trip-planner/backend/internal/itinerary"
	"github.com/pkordes/trip-planner/backend/internal/repo"
	"github.com/pkordes/trip-planner/backend/internal/service"
)

// options holds the persistent flags shared by every subcommand.
type options struct {
	apiURL      string
	databaseURL string
	timeout     time.Duration
	verbose     bool

	log *slog.Logger
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "planner",
		Short: "Plan trip itineraries from the command line",
		Long: `planner shows and edits the day-by-day itinerary of a trip.

Itinerary commands talk to the API server given by --api, or, when
--database-url is set, work directly on the database.

Examples:
  planner days 0d8f7c6b-5a49-4e3d-8c2b-1a0f9e8d7c6b
  planner add <tripId> --day 2 --city <cityId> --name Colosseum --type attraction
  planner migrate up --database-url postgres://localhost/planner
  planner seed catalog.yaml --database-url postgres://localhost/planner`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := slog.LevelWarn
			if opts.verbose {
				level = slog.LevelDebug
			}
			opts.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			return nil
		},
	}

	// A .env file may supply PLANNER_API_URL or DATABASE_URL.
	_ = godotenv.Load()

	root.PersistentFlags().StringVar(&opts.apiURL, "api", envOr("PLANNER_API_URL", "http://localhost:8080"), "API server base URL")
	root.PersistentFlags().StringVar(&opts.databaseURL, "database-url", os.Getenv("DATABASE_URL"), "Postgres URL; bypasses the API server")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", client.DefaultTimeout, "per-request timeout against the API server")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log debug output to stderr")

	root.AddCommand(
		newDaysCmd(opts),
		newAddCmd(opts),
		newRemoveCmd(opts),
		newMigrateCmd(opts),
		newSeedCmd(opts),
	)
	return root
}

// backend returns the itinerary backend selected by the flags and a func
// releasing its resources.
func (o *options) backend(ctx context.Context) (itinerary.Backend, func(), error) {
	if o.databaseURL == "" {
		return client.New(o.apiURL, client.WithTimeout(o.timeout)), func() {}, nil
	}
	pool, err := o.pool(ctx)
	if err != nil {
		return nil, nil, err
	}
	trips := repo.NewTripRepo(pool)
	cities := repo.NewCityRepo(pool)
	activities := repo.NewActivityRepo(pool)
	b := &service.Backend{
		Trips:      service.NewTripService(trips),
		Activities: service.NewActivityService(activities),
		Itinerary:  service.NewItineraryService(trips, cities, activities, repo.NewEntryRepo(pool), nil, o.log),
	}
	return b, pool.Close, nil
}

// pool opens the database named by --database-url.
func (o *options) pool(ctx context.Context) (*pgxpool.Pool, error) {
	if o.databaseURL == "" {
		return nil, errors.New("--database-url or DATABASE_URL is required")
	}
	pool, err := pgxpool.New(ctx, o.databaseURL)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	return pool, nil
}

// loadPlanner builds a planner for tripID and loads it.
func (o *options) loadPlanner(ctx context.Context, tripID string) (*itinerary.Planner, func(), error) {
	id, err := parseID("trip", tripID)
	if err != nil {
		return nil, nil, err
	}
	b, release, err := o.backend(ctx)
	if err != nil {
		return nil, nil, err
	}
	p := itinerary.NewPlanner(b, id, o.log)
	if err := p.Load(ctx); err != nil {
		release()
		return nil, nil, err
	}
	return p, release, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// out is where command results go; split out for tests.
func out(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}
