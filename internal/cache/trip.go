// Package cache provides Redis-backed read-through caching for repositories.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/repo"
)

// DefaultTTL is used when NewTripRepo is given a non-positive ttl.
const DefaultTTL = 5 * time.Minute

// tripRepo caches GetByID results. Writes go to the wrapped repo first and
// then evict the cached copy. Redis failures are logged and fall through to
// the wrapped repo; they never fail a request.
type tripRepo struct {
	repo.TripRepo
	rdb redis.Cmdable
	ttl time.Duration
	log *slog.Logger
}

// NewTripRepo wraps inner with a Redis read-through cache for single trips.
func NewTripRepo(inner repo.TripRepo, rdb redis.Cmdable, ttl time.Duration, log *slog.Logger) repo.TripRepo {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if log == nil {
		log = slog.Default()
	}
	return &tripRepo{TripRepo: inner, rdb: rdb, ttl: ttl, log: log}
}

// NewClient parses a redis:// URL and returns a connected client.
func NewClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("cache.NewClient: parse url: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("cache.NewClient: ping: %w", err)
	}
	return rdb, nil
}

func tripKey(id uuid.UUID) string {
	return "trip:" + id.String()
}

func (r *tripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	raw, err := r.rdb.Get(ctx, tripKey(id)).Bytes()
	switch {
	case err == nil:
		var trip domain.Trip
		if err := json.Unmarshal(raw, &trip); err == nil {
			return trip, nil
		}
		r.log.WarnContext(ctx, "discarding undecodable cached trip", "trip_id", id)
	case !errors.Is(err, redis.Nil):
		r.log.WarnContext(ctx, "trip cache read failed", "trip_id", id, "error", err)
	}

	trip, err := r.TripRepo.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, err
	}

	if raw, err := json.Marshal(trip); err == nil {
		if err := r.rdb.Set(ctx, tripKey(id), raw, r.ttl).Err(); err != nil {
			r.log.WarnContext(ctx, "trip cache write failed", "trip_id", id, "error", err)
		}
	}
	return trip, nil
}

func (r *tripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	updated, err := r.TripRepo.Update(ctx, trip)
	if err != nil {
		return domain.Trip{}, err
	}
	r.evict(ctx, trip.ID)
	return updated, nil
}

func (r *tripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.TripRepo.Delete(ctx, id); err != nil {
		return err
	}
	r.evict(ctx, id)
	return nil
}

func (r *tripRepo) evict(ctx context.Context, id uuid.UUID) {
	if err := r.rdb.Del(ctx, tripKey(id)).Err(); err != nil {
		r.log.WarnContext(ctx, "trip cache eviction failed", "trip_id", id, "error", err)
	}
}
