// Package repo holds the Postgres persistence for trips, the city and
// activity catalog, and itinerary entries. Queries use pgx named arguments;
// rows are mapped to domain types and pgx.ErrNoRows becomes domain.ErrNotFound.
package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// db is implemented by *pgxpool.Pool and pgx.Tx; integration tests pass a
// transaction that testutil rolls back.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TripRepo persists trips. Lookups and mutations of a missing trip return
// domain.ErrNotFound.
type TripRepo interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	// ListPaged returns one page ordered by start_date descending, and the
	// total number of trips.
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)

	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// Delete also removes the trip's itinerary entries (ON DELETE CASCADE).
	Delete(ctx context.Context, id uuid.UUID) error
}

type pgTripRepo struct {
	db db
}

func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

const tripColumns = `id, title, destination, start_date, end_date, notes, created_at, updated_at`

func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		INSERT INTO trips (title, destination, start_date, end_date, notes)
		VALUES (@title, @destination, @start_date, @end_date, @notes)
		RETURNING ` + tripColumns

	args := pgx.NamedArgs{
		"title":       trip.Title,
		"destination": trip.Destination,
		"start_date":  pgDate(trip.StartDate),
		"end_date":    pgDate(trip.EndDate),
		"notes":       trip.Notes,
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips WHERE id = @id`

	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

// ListPaged returns one page of trips, most recent first, and the total count.
func (r *pgTripRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	const q = `
		SELECT ` + tripColumns + `, count(*) OVER () AS total
		FROM trips
		ORDER BY start_date DESC, created_at DESC
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: %w", err)
	}
	defer rows.Close()

	trips := []domain.Trip{}
	var total int64
	for rows.Next() {
		t, n, err := scanTripWithTotal(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: scan: %w", err)
		}
		trips = append(trips, t)
		total = n
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: rows: %w", err)
	}

	// An out-of-range page returns no rows and therefore no window total.
	if len(trips) == 0 && p.Page > 1 {
		if err := r.db.QueryRow(ctx, `SELECT count(*) FROM trips`).Scan(&total); err != nil {
			return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: count: %w", err)
		}
	}
	return trips, total, nil
}

func (r *pgTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		UPDATE trips
		SET title       = @title,
		    destination = @destination,
		    start_date  = @start_date,
		    end_date    = @end_date,
		    notes       = @notes,
		    updated_at  = now()
		WHERE id = @id
		RETURNING ` + tripColumns

	args := pgx.NamedArgs{
		"id":          trip.ID,
		"title":       trip.Title,
		"destination": trip.Destination,
		"start_date":  pgDate(trip.StartDate),
		"end_date":    pgDate(trip.EndDate),
		"notes":       trip.Notes,
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM trips WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanner is pgx.Row or pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanTrip maps a single database row into a domain.Trip.
func scanTrip(s scanner) (domain.Trip, error) {
	return scanTripInto(s)
}

func scanTripWithTotal(s scanner) (domain.Trip, int64, error) {
	var total int64
	t, err := scanTripInto(s, &total)
	return t, total, err
}

// scanTripInto scans the trip columns followed by any extra destinations.
func scanTripInto(s scanner, extra ...any) (domain.Trip, error) {
	var (
		t         domain.Trip
		id        pgtype.UUID
		startDate pgtype.Date
		endDate   pgtype.Date
	)

	dest := append([]any{&id, &t.Title, &t.Destination, &startDate, &endDate, &t.Notes, &t.CreatedAt, &t.UpdatedAt}, extra...)
	if err := s.Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	t.StartDate = startDate.Time
	t.EndDate = endDate.Time
	return t, nil
}

// pgDate converts t to a DATE parameter holding its calendar date.
func pgDate(t time.Time) pgtype.Date {
	return pgtype.Date{Time: domain.DateOf(t), Valid: true}
}
