package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// EntryRepo defines the persistence operations for itinerary entries.
// Every read returns entries populated with their city and catalog activity
// when those rows exist.
type EntryRepo interface {
	// Create inserts an entry and returns it populated.
	Create(ctx context.Context, entry domain.ItineraryEntry) (domain.ItineraryEntry, error)

	// GetByID retrieves a single populated entry.
	// Returns domain.ErrNotFound if it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (domain.ItineraryEntry, error)

	// ListByTripID returns all entries of a trip ordered by date, order_index
	// and creation time.
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.ItineraryEntry, error)

	// Delete removes an entry by ID. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgEntryRepo is the Postgres implementation of EntryRepo.
type pgEntryRepo struct {
	db db
}

// NewEntryRepo constructs an EntryRepo backed by the provided db connection.
func NewEntryRepo(db db) EntryRepo {
	return &pgEntryRepo{db: db}
}

// populatedEntrySelect joins an entry row source aliased "e" with its city and
// activity. Callers append the FROM source and any filtering.
const populatedEntrySelect = `
	SELECT e.id, e.trip_id, e.city_id, e.date, e.activity_id, e.notes, e.order_index, e.created_at,
	       c.id, c.name, c.country, c.created_at,
	       a.id, a.name, a.type, a.cost::float8, a.duration, a.description, a.created_at`

const populatedEntryJoins = `
	LEFT JOIN cities c ON c.id = e.city_id
	LEFT JOIN activities a ON a.id = e.activity_id`

// Create inserts the entry and reads it back with its joins in one round trip.
func (r *pgEntryRepo) Create(ctx context.Context, entry domain.ItineraryEntry) (domain.ItineraryEntry, error) {
	const q = `
		WITH e AS (
			INSERT INTO itinerary_entries (trip_id, city_id, date, activity_id, notes, order_index)
			VALUES (@trip_id, @city_id, @date, @activity_id, @notes, @order_index)
			RETURNING *
		)` + populatedEntrySelect + `
		FROM e` + populatedEntryJoins

	args := pgx.NamedArgs{
		"trip_id":     entry.TripID,
		"city_id":     entry.CityID,
		"date":        pgDate(entry.Date),
		"activity_id": entry.ActivityID, // nil becomes NULL
		"notes":       entry.Notes,
		"order_index": entry.OrderIndex,
	}

	result, err := scanEntry(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.ItineraryEntry{}, fmt.Errorf("repo.EntryRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgEntryRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.ItineraryEntry, error) {
	const q = populatedEntrySelect + `
		FROM itinerary_entries e` + populatedEntryJoins + `
		WHERE e.id = @id`

	result, err := scanEntry(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.ItineraryEntry{}, fmt.Errorf("repo.EntryRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgEntryRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.ItineraryEntry, error) {
	const q = populatedEntrySelect + `
		FROM itinerary_entries e` + populatedEntryJoins + `
		WHERE e.trip_id = @trip_id
		ORDER BY e.date, e.order_index, e.created_at`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.EntryRepo.ListByTripID: %w", err)
	}
	defer rows.Close()

	entries := []domain.ItineraryEntry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.EntryRepo.ListByTripID: scan: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.EntryRepo.ListByTripID: rows: %w", err)
	}
	return entries, nil
}

func (r *pgEntryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM itinerary_entries WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.EntryRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.EntryRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanEntry maps a populated entry row. The city and activity columns come
// from LEFT JOINs and are NULL when the referenced row is missing.
func scanEntry(s scanner) (domain.ItineraryEntry, error) {
	var (
		e          domain.ItineraryEntry
		id         pgtype.UUID
		tripID     pgtype.UUID
		cityID     pgtype.UUID
		date       pgtype.Date
		activityID pgtype.UUID

		cID        pgtype.UUID
		cName      pgtype.Text
		cCountry   pgtype.Text
		cCreatedAt pgtype.Timestamptz

		aID          pgtype.UUID
		aName        pgtype.Text
		aType        pgtype.Text
		aCost        pgtype.Float8
		aDuration    pgtype.Int4
		aDescription pgtype.Text
		aCreatedAt   pgtype.Timestamptz
	)

	err := s.Scan(
		&id, &tripID, &cityID, &date, &activityID, &e.Notes, &e.OrderIndex, &e.CreatedAt,
		&cID, &cName, &cCountry, &cCreatedAt,
		&aID, &aName, &aType, &aCost, &aDuration, &aDescription, &aCreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ItineraryEntry{}, domain.ErrNotFound
		}
		return domain.ItineraryEntry{}, err
	}

	e.ID = uuid.UUID(id.Bytes)
	e.TripID = uuid.UUID(tripID.Bytes)
	e.CityID = uuid.UUID(cityID.Bytes)
	e.Date = date.Time
	if activityID.Valid {
		aid := uuid.UUID(activityID.Bytes)
		e.ActivityID = &aid
	}
	if cID.Valid {
		e.City = &domain.City{
			ID:        uuid.UUID(cID.Bytes),
			Name:      cName.String,
			Country:   cCountry.String,
			CreatedAt: cCreatedAt.Time,
		}
	}
	if aID.Valid {
		e.Activity = &domain.Activity{
			ID:          uuid.UUID(aID.Bytes),
			Name:        aName.String,
			Type:        domain.ActivityType(aType.String),
			Cost:        aCost.Float64,
			Duration:    int(aDuration.Int32),
			Description: aDescription.String,
			CreatedAt:   aCreatedAt.Time,
		}
	}
	return e, nil
}
