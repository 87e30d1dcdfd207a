package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/events"
	"github.com/pkordes/trip-planner/backend/internal/itinerary"
	"github.com/pkordes/trip-planner/backend/internal/repo"
)

// ItineraryService implements business logic for itinerary entries and the
// day-by-day view derived from them.
type ItineraryService struct {
	trips      repo.TripRepo
	cities     repo.CityRepo
	activities repo.ActivityRepo
	entries    repo.EntryRepo
	events     events.Publisher
	log        *slog.Logger
	now        func() time.Time
}

// NewItineraryService constructs an ItineraryService. A nil publisher is
// replaced with events.NopPublisher; a nil logger with slog.Default().
func NewItineraryService(
	trips repo.TripRepo,
	cities repo.CityRepo,
	activities repo.ActivityRepo,
	entries repo.EntryRepo,
	pub events.Publisher,
	log *slog.Logger,
) *ItineraryService {
	if pub == nil {
		pub = events.NopPublisher{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &ItineraryService{
		trips:      trips,
		cities:     cities,
		activities: activities,
		entries:    entries,
		events:     pub,
		log:        log,
		now:        time.Now,
	}
}

// ListEntries returns every entry of a trip, populated with city and activity.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *ItineraryService) ListEntries(ctx context.Context, tripID uuid.UUID) ([]domain.ItineraryEntry, error) {
	if _, err := s.trips.GetByID(ctx, tripID); err != nil {
		return nil, fmt.Errorf("service.ItineraryService.ListEntries: %w", err)
	}
	entries, err := s.entries.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ItineraryService.ListEntries: %w", err)
	}
	if entries == nil {
		entries = []domain.ItineraryEntry{}
	}
	return entries, nil
}

// CreateEntry validates and persists a new entry, then publishes
// events.EntryCreated.
//
// Returns domain.ErrNotFound if the trip does not exist and
// domain.ErrValidation when:
//   - the city is missing (also matches domain.ErrMissingCity) or unknown
//   - the referenced activity is unknown
//   - the date falls outside the trip
//   - neither an activity nor notes are given
//   - the order index is negative
func (s *ItineraryService) CreateEntry(ctx context.Context, entry domain.ItineraryEntry) (domain.ItineraryEntry, error) {
	trip, err := s.trips.GetByID(ctx, entry.TripID)
	if err != nil {
		return domain.ItineraryEntry{}, fmt.Errorf("service.ItineraryService.CreateEntry: %w", err)
	}
	if err := s.validateEntry(ctx, trip, entry); err != nil {
		return domain.ItineraryEntry{}, err
	}
	entry.Date = domain.DateOf(entry.Date)

	created, err := s.entries.Create(ctx, entry)
	if err != nil {
		return domain.ItineraryEntry{}, fmt.Errorf("service.ItineraryService.CreateEntry: %w", err)
	}
	s.publish(ctx, events.EntryCreated, created)
	return created, nil
}

// DeleteEntry removes an entry, then publishes events.EntryDeleted.
// Returns domain.ErrNotFound if the entry does not exist.
func (s *ItineraryService) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	entry, err := s.entries.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("service.ItineraryService.DeleteEntry: %w", err)
	}
	if err := s.entries.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.ItineraryService.DeleteEntry: %w", err)
	}
	s.publish(ctx, events.EntryDeleted, entry)
	return nil
}

// Days returns the trip together with its day-by-day projection.
// Malformed entries are logged and left out.
func (s *ItineraryService) Days(ctx context.Context, tripID uuid.UUID) (domain.Trip, []domain.Day, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.Trip{}, nil, fmt.Errorf("service.ItineraryService.Days: %w", err)
	}
	entries, err := s.entries.ListByTripID(ctx, tripID)
	if err != nil {
		return domain.Trip{}, nil, fmt.Errorf("service.ItineraryService.Days: %w", err)
	}
	days := itinerary.Project(trip, entries, func(err error) {
		s.log.WarnContext(ctx, "skipping itinerary entry", "trip_id", tripID, "error", err)
	})
	return trip, days, nil
}

func (s *ItineraryService) validateEntry(ctx context.Context, trip domain.Trip, entry domain.ItineraryEntry) error {
	if entry.CityID == uuid.Nil {
		return fmt.Errorf("%w: %w", domain.ErrValidation, domain.ErrMissingCity)
	}
	if _, err := s.cities.GetByID(ctx, entry.CityID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: city %s does not exist", domain.ErrValidation, entry.CityID)
		}
		return fmt.Errorf("service.ItineraryService.CreateEntry: %w", err)
	}
	if entry.ActivityID != nil {
		if _, err := s.activities.GetByID(ctx, *entry.ActivityID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("%w: activity %s does not exist", domain.ErrValidation, *entry.ActivityID)
			}
			return fmt.Errorf("service.ItineraryService.CreateEntry: %w", err)
		}
	} else if entry.Notes == "" {
		return fmt.Errorf("%w: activityId or notes is required", domain.ErrValidation)
	}
	if entry.Date.IsZero() || !trip.Covers(entry.Date) {
		return fmt.Errorf("%w: date must fall within the trip", domain.ErrValidation)
	}
	if entry.OrderIndex < 0 {
		return fmt.Errorf("%w: orderIndex must not be negative", domain.ErrValidation)
	}
	return nil
}

// PublishTimeout bounds how long a request waits on the event broker.
const PublishTimeout = 2 * time.Second

// publish reports a failed publish in the log only; the change is already stored.
func (s *ItineraryService) publish(ctx context.Context, kind string, entry domain.ItineraryEntry) {
	ctx, cancel := context.WithTimeout(ctx, PublishTimeout)
	defer cancel()

	e := events.Event{
		Type:       kind,
		TripID:     entry.TripID,
		EntryID:    entry.ID,
		Date:       entry.Date.Format(time.DateOnly),
		OccurredAt: s.now().UTC(),
	}
	if err := s.events.Publish(ctx, e); err != nil {
		s.log.ErrorContext(ctx, "publishing itinerary event", "type", kind, "entry_id", entry.ID, "error", err)
	}
}
