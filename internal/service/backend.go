package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/itinerary"
)

// Backend runs an itinerary.Planner directly against the services, without
// going through HTTP. The planner CLI uses it when given a database URL.
type Backend struct {
	Trips      *TripService
	Activities *ActivityService
	Itinerary  *ItineraryService
}

var _ itinerary.Backend = (*Backend)(nil)

func (b *Backend) GetTrip(ctx context.Context, tripID uuid.UUID) (domain.Trip, error) {
	return b.Trips.GetByID(ctx, tripID)
}

func (b *Backend) ListEntries(ctx context.Context, tripID uuid.UUID) ([]domain.ItineraryEntry, error) {
	return b.Itinerary.ListEntries(ctx, tripID)
}

func (b *Backend) CreateActivity(ctx context.Context, a domain.Activity) (domain.Activity, error) {
	return b.Activities.Create(ctx, a)
}

func (b *Backend) CreateEntry(ctx context.Context, e domain.ItineraryEntry) (domain.ItineraryEntry, error) {
	return b.Itinerary.CreateEntry(ctx, e)
}

func (b *Backend) DeleteEntry(ctx context.Context, entryID uuid.UUID) error {
	return b.Itinerary.DeleteEntry(ctx, entryID)
}
