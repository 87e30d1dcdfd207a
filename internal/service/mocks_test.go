package service_test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/events"
	"github.com/pkordes/trip-planner/backend/internal/repo"
)

// Hand-written test doubles. Each method is a function field; set only the
// ones a test needs. Calling an unset field panics, which flags an
// unexpected repo call.

type mockTripRepo struct {
	create    func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID   func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	listPaged func(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)
	update    func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete    func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.listPaged(ctx, p)
}
func (m *mockTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.update(ctx, trip)
}
func (m *mockTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ repo.TripRepo = (*mockTripRepo)(nil)

type mockCityRepo struct {
	upsert  func(ctx context.Context, city domain.City) (domain.City, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.City, error)
	list    func(ctx context.Context, prefix string) ([]domain.City, error)
}

func (m *mockCityRepo) Upsert(ctx context.Context, city domain.City) (domain.City, error) {
	return m.upsert(ctx, city)
}
func (m *mockCityRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.City, error) {
	return m.getByID(ctx, id)
}
func (m *mockCityRepo) List(ctx context.Context, prefix string) ([]domain.City, error) {
	return m.list(ctx, prefix)
}

var _ repo.CityRepo = (*mockCityRepo)(nil)

type mockActivityRepo struct {
	create    func(ctx context.Context, a domain.Activity) (domain.Activity, error)
	getByID   func(ctx context.Context, id uuid.UUID) (domain.Activity, error)
	listPaged func(ctx context.Context, p domain.PaginationParams) ([]domain.Activity, int64, error)
}

func (m *mockActivityRepo) Create(ctx context.Context, a domain.Activity) (domain.Activity, error) {
	return m.create(ctx, a)
}
func (m *mockActivityRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Activity, error) {
	return m.getByID(ctx, id)
}
func (m *mockActivityRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Activity, int64, error) {
	return m.listPaged(ctx, p)
}

var _ repo.ActivityRepo = (*mockActivityRepo)(nil)

type mockEntryRepo struct {
	create       func(ctx context.Context, e domain.ItineraryEntry) (domain.ItineraryEntry, error)
	getByID      func(ctx context.Context, id uuid.UUID) (domain.ItineraryEntry, error)
	listByTripID func(ctx context.Context, tripID uuid.UUID) ([]domain.ItineraryEntry, error)
	delete       func(ctx context.Context, id uuid.UUID) error
}

func (m *mockEntryRepo) Create(ctx context.Context, e domain.ItineraryEntry) (domain.ItineraryEntry, error) {
	return m.create(ctx, e)
}
func (m *mockEntryRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.ItineraryEntry, error) {
	return m.getByID(ctx, id)
}
func (m *mockEntryRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.ItineraryEntry, error) {
	return m.listByTripID(ctx, tripID)
}
func (m *mockEntryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ repo.EntryRepo = (*mockEntryRepo)(nil)

// recordingPublisher keeps every published event; err is returned from Publish.
// deadlines holds the context deadline seen by each Publish (zero if none).
type recordingPublisher struct {
	mu        sync.Mutex
	events    []events.Event
	deadlines []time.Time
	err       error
}

func (p *recordingPublisher) Publish(ctx context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	deadline, _ := ctx.Deadline()
	p.deadlines = append(p.deadlines, deadline)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) published() []events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.Event(nil), p.events...)
}
