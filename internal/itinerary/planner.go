package itinerary

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// Backend is the set of remote operations a Planner depends on.
// It is satisfied by client.Client (over HTTP) and by service.Backend
// (in-process), so the same planner logic runs against either.
type Backend interface {
	GetTrip(ctx context.Context, tripID uuid.UUID) (domain.Trip, error)
	ListEntries(ctx context.Context, tripID uuid.UUID) ([]domain.ItineraryEntry, error)
	CreateActivity(ctx context.Context, activity domain.Activity) (domain.Activity, error)
	CreateEntry(ctx context.Context, entry domain.ItineraryEntry) (domain.ItineraryEntry, error)
	DeleteEntry(ctx context.Context, entryID uuid.UUID) error
}

// Planner owns the in-memory itinerary of a single trip.
//
// It keeps a local mirror of the trip's entries and re-derives the day
// projection from that mirror after every change. Mutations that talk to the
// backend only touch the mirror once the backend has confirmed them.
// A Planner is not safe for concurrent use.
type Planner struct {
	backend Backend
	tripID  uuid.UUID
	log     *slog.Logger

	trip    domain.Trip
	entries []domain.ItineraryEntry
	days    []domain.Day
}

// NewPlanner returns an unloaded Planner for tripID. Call Load before use.
func NewPlanner(backend Backend, tripID uuid.UUID, log *slog.Logger) *Planner {
	if log == nil {
		log = slog.Default()
	}
	return &Planner{backend: backend, tripID: tripID, log: log}
}

// Load fetches the trip and its entries and rebuilds the projection.
// Both requests run concurrently; nothing changes unless both succeed.
func (p *Planner) Load(ctx context.Context) error {
	var (
		trip    domain.Trip
		entries []domain.ItineraryEntry
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t, err := p.backend.GetTrip(gctx, p.tripID)
		if err != nil {
			return fmt.Errorf("get trip: %w", err)
		}
		trip = t
		return nil
	})
	g.Go(func() error {
		es, err := p.backend.ListEntries(gctx, p.tripID)
		if err != nil {
			return fmt.Errorf("list entries: %w", err)
		}
		entries = es
		return nil
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("itinerary.Planner.Load: %w", err)
	}

	p.trip = trip
	p.entries = slices.Clone(entries)
	p.reproject()
	return nil
}

// Trip returns the loaded trip.
func (p *Planner) Trip() domain.Trip {
	return p.trip
}

// Days returns a copy of the current projection.
func (p *Planner) Days() []domain.Day {
	out := make([]domain.Day, len(p.days))
	for i, d := range p.days {
		out[i] = copyDay(d)
	}
	return out
}

// Day returns a copy of the day with the given 1-based index.
// Returns domain.ErrNotFound if the trip has no such day.
func (p *Planner) Day(index int) (domain.Day, error) {
	d, ok := p.day(index)
	if !ok {
		return domain.Day{}, fmt.Errorf("itinerary.Planner.Day: day %d: %w", index, domain.ErrNotFound)
	}
	return copyDay(d), nil
}

// AddActivity creates a catalog activity from draft, links it to the day as a
// new itinerary entry at the end of the day's list, and returns it.
//
// The entry is saved with orderIndex = the day's activity count. Removals can
// leave that value tied with or below surviving entries, so the local copy is
// placed one past the day's highest index instead; like ReorderActivities,
// that position lasts until the next Load.
//
// Returns domain.ErrMissingCity if cityID is nil and domain.ErrNotFound if
// the day does not exist. Backend failures are joined with
// domain.ErrSaveFailed and leave the itinerary unchanged.
func (p *Planner) AddActivity(ctx context.Context, dayIndex int, cityID uuid.UUID, draft domain.ActivityDraft) (domain.ActivityEntry, error) {
	if cityID == uuid.Nil {
		return domain.ActivityEntry{}, fmt.Errorf("itinerary.Planner.AddActivity: %w", domain.ErrMissingCity)
	}
	day, ok := p.day(dayIndex)
	if !ok {
		return domain.ActivityEntry{}, fmt.Errorf("itinerary.Planner.AddActivity: day %d: %w", dayIndex, domain.ErrNotFound)
	}
	if strings.TrimSpace(draft.Name) == "" {
		return domain.ActivityEntry{}, fmt.Errorf("itinerary.Planner.AddActivity: %w: name is required", domain.ErrValidation)
	}

	activity, err := p.backend.CreateActivity(ctx, draft.Activity())
	if err != nil {
		return domain.ActivityEntry{}, fmt.Errorf("itinerary.Planner.AddActivity: create activity: %w: %w", domain.ErrSaveFailed, err)
	}

	activityID := activity.ID
	entry, err := p.backend.CreateEntry(ctx, domain.ItineraryEntry{
		TripID:     p.trip.ID,
		CityID:     cityID,
		Date:       day.Date,
		ActivityID: &activityID,
		Notes:      draft.Notes,
		OrderIndex: len(day.Activities),
	})
	if err != nil {
		return domain.ActivityEntry{}, fmt.Errorf("itinerary.Planner.AddActivity: create entry: %w: %w", domain.ErrSaveFailed, err)
	}
	if entry.Activity == nil {
		entry.Activity = &activity
	}

	added, err := toActivityEntry(entry)
	if err != nil {
		return domain.ActivityEntry{}, fmt.Errorf("itinerary.Planner.AddActivity: %w", err)
	}

	local := entry
	local.OrderIndex = p.nextOrderIndex(day.Date)
	p.entries = append(p.entries, local)
	p.reproject()
	return added, nil
}

// RemoveActivity deletes the itinerary entry with entryID and drops it from
// its day. entryID is the ItineraryEntry ID (ActivityEntry.ID), not a catalog
// activity ID.
//
// Returns domain.ErrNotFound without calling the backend if the entry is not
// part of this trip. Backend failures are joined with domain.ErrSaveFailed
// and leave the entry in place.
func (p *Planner) RemoveActivity(ctx context.Context, entryID uuid.UUID) error {
	idx := slices.IndexFunc(p.entries, func(e domain.ItineraryEntry) bool { return e.ID == entryID })
	if idx < 0 {
		return fmt.Errorf("itinerary.Planner.RemoveActivity: entry %s: %w", entryID, domain.ErrNotFound)
	}

	if err := p.backend.DeleteEntry(ctx, entryID); err != nil {
		return fmt.Errorf("itinerary.Planner.RemoveActivity: %w: %w", domain.ErrSaveFailed, err)
	}

	p.entries = slices.Delete(p.entries, idx, idx+1)
	p.reproject()
	return nil
}

// ReorderActivities puts the day's activities in the order given by ids.
// ids must be a permutation of the day's current activity IDs, otherwise
// domain.ErrValidation is returned and nothing changes.
//
// The new order lives only in this Planner: it is not sent to the backend
// and is lost on the next Load.
func (p *Planner) ReorderActivities(dayIndex int, ids []uuid.UUID) error {
	day, ok := p.day(dayIndex)
	if !ok {
		return fmt.Errorf("itinerary.Planner.ReorderActivities: day %d: %w", dayIndex, domain.ErrNotFound)
	}
	if !isPermutation(day.Activities, ids) {
		return fmt.Errorf("itinerary.Planner.ReorderActivities: %w: ids must be a permutation of day %d's activities", domain.ErrValidation, dayIndex)
	}

	pos := make(map[uuid.UUID]int, len(ids))
	for i, id := range ids {
		pos[id] = i
	}
	for i := range p.entries {
		if n, ok := pos[p.entries[i].ID]; ok {
			p.entries[i].OrderIndex = n
		}
	}
	p.reproject()
	return nil
}

// nextOrderIndex is one past the highest order index of the entries on date.
func (p *Planner) nextOrderIndex(date time.Time) int {
	next := 0
	for _, e := range p.entries {
		if domain.SameDate(e.Date, date) && e.OrderIndex >= next {
			next = e.OrderIndex + 1
		}
	}
	return next
}

func (p *Planner) day(index int) (domain.Day, bool) {
	if index < 1 || index > len(p.days) {
		return domain.Day{}, false
	}
	return p.days[index-1], true
}

func (p *Planner) reproject() {
	p.days = Project(p.trip, p.entries, func(err error) {
		p.log.Warn("dropping itinerary entry from projection", "trip_id", p.trip.ID, "error", err)
	})
}

// isPermutation reports whether ids holds exactly the IDs of activities, each once.
func isPermutation(activities []domain.ActivityEntry, ids []uuid.UUID) bool {
	if len(activities) != len(ids) {
		return false
	}
	want := make(map[uuid.UUID]int, len(activities))
	for _, a := range activities {
		want[a.ID]++
	}
	for _, id := range ids {
		if want[id] == 0 {
			return false
		}
		want[id]--
	}
	return true
}

func copyDay(d domain.Day) domain.Day {
	d.Activities = slices.Clone(d.Activities)
	if d.Activities == nil {
		d.Activities = []domain.ActivityEntry{}
	}
	return d
}
