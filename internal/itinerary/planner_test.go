package itinerary_test

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/itinerary"
)

// ---- fake backend ----------------------------------------------------------

// fakeBackend is an in-memory itinerary.Backend. Set a fail* field to make
// the matching call return that error.
type fakeBackend struct {
	trip       domain.Trip
	entries    []domain.ItineraryEntry
	activities map[uuid.UUID]domain.Activity
	cities     map[uuid.UUID]domain.City

	failGetTrip        error
	failListEntries    error
	failCreateActivity error
	failCreateEntry    error
	failDeleteEntry    error

	deleteCalls int
}

func newFakeBackend(trip domain.Trip) *fakeBackend {
	return &fakeBackend{
		trip:       trip,
		activities: map[uuid.UUID]domain.Activity{},
		cities:     map[uuid.UUID]domain.City{},
	}
}

func (f *fakeBackend) GetTrip(_ context.Context, id uuid.UUID) (domain.Trip, error) {
	if f.failGetTrip != nil {
		return domain.Trip{}, f.failGetTrip
	}
	if id != f.trip.ID {
		return domain.Trip{}, domain.ErrNotFound
	}
	return f.trip, nil
}

func (f *fakeBackend) ListEntries(_ context.Context, _ uuid.UUID) ([]domain.ItineraryEntry, error) {
	if f.failListEntries != nil {
		return nil, f.failListEntries
	}
	return append([]domain.ItineraryEntry(nil), f.entries...), nil
}

func (f *fakeBackend) CreateActivity(_ context.Context, a domain.Activity) (domain.Activity, error) {
	if f.failCreateActivity != nil {
		return domain.Activity{}, f.failCreateActivity
	}
	a.ID = uuid.New()
	f.activities[a.ID] = a
	return a, nil
}

func (f *fakeBackend) CreateEntry(_ context.Context, e domain.ItineraryEntry) (domain.ItineraryEntry, error) {
	if f.failCreateEntry != nil {
		return domain.ItineraryEntry{}, f.failCreateEntry
	}
	e.ID = uuid.New()
	if e.ActivityID != nil {
		a := f.activities[*e.ActivityID]
		e.Activity = &a
	}
	if c, ok := f.cities[e.CityID]; ok {
		e.City = &c
	}
	f.entries = append(f.entries, e)
	return e, nil
}

func (f *fakeBackend) DeleteEntry(_ context.Context, id uuid.UUID) error {
	f.deleteCalls++
	if f.failDeleteEntry != nil {
		return f.failDeleteEntry
	}
	for i, e := range f.entries {
		if e.ID == id {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

var _ itinerary.Backend = (*fakeBackend)(nil)

// ---- helpers ---------------------------------------------------------------

func threeDayTrip() domain.Trip {
	return domain.Trip{
		ID:          uuid.New(),
		Title:       "Paris",
		Destination: "France",
		StartDate:   date(2025, 6, 1),
		EndDate:     date(2025, 6, 3),
	}
}

func loadedPlanner(t *testing.T, b *fakeBackend) *itinerary.Planner {
	t.Helper()
	p := itinerary.NewPlanner(b, b.trip.ID, nil)
	require.NoError(t, p.Load(context.Background()))
	return p
}

func draft(name string) domain.ActivityDraft {
	return domain.ActivityDraft{Name: name, Type: "restaurant", Cost: 30, Duration: 90, Description: "Dinner"}
}

func titles(d domain.Day) []string {
	out := make([]string, len(d.Activities))
	for i, a := range d.Activities {
		out[i] = a.Title
	}
	return out
}

// ---- Load ------------------------------------------------------------------

func TestPlanner_Load(t *testing.T) {
	b := newFakeBackend(threeDayTrip())
	b.entries = []domain.ItineraryEntry{linkedEntry(date(2025, 6, 2), 0, "Museum")}

	p := loadedPlanner(t, b)

	days := p.Days()
	require.Len(t, days, 3)
	assert.Empty(t, days[0].Activities)
	require.Len(t, days[1].Activities, 1)
	assert.Equal(t, "Museum", days[1].Activities[0].Title)
	assert.Equal(t, b.trip, p.Trip())
}

func TestPlanner_Load_FailureKeepsPriorState(t *testing.T) {
	b := newFakeBackend(threeDayTrip())
	b.entries = []domain.ItineraryEntry{linkedEntry(date(2025, 6, 1), 0, "Museum")}
	p := loadedPlanner(t, b)
	before := p.Days()

	b.failListEntries = fmt.Errorf("%w: connection refused", domain.ErrBackendUnavailable)
	err := p.Load(context.Background())

	assert.ErrorIs(t, err, domain.ErrBackendUnavailable)
	assert.Equal(t, before, p.Days())
}

func TestPlanner_Load_TripNotFound(t *testing.T) {
	b := newFakeBackend(threeDayTrip())
	p := itinerary.NewPlanner(b, uuid.New(), nil)

	err := p.Load(context.Background())

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, p.Days())
}

// ---- AddActivity -----------------------------------------------------------

func TestPlanner_AddActivity(t *testing.T) {
	b := newFakeBackend(threeDayTrip())
	cityID := uuid.New()
	b.cities[cityID] = domain.City{ID: cityID, Name: "Paris"}
	p := loadedPlanner(t, b)

	first, err := p.AddActivity(context.Background(), 2, cityID, draft("Bistro"))
	require.NoError(t, err)
	second, err := p.AddActivity(context.Background(), 2, cityID, draft("Bar"))
	require.NoError(t, err)

	assert.Equal(t, "Bistro", first.Title)
	assert.Equal(t, domain.ActivityTypeRestaurant, first.Type)
	assert.Equal(t, "Paris", first.Location)
	assert.Equal(t, "90 minutes", first.Duration)

	day, err := p.Day(2)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{first.ID, second.ID}, ids(day.Activities))
	assert.Equal(t, domain.DayPopulated, day.State())

	require.Len(t, b.entries, 2)
	assert.Equal(t, 0, b.entries[0].OrderIndex)
	assert.Equal(t, 1, b.entries[1].OrderIndex)
	assert.True(t, b.entries[1].Date.Equal(date(2025, 6, 2)))
	assert.Equal(t, b.trip.ID, b.entries[1].TripID)
	assert.Equal(t, cityID, b.entries[1].CityID)
}

func TestPlanner_AddActivity_MissingCity(t *testing.T) {
	b := newFakeBackend(threeDayTrip())
	p := loadedPlanner(t, b)

	_, err := p.AddActivity(context.Background(), 1, uuid.Nil, draft("Bistro"))

	assert.ErrorIs(t, err, domain.ErrMissingCity)
	assert.Empty(t, b.activities, "no backend call expected")
}

func TestPlanner_AddActivity_UnknownDay(t *testing.T) {
	p := loadedPlanner(t, newFakeBackend(threeDayTrip()))

	_, err := p.AddActivity(context.Background(), 4, uuid.New(), draft("Bistro"))

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPlanner_AddActivity_NameRequired(t *testing.T) {
	p := loadedPlanner(t, newFakeBackend(threeDayTrip()))

	_, err := p.AddActivity(context.Background(), 1, uuid.New(), draft("  "))

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestPlanner_AddActivity_BackendFailureLeavesStateUntouched(t *testing.T) {
	cause := fmt.Errorf("%w: 503", domain.ErrBackendUnavailable)

	tests := []struct {
		name  string
		setup func(b *fakeBackend)
	}{
		{"create activity fails", func(b *fakeBackend) { b.failCreateActivity = cause }},
		{"create entry fails", func(b *fakeBackend) { b.failCreateEntry = cause }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := newFakeBackend(threeDayTrip())
			p := loadedPlanner(t, b)
			before := p.Days()
			tc.setup(b)

			_, err := p.AddActivity(context.Background(), 1, uuid.New(), draft("Bistro"))

			assert.ErrorIs(t, err, domain.ErrSaveFailed)
			assert.ErrorIs(t, err, domain.ErrBackendUnavailable)
			if diff := cmp.Diff(before, p.Days()); diff != "" {
				t.Errorf("projection changed after failed add (-before +after):\n%s", diff)
			}
		})
	}
}

// ---- RemoveActivity --------------------------------------------------------

func TestPlanner_AddRemoveRoundTrip(t *testing.T) {
	b := newFakeBackend(threeDayTrip())
	b.entries = []domain.ItineraryEntry{
		linkedEntry(date(2025, 6, 1), 0, "A"),
		linkedEntry(date(2025, 6, 1), 1, "B"),
	}
	p := loadedPlanner(t, b)
	before := p.Days()

	added, err := p.AddActivity(context.Background(), 1, uuid.New(), draft("C"))
	require.NoError(t, err)
	require.NoError(t, p.RemoveActivity(context.Background(), added.ID))

	if diff := cmp.Diff(before, p.Days()); diff != "" {
		t.Errorf("add+remove did not restore the day (-before +after):\n%s", diff)
	}
}

func TestPlanner_AddActivity_AppendsAfterRemovals(t *testing.T) {
	b := newFakeBackend(threeDayTrip())
	p := loadedPlanner(t, b)
	ctx := context.Background()
	cityID := uuid.New()

	byName := map[string]uuid.UUID{}
	for _, name := range []string{"A", "B", "C", "D"} {
		a, err := p.AddActivity(ctx, 1, cityID, draft(name))
		require.NoError(t, err)
		byName[name] = a.ID
	}
	require.NoError(t, p.RemoveActivity(ctx, byName["A"]))
	require.NoError(t, p.RemoveActivity(ctx, byName["B"]))

	added, err := p.AddActivity(ctx, 1, cityID, draft("E"))
	require.NoError(t, err)

	day, err := p.Day(1)
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "D", "E"}, titles(day))

	// The saved entry still records the day's size at the time of the add.
	saved := b.entries[len(b.entries)-1]
	require.Equal(t, added.ID, saved.ID)
	assert.Equal(t, 2, saved.OrderIndex)
}

func TestPlanner_RemoveActivity_LastActivityEmptiesDay(t *testing.T) {
	b := newFakeBackend(threeDayTrip())
	only := linkedEntry(date(2025, 6, 3), 0, "A")
	b.entries = []domain.ItineraryEntry{only}
	p := loadedPlanner(t, b)

	require.NoError(t, p.RemoveActivity(context.Background(), only.ID))

	day, err := p.Day(3)
	require.NoError(t, err)
	assert.Equal(t, domain.DayEmpty, day.State())
	assert.Empty(t, b.entries)
}

func TestPlanner_RemoveActivity_CatalogIDIsNotAnEntryID(t *testing.T) {
	b := newFakeBackend(threeDayTrip())
	e := linkedEntry(date(2025, 6, 1), 0, "A")
	b.entries = []domain.ItineraryEntry{e}
	p := loadedPlanner(t, b)

	err := p.RemoveActivity(context.Background(), *e.ActivityID)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, b.deleteCalls)
}

func TestPlanner_RemoveActivity_BackendFailureKeepsEntry(t *testing.T) {
	b := newFakeBackend(threeDayTrip())
	e := linkedEntry(date(2025, 6, 1), 0, "A")
	b.entries = []domain.ItineraryEntry{e}
	p := loadedPlanner(t, b)
	b.failDeleteEntry = errors.New("boom")

	err := p.RemoveActivity(context.Background(), e.ID)

	assert.ErrorIs(t, err, domain.ErrSaveFailed)
	day, _ := p.Day(1)
	assert.Equal(t, []uuid.UUID{e.ID}, ids(day.Activities))
}

// ---- ReorderActivities -----------------------------------------------------

func TestPlanner_Reorder_PreservesSet(t *testing.T) {
	b := newFakeBackend(threeDayTrip())
	for i, name := range []string{"A", "B", "C", "D", "E"} {
		b.entries = append(b.entries, linkedEntry(date(2025, 6, 2), i, name))
	}
	p := loadedPlanner(t, b)
	day, _ := p.Day(2)
	current := ids(day.Activities)

	rng := rand.New(rand.NewPCG(1, 2))
	for range 20 {
		perm := append([]uuid.UUID(nil), current...)
		rng.Shuffle(len(perm), func(i, j int) { perm[i], perm[j] = perm[j], perm[i] })

		require.NoError(t, p.ReorderActivities(2, perm))

		got, _ := p.Day(2)
		assert.Equal(t, perm, ids(got.Activities))
		assert.ElementsMatch(t, current, ids(got.Activities))
	}
	assert.Zero(t, b.deleteCalls)
}

func TestPlanner_Reorder_IsLocalOnly(t *testing.T) {
	b := newFakeBackend(threeDayTrip())
	a := linkedEntry(date(2025, 6, 1), 0, "A")
	c := linkedEntry(date(2025, 6, 1), 1, "C")
	b.entries = []domain.ItineraryEntry{a, c}
	p := loadedPlanner(t, b)

	require.NoError(t, p.ReorderActivities(1, []uuid.UUID{c.ID, a.ID}))
	assert.Equal(t, 0, b.entries[0].OrderIndex, "backend order must be untouched")

	require.NoError(t, p.Load(context.Background()))
	day, _ := p.Day(1)
	assert.Equal(t, []uuid.UUID{a.ID, c.ID}, ids(day.Activities), "reload restores backend order")
}

func TestPlanner_Reorder_AddAfterReorderAppends(t *testing.T) {
	b := newFakeBackend(threeDayTrip())
	a := linkedEntry(date(2025, 6, 1), 0, "A")
	c := linkedEntry(date(2025, 6, 1), 1, "C")
	b.entries = []domain.ItineraryEntry{a, c}
	p := loadedPlanner(t, b)
	require.NoError(t, p.ReorderActivities(1, []uuid.UUID{c.ID, a.ID}))

	added, err := p.AddActivity(context.Background(), 1, uuid.New(), draft("D"))
	require.NoError(t, err)

	day, _ := p.Day(1)
	assert.Equal(t, []uuid.UUID{c.ID, a.ID, added.ID}, ids(day.Activities))
}

func TestPlanner_Reorder_RejectsNonPermutation(t *testing.T) {
	b := newFakeBackend(threeDayTrip())
	a := linkedEntry(date(2025, 6, 1), 0, "A")
	c := linkedEntry(date(2025, 6, 1), 1, "C")
	b.entries = []domain.ItineraryEntry{a, c}
	p := loadedPlanner(t, b)

	for _, bad := range [][]uuid.UUID{
		{a.ID},
		{a.ID, a.ID},
		{a.ID, uuid.New()},
		{a.ID, c.ID, uuid.New()},
	} {
		err := p.ReorderActivities(1, bad)
		assert.ErrorIs(t, err, domain.ErrValidation)
	}

	day, _ := p.Day(1)
	assert.Equal(t, []uuid.UUID{a.ID, c.ID}, ids(day.Activities))
}

func TestPlanner_DaysReturnsCopies(t *testing.T) {
	b := newFakeBackend(threeDayTrip())
	b.entries = []domain.ItineraryEntry{linkedEntry(date(2025, 6, 1), 0, "A")}
	p := loadedPlanner(t, b)

	days := p.Days()
	days[0].Activities[0].Title = "changed"

	again, _ := p.Day(1)
	assert.Equal(t, "A", again.Activities[0].Title)
}
