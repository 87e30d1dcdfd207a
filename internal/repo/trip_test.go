package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/repo"
	"github.com/pkordes/trip-planner/backend/testutil"
)

// newTestRepos returns every repo backed by one test transaction, which is
// rolled back when the test finishes.
func newTestRepos(t *testing.T) (repo.TripRepo, repo.CityRepo, repo.ActivityRepo, repo.EntryRepo) {
	t.Helper()
	tx := testutil.NewTx(t)
	return repo.NewTripRepo(tx), repo.NewCityRepo(tx), repo.NewActivityRepo(tx), repo.NewEntryRepo(tx)
}

// tripFixture returns a domain.Trip with sensible defaults for use in tests.
// Callers can override individual fields after calling this function.
func tripFixture() domain.Trip {
	return domain.Trip{
		Title:       "Summer in Paris",
		Destination: "France",
		StartDate:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
		Notes:       "Test notes",
	}
}

func TestTripRepo_Create(t *testing.T) {
	r, _, _, _ := newTestRepos(t)
	ctx := context.Background()

	input := tripFixture()
	got, err := r.Create(ctx, input)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.UUID{}, got.ID, "ID should be DB-generated UUID")
	assert.Equal(t, input.Title, got.Title)
	assert.Equal(t, input.Destination, got.Destination)
	assert.True(t, got.StartDate.Equal(input.StartDate), "StartDate mismatch")
	assert.True(t, got.EndDate.Equal(input.EndDate), "EndDate mismatch")
	assert.Equal(t, input.Notes, got.Notes)
	assert.False(t, got.CreatedAt.IsZero(), "CreatedAt should be set by DB")
}

func TestTripRepo_Create_TruncatesTimeOfDay(t *testing.T) {
	r, _, _, _ := newTestRepos(t)
	ctx := context.Background()

	input := tripFixture()
	input.StartDate = time.Date(2025, 6, 1, 22, 15, 0, 0, time.UTC)

	got, err := r.Create(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, "2025-06-01", got.StartDate.Format(time.DateOnly))
}

func TestTripRepo_Create_RejectsInvertedRange(t *testing.T) {
	r, _, _, _ := newTestRepos(t)

	input := tripFixture()
	input.StartDate, input.EndDate = input.EndDate, input.StartDate

	_, err := r.Create(context.Background(), input)

	assert.Error(t, err, "trips_date_range check constraint should reject")
}

func TestTripRepo_GetByID_NotFound(t *testing.T) {
	r, _, _, _ := newTestRepos(t)

	_, err := r.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripRepo_ListPaged(t *testing.T) {
	r, _, _, _ := newTestRepos(t)
	ctx := context.Background()

	first := tripFixture()
	first.Title = "First Trip"
	second := tripFixture()
	second.Title = "Second Trip"
	second.StartDate = first.StartDate.AddDate(0, 1, 0)
	second.EndDate = first.EndDate.AddDate(0, 1, 0)

	_, err := r.Create(ctx, first)
	require.NoError(t, err)
	_, err = r.Create(ctx, second)
	require.NoError(t, err)

	page, total, err := r.ListPaged(ctx, domain.PaginationParams{Page: 1, Limit: 1})

	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.GreaterOrEqual(t, total, int64(2))

	_, totalBeyond, err := r.ListPaged(ctx, domain.PaginationParams{Page: 10000, Limit: 100})
	require.NoError(t, err)
	assert.Equal(t, total, totalBeyond, "total is reported even past the last page")
}

func TestTripRepo_Update(t *testing.T) {
	r, _, _, _ := newTestRepos(t)
	ctx := context.Background()

	created, err := r.Create(ctx, tripFixture())
	require.NoError(t, err)

	created.Title = "Updated Title"
	created.EndDate = created.EndDate.AddDate(0, 0, 4)

	updated, err := r.Update(ctx, created)

	require.NoError(t, err)
	assert.Equal(t, "Updated Title", updated.Title)
	assert.Equal(t, "2025-06-07", updated.EndDate.Format(time.DateOnly))
}

func TestTripRepo_Update_NotFound(t *testing.T) {
	r, _, _, _ := newTestRepos(t)

	ghost := tripFixture()
	ghost.ID = uuid.New()

	_, err := r.Update(context.Background(), ghost)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripRepo_Delete(t *testing.T) {
	r, _, _, _ := newTestRepos(t)
	ctx := context.Background()

	created, err := r.Create(ctx, tripFixture())
	require.NoError(t, err)

	require.NoError(t, r.Delete(ctx, created.ID))

	_, err = r.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "trip should be gone after delete")
}

func TestTripRepo_Delete_NotFound(t *testing.T) {
	r, _, _, _ := newTestRepos(t)

	err := r.Delete(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
