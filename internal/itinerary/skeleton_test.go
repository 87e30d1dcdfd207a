package itinerary_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/backend/internal/itinerary"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSkeleton_Completeness(t *testing.T) {
	d0 := date(2025, 6, 1)

	for _, n := range []int{0, 1, 2, 14, 60} {
		days := itinerary.Skeleton(d0, d0.AddDate(0, 0, n))

		require.Len(t, days, n+1, "n=%d", n)
		for i, d := range days {
			assert.Equal(t, i+1, d.Index)
			assert.True(t, d.Date.Equal(d0.AddDate(0, 0, i)), "day %d date = %s", i, d.Date)
			assert.Empty(t, d.Activities)
		}
	}
}

func TestSkeleton_EmptyRange(t *testing.T) {
	days := itinerary.Skeleton(date(2025, 6, 3), date(2025, 6, 1))

	assert.NotNil(t, days)
	assert.Empty(t, days)
}

func TestSkeleton_IgnoresTimeOfDay(t *testing.T) {
	start := time.Date(2025, 6, 1, 23, 30, 0, 0, time.UTC)
	end := time.Date(2025, 6, 3, 0, 15, 0, 0, time.UTC)

	days := itinerary.Skeleton(start, end)

	require.Len(t, days, 3)
	assert.Equal(t, "2025-06-01", days[0].Date.Format(time.DateOnly))
	assert.Equal(t, "2025-06-03", days[2].Date.Format(time.DateOnly))
}

func TestSkeleton_CrossesDSTAndMonthBoundaries(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	start := time.Date(2025, 3, 8, 0, 0, 0, 0, loc)
	end := time.Date(2025, 4, 1, 0, 0, 0, 0, loc)

	days := itinerary.Skeleton(start, end)

	require.Len(t, days, 25)
	assert.Equal(t, "2025-03-09", days[1].Date.Format(time.DateOnly))
	assert.Equal(t, "2025-04-01", days[24].Date.Format(time.DateOnly))
}

func TestSkeleton_Deterministic(t *testing.T) {
	a := itinerary.Skeleton(date(2025, 12, 30), date(2026, 1, 2))
	b := itinerary.Skeleton(date(2025, 12, 30), date(2026, 1, 2))

	assert.Equal(t, a, b)
	assert.Len(t, a, 4)
}
