// Package itinerary derives a trip's day-by-day view from its date range and
// persisted itinerary entries, and runs the mutations that edit it.
//
// Skeleton, Merge and Project are pure and shared by every surface that
// displays an itinerary: the HTTP API, the CLI and Planner sessions.
package itinerary

import (
	"time"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// Skeleton returns one empty Day per calendar date from start to end inclusive,
// in ascending order with 1-based indexes. Time-of-day on either bound is
// ignored. If start falls after end the result is empty, not an error.
func Skeleton(start, end time.Time) []domain.Day {
	first, last := domain.DateOf(start), domain.DateOf(end)
	if first.After(last) {
		return []domain.Day{}
	}

	days := make([]domain.Day, 0, int(last.Sub(first).Hours()/24)+1)
	for cursor, i := first, 1; !cursor.After(last); cursor, i = cursor.AddDate(0, 0, 1), i+1 {
		days = append(days, domain.Day{
			Index:      i,
			Date:       cursor,
			Activities: []domain.ActivityEntry{},
		})
	}
	return days
}
