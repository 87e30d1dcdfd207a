package itinerary

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// Reporter receives per-entry projection problems. It is called once for each
// entry that had to be dropped; the projection itself always completes.
type Reporter func(err error)

// Merge overlays entries onto days and returns new Days with their activities
// populated. Entries are matched to days by calendar date, then stably sorted
// by OrderIndex so ties keep their input order.
//
// Neither days nor entries is modified. Entries dated outside every day are
// ignored. Legacy entries whose notes cannot be parsed are skipped and passed
// to report, which may be nil.
func Merge(days []domain.Day, entries []domain.ItineraryEntry, report Reporter) []domain.Day {
	out := make([]domain.Day, len(days))
	for i, day := range days {
		var selected []domain.ItineraryEntry
		for _, e := range entries {
			if domain.SameDate(e.Date, day.Date) {
				selected = append(selected, e)
			}
		}
		slices.SortStableFunc(selected, func(a, b domain.ItineraryEntry) int {
			return cmp.Compare(a.OrderIndex, b.OrderIndex)
		})

		activities := make([]domain.ActivityEntry, 0, len(selected))
		for _, e := range selected {
			a, err := toActivityEntry(e)
			if err != nil {
				if report != nil {
					report(err)
				}
				continue
			}
			activities = append(activities, a)
		}

		out[i] = domain.Day{Index: day.Index, Date: day.Date, Activities: activities}
	}
	return out
}

// Project builds the full day-by-day view of a trip.
func Project(trip domain.Trip, entries []domain.ItineraryEntry, report Reporter) []domain.Day {
	return Merge(Skeleton(trip.StartDate, trip.EndDate), entries, report)
}

// toActivityEntry maps a persisted entry to its display model.
func toActivityEntry(e domain.ItineraryEntry) (domain.ActivityEntry, error) {
	switch src := e.Source().(type) {
	case domain.LinkedSource:
		a := domain.ActivityEntry{
			ID:       e.ID,
			Title:    src.Activity.Name,
			Type:     domain.NormalizeActivityType(string(src.Activity.Type)),
			Time:     domain.DefaultActivityTime,
			Location: cityName(e),
			Duration: strconv.Itoa(src.Activity.Duration) + " minutes",
			Notes:    e.Notes,
			Cost:     src.Activity.Cost,
		}
		if a.Notes == "" {
			a.Notes = src.Activity.Description
		}
		return a, nil

	case domain.LegacySource:
		a, err := parseLegacy(src.Raw)
		if err != nil {
			return domain.ActivityEntry{}, fmt.Errorf("entry %s: %w: %w", e.ID, domain.ErrMalformedEntry, err)
		}
		a.ID = e.ID
		if a.Location == "" {
			a.Location = cityName(e)
		}
		return a, nil

	default:
		return domain.ActivityEntry{}, fmt.Errorf("entry %s: %w: unknown source %T", e.ID, domain.ErrMalformedEntry, src)
	}
}

// cityName returns the populated city's name or the unknown-location placeholder.
func cityName(e domain.ItineraryEntry) string {
	if e.City != nil && e.City.Name != "" {
		return e.City.Name
	}
	return domain.UnknownLocation
}
