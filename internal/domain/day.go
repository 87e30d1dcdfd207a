package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultActivityTime is shown for activities whose source carries no time of day.
// The catalog has no time-of-day field, so every linked activity displays it.
const DefaultActivityTime = "12:00"

// UnknownLocation is shown when an entry has no resolvable city.
const UnknownLocation = "Unknown Location"

// DayState describes whether a day has anything scheduled.
type DayState string

const (
	DayEmpty     DayState = "empty"
	DayPopulated DayState = "populated"
)

// Day is one calendar date of a trip with its ordered activities.
// Days are derived from a trip and its entries and are never persisted.
type Day struct {
	// Index is the 1-based position of the day within the trip.
	Index      int
	Date       time.Time
	Activities []ActivityEntry
}

// State reports DayEmpty or DayPopulated.
func (d Day) State() DayState {
	if len(d.Activities) == 0 {
		return DayEmpty
	}
	return DayPopulated
}

// ActivityEntry is the display model for one scheduled activity.
// ID is the owning ItineraryEntry's ID, never the catalog activity ID;
// it is the key used for removal and reordering.
type ActivityEntry struct {
	ID       uuid.UUID
	Title    string
	Type     ActivityType
	Time     string
	Location string
	Duration string
	Notes    string
	Cost     float64
}
