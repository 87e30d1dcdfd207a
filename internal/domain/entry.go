package domain

import (
	"time"

	"github.com/google/uuid"
)

// ItineraryEntry is a persisted placement of one activity on one trip date.
//
// Reads from the store populate City and Activity when the referenced rows
// exist. Entries written before the catalog existed have no ActivityID and
// carry their display fields as a JSON object in Notes.
type ItineraryEntry struct {
	ID         uuid.UUID
	TripID     uuid.UUID
	CityID     uuid.UUID
	Date       time.Time
	ActivityID *uuid.UUID
	Notes      string
	OrderIndex int
	CreatedAt  time.Time

	City     *City
	Activity *Activity
}

// EntrySource is the resolved content of an entry: either LinkedSource or LegacySource.
type EntrySource interface {
	isEntrySource()
}

// LinkedSource is an entry whose display fields come from a catalog activity.
type LinkedSource struct {
	Activity Activity
}

// LegacySource is an entry whose display fields are serialized in its notes.
type LegacySource struct {
	Raw string
}

func (LinkedSource) isEntrySource() {}
func (LegacySource) isEntrySource() {}

// Source resolves which representation the entry uses.
// A populated Activity wins; a bare ActivityID without the joined row is
// treated as legacy because there is nothing to display from the catalog.
func (e ItineraryEntry) Source() EntrySource {
	if e.Activity != nil {
		return LinkedSource{Activity: *e.Activity}
	}
	return LegacySource{Raw: e.Notes}
}
