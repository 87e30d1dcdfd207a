// Package domain contains the core data types for the trip planner.
// This package has no dependencies beyond uuid and is imported by every other
// internal package (itinerary, repo, service, handler, client).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip is the top-level aggregate: a dated journey to a destination.
// StartDate and EndDate are calendar dates; the range is inclusive.
type Trip struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Destination string    `json:"destination"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DateOf truncates t to its calendar date, expressed as midnight UTC.
// The calendar date is read in t's own location, so a timestamp carrying an
// offset keeps the day it was written for.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDate reports whether a and b fall on the same calendar date.
func SameDate(a, b time.Time) bool {
	return DateOf(a).Equal(DateOf(b))
}

// Covers reports whether date falls inside the trip's inclusive range.
func (t Trip) Covers(date time.Time) bool {
	d := DateOf(date)
	return !d.Before(DateOf(t.StartDate)) && !d.After(DateOf(t.EndDate))
}
