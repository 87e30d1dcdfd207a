package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ActivityType classifies a catalog activity.
type ActivityType string

const (
	ActivityTypeAttraction ActivityType = "attraction"
	ActivityTypeRestaurant ActivityType = "restaurant"
	ActivityTypeHotel      ActivityType = "hotel"
	ActivityTypeTransport  ActivityType = "transport"
	ActivityTypeActivity   ActivityType = "activity"
)

// NormalizeActivityType maps free-form input onto a known ActivityType.
// Matching is case-insensitive; anything unrecognised becomes ActivityTypeActivity.
func NormalizeActivityType(s string) ActivityType {
	switch t := ActivityType(strings.ToLower(strings.TrimSpace(s))); t {
	case ActivityTypeAttraction, ActivityTypeRestaurant, ActivityTypeHotel,
		ActivityTypeTransport, ActivityTypeActivity:
		return t
	default:
		return ActivityTypeActivity
	}
}

// Activity is a catalog definition referenced by itinerary entries.
// Duration is expressed in whole minutes.
type Activity struct {
	ID          uuid.UUID
	Name        string
	Type        ActivityType
	Cost        float64
	Duration    int
	Description string
	CreatedAt   time.Time
}

// ActivityDraft carries the user-entered fields for adding an activity to a day.
// Name, Type, Cost, Duration and Description become the catalog Activity;
// Notes is stored on the itinerary entry that links it.
type ActivityDraft struct {
	Name        string
	Type        string
	Cost        float64
	Duration    int
	Description string
	Notes       string
}

// Activity converts the draft into an unsaved catalog Activity.
func (d ActivityDraft) Activity() Activity {
	return Activity{
		Name:        strings.TrimSpace(d.Name),
		Type:        NormalizeActivityType(d.Type),
		Cost:        d.Cost,
		Duration:    d.Duration,
		Description: d.Description,
	}
}
