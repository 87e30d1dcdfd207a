// Package api holds the JSON wire types of the /api HTTP contract described
// in openapi/openapi.yaml. The server handlers encode them and client.Client
// decodes them, so both sides agree on field names and date formats.
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// ErrorDetail is the body of every non-2xx JSON response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps ErrorDetail as {"error":{...}}.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// Error codes.
const (
	CodeNotFound     = "not_found"
	CodeValidation   = "validation_error"
	CodeInternal     = "internal_error"
	CodeTooLarge     = "request_too_large"
	CodeRateLimited  = "rate_limited"
	CodeBadParameter = "invalid_parameter"
)

// Pagination describes one page of a list response.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// Date is a calendar date on the wire. It encodes as YYYY-MM-DD and also
// decodes RFC 3339 timestamps, which older entries carry, keeping only the
// calendar date in the timestamp's own offset.
type Date struct {
	openapi_types.Date
}

// NewDate wraps the calendar date of t.
func NewDate(t time.Time) Date {
	return Date{openapi_types.Date{Time: domain.DateOf(t)}}
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date: %w", err)
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return fmt.Errorf("date %q: want YYYY-MM-DD or an RFC 3339 timestamp", s)
	}
	d.Time = domain.DateOf(t)
	return nil
}

// Trip is the wire form of domain.Trip.
type Trip struct {
	Id          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Destination string    `json:"destination"`
	StartDate   Date      `json:"startDate"`
	EndDate     Date      `json:"endDate"`
	Notes       *string   `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TripRequest is the body of POST /trips and PUT /trips/{tripId}.
type TripRequest struct {
	Title       string  `json:"title"`
	Destination string  `json:"destination"`
	StartDate   *Date   `json:"startDate"`
	EndDate     *Date   `json:"endDate"`
	Notes       *string `json:"notes,omitempty"`
}

// TripList is the body of GET /trips.
type TripList struct {
	Data       []Trip     `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// City is the wire form of domain.City.
type City struct {
	Id        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Country   string     `json:"country,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// CityRequest is the body of POST /cities.
type CityRequest struct {
	Name    string `json:"name"`
	Country string `json:"country"`
}

// Activity is the wire form of domain.Activity.
type Activity struct {
	Id          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Type        string     `json:"type"`
	Cost        float64    `json:"cost"`
	Duration    int        `json:"duration"`
	Description string     `json:"description"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
}

// ActivityRequest is the body of POST /activities.
type ActivityRequest struct {
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Cost        float64 `json:"cost"`
	Duration    int     `json:"duration"`
	Description string  `json:"description"`
}

// ActivityList is the body of GET /activities.
type ActivityList struct {
	Data       []Activity `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// CityRef is the cityId field of an entry. The server always sends the
// populated {id,name} object; a bare ID string is accepted when decoding.
type CityRef struct {
	City
}

// UnmarshalJSON accepts either a City object or a bare UUID string.
func (r *CityRef) UnmarshalJSON(b []byte) error {
	if id, ok, err := bareID(b); ok || err != nil {
		r.City = City{Id: id}
		return err
	}
	return json.Unmarshal(b, &r.City)
}

// ActivityRef is the activityId field of an entry. The server sends the
// populated activity, or null for entries without a catalog activity; a bare
// ID string is accepted when decoding.
type ActivityRef struct {
	Activity
	// Bare is set when only the ID was sent.
	Bare bool `json:"-"`
}

// UnmarshalJSON accepts either an Activity object or a bare UUID string.
func (r *ActivityRef) UnmarshalJSON(b []byte) error {
	if id, ok, err := bareID(b); ok || err != nil {
		r.Activity = Activity{Id: id}
		r.Bare = true
		return err
	}
	return json.Unmarshal(b, &r.Activity)
}

func bareID(b []byte) (uuid.UUID, bool, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || b[0] != '"' {
		return uuid.Nil, false, nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return uuid.Nil, true, err
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, true, fmt.Errorf("invalid id %q: %w", s, err)
	}
	return id, true, nil
}

// ItineraryEntry is the populated wire form of domain.ItineraryEntry.
type ItineraryEntry struct {
	Id         uuid.UUID    `json:"id"`
	TripId     uuid.UUID    `json:"tripId"`
	CityId     *CityRef     `json:"cityId"`
	Date       Date         `json:"date"`
	ActivityId *ActivityRef `json:"activityId"`
	Notes      string       `json:"notes"`
	OrderIndex *int         `json:"orderIndex,omitempty"`
	CreatedAt  *time.Time   `json:"createdAt,omitempty"`
}

// ItineraryEntryRequest is the body of POST /itinerary.
type ItineraryEntryRequest struct {
	TripId     uuid.UUID  `json:"tripId"`
	CityId     *uuid.UUID `json:"cityId"`
	Date       *Date      `json:"date"`
	ActivityId *uuid.UUID `json:"activityId,omitempty"`
	Notes      string     `json:"notes,omitempty"`
	OrderIndex int        `json:"orderIndex"`
}

// ActivityEntry is one scheduled activity inside a Day.
type ActivityEntry struct {
	Id       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	Type     string    `json:"type"`
	Time     string    `json:"time"`
	Location string    `json:"location"`
	Duration string    `json:"duration"`
	Notes    string    `json:"notes"`
	Cost     float64   `json:"cost"`
}

// Day is one calendar day of a trip with its scheduled activities.
type Day struct {
	Index      int             `json:"index"`
	Date       Date            `json:"date"`
	State      string          `json:"state"`
	Activities []ActivityEntry `json:"activities"`
}

// TripDays is the body of GET /trips/{tripId}/days.
type TripDays struct {
	Trip Trip  `json:"trip"`
	Days []Day `json:"days"`
}

// ExportRow is one row of GET /trips/{tripId}/export.
type ExportRow struct {
	TripId      string  `json:"tripId"`
	TripTitle   string  `json:"tripTitle"`
	Destination string  `json:"destination"`
	DayIndex    int     `json:"dayIndex"`
	Date        string  `json:"date"`
	EntryId     string  `json:"entryId,omitempty"`
	Title       string  `json:"title,omitempty"`
	Type        string  `json:"type,omitempty"`
	Time        string  `json:"time,omitempty"`
	Location    string  `json:"location,omitempty"`
	Duration    string  `json:"duration,omitempty"`
	Cost        float64 `json:"cost"`
	Notes       string  `json:"notes,omitempty"`
}

// Health is the body of GET /healthz.
type Health struct {
	Status string `json:"status"`
}
