package api

import (
	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// FromTrip converts a domain.Trip to its wire form.
func FromTrip(t domain.Trip) Trip {
	out := Trip{
		Id:          t.ID,
		Title:       t.Title,
		Destination: t.Destination,
		StartDate:   NewDate(t.StartDate),
		EndDate:     NewDate(t.EndDate),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.Notes != "" {
		out.Notes = &t.Notes
	}
	return out
}

// ToTrip converts a wire Trip back to the domain.
func (t Trip) ToTrip() domain.Trip {
	out := domain.Trip{
		ID:          t.Id,
		Title:       t.Title,
		Destination: t.Destination,
		StartDate:   domain.DateOf(t.StartDate.Time),
		EndDate:     domain.DateOf(t.EndDate.Time),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.Notes != nil {
		out.Notes = *t.Notes
	}
	return out
}

func FromCity(c domain.City) City {
	out := City{Id: c.ID, Name: c.Name, Country: c.Country}
	if !c.CreatedAt.IsZero() {
		out.CreatedAt = &c.CreatedAt
	}
	return out
}

func (c City) ToCity() domain.City {
	out := domain.City{ID: c.Id, Name: c.Name, Country: c.Country}
	if c.CreatedAt != nil {
		out.CreatedAt = *c.CreatedAt
	}
	return out
}

func FromActivity(a domain.Activity) Activity {
	out := Activity{
		Id:          a.ID,
		Name:        a.Name,
		Type:        string(a.Type),
		Cost:        a.Cost,
		Duration:    a.Duration,
		Description: a.Description,
	}
	if !a.CreatedAt.IsZero() {
		out.CreatedAt = &a.CreatedAt
	}
	return out
}

func (a Activity) ToActivity() domain.Activity {
	out := domain.Activity{
		ID:          a.Id,
		Name:        a.Name,
		Type:        domain.NormalizeActivityType(a.Type),
		Cost:        a.Cost,
		Duration:    a.Duration,
		Description: a.Description,
	}
	if a.CreatedAt != nil {
		out.CreatedAt = *a.CreatedAt
	}
	return out
}

// FromEntry converts a populated domain entry to its wire form. The city is
// reduced to {id,name}; a missing city still carries the ID.
func FromEntry(e domain.ItineraryEntry) ItineraryEntry {
	out := ItineraryEntry{
		Id:         e.ID,
		TripId:     e.TripID,
		CityId:     &CityRef{City: City{Id: e.CityID}},
		Date:       NewDate(e.Date),
		Notes:      e.Notes,
		OrderIndex: &e.OrderIndex,
	}
	if e.City != nil {
		out.CityId.Name = e.City.Name
	}
	if e.Activity != nil {
		out.ActivityId = &ActivityRef{Activity: FromActivity(*e.Activity)}
	}
	if !e.CreatedAt.IsZero() {
		out.CreatedAt = &e.CreatedAt
	}
	return out
}

// ToEntry converts a wire entry to the domain. A populated activity becomes
// both ActivityID and Activity; a bare activity ID only sets ActivityID, which
// the projection treats as legacy data. A missing orderIndex reads as 0.
func (e ItineraryEntry) ToEntry() domain.ItineraryEntry {
	out := domain.ItineraryEntry{
		ID:     e.Id,
		TripID: e.TripId,
		Date:   domain.DateOf(e.Date.Time),
		Notes:  e.Notes,
	}
	if e.OrderIndex != nil {
		out.OrderIndex = *e.OrderIndex
	}
	if e.CreatedAt != nil {
		out.CreatedAt = *e.CreatedAt
	}
	if e.CityId != nil {
		out.CityID = e.CityId.Id
		if e.CityId.Name != "" {
			c := e.CityId.ToCity()
			out.City = &c
		}
	}
	if e.ActivityId != nil {
		id := e.ActivityId.Id
		out.ActivityID = &id
		if !e.ActivityId.Bare {
			a := e.ActivityId.ToActivity()
			out.Activity = &a
		}
	}
	return out
}

// ToEntry converts the body of POST /itinerary to a domain entry.
// Missing city and date are left zero for the service to reject.
func (r ItineraryEntryRequest) ToEntry() domain.ItineraryEntry {
	out := domain.ItineraryEntry{
		TripID:     r.TripId,
		ActivityID: r.ActivityId,
		Notes:      r.Notes,
		OrderIndex: r.OrderIndex,
	}
	if r.CityId != nil {
		out.CityID = *r.CityId
	}
	if r.Date != nil {
		out.Date = domain.DateOf(r.Date.Time)
	}
	return out
}

// NewEntryRequest builds the POST /itinerary body for a domain entry.
func NewEntryRequest(e domain.ItineraryEntry) ItineraryEntryRequest {
	cityID := e.CityID
	date := NewDate(e.Date)
	return ItineraryEntryRequest{
		TripId:     e.TripID,
		CityId:     &cityID,
		Date:       &date,
		ActivityId: e.ActivityID,
		Notes:      e.Notes,
		OrderIndex: e.OrderIndex,
	}
}

func FromDays(trip domain.Trip, days []domain.Day) TripDays {
	out := TripDays{Trip: FromTrip(trip), Days: make([]Day, len(days))}
	for i, d := range days {
		acts := make([]ActivityEntry, len(d.Activities))
		for j, a := range d.Activities {
			acts[j] = ActivityEntry{
				Id:       a.ID,
				Title:    a.Title,
				Type:     string(a.Type),
				Time:     a.Time,
				Location: a.Location,
				Duration: a.Duration,
				Notes:    a.Notes,
				Cost:     a.Cost,
			}
		}
		out.Days[i] = Day{
			Index:      d.Index,
			Date:       NewDate(d.Date),
			State:      string(d.State()),
			Activities: acts,
		}
	}
	return out
}

func FromExportRow(r domain.ExportRow) ExportRow {
	return ExportRow{
		TripId:      r.TripID,
		TripTitle:   r.TripTitle,
		Destination: r.Destination,
		DayIndex:    r.DayIndex,
		Date:        r.Date,
		EntryId:     r.EntryID,
		Title:       r.Title,
		Type:        r.Type,
		Time:        r.Time,
		Location:    r.Location,
		Duration:    r.Duration,
		Cost:        r.Cost,
		Notes:       r.Notes,
	}
}
