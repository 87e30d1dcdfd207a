package handler

import (
	"net/http"

	"github.com/pkordes/trip-planner/backend/internal/api"
)

// ListEntries handles GET /api/itinerary/{id}, where id is a trip ID.
// Entries are populated: activityId and cityId carry nested objects.
func (s *Server) ListEntries(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	entries, err := s.itinerary.ListEntries(r.Context(), tripID)
	if err != nil {
		s.writeServiceError(w, r, err, "trip not found")
		return
	}
	out := make([]api.ItineraryEntry, len(entries))
	for i, e := range entries {
		out[i] = api.FromEntry(e)
	}
	writeJSON(w, http.StatusOK, out)
}

// CreateEntry handles POST /api/itinerary.
func (s *Server) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var body api.ItineraryEntryRequest
	if !decodeBody(w, r, &body) {
		return
	}
	created, err := s.itinerary.CreateEntry(r.Context(), body.ToEntry())
	if err != nil {
		s.writeServiceError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusCreated, api.FromEntry(created))
}

// DeleteEntry handles DELETE /api/itinerary/{id}, where id is an entry ID.
func (s *Server) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := s.itinerary.DeleteEntry(r.Context(), id); err != nil {
		s.writeServiceError(w, r, err, "itinerary entry not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetTripDays handles GET /api/trips/{tripId}/days: the trip with one entry
// per calendar day and the activities scheduled on it.
func (s *Server) GetTripDays(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripId")
	if !ok {
		return
	}
	trip, days, err := s.itinerary.Days(r.Context(), tripID)
	if err != nil {
		s.writeServiceError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, api.FromDays(trip, days))
}
