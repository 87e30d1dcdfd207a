package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/backend/internal/api"
	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// CreateTrip handles POST /api/trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var body api.TripRequest
	if !decodeBody(w, r, &body) {
		return
	}

	created, err := s.trips.Create(r.Context(), requestToTrip(uuid.Nil, body))
	if err != nil {
		s.writeServiceError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusCreated, api.FromTrip(created))
}

// ListTrips handles GET /api/trips.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	params, ok := pagination(w, r)
	if !ok {
		return
	}
	trips, total, err := s.trips.ListPaged(r.Context(), params)
	if err != nil {
		s.writeServiceError(w, r, err, "trip not found")
		return
	}

	data := make([]api.Trip, len(trips))
	for i, t := range trips {
		data[i] = api.FromTrip(t)
	}
	writeJSON(w, http.StatusOK, api.TripList{
		Data:       data,
		Pagination: api.Pagination{Page: params.Page, Limit: params.Limit, Total: int(total)},
	})
}

// GetTrip handles GET /api/trips/{tripId}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "tripId")
	if !ok {
		return
	}
	trip, err := s.trips.GetByID(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, api.FromTrip(trip))
}

// UpdateTrip handles PUT /api/trips/{tripId}.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "tripId")
	if !ok {
		return
	}
	var body api.TripRequest
	if !decodeBody(w, r, &body) {
		return
	}

	updated, err := s.trips.Update(r.Context(), requestToTrip(id, body))
	if err != nil {
		s.writeServiceError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, api.FromTrip(updated))
}

// DeleteTrip handles DELETE /api/trips/{tripId}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "tripId")
	if !ok {
		return
	}
	if err := s.trips.Delete(r.Context(), id); err != nil {
		s.writeServiceError(w, r, err, "trip not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// requestToTrip converts a TripRequest body into a domain.Trip.
// Missing dates stay zero and are rejected by the service.
func requestToTrip(id uuid.UUID, body api.TripRequest) domain.Trip {
	t := domain.Trip{
		ID:          id,
		Title:       body.Title,
		Destination: body.Destination,
	}
	if body.StartDate != nil {
		t.StartDate = body.StartDate.Time
	}
	if body.EndDate != nil {
		t.EndDate = body.EndDate.Time
	}
	if body.Notes != nil {
		t.Notes = *body.Notes
	}
	return t
}
