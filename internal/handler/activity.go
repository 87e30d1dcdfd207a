package handler

import (
	"net/http"

	"github.com/pkordes/trip-planner/backend/internal/api"
	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// CreateActivity handles POST /api/activities.
func (s *Server) CreateActivity(w http.ResponseWriter, r *http.Request) {
	var body api.ActivityRequest
	if !decodeBody(w, r, &body) {
		return
	}
	created, err := s.activities.Create(r.Context(), domain.Activity{
		Name:        body.Name,
		Type:        domain.ActivityType(body.Type),
		Cost:        body.Cost,
		Duration:    body.Duration,
		Description: body.Description,
	})
	if err != nil {
		s.writeServiceError(w, r, err, "activity not found")
		return
	}
	writeJSON(w, http.StatusCreated, api.FromActivity(created))
}

// ListActivities handles GET /api/activities with ?page= and ?limit=.
func (s *Server) ListActivities(w http.ResponseWriter, r *http.Request) {
	params, ok := pagination(w, r)
	if !ok {
		return
	}
	activities, total, err := s.activities.ListPaged(r.Context(), params)
	if err != nil {
		s.writeServiceError(w, r, err, "activity not found")
		return
	}
	data := make([]api.Activity, len(activities))
	for i, a := range activities {
		data[i] = api.FromActivity(a)
	}
	writeJSON(w, http.StatusOK, api.ActivityList{
		Data:       data,
		Pagination: api.Pagination{Page: params.Page, Limit: params.Limit, Total: int(total)},
	})
}

// GetActivity handles GET /api/activities/{activityId}.
func (s *Server) GetActivity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "activityId")
	if !ok {
		return
	}
	a, err := s.activities.GetByID(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err, "activity not found")
		return
	}
	writeJSON(w, http.StatusOK, api.FromActivity(a))
}
