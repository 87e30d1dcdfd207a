package handler

import (
	"net/http"

	"github.com/pkordes/trip-planner/backend/internal/api"
	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// CreateCity handles POST /api/cities. Creating an existing name+country
// returns the existing city.
func (s *Server) CreateCity(w http.ResponseWriter, r *http.Request) {
	var body api.CityRequest
	if !decodeBody(w, r, &body) {
		return
	}
	city, err := s.cities.Create(r.Context(), domain.City{Name: body.Name, Country: body.Country})
	if err != nil {
		s.writeServiceError(w, r, err, "city not found")
		return
	}
	writeJSON(w, http.StatusCreated, api.FromCity(city))
}

// ListCities handles GET /api/cities?q=prefix.
func (s *Server) ListCities(w http.ResponseWriter, r *http.Request) {
	cities, err := s.cities.List(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		s.writeServiceError(w, r, err, "city not found")
		return
	}
	out := make([]api.City, len(cities))
	for i, c := range cities {
		out[i] = api.FromCity(c)
	}
	writeJSON(w, http.StatusOK, out)
}

// GetCity handles GET /api/cities/{cityId}.
func (s *Server) GetCity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "cityId")
	if !ok {
		return
	}
	city, err := s.cities.GetByID(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err, "city not found")
		return
	}
	writeJSON(w, http.StatusOK, api.FromCity(city))
}
