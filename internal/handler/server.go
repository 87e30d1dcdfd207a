// Package handler implements the HTTP handlers for the trip planner API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, trip.go, itinerary.go, etc.) but share the same Server
// struct so they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CityServicer defines the city catalog operations.
type CityServicer interface {
	Create(ctx context.Context, city domain.City) (domain.City, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.City, error)
	List(ctx context.Context, prefix string) ([]domain.City, error)
}

// ActivityServicer defines the activity catalog operations.
type ActivityServicer interface {
	Create(ctx context.Context, a domain.Activity) (domain.Activity, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Activity, error)
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Activity, int64, error)
}

// ItineraryServicer defines the itinerary entry and day-view operations.
type ItineraryServicer interface {
	ListEntries(ctx context.Context, tripID uuid.UUID) ([]domain.ItineraryEntry, error)
	CreateEntry(ctx context.Context, entry domain.ItineraryEntry) (domain.ItineraryEntry, error)
	DeleteEntry(ctx context.Context, id uuid.UUID) error
	Days(ctx context.Context, tripID uuid.UUID) (domain.Trip, []domain.Day, error)
	Export(ctx context.Context, tripID uuid.UUID) ([]domain.ExportRow, error)
}

// Services bundles the dependencies of Server.
type Services struct {
	Trips      TripServicer
	Cities     CityServicer
	Activities ActivityServicer
	Itinerary  ItineraryServicer
}

// Server serves every /api endpoint.
// Methods are in domain-specific files but all operate on this struct.
type Server struct {
	trips      TripServicer
	cities     CityServicer
	activities ActivityServicer
	itinerary  ItineraryServicer
	log        *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
// A nil logger falls back to slog.Default().
func NewServer(svc Services, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		trips:      svc.Trips,
		cities:     svc.Cities,
		activities: svc.Activities,
		itinerary:  svc.Itinerary,
		log:        log,
	}
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(Services{}, nil)
}

// Routes returns a router serving the API under /api.
// Cross-cutting middleware is applied by the caller.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, notFoundBody("route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, requestBody("method not allowed"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/healthz", s.GetHealth)
		r.Get("/openapi.yaml", s.GetOpenAPI)

		r.Route("/trips", func(r chi.Router) {
			r.Get("/", s.ListTrips)
			r.Post("/", s.CreateTrip)
			r.Route("/{tripId}", func(r chi.Router) {
				r.Get("/", s.GetTrip)
				r.Put("/", s.UpdateTrip)
				r.Delete("/", s.DeleteTrip)
				r.Get("/days", s.GetTripDays)
				r.Get("/export", s.GetExport)
			})
		})

		r.Route("/cities", func(r chi.Router) {
			r.Get("/", s.ListCities)
			r.Post("/", s.CreateCity)
			r.Get("/{cityId}", s.GetCity)
		})

		r.Route("/activities", func(r chi.Router) {
			r.Get("/", s.ListActivities)
			r.Post("/", s.CreateActivity)
			r.Get("/{activityId}", s.GetActivity)
		})

		r.Route("/itinerary", func(r chi.Router) {
			r.Post("/", s.CreateEntry)
			// GET takes a trip ID, DELETE an entry ID.
			r.Get("/{id}", s.ListEntries)
			r.Delete("/{id}", s.DeleteEntry)
		})
	})
	return r
}
