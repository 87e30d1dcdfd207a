package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/handler"
)

// Test doubles for the handler's service interfaces.
// Set only the method fields a test needs.

type mockTripServicer struct {
	create    func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID   func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	listPaged func(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)
	update    func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete    func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTripServicer) Create(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	return m.create(ctx, t)
}
func (m *mockTripServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripServicer) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.listPaged(ctx, p)
}
func (m *mockTripServicer) Update(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	return m.update(ctx, t)
}
func (m *mockTripServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ handler.TripServicer = (*mockTripServicer)(nil)

type mockCityServicer struct {
	create  func(ctx context.Context, c domain.City) (domain.City, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.City, error)
	list    func(ctx context.Context, prefix string) ([]domain.City, error)
}

func (m *mockCityServicer) Create(ctx context.Context, c domain.City) (domain.City, error) {
	return m.create(ctx, c)
}
func (m *mockCityServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.City, error) {
	return m.getByID(ctx, id)
}
func (m *mockCityServicer) List(ctx context.Context, prefix string) ([]domain.City, error) {
	return m.list(ctx, prefix)
}

var _ handler.CityServicer = (*mockCityServicer)(nil)

type mockActivityServicer struct {
	create    func(ctx context.Context, a domain.Activity) (domain.Activity, error)
	getByID   func(ctx context.Context, id uuid.UUID) (domain.Activity, error)
	listPaged func(ctx context.Context, p domain.PaginationParams) ([]domain.Activity, int64, error)
}

func (m *mockActivityServicer) Create(ctx context.Context, a domain.Activity) (domain.Activity, error) {
	return m.create(ctx, a)
}
func (m *mockActivityServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Activity, error) {
	return m.getByID(ctx, id)
}
func (m *mockActivityServicer) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Activity, int64, error) {
	return m.listPaged(ctx, p)
}

var _ handler.ActivityServicer = (*mockActivityServicer)(nil)

type mockItineraryServicer struct {
	listEntries func(ctx context.Context, tripID uuid.UUID) ([]domain.ItineraryEntry, error)
	createEntry func(ctx context.Context, e domain.ItineraryEntry) (domain.ItineraryEntry, error)
	deleteEntry func(ctx context.Context, id uuid.UUID) error
	days        func(ctx context.Context, tripID uuid.UUID) (domain.Trip, []domain.Day, error)
	export      func(ctx context.Context, tripID uuid.UUID) ([]domain.ExportRow, error)
}

func (m *mockItineraryServicer) ListEntries(ctx context.Context, tripID uuid.UUID) ([]domain.ItineraryEntry, error) {
	return m.listEntries(ctx, tripID)
}
func (m *mockItineraryServicer) CreateEntry(ctx context.Context, e domain.ItineraryEntry) (domain.ItineraryEntry, error) {
	return m.createEntry(ctx, e)
}
func (m *mockItineraryServicer) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	return m.deleteEntry(ctx, id)
}
func (m *mockItineraryServicer) Days(ctx context.Context, tripID uuid.UUID) (domain.Trip, []domain.Day, error) {
	return m.days(ctx, tripID)
}
func (m *mockItineraryServicer) Export(ctx context.Context, tripID uuid.UUID) ([]domain.ExportRow, error) {
	return m.export(ctx, tripID)
}

var _ handler.ItineraryServicer = (*mockItineraryServicer)(nil)

// ---- helpers ---------------------------------------------------------------

// newHTTPHandler wires a Server with the given mocks into its chi router,
// the same way main.go does in production.
func newHTTPHandler(svc handler.Services) http.Handler {
	return handler.NewServer(svc, nil).Routes()
}

// do sends one request through h and returns the recorder.
func do(h http.Handler, method, path string, body *bytes.Buffer) *httptest.ResponseRecorder {
	var req *http.Request
	if body == nil {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, body)
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}
