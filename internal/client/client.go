// Package client talks to the trip planner HTTP API. Client satisfies
// itinerary.Backend, so a Planner can run against a remote server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/backend/internal/api"
	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/itinerary"
)

// DefaultTimeout bounds each request when no *http.Client is supplied.
const DefaultTimeout = 10 * time.Second

// Client is an HTTP client for the /api endpoints.
type Client struct {
	baseURL string
	http    *http.Client
}

var _ itinerary.Backend = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout of the default *http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http = &http.Client{Timeout: d} }
}

// New returns a Client for the server at baseURL, e.g. "http://localhost:8080".
// The /api prefix is added by the client.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/") + "/api",
		http:    &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetTrip fetches GET /trips/{tripId}.
func (c *Client) GetTrip(ctx context.Context, tripID uuid.UUID) (domain.Trip, error) {
	var out api.Trip
	if err := c.do(ctx, http.MethodGet, "/trips/"+tripID.String(), nil, &out); err != nil {
		return domain.Trip{}, fmt.Errorf("client.Client.GetTrip: %w", err)
	}
	return out.ToTrip(), nil
}

// ListEntries fetches GET /itinerary/{tripId}.
func (c *Client) ListEntries(ctx context.Context, tripID uuid.UUID) ([]domain.ItineraryEntry, error) {
	var out []api.ItineraryEntry
	if err := c.do(ctx, http.MethodGet, "/itinerary/"+tripID.String(), nil, &out); err != nil {
		return nil, fmt.Errorf("client.Client.ListEntries: %w", err)
	}
	entries := make([]domain.ItineraryEntry, len(out))
	for i, e := range out {
		entries[i] = e.ToEntry()
	}
	return entries, nil
}

// CreateActivity posts to /activities.
func (c *Client) CreateActivity(ctx context.Context, a domain.Activity) (domain.Activity, error) {
	body := api.ActivityRequest{
		Name:        a.Name,
		Type:        string(a.Type),
		Cost:        a.Cost,
		Duration:    a.Duration,
		Description: a.Description,
	}
	var out api.Activity
	if err := c.do(ctx, http.MethodPost, "/activities", body, &out); err != nil {
		return domain.Activity{}, fmt.Errorf("client.Client.CreateActivity: %w", err)
	}
	return out.ToActivity(), nil
}

// CreateEntry posts to /itinerary and returns the populated entry.
func (c *Client) CreateEntry(ctx context.Context, e domain.ItineraryEntry) (domain.ItineraryEntry, error) {
	var out api.ItineraryEntry
	if err := c.do(ctx, http.MethodPost, "/itinerary", api.NewEntryRequest(e), &out); err != nil {
		return domain.ItineraryEntry{}, fmt.Errorf("client.Client.CreateEntry: %w", err)
	}
	return out.ToEntry(), nil
}

// DeleteEntry sends DELETE /itinerary/{entryId}.
func (c *Client) DeleteEntry(ctx context.Context, entryID uuid.UUID) error {
	if err := c.do(ctx, http.MethodDelete, "/itinerary/"+entryID.String(), nil, nil); err != nil {
		return fmt.Errorf("client.Client.DeleteEntry: %w", err)
	}
	return nil
}

// do sends one request. in is JSON-encoded when non-nil; out is decoded from
// a 2xx body when non-nil. Non-2xx responses become errors via statusError.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %w", domain.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding response: %w", domain.ErrBackendUnavailable, err)
	}
	return nil
}

// statusError maps a non-2xx response to a domain sentinel, keeping the
// server's message when the body is a JSON error.
func statusError(resp *http.Response) error {
	msg := http.StatusText(resp.StatusCode)
	var body api.ErrorResponse
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err := json.Unmarshal(raw, &body); err == nil && body.Error.Message != "" {
		msg = body.Error.Message
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", domain.ErrNotFound, msg)
	case resp.StatusCode == http.StatusUnprocessableEntity, resp.StatusCode == http.StatusBadRequest:
		return fmt.Errorf("%w: %s", domain.ErrValidation, msg)
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: status %d: %s", domain.ErrBackendUnavailable, resp.StatusCode, msg)
	default:
		return &UnexpectedStatusError{Status: resp.StatusCode, Message: msg}
	}
}

// UnexpectedStatusError is returned for statuses without a domain meaning,
// such as 413 or 429.
type UnexpectedStatusError struct {
	Status  int
	Message string
}

func (e *UnexpectedStatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.Status, e.Message)
}

// IsRateLimited reports whether err is a 429 from the server.
func IsRateLimited(err error) bool {
	var se *UnexpectedStatusError
	return errors.As(err, &se) && se.Status == http.StatusTooManyRequests
}
