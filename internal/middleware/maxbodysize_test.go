package middleware_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pkordes/trip-planner/backend/internal/middleware"
)

// drain reads the whole body the way a JSON decoder would and reports a
// MaxBytesError as 413, mirroring the handlers' decodeBody.
var drain = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	if _, err := io.ReadAll(r.Body); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
})

func TestMaxBodySizeHandler(t *testing.T) {
	const limit = 64

	tests := []struct {
		name          string
		size          int
		contentLength int64 // -1 means unknown (chunked)
		wantStatus    int
		wantJSON      bool
	}{
		{name: "under limit", size: 10, contentLength: 10, wantStatus: http.StatusNoContent},
		{name: "exactly at limit", size: limit, contentLength: limit, wantStatus: http.StatusNoContent},
		{name: "declared length over limit", size: 2 * limit, contentLength: 2 * limit, wantStatus: http.StatusRequestEntityTooLarge, wantJSON: true},
		{name: "streamed body over limit", size: 2 * limit, contentLength: -1, wantStatus: http.StatusRequestEntityTooLarge},
		{name: "streamed body under limit", size: 8, contentLength: -1, wantStatus: http.StatusNoContent},
	}

	h := middleware.NewMaxBodySizeHandler(limit)(drain)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/itinerary", strings.NewReader(strings.Repeat("a", tc.size)))
			req.ContentLength = tc.contentLength
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
			if tc.wantJSON {
				assert.JSONEq(t, `{"error":{"code":"request_too_large","message":"request body too large"}}`, rec.Body.String())
			}
		})
	}
}
