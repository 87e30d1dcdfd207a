package middleware

import (
	"net/http"

	"github.com/pkordes/trip-planner/backend/internal/api"
)

// NewMaxBodySizeHandler caps request bodies at limit bytes. A declared
// Content-Length over the limit is refused up front with 413; bodies of
// unknown length are wrapped in http.MaxBytesReader and the handler that
// reads them reports the overflow.
func NewMaxBodySizeHandler(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				writeError(w, http.StatusRequestEntityTooLarge, api.CodeTooLarge, "request body too large")
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
