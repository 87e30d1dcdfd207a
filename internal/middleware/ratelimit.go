package middleware

import (
	"fmt"
	"net/http"

	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/pkordes/trip-planner/backend/internal/api"
)

// NewRateLimitHandler returns a middleware that limits each client IP to the
// given rate, in limiter's "<limit>-<period>" format (e.g. "100-M").
// Requests over the limit get 429 with a rate_limited error body. Counters
// live in process memory, so each API instance limits independently.
func NewRateLimitHandler(rate string) (func(http.Handler) http.Handler, error) {
	r, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, fmt.Errorf("middleware.NewRateLimitHandler: %w", err)
	}
	mw := stdlib.NewMiddleware(limiter.New(memory.NewStore(), r),
		stdlib.WithLimitReachedHandler(func(w http.ResponseWriter, _ *http.Request) {
			writeError(w, http.StatusTooManyRequests, api.CodeRateLimited, "too many requests")
		}))
	return mw.Handler, nil
}
