package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/pkordes/trip-planner/backend/internal/api"
)

// writeError writes the same {"error":{...}} envelope the handlers use, so
// rejections made before routing look like any other API error.
func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(api.ErrorResponse{Error: api.ErrorDetail{Code: code, Message: message}})
}
