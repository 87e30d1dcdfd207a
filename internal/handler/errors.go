package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/pkordes/trip-planner/backend/internal/api"
	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// notFoundBody returns an ErrorResponse for a missing resource.
// The caller supplies the human-readable message (e.g. "trip not found")
// because the handler is the layer that knows what was being looked up.
func notFoundBody(message string) api.ErrorResponse {
	return api.ErrorResponse{Error: api.ErrorDetail{Code: api.CodeNotFound, Message: message}}
}

// validationBody returns an ErrorResponse for a domain validation failure.
func validationBody(err error) api.ErrorResponse {
	return api.ErrorResponse{Error: api.ErrorDetail{Code: api.CodeValidation, Message: unwrapMessage(err)}}
}

// requestBody returns an ErrorResponse for a bad request rejected before
// reaching the service layer (e.g. missing or malformed body).
func requestBody(message string) api.ErrorResponse {
	return api.ErrorResponse{Error: api.ErrorDetail{Code: api.CodeValidation, Message: message}}
}

// unwrapMessage extracts the human-readable part of a wrapped validation error.
// e.g. "service.TripService.Create: validation error: title is required" → "title is required"
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	marker := domain.ErrValidation.Error() + ": "
	if i := strings.LastIndex(msg, marker); i >= 0 && i+len(marker) < len(msg) {
		return msg[i+len(marker):]
	}
	return msg
}

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, body api.ErrorResponse) {
	writeJSON(w, status, body)
}

// writeServiceError maps a service error to a response. notFound is the
// message used for domain.ErrNotFound. Anything unrecognised is logged and
// answered with a generic 500 so internals never reach the client.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, validationBody(err))
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, notFoundBody(notFound))
	default:
		s.log.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, api.ErrorResponse{
			Error: api.ErrorDetail{Code: api.CodeInternal, Message: "internal server error"},
		})
	}
}

// decodeBody reads a JSON request body into dst. It writes the error
// response itself and returns false when the body is missing, malformed or
// larger than the configured limit.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return true
	}
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, api.ErrorResponse{
			Error: api.ErrorDetail{Code: api.CodeTooLarge, Message: "request body too large"},
		})
	case errors.Is(err, io.EOF):
		writeError(w, http.StatusUnprocessableEntity, requestBody("request body is required"))
	default:
		writeError(w, http.StatusUnprocessableEntity, requestBody("malformed JSON body"))
	}
	return false
}
