package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/trip-planner/backend/internal/api"
	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// pathUUID binds the named path parameter as a UUID. On failure it writes a
// 422 response and returns false.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	var id uuid.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, api.ErrorResponse{
			Error: api.ErrorDetail{Code: api.CodeBadParameter, Message: "invalid " + name + ": must be a UUID"},
		})
		return uuid.Nil, false
	}
	return id, true
}

// pagination binds the optional ?page= and ?limit= query parameters.
func pagination(w http.ResponseWriter, r *http.Request) (domain.PaginationParams, bool) {
	var page, limit *int
	q := r.URL.Query()
	if err := runtime.BindQueryParameter("form", true, false, "page", q, &page); err != nil {
		writeError(w, http.StatusUnprocessableEntity, api.ErrorResponse{
			Error: api.ErrorDetail{Code: api.CodeBadParameter, Message: "invalid page"},
		})
		return domain.PaginationParams{}, false
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", q, &limit); err != nil {
		writeError(w, http.StatusUnprocessableEntity, api.ErrorResponse{
			Error: api.ErrorDetail{Code: api.CodeBadParameter, Message: "invalid limit"},
		})
		return domain.PaginationParams{}, false
	}
	return domain.NewPaginationParams(page, limit), true
}
