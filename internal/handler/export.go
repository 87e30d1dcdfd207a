package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"

	"github.com/pkordes/trip-planner/backend/internal/api"
	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"trip_id", "trip_title", "destination", "day", "date",
	"entry_id", "title", "type", "time", "location", "duration", "cost", "notes",
}

// GetExport handles GET /api/trips/{tripId}/export.
// It returns one row per scheduled activity; empty days yield one row.
// Use ?format=csv to receive CSV; default is JSON.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripId")
	if !ok {
		return
	}
	rows, err := s.itinerary.Export(r.Context(), tripID)
	if err != nil {
		s.writeServiceError(w, r, err, "trip not found")
		return
	}

	switch r.URL.Query().Get("format") {
	case "", "json":
		out := make([]api.ExportRow, len(rows))
		for i, row := range rows {
			out[i] = api.FromExportRow(row)
		}
		writeJSON(w, http.StatusOK, out)
	case "csv":
		body := buildCSV(rows)
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="itinerary-`+tripID.String()+`.csv"`)
		w.Header().Set("Content-Length", strconv.Itoa(body.Len()))
		w.WriteHeader(http.StatusOK)
		_, _ = body.WriteTo(w)
	default:
		writeError(w, http.StatusUnprocessableEntity, api.ErrorResponse{
			Error: api.ErrorDetail{Code: api.CodeBadParameter, Message: "format must be json or csv"},
		})
	}
}

// buildCSV encodes rows as CSV with a header line.
func buildCSV(rows []domain.ExportRow) *bytes.Buffer {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	// Writes to a bytes.Buffer cannot fail.
	_ = w.Write(csvHeaders)
	for _, r := range rows {
		_ = w.Write(rowToCSVRecord(r))
	}
	w.Flush()
	return &buf
}

// rowToCSVRecord flattens an ExportRow. Cost is left empty on empty days.
func rowToCSVRecord(r domain.ExportRow) []string {
	cost := ""
	if r.EntryID != "" {
		cost = strconv.FormatFloat(r.Cost, 'f', 2, 64)
	}
	return []string{
		r.TripID,
		r.TripTitle,
		r.Destination,
		strconv.Itoa(r.DayIndex),
		r.Date,
		r.EntryID,
		r.Title,
		r.Type,
		r.Time,
		r.Location,
		r.Duration,
		cost,
		r.Notes,
	}
}
