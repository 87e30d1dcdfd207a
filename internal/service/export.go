package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// Export returns one ExportRow per scheduled activity of the trip, in day
// order. Days with no activities contribute one row with empty activity fields.
func (s *ItineraryService) Export(ctx context.Context, tripID uuid.UUID) ([]domain.ExportRow, error) {
	trip, days, err := s.Days(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ItineraryService.Export: %w", err)
	}

	rows := make([]domain.ExportRow, 0, len(days))
	for _, d := range days {
		base := domain.ExportRow{
			TripID:      trip.ID.String(),
			TripTitle:   trip.Title,
			Destination: trip.Destination,
			DayIndex:    d.Index,
			Date:        d.Date.Format(time.DateOnly),
		}
		if len(d.Activities) == 0 {
			rows = append(rows, base)
			continue
		}
		for _, a := range d.Activities {
			row := base
			row.EntryID = a.ID.String()
			row.Title = a.Title
			row.Type = string(a.Type)
			row.Time = a.Time
			row.Location = a.Location
			row.Duration = a.Duration
			row.Cost = a.Cost
			row.Notes = a.Notes
			rows = append(rows, row)
		}
	}
	return rows, nil
}
