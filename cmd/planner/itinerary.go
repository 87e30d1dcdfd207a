package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

func newDaysCmd(opts *options) *cobra.Command {
	var day int
	cmd := &cobra.Command{
		Use:   "days <tripId>",
		Short: "Show a trip day by day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, release, err := opts.loadPlanner(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer release()

			days := p.Days()
			if day > 0 {
				d, err := p.Day(day)
				if err != nil {
					return fmt.Errorf("day %d: %w", day, err)
				}
				days = []domain.Day{d}
			}

			trip := p.Trip()
			fmt.Fprintf(out(cmd), "%s (%s), %s to %s\n\n", trip.Title, trip.Destination,
				trip.StartDate.Format(time.DateOnly), trip.EndDate.Format(time.DateOnly))
			return printDays(cmd, days)
		},
	}
	cmd.Flags().IntVar(&day, "day", 0, "show only this 1-based day")
	return cmd
}

func newAddCmd(opts *options) *cobra.Command {
	var (
		day     int
		cityArg string
		draft   domain.ActivityDraft
	)
	cmd := &cobra.Command{
		Use:   "add <tripId>",
		Short: "Add an activity to a day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var cityID uuid.UUID
			if cityArg != "" {
				id, err := parseID("city", cityArg)
				if err != nil {
					return err
				}
				cityID = id
			}

			p, release, err := opts.loadPlanner(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer release()

			added, err := p.AddActivity(cmd.Context(), day, cityID, draft)
			if err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "added %q to day %d as %s\n", added.Title, day, added.ID)
			return nil
		},
	}
	f := cmd.Flags()
	f.IntVar(&day, "day", 1, "1-based day to add to")
	f.StringVar(&cityArg, "city", "", "city ID (required)")
	f.StringVar(&draft.Name, "name", "", "activity name (required)")
	f.StringVar(&draft.Type, "type", string(domain.ActivityTypeActivity), "attraction, restaurant, hotel, transport or activity")
	f.Float64Var(&draft.Cost, "cost", 0, "cost")
	f.IntVar(&draft.Duration, "duration", 60, "duration in minutes")
	f.StringVar(&draft.Description, "description", "", "catalog description")
	f.StringVar(&draft.Notes, "notes", "", "notes for this day only")
	return cmd
}

func newRemoveCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <tripId> <entryId>",
		Short: "Remove a scheduled activity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			entryID, err := parseID("entry", args[1])
			if err != nil {
				return err
			}
			p, release, err := opts.loadPlanner(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer release()

			if err := p.RemoveActivity(cmd.Context(), entryID); err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "removed %s\n", entryID)
			return nil
		},
	}
}

// printDays writes each day as a header line followed by an aligned table
// of its activities.
func printDays(cmd *cobra.Command, days []domain.Day) error {
	w := tabwriter.NewWriter(out(cmd), 0, 0, 2, ' ', 0)
	for _, d := range days {
		fmt.Fprintf(w, "Day %d\t%s\t%s\n", d.Index, d.Date.Format("Mon 2006-01-02"), d.State())
		for _, a := range d.Activities {
			fmt.Fprintf(w, "  %s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				a.Time, a.Title, a.Type, a.Location, a.Duration,
				strconv.FormatFloat(a.Cost, 'f', 2, 64), a.ID)
		}
	}
	return w.Flush()
}

func parseID(what, s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s ID %q", what, s)
	}
	return id, nil
}
