package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pkordes/trip-planner/backend/internal/repo"
	"github.com/pkordes/trip-planner/backend/internal/seed"
	"github.com/pkordes/trip-planner/backend/internal/service"
)

func newSeedCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "seed <file.yaml>",
		Short: "Load cities, activities and trips from a YAML catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			catalog, err := seed.Parse(f)
			if err != nil {
				return err
			}

			pool, err := opts.pool(cmd.Context())
			if err != nil {
				return err
			}
			defer pool.Close()

			res, err := seed.Apply(cmd.Context(), catalog,
				service.NewCityService(repo.NewCityRepo(pool)),
				service.NewActivityService(repo.NewActivityRepo(pool)),
				service.NewTripService(repo.NewTripRepo(pool)),
			)
			fmt.Fprintf(out(cmd), "seeded %d cities, %d activities, %d trips\n", res.Cities, res.Activities, len(res.Trips))
			for _, t := range res.Trips {
				fmt.Fprintf(out(cmd), "  trip %s  %s\n", t.ID, t.Title)
			}
			return err
		},
	}
}
