package main

import (
	"fmt"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/pkordes/trip-planner/backend/migrations"
)

func newMigrateCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withProvider(cmd, opts, func(p *goose.Provider) error {
					results, err := p.Up(cmd.Context())
					for _, r := range results {
						fmt.Fprintf(out(cmd), "applied %s (%s)\n", r.Source.Path, r.Duration)
					}
					return err
				})
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withProvider(cmd, opts, func(p *goose.Provider) error {
					r, err := p.Down(cmd.Context())
					if r != nil {
						fmt.Fprintf(out(cmd), "rolled back %s\n", r.Source.Path)
					}
					return err
				})
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "List migrations and whether each is applied",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withProvider(cmd, opts, func(p *goose.Provider) error {
					statuses, err := p.Status(cmd.Context())
					if err != nil {
						return err
					}
					for _, s := range statuses {
						fmt.Fprintf(out(cmd), "%-8s %s\n", s.State, s.Source.Path)
					}
					return nil
				})
			},
		},
	)
	return cmd
}

// withProvider opens the database and runs fn with a goose provider on it.
func withProvider(cmd *cobra.Command, opts *options, fn func(*goose.Provider) error) error {
	pool, err := opts.pool(cmd.Context())
	if err != nil {
		return err
	}
	defer pool.Close()

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	p, err := migrations.NewProvider(db)
	if err != nil {
		return err
	}
	if err := fn(p); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
