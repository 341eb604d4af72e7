package main

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/meikuraledutech/flow"
	"github.com/meikuraledutech/flow/internal/ui"
	"github.com/meikuraledutech/flow/postgres"
	"github.com/spf13/cobra"
)

func schemaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Manage the workflow tables",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "create",
			Short: "Create the workflow tables",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withStore(cmd, func(s flow.Persister) error {
					if err := s.CreateSchema(cmd.Context()); err != nil {
						return err
					}
					ui.OK.Println("  schema created")
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "drop",
			Short: "Drop the workflow tables",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withStore(cmd, func(s flow.Persister) error {
					if err := s.DropSchema(cmd.Context()); err != nil {
						return err
					}
					ui.Warn.Println("  schema dropped")
					return nil
				})
			},
		},
	)
	return cmd
}

func withStore(cmd *cobra.Command, fn func(flow.Persister) error) error {
	if cfg.Postgres.URL == "" {
		return fmt.Errorf("%w: set postgres.url or FLOW_POSTGRES_URL", flow.ErrNoPersister)
	}
	pool, err := pgxpool.New(cmd.Context(), cfg.Postgres.URL)
	if err != nil {
		return err
	}
	defer pool.Close()
	return fn(postgres.New(pool, logger))
}
