package main

import (
	"fmt"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

func newMigrateCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the document store schema",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				s, err := a.openSQLStore(cmd.Context())
				if err != nil {
					return err
				}
				defer s.Close()

				changed, err := s.MigrateUp()
				if err != nil {
					return err
				}
				if !changed {
					a.logger.Info("no pending migrations")
					return nil
				}
				a.logger.Info("migrations applied", "driver", a.cfg.Store.Driver)
				return nil
			},
		},
		&cobra.Command{
			Use:   "down [steps]",
			Short: "Roll back migrations (default 1)",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				steps := 1
				if len(args) == 1 {
					n, err := strconv.Atoi(args[0])
					if err != nil || n <= 0 {
						return errors.Newf("invalid steps %q", args[0])
					}
					steps = n
				}

				s, err := a.openSQLStore(cmd.Context())
				if err != nil {
					return err
				}
				defer s.Close()

				if err := s.MigrateDown(steps); err != nil {
					return err
				}
				a.logger.Info("migrations rolled back", "steps", steps)
				return nil
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the applied migration version",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				s, err := a.openSQLStore(cmd.Context())
				if err != nil {
					return err
				}
				defer s.Close()

				version, dirty, err := s.MigrationVersion()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "version: %d\ndirty: %t\n", version, dirty)
				return nil
			},
		},
	)
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "cbb-scraper version %s\n", version)
		},
	}
}
