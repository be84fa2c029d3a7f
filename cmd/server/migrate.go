package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/yukikurage/shift-roster-api/internal/database"
)

func newMigrateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply schema migrations and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := openDatabase(opts.cfg); err != nil {
				return err
			}
			log.Info().Msg("Migrations applied")
			return nil
		},
	}
}

func newSeedCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create or refresh the default admin and staff accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDatabase(opts.cfg)
			if err != nil {
				return err
			}
			return database.Seed(cmd.Context(), db, database.DefaultSeedUsers)
		},
	}
}
