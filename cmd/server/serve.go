package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/yukikurage/shift-roster-api/internal/router"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}
}

func runServe(cmd *cobra.Command, opts *rootOptions) error {
	cfg := opts.cfg

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}

	store, err := router.NewSessionStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to create session store: %w", err)
	}

	r := router.New(cfg, db, store)

	addr := ":" + cfg.HTTPPort
	log.Info().Str("addr", addr).Str("db_driver", cfg.DBDriver).Msg("Server starting")
	if err := r.Run(addr); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
