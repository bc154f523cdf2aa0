package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-pass-vault/internal/store"
)

func (c *cli) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		Long: `Connect to the database configured by STORAGE_DB_DRIVER and
STORAGE_DB_DATABASE_URI and apply all pending schema migrations.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.cfg.ValidateStorage(); err != nil {
				return err
			}

			db, err := store.NewConnect(cmd.Context(), c.cfg.Storage.DB, c.logger)
			if err != nil {
				return err
			}
			defer db.Close()

			if err = db.Migrate(); err != nil {
				return fmt.Errorf("error applying migrations: %w", err)
			}

			success(cmd.OutOrStdout(), "migrations applied to %s", color.CyanString(c.cfg.Storage.DB.Driver))
			return nil
		},
	}
}
