package main

import (
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"vehicle-app/internal/config"
	"vehicle-app/internal/database"
)

var (
	loadDatabaseURL = config.LoadDatabaseURL
	rollbackAllFn   = database.RollbackAll
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return migrateWith(cmd, "run migrations", runMigrationsFn)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back every migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return migrateWith(cmd, "rollback migrations", rollbackAllFn)
		},
	})
	return cmd
}

func migrateWith(cmd *cobra.Command, operation string, step func(string) error) error {
	url, err := loadDatabaseURL()
	if err != nil {
		return oops.Code("CONFIG_INVALID").Wrap(err)
	}
	if err := step(url); err != nil {
		return oops.Code("MIGRATION_FAILED").With("operation", operation).Wrap(err)
	}
	cmd.Println(operation + ": done")
	return nil
}
