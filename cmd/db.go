package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"

	"github.com/bizdir/bizdirapi/internal/db/bunx"
	"github.com/bizdir/bizdirapi/internal/migrations"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage the database schema",
}

func withMigrator(fn func(cmd *cobra.Command, migrator *migrate.Migrator, db *bun.DB) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		db, err := bunx.NewDB(cfg.DatabaseURL, cfg.MaxDBConnections)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer bunx.Close(db)

		return fn(cmd, migrate.NewMigrator(db, migrations.Migrations), db)
	}
}

var dbInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the migration bookkeeping tables",
	RunE: withMigrator(func(cmd *cobra.Command, migrator *migrate.Migrator, _ *bun.DB) error {
		return migrator.Init(cmd.Context())
	}),
}

var dbMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending migrations",
	RunE: withMigrator(func(cmd *cobra.Command, migrator *migrate.Migrator, _ *bun.DB) error {
		if err := migrator.Init(cmd.Context()); err != nil {
			return err
		}
		group, err := migrator.Migrate(cmd.Context())
		if err != nil {
			return err
		}
		if group.IsZero() {
			fmt.Println("there are no new migrations to run (database is up to date)")
			return nil
		}
		fmt.Printf("migrated to %s\n", group)
		return nil
	}),
}

var dbRollbackCmd = &cobra.Command{
	Use:   "rollback",
	Short: "Roll back the last migration group",
	RunE: withMigrator(func(cmd *cobra.Command, migrator *migrate.Migrator, _ *bun.DB) error {
		group, err := migrator.Rollback(cmd.Context())
		if err != nil {
			return err
		}
		if group.IsZero() {
			fmt.Println("there are no groups to roll back")
			return nil
		}
		fmt.Printf("rolled back %s\n", group)
		return nil
	}),
}

var dbStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show migration status",
	RunE: withMigrator(func(cmd *cobra.Command, migrator *migrate.Migrator, _ *bun.DB) error {
		ms, err := migrator.MigrationsWithStatus(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("migrations: %s\n", ms)
		fmt.Printf("unapplied migrations: %s\n", ms.Unapplied())
		fmt.Printf("last migration group: %s\n", ms.LastGroup())
		return nil
	}),
}

func init() {
	dbCmd.AddCommand(dbInitCmd, dbMigrateCmd, dbRollbackCmd, dbStatusCmd)
	rootCmd.AddCommand(dbCmd)
}
