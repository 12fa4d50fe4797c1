package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bizdir/bizdirapi/internal/db/bunx"
	"github.com/bizdir/bizdirapi/internal/migrations"
)

var iamCmd = &cobra.Command{
	Use:   "iam",
	Short: "Manage access control state",
}

// iamSeedCmd re-inserts any missing policy gates. Normally the schema
// migration handles this; the command covers restored or hand-edited
// databases.
var iamSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the RBAC policy table",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := bunx.NewDB(cfg.DatabaseURL, cfg.MaxDBConnections)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer bunx.Close(db)

		if err := migrations.SeedRBACPolicies(cmd.Context(), db); err != nil {
			return err
		}
		fmt.Println("rbac policies seeded")
		return nil
	},
}

func init() {
	iamCmd.AddCommand(iamSeedCmd)
	rootCmd.AddCommand(iamCmd)
}
