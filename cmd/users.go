package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/uptrace/bun/migrate"

	"github.com/bizdir/bizdirapi/internal/db/bunx"
	"github.com/bizdir/bizdirapi/internal/db/models"
	"github.com/bizdir/bizdirapi/internal/migrations"
	"github.com/bizdir/bizdirapi/internal/repository"
	"github.com/bizdir/bizdirapi/internal/services/iam"
)

var (
	userName     string
	userEmail    string
	userPassword string
	userRole     string
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage user accounts",
}

// usersCreateCmd exists so an operator can create the first admin (or any
// later account) without going through the API.
var usersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user account",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := bunx.NewDB(cfg.DatabaseURL, cfg.MaxDBConnections)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer bunx.Close(db)

		migrator := migrate.NewMigrator(db, migrations.Migrations)
		if err := migrator.Init(cmd.Context()); err != nil {
			return err
		}
		if _, err := migrator.Migrate(cmd.Context()); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}

		svc := iam.NewService(repository.NewBunUserRepository(db), cfg.SessionSecret, cfg.SessionMaxAge)
		user, err := svc.CreateUser(cmd.Context(), iam.CreateUserInput{
			Name:     userName,
			Email:    userEmail,
			Password: userPassword,
			Role:     models.Role(userRole),
		})
		if err != nil {
			return fmt.Errorf("create user: %w", err)
		}

		fmt.Printf("created user %s (%s) with role %s\n", user.Email, user.ID, user.Role)
		return nil
	},
}

func init() {
	usersCreateCmd.Flags().StringVar(&userName, "name", "", "display name")
	usersCreateCmd.Flags().StringVar(&userEmail, "email", "", "login email")
	usersCreateCmd.Flags().StringVar(&userPassword, "password", "", "login password (min 8 characters)")
	usersCreateCmd.Flags().StringVar(&userRole, "role", string(models.RoleGuest), "role: admin, manager or guest")
	_ = usersCreateCmd.MarkFlagRequired("name")
	_ = usersCreateCmd.MarkFlagRequired("email")
	_ = usersCreateCmd.MarkFlagRequired("password")

	usersCmd.AddCommand(usersCreateCmd)
	rootCmd.AddCommand(usersCmd)
}
