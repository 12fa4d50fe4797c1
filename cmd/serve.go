package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/uptrace/bun/migrate"

	"github.com/bizdir/bizdirapi/internal/auth"
	"github.com/bizdir/bizdirapi/internal/db/bunx"
	"github.com/bizdir/bizdirapi/internal/migrations"
	"github.com/bizdir/bizdirapi/internal/repository"
	"github.com/bizdir/bizdirapi/internal/server"
	"github.com/bizdir/bizdirapi/internal/services/directory"
	"github.com/bizdir/bizdirapi/internal/services/iam"
	"github.com/bizdir/bizdirapi/internal/storage"
)

var serveAutoMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().BoolVar(&serveAutoMigrate, "auto-migrate", true, "apply pending migrations before serving")
	rootCmd.AddCommand(serveCmd)
}

func runServe(ctx context.Context) error {
	db, err := bunx.NewDB(cfg.DatabaseURL, cfg.MaxDBConnections)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer bunx.Close(db)

	if serveAutoMigrate {
		migrator := migrate.NewMigrator(db, migrations.Migrations)
		if err := migrator.Init(ctx); err != nil {
			return fmt.Errorf("init migrations: %w", err)
		}
		group, err := migrator.Migrate(ctx)
		if err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
		if group.IsZero() {
			log.Printf("INFO: database schema is up to date")
		} else {
			log.Printf("INFO: migrated to %s", group)
		}
	}

	enforcer, err := auth.InitEnforcer(db)
	if err != nil {
		return fmt.Errorf("init enforcer: %w", err)
	}

	store, err := storage.NewLocalImageStore(cfg.ImageStoragePath)
	if err != nil {
		return fmt.Errorf("init image storage: %w", err)
	}

	iamSvc := iam.NewService(repository.NewBunUserRepository(db), cfg.SessionSecret, cfg.SessionMaxAge)
	dirSvc := directory.NewService(db)

	srv, err := server.New(cfg, iamSvc, dirSvc, store, enforcer)
	if err != nil {
		return fmt.Errorf("build server: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-stop:
		log.Printf("INFO: received %s, shutting down", sig)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
