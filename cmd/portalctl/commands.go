package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"docportal/internal/auth"
	"docportal/internal/config"
	"docportal/internal/database"
	"docportal/internal/database/migration"
	"docportal/internal/logger"
	"docportal/internal/repository/postgres"
	"docportal/internal/service"
)

// Allow override for testing.
var (
	openDB = func(ctx context.Context, cfg *config.AppConfig, log *logger.Logger) (*sql.DB, error) {
		return database.NewPostgres(ctx, cfg.Database, log)
	}
	runMigrations = migration.Run
)

// newRootCommand returns the root command with all subcommands attached.
func newRootCommand(ctx context.Context, cfg *config.AppConfig, log *logger.Logger) *cobra.Command {
	cobra.EnableCommandSorting = false
	root := &cobra.Command{
		Use:          "portalctl",
		Short:        "Maintenance tasks for the document portal.",
		SilenceUsage: true,
	}
	root.AddCommand(newMigrateCommand(ctx, cfg, log))
	root.AddCommand(newCreateUserCommand(ctx, cfg, log))
	root.AddCommand(newRefreshStatusCommand(ctx, cfg, log))
	return root
}

func newMigrateCommand(ctx context.Context, cfg *config.AppConfig, log *logger.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dsn, err := database.BuildPostgresDSN(cfg.Database)
			if err != nil {
				return err
			}
			return runMigrations(ctx, dsn, log)
		},
	}
}

func newCreateUserCommand(ctx context.Context, cfg *config.AppConfig, log *logger.Logger) *cobra.Command {
	var username, password, fullName, email string

	cmd := &cobra.Command{
		Use:     "create-user",
		Short:   "Create an account that can sign in",
		Example: "$ PORTALCTL_PASSWORD=s3cret portalctl create-user --username ana --full-name \"Ana Diaz\"",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				password = os.Getenv("PORTALCTL_PASSWORD")
			}
			if password == "" {
				return errors.New("a password is required: use --password or PORTALCTL_PASSWORD")
			}

			db, err := openDB(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer db.Close()

			svc := service.NewAuthService(postgres.NewUserPostgres(db), nil, auth.NewPasswordHasher(),
				auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL), auth.NewMemoryBlacklist(), log)
			u, err := svc.CreateUser(ctx, username, password, fullName, email)
			if err != nil {
				return fmt.Errorf("create user: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created user %q with id %d\n", u.Username, u.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "login name (required)")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password, defaults to $PORTALCTL_PASSWORD")
	cmd.Flags().StringVar(&fullName, "full-name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "contact email")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}

func newRefreshStatusCommand(ctx context.Context, cfg *config.AppConfig, log *logger.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh-status",
		Short: "Recompute the stored expiration status of every document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := openDB(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer db.Close()

			loc := cfg.Location()
			// Refreshing statuses never touches stored objects.
			docs := service.NewDocumentService(nil, postgres.NewDocumentPostgres(db), nil,
				service.WithClock(func() time.Time { return time.Now().In(loc) }),
				service.WithLogger(log),
			)
			n, err := docs.RefreshStatuses(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated %d documents\n", n)
			return nil
		},
	}
}
