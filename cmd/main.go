package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/suteetoe/kazi/internal/model"
	"github.com/suteetoe/kazi/internal/server"
	"github.com/suteetoe/kazi/internal/store"
	"github.com/suteetoe/kazi/pkg/config"
	"github.com/suteetoe/kazi/pkg/database"
	"github.com/suteetoe/kazi/pkg/jwtutil"
	"github.com/suteetoe/kazi/pkg/logger"
	"github.com/suteetoe/kazi/pkg/password"
	"github.com/suteetoe/kazi/prometheus"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const version = "0.1.0"

const shutdownTimeout = 10 * time.Second

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	serve := newServeCommand()
	root := &cobra.Command{
		Use:           "kazi",
		Short:         "Multi-tenant deal pipeline API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve.RunE,
	}
	root.AddCommand(serve, newMigrateCommand(), newCreateAdminCommand())
	return root
}

// bootstrap loads configuration, builds the logger and opens the pool.
func bootstrap() (*config.Config, *zap.Logger, *gorm.DB, error) {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.New(cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	log.Info("Configuration loaded", cfg.LogConfig()...)

	db, err := database.Open(&cfg.DB)
	if err != nil {
		log.Error("Failed to initialize database", zap.Error(err))
		return nil, nil, nil, err
	}
	log.Info("Database connection established")

	if err := database.Migrate(db); err != nil {
		_ = database.Close(db)
		log.Error("Failed to migrate database", zap.Error(err))
		return nil, nil, nil, err
	}
	return cfg, log, db, nil
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck

			tokens, err := jwtutil.New(cfg.JWT.SigningKey, cfg.JWT.Expiration())
			if err != nil {
				_ = database.Close(db)
				return err
			}
			prometheus.SetInfo(version)

			e := server.New(server.Deps{
				Config: cfg,
				Logger: log,
				Store:  store.New(db),
				Tokens: tokens,
			})

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				log.Info("Starting server", zap.String("port", cfg.Server.Port), zap.String("version", version))
				if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			var serveErr error
			select {
			case <-ctx.Done():
				log.Info("Shutting down server")
			case serveErr = <-errCh:
				if serveErr != nil {
					log.Error("Server stopped", zap.Error(serveErr))
				}
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := e.Shutdown(shutdownCtx); err != nil {
				log.Error("Failed to shut down server", zap.Error(err))
			}
			if err := database.Close(db); err != nil {
				log.Error("Failed to close database", zap.Error(err))
			}
			return serveErr
		},
	}
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck
			log.Info("Database migrated")
			return database.Close(db)
		},
	}
}

func newCreateAdminCommand() *cobra.Command {
	var (
		in           model.UserCreate
		organization string
	)
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an Owner account, optionally with its organization",
		RunE: func(cmd *cobra.Command, args []string) error {
			if in.Username == "" || in.Email == "" || len(in.Password) < 8 {
				return errors.New("--username, --email and a --password of at least 8 characters are required")
			}
			if len(in.Password) > password.MaxBytes {
				return fmt.Errorf("--password must be at most %d bytes", password.MaxBytes)
			}

			_, log, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck
			defer database.Close(db) //nolint:errcheck

			user, err := store.New(db).CreateOwner(cmd.Context(), in, organization)
			if err != nil {
				log.Error("Failed to create admin", zap.Error(err))
				return err
			}
			log.Info("Admin created",
				zap.Uint("user_id", user.ID),
				zap.String("username", user.Username),
				zap.Uintp("organization_id", user.OrganizationID))
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Username, "username", "", "admin username")
	cmd.Flags().StringVar(&in.Email, "email", "", "admin email")
	cmd.Flags().StringVar(&in.Password, "password", "", "admin password")
	cmd.Flags().StringVar(&organization, "organization", "", "organization name, created if missing")
	return cmd
}
