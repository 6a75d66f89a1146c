package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"beautrip/internal/adapters/storage"
	"beautrip/internal/config"
	"beautrip/internal/logging"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		slog.Error("command_failed", "error", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var envFile string
	root := &cobra.Command{
		Use:           "beautrip",
		Short:         "BeauTrip clinic and treatment discovery server",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file read before BEAUTRIP_* variables")

	load := func() (config.Config, error) {
		cfg, err := config.Load(envFile)
		if err != nil {
			return config.Config{}, err
		}
		logging.Setup(cfg.LogLevel, cfg.LogFormat)
		return cfg, nil
	}

	root.AddCommand(newServeCmd(load), newMigrateCmd(load), newSeedCmd(load))
	return root
}

// openDB opens and migrates the local database.
func openDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	db, err := storage.OpenSQLite(ctx, cfg.DBPath)
	if err != nil {
		return nil, err
	}
	if err := storage.MigrateDB(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

func newMigrateCmd(load func() (config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			db, err := openDB(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer db.Close()
			v, err := storage.SchemaVersion(cmd.Context(), db)
			if err != nil {
				return err
			}
			slog.Info("schema_migrated", "db", cfg.DBPath, "version", v)
			return nil
		},
	}
}
