// Package cli holds the tangod cobra commands.
package cli

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/five82/tango/internal/config"
	"github.com/five82/tango/internal/logging"
	"github.com/five82/tango/internal/store"
)

// NewRootCommand builds the tangod command tree.
func NewRootCommand() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "tangod",
		Short:         "Vocabulary flashcard API server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to tangod.toml")

	root.AddCommand(
		newServeCommand(&configPath),
		newMigrateCommand(&configPath),
		newImportCommand(&configPath),
	)
	return root
}

// runtime is what every command needs once configuration is loaded.
type runtime struct {
	cfg    *config.ServerConfig
	logger *zap.Logger
	db     *sqlx.DB
}

func bootstrap(ctx context.Context, configPath string) (*runtime, func(), error) {
	cfg, err := config.LoadServer(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		return nil, nil, err
	}

	db, err := store.Open(ctx, cfg.Database.Driver, cfg.DSN(), logger)
	if err != nil {
		_ = logger.Sync()
		return nil, nil, fmt.Errorf("db connect: %w", err)
	}

	cleanup := func() {
		if err := db.Close(); err != nil {
			logger.Warn("close database", zap.Error(err))
		}
		_ = logger.Sync()
	}
	return &runtime{cfg: cfg, logger: logger, db: db}, cleanup, nil
}
