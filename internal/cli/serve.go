package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/five82/tango/internal/auth"
	"github.com/five82/tango/internal/server"
	"github.com/five82/tango/internal/service"
	"github.com/five82/tango/internal/store"
	"github.com/five82/tango/internal/translate"
)

func newServeCommand(configPath *string) *cobra.Command {
	var skipMigrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			rt, cleanup, err := bootstrap(ctx, *configPath)
			if err != nil {
				return err
			}
			defer cleanup()

			if !skipMigrate {
				if err := store.Migrate(rt.db, rt.logger); err != nil {
					return err
				}
			}

			verifier, err := auth.NewStaticTokens(rt.cfg.Auth.Users)
			if err != nil {
				return fmt.Errorf("auth config: %w", err)
			}
			if len(rt.cfg.Auth.Users) == 0 {
				rt.logger.Warn("no auth.users configured; every data request will be rejected")
			}

			var translator translate.Translator
			if rt.cfg.Translator.Key != "" {
				client, err := translate.NewClient(translate.Config{
					Endpoint: rt.cfg.Translator.Endpoint,
					Key:      rt.cfg.Translator.Key,
					Region:   rt.cfg.Translator.Region,
				}, rt.logger)
				if err != nil {
					return err
				}
				translator = client
			} else {
				rt.logger.Info("translator.key not set; /translate is disabled")
			}

			st := store.New(rt.db)
			srv := server.New(server.Config{
				Addr:           rt.cfg.Addr(),
				ReadTimeout:    rt.cfg.Server.ReadTimeout,
				WriteTimeout:   rt.cfg.Server.WriteTimeout,
				AllowedOrigins: rt.cfg.CORS.AllowedOrigins,
			}, server.Deps{
				Folders:    service.NewFolderService(st, rt.logger),
				Words:      service.NewWordService(st, rt.logger),
				Translator: translator,
				Verifier:   verifier,
				Pinger:     rt.db,
				Logger:     rt.logger,
			})

			g, gctx := errgroup.WithContext(ctx)
			g.Go(srv.ListenAndServe)
			g.Go(func() error {
				<-gctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), rt.cfg.Server.ShutdownTimeout)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					rt.logger.Error("graceful shutdown failed", zap.Error(err))
					return err
				}
				return nil
			})
			return g.Wait()
		},
	}
	cmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "do not apply migrations on start")
	return cmd
}

func newMigrateCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, cleanup, err := bootstrap(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer cleanup()
			return store.Migrate(rt.db, rt.logger)
		},
	}
}
