package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"

	"github.com/gofiber/fiber/v3"
	"github.com/jmoiron/sqlx"
	"github.com/joshuarp/msgcontext-gateway/internal/shared/cache"
	"github.com/joshuarp/msgcontext-gateway/internal/shared/config"
	"go.uber.org/fx"
)

func registerLifecycle(
	lifecycle fx.Lifecycle,
	app *fiber.App,
	cfg config.ConfigProvider,
	logger *slog.Logger,
	resources lifecycleResourcesIn,
) {
	port := cfg.GetInt("server.port")
	if port == 0 {
		port = 8080
	}
	address := fmt.Sprintf(":%d", port)
	var serveErrCh chan error

	lifecycle.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			listener, err := net.Listen("tcp", address)
			if err != nil {
				return fmt.Errorf("app: failed to bind server address %s: %w", address, err)
			}

			serveErrCh = make(chan error, 1)
			go func() {
				err := app.Listener(listener)
				if err != nil && !errors.Is(err, net.ErrClosed) {
					logger.Error("fiber server stopped unexpectedly", "error", err)
				}
				serveErrCh <- err
			}()

			logger.Info("fiber server started", "address", address)

			if cfg.Source() == "yaml" {
				cfg.OnChange(func() {
					logger.Warn("config file changed; message context and dedup settings apply on restart")
				})
				cfg.WatchChanges()
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			var shutdownErrors []error

			cfg.StopWatching()

			if err := app.ShutdownWithContext(ctx); err != nil {
				shutdownErrors = append(shutdownErrors, err)
			}

			if serveErrCh != nil {
				select {
				case err := <-serveErrCh:
					if err != nil && !errors.Is(err, net.ErrClosed) {
						shutdownErrors = append(shutdownErrors, err)
					}
				case <-ctx.Done():
					shutdownErrors = append(shutdownErrors, ctx.Err())
				}
			}

			if resources.InboxDB != nil {
				if err := resources.InboxDB.Close(); err != nil {
					shutdownErrors = append(shutdownErrors, err)
				}
			}

			if resources.Backend != nil {
				if err := resources.Backend.Close(); err != nil {
					shutdownErrors = append(shutdownErrors, err)
				}
			}

			if len(shutdownErrors) > 0 {
				return errors.Join(shutdownErrors...)
			}

			logger.Info("fiber server shutdown completed")
			return nil
		},
	})
}

type lifecycleResourcesIn struct {
	fx.In

	InboxDB *sqlx.DB      `name:"db_inbox" optional:"true"`
	Backend cache.Backend `optional:"true"`
}
