package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/gleaner/pkg/cli/config"
	controller "github.com/m-mizutani/gleaner/pkg/controller/http"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg    config.Server
		catalogCfg   config.Catalog
		harvestCfg   config.Harvest
		storageCfg   config.Storage
		firestoreCfg config.Firestore
		slackCfg     config.Slack
		authCfg      config.Auth
	)

	flags := append(serverCfg.Flags(), catalogCfg.Flags()...)
	flags = append(flags, harvestCfg.Flags()...)
	flags = append(flags, storageCfg.Flags()...)
	flags = append(flags, firestoreCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)
	flags = append(flags, authCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting gleaner server",
				slog.String("addr", serverCfg.Addr),
				slog.String("catalog_url", catalogCfg.BaseURL),
			)

			harvestUC, err := buildHarvestUseCase(ctx, &catalogCfg, &harvestCfg, &storageCfg, &firestoreCfg, &slackCfg)
			if err != nil {
				return err
			}

			serverOptions := []controller.Option{
				controller.WithAddr(serverCfg.Addr),
			}
			if authCfg.Enabled() {
				authn, err := controller.NewAuthenticator(ctx, authCfg.JWKSURL, authCfg.Issuer, authCfg.Audience)
				if err != nil {
					return goerr.Wrap(err, "failed to configure authentication")
				}
				serverOptions = append(serverOptions, controller.WithAuthenticator(authn))
			}

			server, err := controller.NewServer(ctx, harvestUC, serverOptions...)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			// Start server in goroutine
			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			// Wait for interrupt signal
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			// Graceful shutdown
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
