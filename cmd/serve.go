package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/desertthunder/condoriano/internal/connector"
	"github.com/desertthunder/condoriano/internal/server"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
)

// Serve runs the webhook server until SIGINT or SIGTERM, then drains in-flight deliveries.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	if cmd.IsSet("host") {
		r.config.Server.Host = cmd.String("host")
	}
	if cmd.IsSet("port") {
		r.config.Server.Port = int(cmd.Int("port"))
	}
	if err := r.config.Validate(); err != nil {
		return err
	}

	if err := r.open(ctx); err != nil {
		return err
	}

	replier, err := connector.NewFromConfig(r.config.Credentials.Connector, r.logger)
	if err != nil {
		return fmt.Errorf("failed to create connector: %w", err)
	}
	if !replier.Authenticated() {
		r.logger.Warn("connector credentials not set, replies will be sent unauthenticated")
	}

	srv := server.New(server.Opts{
		Addr:            r.config.Server.Addr(),
		BotName:         r.config.Bot.Name,
		WebhookSecret:   r.config.Server.WebhookSecret,
		DeliveryTimeout: r.config.Server.Timeout(),
		Dispatcher:      r.router,
		Replier:         replier,
		Logger:          r.logger,
	})

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.ListenAndServe)
	g.Go(func() error {
		<-gctx.Done()
		r.logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), r.config.Server.Timeout()+5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
