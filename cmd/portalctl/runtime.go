package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/Black-And-White-Club/hackathon-portal/app"
	"github.com/Black-And-White-Club/hackathon-portal/app/observability/attr"
	"github.com/Black-And-White-Club/hackathon-portal/config"
	"github.com/urfave/cli/v2"
)

// withApp boots the portal client, waits for the session check, runs fn and
// shuts down.
func withApp(c *cli.Context, fn func(ctx context.Context, a *app.App) error) error {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if addr := c.String("metrics-addr"); addr != "" {
		cfg.Observability.MetricsAddress = addr
	}

	ctx := c.Context
	a, err := app.NewApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			a.Logger.Warn("Shutdown incomplete", attr.Error(err))
		}
	}()

	if addr := cfg.Observability.MetricsAddress; addr != "" {
		metricsCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		go func() {
			if err := a.Metrics.Serve(metricsCtx, addr); err != nil {
				a.Logger.Error("Metrics server failed", attr.Error(err))
			}
		}()
	}

	a.Session.InitAuth(ctx)
	return fn(ctx, a)
}

// fetchErr turns the resource store's recorded error into a command failure.
// Reads never return errors themselves.
func fetchErr(a *app.App) error {
	if msg := a.Resources.Error(); msg != "" {
		return errors.New(msg)
	}
	return nil
}

func requireLogin(a *app.App) error {
	if !a.Session.State().IsAuthenticated {
		return errors.New("not logged in; run portalctl login first")
	}
	return nil
}
