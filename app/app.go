package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/Black-And-White-Club/hackathon-portal/app/eventbus"
	"github.com/Black-And-White-Club/hackathon-portal/app/modules/gateway/infrastructure/httpclient"
	resourcestore "github.com/Black-And-White-Club/hackathon-portal/app/modules/resources/application"
	sessionservice "github.com/Black-And-White-Club/hackathon-portal/app/modules/session/application"
	"github.com/Black-And-White-Club/hackathon-portal/app/observability"
	"github.com/Black-And-White-Club/hackathon-portal/app/observability/attr"
	"github.com/Black-And-White-Club/hackathon-portal/config"
	"github.com/Black-And-White-Club/hackathon-portal/internal/kvstore"
	"github.com/Black-And-White-Club/hackathon-portal/internal/natsconn"
	"github.com/nats-io/nats.go"
)

// App wires the gateway client and the two stores for one portal profile.
type App struct {
	Config    *config.Config
	Logger    *slog.Logger
	Metrics   *observability.Metrics
	EventBus  *eventbus.EventBus
	Client    *httpclient.Client
	Session   *sessionservice.Store
	Resources *resourcestore.Store

	nc *nats.Conn
}

// NewApp initializes the application from cfg. The persisted credential and
// session snapshot are restored, but the session is not verified; callers
// decide when to run InitAuth.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := observability.NewLogger(observability.LogConfig{
		Level:       cfg.Observability.LogLevel,
		Format:      cfg.Observability.LogFormat,
		ServiceName: cfg.Observability.ServiceName,
		Environment: cfg.Observability.Environment,
	})

	metrics, err := observability.NewMetrics("portal")
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	a := &App{
		Config:  cfg,
		Logger:  logger,
		Metrics: metrics,
	}

	store, err := a.openStore(ctx)
	if err != nil {
		return nil, err
	}

	client, err := httpclient.NewClient(httpclient.Config{
		BaseURL:           cfg.API.BaseURL,
		Timeout:           cfg.API.Timeout,
		CookieName:        cfg.API.CookieName,
		RequestsPerSecond: cfg.API.RequestsPerSecond,
		Burst:             cfg.API.Burst,
	}, store, logger, observability.Tracer("portal.gateway"), metrics.Gateway)
	if err != nil {
		a.closeNATS()
		return nil, fmt.Errorf("failed to create api client: %w", err)
	}
	if err := client.LoadCredentials(ctx); err != nil {
		logger.WarnContext(ctx, "Discarding unreadable credential", attr.Error(err))
	}

	bus := eventbus.NewEventBus(logger)
	session := sessionservice.NewStore(client, store, bus, logger, observability.Tracer("portal.session"), metrics.Store)
	if err := session.Restore(ctx); err != nil {
		logger.WarnContext(ctx, "Failed to restore session snapshot", attr.Error(err))
	}
	resources := resourcestore.NewStore(client, session, bus, logger, observability.Tracer("portal.resources"), metrics.Store)

	session.RegisterCacheClearer(resources)
	client.OnUnauthorized(session.ForceLogout)

	a.EventBus = bus
	a.Client = client
	a.Session = session
	a.Resources = resources

	logger.InfoContext(ctx, "Portal client initialized",
		attr.String("api", cfg.API.BaseURL),
		attr.String("store", cfg.Store.Backend),
		attr.String("profile", cfg.Store.Profile),
	)
	return a, nil
}

func (a *App) openStore(ctx context.Context) (kvstore.Store, error) {
	cfg := a.Config
	switch cfg.Store.Backend {
	case config.StoreMemory:
		return kvstore.NewMemory(), nil
	case config.StoreFile:
		store, err := kvstore.NewFile(filepath.Join(cfg.Store.Dir, cfg.Store.Profile))
		if err != nil {
			return nil, fmt.Errorf("failed to open state directory: %w", err)
		}
		return store, nil
	case config.StoreNATS:
		nc, err := natsconn.Connect(natsconn.Options{
			URL:      cfg.NATS.URL,
			NKeySeed: cfg.NATS.NKeySeed,
			Name:     cfg.Observability.ServiceName,
			Timeout:  cfg.API.Timeout,
		}, a.Logger)
		if err != nil {
			return nil, err
		}
		a.nc = nc
		store, err := kvstore.OpenJetStream(ctx, nc, cfg.NATS.Bucket, cfg.Store.Profile)
		if err != nil {
			a.closeNATS()
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

func (a *App) closeNATS() {
	if a.nc != nil {
		a.nc.Close()
		a.nc = nil
	}
}

// Close releases the event bus and the NATS connection.
func (a *App) Close() error {
	var errs []error
	if a.EventBus != nil {
		if err := a.EventBus.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close event bus: %w", err))
		}
	}
	a.closeNATS()
	return errors.Join(errs...)
}
