package sessionservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Black-And-White-Club/hackathon-portal/app/eventbus"
	"github.com/Black-And-White-Club/hackathon-portal/app/models"
	"github.com/Black-And-White-Club/hackathon-portal/app/modules/gateway"
	sessiondomain "github.com/Black-And-White-Club/hackathon-portal/app/modules/session/domain"
	"github.com/Black-And-White-Club/hackathon-portal/app/observability"
	"github.com/Black-And-White-Club/hackathon-portal/app/observability/attr"
	"github.com/Black-And-White-Club/hackathon-portal/internal/kvstore"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"
)

const storeName = "session"

// Store is the single source of truth for who is logged in. It is the only
// writer of the persisted session snapshot. Gateway calls are never made while
// holding mu.
type Store struct {
	mu    sync.RWMutex
	state sessiondomain.State

	gateway gateway.Gateway
	persist kvstore.Store
	bus     eventbus.Notifier
	logger  *slog.Logger
	tracer  trace.Tracer
	metrics observability.StoreMetrics

	bootstrap singleflight.Group
	ready     chan struct{}
	readyOnce sync.Once

	clearersMu sync.Mutex
	clearers   []CacheClearer
}

// NewStore creates a logged-out, unchecked session. Call Restore to load the
// persisted snapshot. persist and bus may be nil.
func NewStore(
	gw gateway.Gateway,
	persist kvstore.Store,
	bus eventbus.Notifier,
	logger *slog.Logger,
	tracer trace.Tracer,
	metrics observability.StoreMetrics,
) *Store {
	if logger == nil {
		logger = observability.NopLogger()
	}
	if tracer == nil {
		tracer = observability.NoopTracer()
	}
	if metrics == nil {
		metrics = observability.NoOpMetrics{}
	}
	return &Store{
		gateway: gw,
		persist: persist,
		bus:     bus,
		logger:  logger,
		tracer:  tracer,
		metrics: metrics,
		ready:   make(chan struct{}),
	}
}

// State returns a copy of the current session.
func (s *Store) State() sessiondomain.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Role returns the role of the logged-in identity, if any.
func (s *Store) Role() (models.Role, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Role()
}

// Ready is closed once the session has been checked, by bootstrap or by an
// explicit login or logout.
func (s *Store) Ready() <-chan struct{} {
	return s.ready
}

// RegisterCacheClearer adds c to the caches emptied on logout.
func (s *Store) RegisterCacheClearer(c CacheClearer) {
	s.clearersMu.Lock()
	defer s.clearersMu.Unlock()
	s.clearers = append(s.clearers, c)
}

func (s *Store) clearCaches(ctx context.Context) {
	s.clearersMu.Lock()
	clearers := append([]CacheClearer(nil), s.clearers...)
	s.clearersMu.Unlock()

	for _, c := range clearers {
		c.Clear(ctx)
	}
}

// replace swaps the state, persists it and notifies listeners. When guard is
// set the swap only happens if guard accepts the current state.
func (s *Store) replace(ctx context.Context, next sessiondomain.State, field string, guard func(sessiondomain.State) bool) (bool, error) {
	s.mu.Lock()
	if guard != nil && !guard(s.state) {
		s.mu.Unlock()
		return false, nil
	}
	s.state = next.Clone()
	s.mu.Unlock()

	if next.SessionChecked {
		s.readyOnce.Do(func() { close(s.ready) })
	}

	err := s.save(ctx, next)
	if s.bus != nil {
		s.bus.Notify(ctx, eventbus.TopicSession, eventbus.Change{Source: storeName, Field: field})
	}
	return true, err
}

func (s *Store) save(ctx context.Context, state sessiondomain.State) error {
	if s.persist == nil {
		return nil
	}
	raw, err := sessiondomain.SnapshotOf(state).Encode()
	if err != nil {
		return fmt.Errorf("encode session snapshot: %w", err)
	}
	if err := s.persist.Put(ctx, sessiondomain.SnapshotKey, raw); err != nil {
		s.logger.WarnContext(ctx, "Failed to persist session", attr.Error(err))
		return fmt.Errorf("persist session snapshot: %w", err)
	}
	return nil
}

// withTelemetry wraps a session action with a span, metrics and panic recovery.
func (s *Store) withTelemetry(ctx context.Context, action string, op func(ctx context.Context) error) (err error) {
	ctx, span := s.tracer.Start(ctx, "session."+action, trace.WithAttributes(
		attribute.String("operation", action),
	))
	defer span.End()

	start := time.Now()
	defer func() {
		s.metrics.RecordDuration(ctx, storeName, action, time.Since(start))
	}()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", action, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.String("operation", action),
				attr.RequestID(ctx),
				attr.Error(err),
			)
		}
		outcome := "success"
		if err != nil {
			outcome = "failure"
			span.RecordError(err)
		}
		s.metrics.RecordAction(ctx, storeName, action, outcome)
	}()

	return op(ctx)
}

func errorKind(err error) string {
	if kind, ok := gateway.KindOf(err); ok {
		return string(kind)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return "canceled"
	}
	return "unknown"
}

var _ Service = (*Store)(nil)
