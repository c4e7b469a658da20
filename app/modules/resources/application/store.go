// Package resourcestore caches the remote resources visible to the logged-in
// identity and exposes the role-gated fetch and mutate actions over them.
package resourcestore

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/Black-And-White-Club/hackathon-portal/app/eventbus"
	"github.com/Black-And-White-Club/hackathon-portal/app/models"
	"github.com/Black-And-White-Club/hackathon-portal/app/modules/gateway"
	"github.com/Black-And-White-Club/hackathon-portal/app/modules/resources/infrastructure/parsers"
	sessiondomain "github.com/Black-And-White-Club/hackathon-portal/app/modules/session/domain"
	"github.com/Black-And-White-Club/hackathon-portal/app/observability"
	"github.com/Black-And-White-Club/hackathon-portal/app/observability/attr"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const storeName = "resources"

// Session is the part of the session store the resource store depends on.
// InitAuth must be idempotent; every action awaits it before reading the role.
type Session interface {
	InitAuth(ctx context.Context) sessiondomain.State
}

// Store holds one Cache, replaced copy-on-write. Actions may run concurrently;
// the lock is only held while swapping the cache, never across a gateway call,
// and the response resolved last wins.
type Store struct {
	mu    sync.RWMutex
	cache Cache
	// epoch advances on Clear. Responses to requests issued under an older
	// epoch are dropped so one identity's data never lands in the next one's cache.
	epoch uint64

	gateway gateway.Gateway
	session Session
	parsers parsers.ParserFactory
	bus     eventbus.Notifier
	logger  *slog.Logger
	tracer  trace.Tracer
	metrics observability.StoreMetrics
}

// NewStore creates an empty resource store. bus may be nil.
func NewStore(
	gw gateway.Gateway,
	session Session,
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
		session: session,
		parsers: parsers.NewFactory(),
		bus:     bus,
		logger:  logger,
		tracer:  tracer,
		metrics: metrics,
	}
}

// Snapshot returns the current cache.
func (s *Store) Snapshot() Cache {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cache
}

// Error returns the message of the last failed action, or "".
func (s *Store) Error() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cache.Error
}

// Clear empties every cache. It is registered with the session store and runs
// on logout, forced logout and identity switches.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.cache = Cache{}
	s.epoch++
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "Resource caches cleared")
	s.notify(ctx, "all")
}

// access is the identity an action runs as, resolved after session bootstrap.
type access struct {
	role   models.Role
	userID string
	ok     bool
	epoch  uint64
}

func (a access) is(role models.Role) bool {
	return a.ok && a.role == role
}

func (s *Store) access(ctx context.Context) access {
	st := s.session.InitAuth(ctx)

	s.mu.RLock()
	a := access{epoch: s.epoch}
	s.mu.RUnlock()

	if role, ok := st.Role(); ok {
		a.role, a.userID, a.ok = role, st.User.ID, true
	}
	return a
}

// require resolves the caller and checks it holds one of roles. No gateway
// call is made when it fails.
func (s *Store) require(ctx context.Context, action string, roles ...models.Role) (access, error) {
	a := s.access(ctx)
	if !a.ok {
		return a, fmt.Errorf("%w: %s needs a session", ErrNotAuthenticated, action)
	}
	if !slices.Contains(roles, a.role) {
		return a, fmt.Errorf("%w: %s is not available to %s", ErrRoleNotPermitted, action, a.role)
	}
	return a, nil
}

// commit applies fn to a copy of the cache and swaps it in, unless the cache
// was cleared since a was resolved. A successful commit clears Error.
func (s *Store) commit(ctx context.Context, a access, field string, fn func(c *Cache)) bool {
	s.mu.Lock()
	if s.epoch != a.epoch {
		s.mu.Unlock()
		s.logger.InfoContext(ctx, "Dropping response for a cleared session", attr.String("field", field))
		return false
	}
	next := s.cache
	fn(&next)
	next.Error = ""
	s.cache = next
	s.mu.Unlock()

	s.notify(ctx, field)
	return true
}

func (s *Store) recordError(ctx context.Context, action string, err error) {
	msg := displayMessage(err)
	s.mu.Lock()
	s.cache.Error = msg
	s.mu.Unlock()

	kind := "local"
	if k, ok := gateway.KindOf(err); ok {
		kind = string(k)
	}
	s.logger.WarnContext(ctx, "Resource action failed",
		attr.String("operation", action),
		attr.String("kind", kind),
		attr.RequestID(ctx),
		attr.Error(err),
	)
	s.notify(ctx, "error")
}

func (s *Store) notify(ctx context.Context, field string) {
	if s.bus != nil {
		s.bus.Notify(ctx, eventbus.TopicResources, eventbus.Change{Source: storeName, Field: field})
	}
}

func (s *Store) skip(ctx context.Context, action string, a access) {
	s.logger.DebugContext(ctx, "Skipping fetch not available to the current role",
		attr.String("operation", action),
		attr.String("role", string(a.role)),
	)
}

// run executes an action with telemetry and records its error in the cache.
func (s *Store) run(ctx context.Context, action string, op func(ctx context.Context) error) error {
	err := s.withTelemetry(ctx, action, op)
	if err != nil {
		s.recordError(ctx, action, err)
	}
	return err
}

// withTelemetry wraps a store action with a span, metrics and panic recovery.
func (s *Store) withTelemetry(ctx context.Context, action string, op func(ctx context.Context) error) (err error) {
	ctx, span := s.tracer.Start(ctx, "resources."+action, trace.WithAttributes(
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

// fetch runs a read. pick returns the gateway call for the caller's role, or
// nil when the role has no such read, in which case nothing happens. Reads
// never return errors; on failure the previous cache is kept and Error is set.
func fetch[T any](
	ctx context.Context,
	s *Store,
	action, field string,
	pick func(a access) func(context.Context) (T, error),
	apply func(c *Cache, a access, v T),
) {
	_ = s.run(ctx, action, func(ctx context.Context) error {
		a := s.access(ctx)
		call := pick(a)
		if call == nil {
			s.skip(ctx, action, a)
			return nil
		}
		v, err := call(ctx)
		if err != nil {
			return err
		}
		s.commit(ctx, a, field, func(c *Cache) { apply(c, a, v) })
		return nil
	})
}

// mutate runs a role-gated mutation and reconciles the cache from the entity
// the server returned.
func mutate[T any](
	ctx context.Context,
	s *Store,
	action, field string,
	roles []models.Role,
	call func(ctx context.Context, a access) (*T, error),
	apply func(c *Cache, v T),
) (*T, error) {
	var result *T
	err := s.run(ctx, action, func(ctx context.Context) error {
		a, err := s.require(ctx, action, roles...)
		if err != nil {
			return err
		}
		out, err := call(ctx, a)
		if err != nil {
			return err
		}
		if out == nil {
			return fmt.Errorf("%s: %w", action, ErrEmptyResponse)
		}
		s.commit(ctx, a, field, func(c *Cache) { apply(c, *out) })
		result = out
		return nil
	})
	return result, err
}

// exec is mutate for calls that return no entity, such as deletes.
func exec(
	ctx context.Context,
	s *Store,
	action, field string,
	roles []models.Role,
	call func(ctx context.Context, a access) error,
	apply func(c *Cache),
) error {
	return s.run(ctx, action, func(ctx context.Context) error {
		a, err := s.require(ctx, action, roles...)
		if err != nil {
			return err
		}
		if err := call(ctx, a); err != nil {
			return err
		}
		s.commit(ctx, a, field, apply)
		return nil
	})
}

var (
	adminOnly = []models.Role{models.RoleAdmin}
	teamOnly  = []models.Role{models.RoleTeam}
)
