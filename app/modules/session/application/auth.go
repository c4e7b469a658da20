package sessionservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/Black-And-White-Club/hackathon-portal/app/models"
	"github.com/Black-And-White-Club/hackathon-portal/app/modules/gateway"
	sessiondomain "github.com/Black-And-White-Club/hackathon-portal/app/modules/session/domain"
	"github.com/Black-And-White-Club/hackathon-portal/app/observability/attr"
	"github.com/Black-And-White-Club/hackathon-portal/internal/kvstore"
)

// Restore loads the persisted snapshot. A snapshot is only trusted when it
// agrees with the gateway credential: an authenticated snapshot without a
// credential is dropped, and a logged-out snapshot with a credential is marked
// unchecked so InitAuth verifies it.
func (s *Store) Restore(ctx context.Context) error {
	if s.persist == nil {
		return nil
	}
	raw, err := s.persist.Get(ctx, sessiondomain.SnapshotKey)
	if errors.Is(err, kvstore.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load session snapshot: %w", err)
	}

	snap, err := sessiondomain.DecodeSnapshot(raw)
	if err != nil {
		s.logger.WarnContext(ctx, "Discarding unreadable session snapshot", attr.Error(err))
		if delErr := s.persist.Delete(ctx, sessiondomain.SnapshotKey); delErr != nil {
			return fmt.Errorf("delete session snapshot: %w", delErr)
		}
		return nil
	}

	state := snap.State()
	hasCredential := s.gateway.HasCredential()
	switch {
	case state.IsAuthenticated && !hasCredential:
		s.logger.InfoContext(ctx, "Restored session has no credential, re-verifying",
			attr.String("user_id", state.User.ID),
		)
		state = sessiondomain.State{}
	case !state.IsAuthenticated && hasCredential:
		state.SessionChecked = false
	}

	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
	if state.SessionChecked {
		s.readyOnce.Do(func() { close(s.ready) })
	}

	s.logger.InfoContext(ctx, "Session restored",
		attr.Bool("authenticated", state.IsAuthenticated),
		attr.Bool("session_checked", state.SessionChecked),
	)
	return nil
}

// InitAuth resolves the session once. Later and concurrent callers share the
// first verification; once the session is checked no further network call is
// made. Verification failures resolve to logged out and are never returned.
// If ctx ends first the still-unresolved state is returned.
func (s *Store) InitAuth(ctx context.Context) sessiondomain.State {
	if st := s.State(); st.SessionChecked {
		return st
	}

	result := s.bootstrap.DoChan("init-auth", func() (any, error) {
		if st := s.State(); !st.SessionChecked {
			s.verify(context.WithoutCancel(ctx))
		}
		return nil, nil
	})

	select {
	case <-result:
	case <-ctx.Done():
	}
	return s.State()
}

func (s *Store) verify(ctx context.Context) {
	loggedOut := sessiondomain.State{SessionChecked: true}
	unchecked := func(cur sessiondomain.State) bool { return !cur.SessionChecked }

	_ = s.withTelemetry(ctx, "InitAuth", func(ctx context.Context) error {
		if !s.gateway.HasCredential() {
			s.logger.InfoContext(ctx, "No stored credential, session is logged out")
			_, err := s.replace(ctx, loggedOut, "sessionChecked", unchecked)
			return err
		}

		check, err := s.gateway.Auth().VerifySession(ctx)
		if err == nil && (check == nil || !check.Valid || check.User == nil || !check.User.Role.IsValid()) {
			err = &gateway.Error{Op: "auth.VerifySession", Kind: gateway.KindAuthentication, Message: "Session is not valid"}
		}
		if err != nil {
			s.logger.InfoContext(ctx, "Session verification failed, continuing logged out",
				attr.String("kind", errorKind(err)),
				attr.Error(err),
			)
			if gateway.IsAuthFailure(err) {
				if clearErr := s.gateway.ClearCredentials(ctx); clearErr != nil {
					s.logger.WarnContext(ctx, "Failed to clear rejected credential", attr.Error(clearErr))
				}
			}
			_, _ = s.replace(ctx, loggedOut, "sessionChecked", unchecked)
			return err
		}

		applied, err := s.replace(ctx, sessiondomain.State{
			User:            check.User,
			IsAuthenticated: true,
			SessionChecked:  true,
		}, "user", unchecked)
		if applied {
			s.logger.InfoContext(ctx, "Session verified",
				attr.String("user_id", check.User.ID),
				attr.String("role", check.User.Role.String()),
			)
		}
		return err
	})
}

// SetUser records identity as logged in. Switching to a different identity
// empties the role-scoped caches first.
func (s *Store) SetUser(ctx context.Context, identity models.Identity) error {
	if identity.ID == "" || !identity.Role.IsValid() {
		return fmt.Errorf("%w: id %q role %q", ErrInvalidIdentity, identity.ID, identity.Role)
	}

	prev := s.State()
	if prev.User != nil && (prev.User.ID != identity.ID || prev.User.Role != identity.Role) {
		s.clearCaches(ctx)
	}

	_, err := s.replace(ctx, sessiondomain.State{
		User:            &identity,
		IsAuthenticated: true,
		SessionChecked:  true,
	}, "user", nil)
	return err
}

// Login authenticates with the gateway and records the resulting identity.
// Authentication errors come back unchanged for display and are never retried.
func (s *Store) Login(ctx context.Context, role models.Role, username, password string) (sessiondomain.State, error) {
	err := s.withTelemetry(ctx, "Login", func(ctx context.Context) error {
		if !role.IsValid() {
			return fmt.Errorf("%w: unknown role %q", ErrInvalidIdentity, role)
		}

		resp, err := s.gateway.Auth().Login(ctx, role, username, password)
		if err != nil {
			s.logger.InfoContext(ctx, "Login rejected",
				attr.String("role", role.String()),
				attr.String("kind", errorKind(err)),
			)
			return err
		}
		if resp == nil {
			return ErrEmptyLoginResponse
		}

		identity := models.Identity{ID: resp.UserID, Role: resp.Role, DisplayHandle: username}
		if identity.Role == "" {
			identity.Role = role
		}
		check, err := s.gateway.Auth().VerifySession(ctx)
		switch {
		case gateway.IsAuthFailure(err):
			s.logger.InfoContext(ctx, "Credential rejected right after login", attr.Error(err))
			if resetErr := s.reset(ctx, "user"); resetErr != nil {
				return errors.Join(err, resetErr)
			}
			return err
		case err != nil:
			s.logger.WarnContext(ctx, "Could not load profile after login", attr.Error(err))
		case check != nil && check.Valid && check.User != nil:
			identity = *check.User
		}

		if err := s.SetUser(ctx, identity); err != nil {
			return err
		}
		s.logger.InfoContext(ctx, "Logged in",
			attr.String("user_id", identity.ID),
			attr.String("role", identity.Role.String()),
		)
		return nil
	})
	return s.State(), err
}

// Logout ends the session. The remote logout is best effort; local state is
// always cleared.
func (s *Store) Logout(ctx context.Context) error {
	return s.withTelemetry(ctx, "Logout", func(ctx context.Context) error {
		if role, ok := s.Role(); ok && s.gateway.HasCredential() {
			var err error
			switch role {
			case models.RoleAdmin:
				err = s.gateway.Admin().Logout(ctx)
			case models.RoleTeam:
				err = s.gateway.Team().Logout(ctx)
			}
			if err != nil {
				s.logger.WarnContext(ctx, "Remote logout failed, clearing local session anyway",
					attr.String("kind", errorKind(err)),
					attr.Error(err),
				)
			}
		}
		return s.reset(ctx, "logout")
	})
}

// ForceLogout clears the session without contacting the server. It runs when
// the server rejects the credential.
func (s *Store) ForceLogout(ctx context.Context) {
	s.logger.WarnContext(ctx, "Credential rejected by server, logging out", attr.RequestID(ctx))
	if err := s.reset(ctx, "forced_logout"); err != nil {
		s.logger.ErrorContext(ctx, "Forced logout incomplete", attr.Error(err))
	}
}

func (s *Store) reset(ctx context.Context, field string) error {
	var errs []error
	if err := s.gateway.ClearCredentials(ctx); err != nil {
		errs = append(errs, fmt.Errorf("clear credentials: %w", err))
	}
	if _, err := s.replace(ctx, sessiondomain.State{SessionChecked: true}, field, nil); err != nil {
		errs = append(errs, err)
	}
	s.clearCaches(ctx)
	return errors.Join(errs...)
}
