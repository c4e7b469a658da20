package sessiondomain

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Black-And-White-Club/hackathon-portal/app/models"
)

// SnapshotKey is the key/value entry holding the persisted session.
const SnapshotKey = "session"

// ErrInvalidSnapshot is returned when persisted session data breaks the state invariants.
var ErrInvalidSnapshot = errors.New("invalid session snapshot")

// State is the in-memory session. Values handed out by the store are copies.
type State struct {
	User            *models.Identity
	IsAuthenticated bool
	SessionChecked  bool
}

// Role returns the role of the logged-in identity.
func (s State) Role() (models.Role, bool) {
	if !s.IsAuthenticated || s.User == nil {
		return "", false
	}
	return s.User.Role, true
}

// Clone returns a copy that shares nothing with s.
func (s State) Clone() State {
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}

// Snapshot is the only session data written to storage. Resource caches never
// pass through it.
type Snapshot struct {
	User            *models.Identity `json:"user"`
	IsAuthenticated bool             `json:"isAuthenticated"`
	SessionChecked  bool             `json:"sessionChecked"`
}

// SnapshotOf captures the persistable part of s.
func SnapshotOf(s State) Snapshot {
	s = s.Clone()
	return Snapshot{User: s.User, IsAuthenticated: s.IsAuthenticated, SessionChecked: s.SessionChecked}
}

// State converts the snapshot back into session state.
func (s Snapshot) State() State {
	return State{User: s.User, IsAuthenticated: s.IsAuthenticated, SessionChecked: s.SessionChecked}.Clone()
}

// Validate checks that an authenticated snapshot carries a usable identity.
func (s Snapshot) Validate() error {
	if !s.IsAuthenticated {
		return nil
	}
	if s.User == nil {
		return fmt.Errorf("%w: authenticated without a user", ErrInvalidSnapshot)
	}
	if !s.User.Role.IsValid() {
		return fmt.Errorf("%w: unknown role %q", ErrInvalidSnapshot, s.User.Role)
	}
	return nil
}

// Encode serializes the snapshot for storage.
func (s Snapshot) Encode() ([]byte, error) {
	return json.Marshal(s)
}

// DecodeSnapshot parses and validates stored session data.
func DecodeSnapshot(raw []byte) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(raw, &s); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
	}
	if err := s.Validate(); err != nil {
		return Snapshot{}, err
	}
	return s, nil
}
