package resourcestore

import (
	"context"
	"sync"

	"github.com/Black-And-White-Club/hackathon-portal/app/models"
	sessiondomain "github.com/Black-And-White-Club/hackathon-portal/app/modules/session/domain"
)

// FakeSession returns a fixed state and counts bootstrap calls.
type FakeSession struct {
	mu    sync.Mutex
	state sessiondomain.State
	calls int
}

func NewFakeSession(identity *models.Identity) *FakeSession {
	st := sessiondomain.State{SessionChecked: true}
	if identity != nil {
		st.User = identity
		st.IsAuthenticated = true
	}
	return &FakeSession{state: st}
}

func (f *FakeSession) InitAuth(context.Context) sessiondomain.State {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.state.Clone()
}

func (f *FakeSession) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}
