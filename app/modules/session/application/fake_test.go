package sessionservice

import (
	"context"
	"sync"

	"github.com/Black-And-White-Club/hackathon-portal/app/eventbus"
)

// FakeCacheClearer counts Clear calls.
type FakeCacheClearer struct {
	mu    sync.Mutex
	calls int
}

func (f *FakeCacheClearer) Clear(context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
}

func (f *FakeCacheClearer) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// FakeNotifier records the fields of published changes.
type FakeNotifier struct {
	mu     sync.Mutex
	fields []string
}

func (f *FakeNotifier) Notify(_ context.Context, topic string, change eventbus.Change) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fields = append(f.fields, topic+":"+change.Field)
}

func (f *FakeNotifier) Fields() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.fields...)
}
