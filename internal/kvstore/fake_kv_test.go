package kvstore

import (
	"context"
	"sync"

	"github.com/nats-io/nats.go/jetstream"
)

// FakeKeyValue is an in-memory jetstream.KeyValue covering the calls this package makes.
type FakeKeyValue struct {
	jetstream.KeyValue

	mu    sync.Mutex
	data  map[string][]byte
	trace []string
}

func NewFakeKeyValue() *FakeKeyValue {
	return &FakeKeyValue{data: make(map[string][]byte)}
}

func (f *FakeKeyValue) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeKeyValue) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeKeyValue) StoredKeys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	keys := make([]string, 0, len(f.data))
	for k := range f.data {
		keys = append(keys, k)
	}
	return keys
}

func (f *FakeKeyValue) Put(_ context.Context, key string, value []byte) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("Put")
	f.data[key] = append([]byte(nil), value...)
	return uint64(len(f.trace)), nil
}

func (f *FakeKeyValue) Get(_ context.Context, key string) (jetstream.KeyValueEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("Get")
	v, ok := f.data[key]
	if !ok {
		return nil, jetstream.ErrKeyNotFound
	}
	return &FakeKeyValueEntry{key: key, value: v}, nil
}

func (f *FakeKeyValue) Delete(_ context.Context, key string, _ ...jetstream.KVDeleteOpt) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("Delete")
	delete(f.data, key)
	return nil
}

type FakeKeyValueEntry struct {
	jetstream.KeyValueEntry
	key   string
	value []byte
}

func (e *FakeKeyValueEntry) Key() string   { return e.key }
func (e *FakeKeyValueEntry) Value() []byte { return e.value }
