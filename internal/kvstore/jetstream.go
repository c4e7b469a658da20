package kvstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// JetStream stores keys in a NATS JetStream key/value bucket. A profile prefix
// lets several portal clients share one bucket without seeing each other's state.
type JetStream struct {
	kv     jetstream.KeyValue
	prefix string
}

// OpenJetStream creates or binds the bucket on the given connection.
func OpenJetStream(ctx context.Context, nc *nats.Conn, bucket, profile string) (*JetStream, error) {
	js, err := jetstream.New(nc)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JetStream: %w", err)
	}

	kv, err := js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      bucket,
		Description: "hackathon portal client state",
		History:     1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open key/value bucket %q: %w", bucket, err)
	}
	return NewJetStream(kv, profile), nil
}

// NewJetStream wraps an already-bound bucket.
func NewJetStream(kv jetstream.KeyValue, profile string) *JetStream {
	prefix := ""
	if profile != "" {
		prefix = profile + "."
	}
	return &JetStream{kv: kv, prefix: prefix}
}

func (j *JetStream) Get(ctx context.Context, key string) ([]byte, error) {
	entry, err := j.kv.Get(ctx, j.prefix+key)
	if errors.Is(err, jetstream.ErrKeyNotFound) || errors.Is(err, jetstream.ErrKeyDeleted) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %q: %w", key, err)
	}
	return entry.Value(), nil
}

func (j *JetStream) Put(ctx context.Context, key string, value []byte) error {
	if _, err := j.kv.Put(ctx, j.prefix+key, value); err != nil {
		return fmt.Errorf("failed to put %q: %w", key, err)
	}
	return nil
}

func (j *JetStream) Delete(ctx context.Context, key string) error {
	err := j.kv.Delete(ctx, j.prefix+key)
	if err != nil && !errors.Is(err, jetstream.ErrKeyNotFound) {
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}
	return nil
}

var _ Store = (*JetStream)(nil)
