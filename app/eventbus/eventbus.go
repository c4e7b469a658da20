// Package eventbus carries in-process change notifications from the stores to
// whatever view layer is listening (the CLI, a TUI, tests).
package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const (
	// TopicSession receives a Change whenever the session state is replaced.
	TopicSession = "session.changed"
	// TopicResources receives a Change whenever a resource cache field is replaced.
	TopicResources = "resources.changed"
)

// Change describes which store field was replaced. Payloads never carry
// resource data; listeners re-read the store.
type Change struct {
	Source string    `json:"source"`
	Field  string    `json:"field"`
	At     time.Time `json:"at"`
}

// Notifier is the publishing side seen by the stores.
type Notifier interface {
	Notify(ctx context.Context, topic string, change Change)
}

// EventBus is a watermill in-memory pub/sub.
type EventBus struct {
	pubsub *gochannel.GoChannel
	logger *slog.Logger
}

// NewEventBus builds a non-persistent bus. Slow subscribers do not block publishers
// beyond the output buffer.
func NewEventBus(logger *slog.Logger) *EventBus {
	pubsub := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: 64,
		Persistent:          false,
	}, watermill.NewSlogLogger(logger))

	return &EventBus{pubsub: pubsub, logger: logger}
}

// Notify publishes change on topic. Publishing failures are logged, never returned;
// a missing listener must not fail a store action.
func (b *EventBus) Notify(ctx context.Context, topic string, change Change) {
	if change.At.IsZero() {
		change.At = time.Now().UTC()
	}
	payload, err := json.Marshal(change)
	if err != nil {
		b.logger.ErrorContext(ctx, "Failed to encode change", slog.String("topic", topic), slog.Any("error", err))
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("source", change.Source)
	msg.Metadata.Set("field", change.Field)

	if err := b.pubsub.Publish(topic, msg); err != nil {
		b.logger.WarnContext(ctx, "Failed to publish change",
			slog.String("topic", topic),
			slog.String("field", change.Field),
			slog.Any("error", err),
		)
	}
}

// Subscribe decodes every message on topic into a Change. The returned channel
// closes when ctx is done or the bus is closed.
func (b *EventBus) Subscribe(ctx context.Context, topic string) (<-chan Change, error) {
	messages, err := b.pubsub.Subscribe(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to %s: %w", topic, err)
	}

	out := make(chan Change)
	go func() {
		defer close(out)
		for msg := range messages {
			var change Change
			if err := json.Unmarshal(msg.Payload, &change); err != nil {
				b.logger.WarnContext(ctx, "Dropping malformed change", slog.String("topic", topic), slog.Any("error", err))
				msg.Ack()
				continue
			}
			msg.Ack()
			select {
			case out <- change:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// Close stops all subscriptions.
func (b *EventBus) Close() error {
	return b.pubsub.Close()
}

var _ Notifier = (*EventBus)(nil)
