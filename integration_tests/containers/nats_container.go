// Package containers starts the throwaway servers the integration tests run against.
package containers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcnats "github.com/testcontainers/testcontainers-go/modules/nats"
	"github.com/testcontainers/testcontainers-go/wait"
)

const natsImage = "nats:2.10-alpine"

// NATS is a running JetStream-enabled server.
type NATS struct {
	URL       string
	container *tcnats.NATSContainer
}

// StartNATS runs a NATS server with JetStream for the KV backend tests.
// Callers must Stop it.
func StartNATS(ctx context.Context, logger *slog.Logger) (*NATS, error) {
	started := time.Now()
	container, err := tcnats.Run(ctx, natsImage,
		testcontainers.WithWaitStrategy(
			wait.ForAll(
				wait.ForLog("Server is ready"),
				wait.ForListeningPort("4222/tcp"),
			).WithDeadline(45*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start NATS container: %w", err)
	}

	url, err := container.ConnectionString(ctx)
	if err != nil {
		if stopErr := container.Terminate(ctx); stopErr != nil {
			logger.Warn("Failed to terminate NATS container", slog.Any("error", stopErr))
		}
		return nil, fmt.Errorf("failed to get NATS connection string: %w", err)
	}

	logger.Info("NATS container ready",
		slog.String("url", url),
		slog.Duration("startup", time.Since(started)),
	)
	return &NATS{URL: url, container: container}, nil
}

// Stop terminates the container.
func (n *NATS) Stop(ctx context.Context) error {
	if n == nil || n.container == nil {
		return nil
	}
	return n.container.Terminate(ctx)
}
