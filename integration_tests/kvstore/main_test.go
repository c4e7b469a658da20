//go:build integration

package kvstoreintegrationtests

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/Black-And-White-Club/hackathon-portal/integration_tests/containers"
)

var natsURL string

func TestMain(m *testing.M) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	server, err := containers.StartNATS(ctx, logger)
	if err != nil {
		logger.Warn("Skipping NATS integration tests", slog.Any("error", err))
		os.Exit(0)
	}
	natsURL = server.URL

	exitCode := m.Run()

	if err := server.Stop(ctx); err != nil {
		logger.Warn("Failed to stop NATS container", slog.Any("error", err))
	}
	os.Exit(exitCode)
}
