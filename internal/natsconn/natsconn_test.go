package natsconn

import (
	"io"
	"log/slog"
	"testing"

	"github.com/nats-io/nkeys"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNkeyOption(t *testing.T) {
	kp, err := nkeys.CreateUser()
	require.NoError(t, err)
	seed, err := kp.Seed()
	require.NoError(t, err)

	opt, err := nkeyOption(string(seed))
	require.NoError(t, err)
	assert.NotNil(t, opt)

	_, err = nkeyOption("not-a-seed")
	assert.Error(t, err)
}

func TestConnect_RequiresURL(t *testing.T) {
	_, err := Connect(Options{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Error(t, err)
}

func TestConnect_BadSeed(t *testing.T) {
	_, err := Connect(Options{URL: "nats://127.0.0.1:1", NKeySeed: "SUbad"}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.ErrorContains(t, err, "nkey seed")
}
