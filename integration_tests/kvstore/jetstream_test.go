//go:build integration

package kvstoreintegrationtests

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Black-And-White-Club/hackathon-portal/app"
	"github.com/Black-And-White-Club/hackathon-portal/app/models"
	"github.com/Black-And-White-Club/hackathon-portal/app/modules/gateway/infrastructure/fakeapi"
	sessiondomain "github.com/Black-And-White-Club/hackathon-portal/app/modules/session/domain"
	"github.com/Black-And-White-Club/hackathon-portal/app/observability"
	"github.com/Black-And-White-Club/hackathon-portal/config"
	"github.com/Black-And-White-Club/hackathon-portal/internal/kvstore"
	"github.com/Black-And-White-Club/hackathon-portal/internal/natsconn"
	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func connect(t *testing.T) *nats.Conn {
	t.Helper()
	nc, err := natsconn.Connect(natsconn.Options{URL: natsURL, Name: t.Name(), Timeout: 5 * time.Second}, observability.NopLogger())
	require.NoError(t, err)
	t.Cleanup(nc.Close)
	return nc
}

func TestJetStream_RoundTrip(t *testing.T) {
	ctx := context.Background()
	nc := connect(t)
	bucket := "portal-" + uuid.NewString()[:8]

	store, err := kvstore.OpenJetStream(ctx, nc, bucket, "judge")
	require.NoError(t, err)

	_, err = store.Get(ctx, "session")
	assert.ErrorIs(t, err, kvstore.ErrNotFound)

	require.NoError(t, store.Put(ctx, "session", []byte(`{"isAuthenticated":false}`)))
	got, err := store.Get(ctx, "session")
	require.NoError(t, err)
	assert.JSONEq(t, `{"isAuthenticated":false}`, string(got))

	require.NoError(t, store.Delete(ctx, "session"))
	_, err = store.Get(ctx, "session")
	assert.ErrorIs(t, err, kvstore.ErrNotFound)
	assert.NoError(t, store.Delete(ctx, "session"), "deleting a missing key is not an error")
}

func TestJetStream_ProfilesAreIsolated(t *testing.T) {
	ctx := context.Background()
	nc := connect(t)
	bucket := "portal-" + uuid.NewString()[:8]

	laptop, err := kvstore.OpenJetStream(ctx, nc, bucket, "laptop")
	require.NoError(t, err)
	kiosk, err := kvstore.OpenJetStream(ctx, nc, bucket, "kiosk")
	require.NoError(t, err)

	require.NoError(t, laptop.Put(ctx, "credentials", []byte("laptop-token")))
	_, err = kiosk.Get(ctx, "credentials")
	assert.ErrorIs(t, err, kvstore.ErrNotFound)
}

func TestApp_SessionRestoredFromJetStream(t *testing.T) {
	ctx := context.Background()

	api := fakeapi.New("integration-secret")
	api.AddAccount("HX-0001", "secret", models.Identity{ID: "team-1", Role: models.RoleTeam, DisplayHandle: "Byte Me"})
	api.Seed([]models.Team{{ID: "team-1", ExternalCode: "HX-0001", Title: "Byte Me"}}, nil, nil, nil)
	server := httptest.NewServer(api)
	t.Cleanup(server.Close)

	cfg := config.Defaults()
	cfg.API.BaseURL = server.URL
	cfg.Store.Backend = config.StoreNATS
	cfg.Store.Profile = "integration"
	cfg.NATS.URL = natsURL
	cfg.NATS.Bucket = "portal-" + uuid.NewString()[:8]
	cfg.Observability.LogLevel = "error"

	first, err := app.NewApp(ctx, cfg)
	require.NoError(t, err)
	_, err = first.Session.Login(ctx, models.RoleTeam, "HX-0001", "secret")
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := app.NewApp(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Close() })

	state := second.Session.InitAuth(ctx)
	require.True(t, state.IsAuthenticated)
	assert.Equal(t, "team-1", state.User.ID)

	persisted, err := kvstore.OpenJetStream(ctx, connect(t), cfg.NATS.Bucket, cfg.Store.Profile)
	require.NoError(t, err)
	raw, err := persisted.Get(ctx, sessiondomain.SnapshotKey)
	require.NoError(t, err)
	snap, err := sessiondomain.DecodeSnapshot(raw)
	require.NoError(t, err)
	assert.True(t, snap.IsAuthenticated)
}
