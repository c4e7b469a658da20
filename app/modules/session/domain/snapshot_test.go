package sessiondomain

import (
	"encoding/json"
	"testing"

	"github.com/Black-And-White-Club/hackathon-portal/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot_OnlyPersistsSessionFields(t *testing.T) {
	state := State{
		User:            &models.Identity{ID: "team-1", Role: models.RoleTeam, DisplayHandle: "Byte Me"},
		IsAuthenticated: true,
		SessionChecked:  true,
	}
	raw, err := SnapshotOf(state).Encode()
	require.NoError(t, err)

	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &fields))
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	assert.ElementsMatch(t, []string{"user", "isAuthenticated", "sessionChecked"}, keys)

	decoded, err := DecodeSnapshot(raw)
	require.NoError(t, err)
	assert.Equal(t, state, decoded.State())
}

func TestDecodeSnapshot(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{name: "logged out", raw: `{"user":null,"isAuthenticated":false,"sessionChecked":true}`},
		{name: "admin", raw: `{"user":{"id":"a","role":"admin"},"isAuthenticated":true,"sessionChecked":true}`},
		{name: "authenticated without user", raw: `{"user":null,"isAuthenticated":true,"sessionChecked":true}`, wantErr: true},
		{name: "unknown role", raw: `{"user":{"id":"a","role":"judge"},"isAuthenticated":true}`, wantErr: true},
		{name: "garbage", raw: `not json`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeSnapshot([]byte(tt.raw))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSnapshot)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestState_CloneDoesNotAlias(t *testing.T) {
	original := State{User: &models.Identity{ID: "a", Role: models.RoleAdmin}, IsAuthenticated: true}
	clone := original.Clone()
	clone.User.DisplayHandle = "changed"
	assert.Empty(t, original.User.DisplayHandle)
}

func TestState_Role(t *testing.T) {
	role, ok := State{}.Role()
	assert.False(t, ok)
	assert.Empty(t, role)

	role, ok = State{User: &models.Identity{Role: models.RoleTeam}, IsAuthenticated: true}.Role()
	assert.True(t, ok)
	assert.Equal(t, models.RoleTeam, role)
}
