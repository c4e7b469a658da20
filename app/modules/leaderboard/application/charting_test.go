package leaderboardservice

import (
	"bytes"
	"testing"

	"github.com/Black-And-White-Club/hackathon-portal/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestRenderChart(t *testing.T) {
	tests := []struct {
		name    string
		entries []models.LeaderboardEntry
	}{
		{name: "empty board renders placeholder"},
		{
			name: "ranked board",
			entries: []models.LeaderboardEntry{
				{TeamID: "2", Title: "Beta", TotalPoints: 80, Rank: 1},
				{TeamID: "3", Title: "Gamma", TotalPoints: 80, Rank: 2},
				{TeamID: "1", Title: "Alpha", TotalPoints: 50, Rank: 3},
				{TeamID: "4", Title: "Delta", TotalPoints: 10, Rank: 4},
			},
		},
		{
			name:    "single team",
			entries: []models.LeaderboardEntry{{TeamID: "1", Title: "Solo", TotalPoints: 30, Rank: 1}},
		},
		{
			name: "all zero points",
			entries: []models.LeaderboardEntry{
				{TeamID: "1", Title: "Alpha", Rank: 1},
				{TeamID: "2", Title: "Beta", Rank: 2},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := RenderChart(tt.entries, DefaultPalette)
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(img, pngMagic), "expected PNG output")
		})
	}
}

func TestTrimHash(t *testing.T) {
	assert.Equal(t, "ffffff", trimHash("#ffffff"))
	assert.Equal(t, "ffffff", trimHash("ffffff"))
	assert.Equal(t, "", trimHash(""))
}
