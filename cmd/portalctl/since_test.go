package main

import (
	"testing"
	"time"

	"github.com/Black-And-White-Club/hackathon-portal/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSince(t *testing.T) {
	now := time.Date(2026, time.March, 14, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{name: "empty", input: "", want: time.Time{}},
		{name: "duration", input: "90m", want: now.Add(-90 * time.Minute)},
		{name: "date", input: "2026-03-01", want: time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)},
		{name: "rfc3339", input: "2026-03-13T08:30:00Z", want: time.Date(2026, time.March, 13, 8, 30, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSince(tt.input, now)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s, want %s", got, tt.want)
		})
	}

	t.Run("natural language", func(t *testing.T) {
		got, err := parseSince("Yesterday", now)
		require.NoError(t, err)
		assert.Equal(t, 13, got.Day())
		assert.Equal(t, time.March, got.Month())
	})

	t.Run("unrecognized", func(t *testing.T) {
		_, err := parseSince("banana", now)
		assert.Error(t, err)
	})
}

func TestFilterTasks(t *testing.T) {
	base := time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC)
	tasks := []models.Task{
		{ID: "1", Status: models.TaskPending, CreatedAt: base.Add(-48 * time.Hour)},
		{ID: "2", Status: models.TaskInReview, CreatedAt: base.Add(-time.Hour)},
		{ID: "3", Status: models.TaskPending, CreatedAt: base.Add(time.Hour)},
	}

	ids := func(ts []models.Task) []string {
		var out []string
		for _, t := range ts {
			out = append(out, t.ID)
		}
		return out
	}

	assert.Equal(t, []string{"1", "2", "3"}, ids(filterTasks(tasks, "", time.Time{})))
	assert.Equal(t, []string{"1", "3"}, ids(filterTasks(tasks, "pending", time.Time{})))
	assert.Equal(t, []string{"2", "3"}, ids(filterTasks(tasks, "", base.Add(-24*time.Hour))))
	assert.Equal(t, []string{"3"}, ids(filterTasks(tasks, "Pending", base.Add(-24*time.Hour))))
}

func TestFilterAnnouncements(t *testing.T) {
	base := time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC)
	items := []models.Announcement{
		{ID: "old", CreatedAt: base.Add(-time.Hour)},
		{ID: "new", CreatedAt: base.Add(time.Hour)},
	}

	assert.Len(t, filterAnnouncements(items, time.Time{}), 2)
	got := filterAnnouncements(items, base)
	require.Len(t, got, 1)
	assert.Equal(t, "new", got[0].ID)
}
