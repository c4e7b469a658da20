package resourcestore

import (
	"maps"
	"slices"

	"github.com/Black-And-White-Club/hackathon-portal/app/models"
)

// Cache is an immutable view of everything fetched for the current identity.
// The store never mutates a Cache it has handed out: every change builds a new
// value, so slices read from an older Cache stay valid. Callers must treat the
// slices and pointers as read-only.
type Cache struct {
	Team              *models.Team
	ProblemStatement  *models.ProblemStatement
	Tasks             []models.Task
	Teams             []models.Team
	Leaderboard       []models.LeaderboardEntry
	Announcements     []models.Announcement
	ProblemStatements []models.ProblemStatement
	Gallery           map[string][]models.GalleryImage
	Error             string
}

// Task returns the cached task with id.
func (c Cache) Task(id string) (models.Task, bool) {
	i := slices.IndexFunc(c.Tasks, func(t models.Task) bool { return t.ID == id })
	if i < 0 {
		return models.Task{}, false
	}
	return c.Tasks[i], true
}

// TeamByID returns the cached admin team record with id.
func (c Cache) TeamByID(id string) (models.Team, bool) {
	i := slices.IndexFunc(c.Teams, func(t models.Team) bool { return t.ID == id })
	if i < 0 {
		return models.Team{}, false
	}
	return c.Teams[i], true
}

func taskKey(t models.Task) string { return t.ID }
func teamKey(t models.Team) string { return t.ID }
func announcementKey(a models.Announcement) string { return a.ID }
func problemStatementKey(p models.ProblemStatement) string { return p.ID }
func imageKey(g models.GalleryImage) string { return g.ID }
func memberKey(m models.Member) string { return m.ID }

// upsert returns a new slice with item replacing the element of the same id,
// or prepended when no such element exists.
func upsert[T any](items []T, item T, id func(T) string) []T {
	key := id(item)
	i := slices.IndexFunc(items, func(v T) bool { return id(v) == key })
	if i < 0 {
		return prepend(items, item)
	}
	out := slices.Clone(items)
	out[i] = item
	return out
}

func prepend[T any](items []T, item T) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, item)
	return append(out, items...)
}

func appendAll[T any](items []T, more ...T) []T {
	out := make([]T, 0, len(items)+len(more))
	out = append(out, items...)
	return append(out, more...)
}

func remove[T any](items []T, key string, id func(T) string) []T {
	return slices.DeleteFunc(slices.Clone(items), func(v T) bool { return id(v) == key })
}

func withGallery(gallery map[string][]models.GalleryImage, team string, images []models.GalleryImage) map[string][]models.GalleryImage {
	out := maps.Clone(gallery)
	if out == nil {
		out = make(map[string][]models.GalleryImage, 1)
	}
	out[team] = images
	return out
}
