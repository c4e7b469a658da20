package resourcestore

import (
	"context"

	"github.com/Black-And-White-Club/hackathon-portal/app/models"
	leaderboarddomain "github.com/Black-And-White-Club/hackathon-portal/app/modules/leaderboard/domain"
)

// FetchLeaderboard loads the admin leaderboard. The server's order is kept;
// ranks are renumbered only when the server omitted them. Completing a task
// never changes the cached leaderboard; call this again instead.
func (s *Store) FetchLeaderboard(ctx context.Context) {
	fetch(ctx, s, "FetchLeaderboard", "leaderboard",
		func(a access) func(context.Context) ([]models.LeaderboardEntry, error) {
			if a.is(models.RoleAdmin) {
				return s.gateway.Admin().Leaderboard
			}
			return nil
		},
		func(c *Cache, _ access, entries []models.LeaderboardEntry) {
			c.Leaderboard = leaderboarddomain.Normalize(entries)
		},
	)
}

// Podium splits the cached leaderboard into the top three and the rest.
func (s *Store) Podium() (podium, rest []models.LeaderboardEntry) {
	return leaderboarddomain.Podium(s.Snapshot().Leaderboard)
}

// PreviewLeaderboard derives a ranking from the cached teams and tasks. It is
// for dashboards that have both lists loaded; FetchLeaderboard is authoritative.
func (s *Store) PreviewLeaderboard() []models.LeaderboardEntry {
	c := s.Snapshot()
	return leaderboarddomain.Aggregate(c.Teams, c.Tasks)
}
