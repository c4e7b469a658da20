package leaderboarddomain

import (
	"cmp"
	"slices"

	"github.com/Black-And-White-Club/hackathon-portal/app/models"
)

// PodiumSize is how many leading entries a dashboard renders as the podium.
const PodiumSize = 3

// Rank orders entries by total points descending and assigns ranks 1..N without gaps.
// Entries with equal points keep their input order; no secondary key is applied.
// The input slice is not modified.
func Rank(entries []models.LeaderboardEntry) []models.LeaderboardEntry {
	ranked := slices.Clone(entries)
	slices.SortStableFunc(ranked, func(a, b models.LeaderboardEntry) int {
		return cmp.Compare(b.TotalPoints, a.TotalPoints)
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}

// Normalize keeps the order produced by the server and only fills in ranks when
// the response omitted them or they are not a 1..N sequence.
func Normalize(entries []models.LeaderboardEntry) []models.LeaderboardEntry {
	out := slices.Clone(entries)
	for i := range out {
		if out[i].Rank != i+1 {
			for j := range out {
				out[j].Rank = j + 1
			}
			break
		}
	}
	return out
}

// Podium splits a ranked board into the first three entries and the rest.
// The split is a presentation convention only.
func Podium(entries []models.LeaderboardEntry) (podium, rest []models.LeaderboardEntry) {
	n := min(PodiumSize, len(entries))
	return entries[:n:n], entries[n:]
}

// TiedGroups returns consecutive runs of entries sharing the same total points.
// Callers should rank first; within a group the order is unspecified.
func TiedGroups(entries []models.LeaderboardEntry) [][]models.LeaderboardEntry {
	var groups [][]models.LeaderboardEntry
	for i := 0; i < len(entries); {
		j := i + 1
		for j < len(entries) && entries[j].TotalPoints == entries[i].TotalPoints {
			j++
		}
		groups = append(groups, entries[i:j:j])
		i = j
	}
	return groups
}

// Aggregate derives a ranked board from cached teams and tasks. Only completed
// tasks score. Teams with no completed work are listed with zero points, and tasks
// bound to unknown teams are ignored.
func Aggregate(teams []models.Team, tasks []models.Task) []models.LeaderboardEntry {
	index := make(map[string]int, len(teams))
	entries := make([]models.LeaderboardEntry, 0, len(teams))
	for _, team := range teams {
		if _, dup := index[team.ID]; dup {
			continue
		}
		index[team.ID] = len(entries)
		entries = append(entries, models.LeaderboardEntry{TeamID: team.ID, Title: team.Title})
	}

	for _, task := range tasks {
		if task.Status != models.TaskCompleted {
			continue
		}
		i, ok := index[task.TeamID]
		if !ok {
			continue
		}
		entries[i].TotalPoints += task.Points
		entries[i].CompletedTaskCount++
	}

	return Rank(entries)
}
