package testutils

import (
	"fmt"
	"time"

	"github.com/Black-And-White-Club/hackathon-portal/app/models"
	"github.com/brianvoe/gofakeit/v7"
)

// TestDataGenerator builds portal entities for tests and the local fake API.
type TestDataGenerator struct {
	faker *gofakeit.Faker
	seed  int64
	next  int
}

// NewTestDataGenerator creates a generator with an optional seed for reproducible data.
func NewTestDataGenerator(seed ...int64) *TestDataGenerator {
	var s int64
	if len(seed) > 0 {
		s = seed[0]
	} else {
		s = time.Now().UnixNano()
	}
	return &TestDataGenerator{faker: gofakeit.New(uint64(s)), seed: s}
}

// Seed returns the seed in use so failing tests can be replayed.
func (g *TestDataGenerator) Seed() int64 { return g.seed }

func (g *TestDataGenerator) id(prefix string) string {
	g.next++
	return fmt.Sprintf("%s-%d", prefix, g.next)
}

// GenerateProblemStatements creates count statements with unique codes.
func (g *TestDataGenerator) GenerateProblemStatements(count int) []models.ProblemStatement {
	domains := []string{"HealthTech", "FinTech", "EdTech", "Sustainability", "Open Innovation"}
	out := make([]models.ProblemStatement, count)
	for i := range out {
		out[i] = models.ProblemStatement{
			ID:          g.id("ps"),
			Code:        fmt.Sprintf("PS%03d", i+1),
			Title:       g.faker.HackerPhrase(),
			Description: g.faker.HackerPhrase() + " " + g.faker.HackerPhrase(),
			Domain:      domains[g.faker.Number(0, len(domains)-1)],
		}
	}
	return out
}

// GenerateTeams creates count teams with 2-4 members each. When statements is
// non-empty each team is bound to one of them.
func (g *TestDataGenerator) GenerateTeams(count int, statements []models.ProblemStatement) []models.Team {
	sizes := []string{"S", "M", "L", "XL"}
	teams := make([]models.Team, count)
	for i := range teams {
		teamID := g.id("team")
		team := models.Team{
			ID:              teamID,
			ExternalCode:    fmt.Sprintf("HX-%04d", i+1),
			Title:           g.faker.AppName(),
			PaymentVerified: g.faker.Bool(),
		}
		if len(statements) > 0 {
			ps := statements[g.faker.Number(0, len(statements)-1)]
			team.ProblemStatementID = &ps.ID
			team.ProblemStatement = &ps
		}
		for range g.faker.Number(2, 4) {
			team.Members = append(team.Members, models.Member{
				ID:             g.id("member"),
				TeamID:         teamID,
				Name:           g.faker.Name(),
				ContactInfo:    g.faker.Email(),
				CollegeInfo:    g.faker.Company() + " Institute",
				AttendanceFlag: g.faker.Bool(),
				ShirtSize:      sizes[g.faker.Number(0, len(sizes)-1)],
			})
		}
		teams[i] = team
	}
	return teams
}

// GenerateTasks creates perTeam pending tasks for each team.
func (g *TestDataGenerator) GenerateTasks(teams []models.Team, perTeam int) []models.Task {
	difficulties := []string{"easy", "medium", "hard"}
	var tasks []models.Task
	for _, team := range teams {
		for round := 1; round <= perTeam; round++ {
			tasks = append(tasks, models.Task{
				ID:          g.id("task"),
				Title:       g.faker.VerbAction() + " the " + g.faker.NounAbstract(),
				Description: g.faker.HackerPhrase(),
				Difficulty:  difficulties[g.faker.Number(0, len(difficulties)-1)],
				RoundNumber: round,
				Points:      g.faker.Number(1, 10) * 10,
				Status:      models.TaskPending,
				TeamID:      team.ID,
				CreatedAt:   g.faker.DateRange(time.Now().Add(-72*time.Hour), time.Now()),
			})
		}
	}
	return tasks
}

// GenerateAnnouncements creates count announcements, newest first.
func (g *TestDataGenerator) GenerateAnnouncements(count int) []models.Announcement {
	out := make([]models.Announcement, count)
	at := time.Now()
	for i := range out {
		at = at.Add(-time.Duration(g.faker.Number(10, 120)) * time.Minute)
		out[i] = models.Announcement{
			ID:        g.id("ann"),
			Title:     g.faker.BuzzWord() + " update",
			Body:      g.faker.HackerPhrase(),
			CreatedAt: at,
		}
	}
	return out
}

// GenerateIdentity creates an identity for the given role.
func (g *TestDataGenerator) GenerateIdentity(role models.Role) models.Identity {
	return models.Identity{
		ID:            g.id(role.String()),
		Role:          role,
		DisplayHandle: g.faker.Username(),
	}
}
