package fakeapi

import (
	"github.com/Black-And-White-Club/hackathon-portal/app/models"
	"github.com/Black-And-White-Club/hackathon-portal/internal/testutils"
)

// DemoLogin is one seeded account.
type DemoLogin struct {
	Username string
	Password string
	Role     models.Role
}

// SeedDemo fills the API with generated data and returns the logins created:
// one admin plus one account per team, each with password "hackathon".
func (s *Server) SeedDemo(seed int64, teamCount int) []DemoLogin {
	const password = "hackathon"
	gen := testutils.NewTestDataGenerator(seed)

	statements := gen.GenerateProblemStatements(max(3, teamCount))
	teams := gen.GenerateTeams(teamCount, statements)
	tasks := gen.GenerateTasks(teams, 3)
	announcements := gen.GenerateAnnouncements(4)
	s.Seed(teams, tasks, statements, announcements)

	admin := gen.GenerateIdentity(models.RoleAdmin)
	logins := []DemoLogin{{Username: "admin", Password: password, Role: models.RoleAdmin}}
	s.AddAccount("admin", password, admin)

	for _, team := range teams {
		username := team.ExternalCode
		s.AddAccount(username, password, models.Identity{ID: team.ID, Role: models.RoleTeam, DisplayHandle: team.Title})
		logins = append(logins, DemoLogin{Username: username, Password: password, Role: models.RoleTeam})
	}
	return logins
}
