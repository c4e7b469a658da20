package testutils

import (
	"testing"

	"github.com/Black-And-White-Club/hackathon-portal/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestDataGenerator_Reproducible(t *testing.T) {
	a := NewTestDataGenerator(42).GenerateTeams(3, nil)
	b := NewTestDataGenerator(42).GenerateTeams(3, nil)
	assert.Equal(t, a, b)
}

func TestTestDataGenerator_Relationships(t *testing.T) {
	g := NewTestDataGenerator(7)
	statements := g.GenerateProblemStatements(4)
	teams := g.GenerateTeams(5, statements)
	tasks := g.GenerateTasks(teams, 2)

	require.Len(t, tasks, 10)
	for _, team := range teams {
		require.NotNil(t, team.ProblemStatementID)
		assert.Equal(t, *team.ProblemStatementID, team.ProblemStatement.ID)
		assert.GreaterOrEqual(t, len(team.Members), 2)
		for _, m := range team.Members {
			assert.Equal(t, team.ID, m.TeamID)
		}
	}
	for _, task := range tasks {
		assert.Equal(t, models.TaskPending, task.Status)
		assert.Positive(t, task.Points)
	}
}
