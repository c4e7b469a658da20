package resourcestore

import (
	"context"

	"github.com/Black-And-White-Club/hackathon-portal/app/models"
)

// FetchTeam loads the team's own record and the problem statement embedded in
// it. A team without a statement clears the cached one.
func (s *Store) FetchTeam(ctx context.Context) {
	fetch(ctx, s, "FetchTeam", "team",
		func(a access) func(context.Context) (*models.Team, error) {
			if a.is(models.RoleTeam) {
				return s.gateway.Team().MyTeam
			}
			return nil
		},
		func(c *Cache, _ access, team *models.Team) {
			c.Team = team
			c.ProblemStatement = nil
			if team != nil && team.ProblemStatement != nil {
				ps := *team.ProblemStatement
				c.ProblemStatement = &ps
			}
		},
	)
}

// FetchProblemStatement loads the team's chosen problem statement, which may be none.
func (s *Store) FetchProblemStatement(ctx context.Context) {
	fetch(ctx, s, "FetchProblemStatement", "problemStatement",
		func(a access) func(context.Context) (*models.ProblemStatement, error) {
			if a.is(models.RoleTeam) {
				return s.gateway.Team().MyProblemStatement
			}
			return nil
		},
		func(c *Cache, _ access, ps *models.ProblemStatement) { c.ProblemStatement = ps },
	)
}

// FetchTeams loads every team for an admin.
func (s *Store) FetchTeams(ctx context.Context) {
	fetch(ctx, s, "FetchTeams", "teams",
		func(a access) func(context.Context) ([]models.Team, error) {
			if a.is(models.RoleAdmin) {
				return s.gateway.Admin().ListTeams
			}
			return nil
		},
		func(c *Cache, _ access, teams []models.Team) { c.Teams = teams },
	)
}

// GetTeam loads one team and refreshes it in the admin team list.
func (s *Store) GetTeam(ctx context.Context, id string) (*models.Team, error) {
	return mutate(ctx, s, "GetTeam", "teams", adminOnly,
		func(ctx context.Context, _ access) (*models.Team, error) {
			return s.gateway.Admin().GetTeam(ctx, id)
		},
		func(c *Cache, team models.Team) { c.Teams = upsert(c.Teams, team, teamKey) },
	)
}

func (s *Store) UpdateTeam(ctx context.Context, id string, patch models.TeamPatch) (*models.Team, error) {
	return mutate(ctx, s, "UpdateTeam", "teams", adminOnly,
		func(ctx context.Context, _ access) (*models.Team, error) {
			return s.gateway.Admin().UpdateTeam(ctx, id, patch)
		},
		func(c *Cache, team models.Team) { c.Teams = upsert(c.Teams, team, teamKey) },
	)
}

// DeleteTeam removes a team together with its members.
func (s *Store) DeleteTeam(ctx context.Context, id string) error {
	return exec(ctx, s, "DeleteTeam", "teams", adminOnly,
		func(ctx context.Context, _ access) error {
			return s.gateway.Admin().DeleteTeam(ctx, id)
		},
		func(c *Cache) { c.Teams = remove(c.Teams, id, teamKey) },
	)
}

func (s *Store) VerifyPayment(ctx context.Context, id string) (*models.Team, error) {
	return mutate(ctx, s, "VerifyPayment", "teams", adminOnly,
		func(ctx context.Context, _ access) (*models.Team, error) {
			return s.gateway.Admin().VerifyPayment(ctx, id)
		},
		func(c *Cache, team models.Team) { c.Teams = upsert(c.Teams, team, teamKey) },
	)
}

// UpdateMember edits one member and swaps it into its cached team.
func (s *Store) UpdateMember(ctx context.Context, team, member string, patch models.MemberPatch) (*models.Member, error) {
	return mutate(ctx, s, "UpdateMember", "teams", adminOnly,
		func(ctx context.Context, _ access) (*models.Member, error) {
			return s.gateway.Admin().UpdateMember(ctx, team, member, patch)
		},
		func(c *Cache, m models.Member) {
			owner, ok := c.TeamByID(team)
			if !ok {
				return
			}
			owner.Members = upsert(owner.Members, m, memberKey)
			c.Teams = upsert(c.Teams, owner, teamKey)
		},
	)
}
