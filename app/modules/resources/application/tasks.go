package resourcestore

import (
	"context"

	"github.com/Black-And-White-Club/hackathon-portal/app/models"
)

// FetchTasks loads all tasks for an admin and the team's own tasks for a team.
// Filtering is the server's job.
func (s *Store) FetchTasks(ctx context.Context) {
	fetch(ctx, s, "FetchTasks", "tasks",
		func(a access) func(context.Context) ([]models.Task, error) {
			switch {
			case a.is(models.RoleAdmin):
				return s.gateway.Admin().ListTasks
			case a.is(models.RoleTeam):
				return s.gateway.Team().MyTasks
			}
			return nil
		},
		func(c *Cache, _ access, tasks []models.Task) { c.Tasks = tasks },
	)
}

// CreateTask creates a task and puts the server's copy first in the cache.
func (s *Store) CreateTask(ctx context.Context, input models.TaskInput) (*models.Task, error) {
	return mutate(ctx, s, "CreateTask", "tasks", adminOnly,
		func(ctx context.Context, _ access) (*models.Task, error) {
			return s.gateway.Admin().CreateTask(ctx, input)
		},
		func(c *Cache, task models.Task) { c.Tasks = prepend(c.Tasks, task) },
	)
}

// UpdateTask edits a task. A patch that changes the status is checked against
// the lifecycle policy first; plain field edits are not.
func (s *Store) UpdateTask(ctx context.Context, id string, patch models.TaskPatch) (*models.Task, error) {
	return mutate(ctx, s, "UpdateTask", "tasks", adminOnly,
		func(ctx context.Context, a access) (*models.Task, error) {
			if patch.Status != nil {
				if err := s.checkTransition(a, id, *patch.Status); err != nil {
					return nil, err
				}
			}
			return s.gateway.Admin().UpdateTask(ctx, id, patch)
		},
		func(c *Cache, task models.Task) { c.Tasks = upsert(c.Tasks, task, taskKey) },
	)
}

// DeleteTask removes a task permanently.
func (s *Store) DeleteTask(ctx context.Context, id string) error {
	return exec(ctx, s, "DeleteTask", "tasks", adminOnly,
		func(ctx context.Context, _ access) error {
			return s.gateway.Admin().DeleteTask(ctx, id)
		},
		func(c *Cache) { c.Tasks = remove(c.Tasks, id, taskKey) },
	)
}
