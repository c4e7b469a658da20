package resourcestore

import (
	"context"
	"fmt"

	"github.com/Black-And-White-Club/hackathon-portal/app/models"
	taskdomain "github.com/Black-And-White-Club/hackathon-portal/app/modules/task/domain"
)

// checkTransition consults the cached task. Tasks not in the cache are left to
// the server.
func (s *Store) checkTransition(a access, id string, to models.TaskStatus) error {
	task, ok := s.Snapshot().Task(id)
	if !ok {
		return nil
	}
	if d := taskdomain.Decide(task, to, a.role); !d.Allowed {
		return fmt.Errorf("%w: %s", ErrTransitionNotAllowed, d.Reason)
	}
	return nil
}

// AllowedTransitions reports the statuses the current role may move a cached
// task to. It is empty for unknown tasks and logged-out sessions.
func (s *Store) AllowedTransitions(ctx context.Context, id string) taskdomain.StatusSet {
	a := s.access(ctx)
	task, ok := s.Snapshot().Task(id)
	if !a.ok || !ok {
		return taskdomain.StatusSet{}
	}
	return taskdomain.AllowedTransitions(task.Status, a.role)
}

// SubmitTask sends the team's notes, asking for review. The resulting status
// is whatever the server returns.
func (s *Store) SubmitTask(ctx context.Context, id, notes string) (*models.Task, error) {
	return mutate(ctx, s, "SubmitTask", "tasks", teamOnly,
		func(ctx context.Context, a access) (*models.Task, error) {
			if err := s.checkTransition(a, id, models.TaskInReview); err != nil {
				return nil, err
			}
			return s.gateway.Team().SubmitTask(ctx, id, notes)
		},
		func(c *Cache, task models.Task) { c.Tasks = upsert(c.Tasks, task, taskKey) },
	)
}

// SetInReview moves a task between Pending and InReview without team action.
func (s *Store) SetInReview(ctx context.Context, id string, inReview bool) (*models.Task, error) {
	target := models.TaskPending
	if inReview {
		target = models.TaskInReview
	}
	return mutate(ctx, s, "SetInReview", "tasks", adminOnly,
		func(ctx context.Context, a access) (*models.Task, error) {
			if err := s.checkTransition(a, id, target); err != nil {
				return nil, err
			}
			return s.gateway.Admin().UpdateTask(ctx, id, models.TaskPatch{Status: &target})
		},
		func(c *Cache, task models.Task) { c.Tasks = upsert(c.Tasks, task, taskKey) },
	)
}

// CompleteTask finalizes a task, first recording reviewNotes when given.
// With notes this is two remote calls. If the notes are saved but completion
// fails, the returned error reports the failed completion while the cache
// already holds the server's notes-only copy, still in its previous status.
// Retrying is safe: the notes are rewritten with the same value.
func (s *Store) CompleteTask(ctx context.Context, id, reviewNotes string) (*models.Task, error) {
	return mutate(ctx, s, "CompleteTask", "tasks", adminOnly,
		func(ctx context.Context, a access) (*models.Task, error) {
			if err := s.checkTransition(a, id, models.TaskCompleted); err != nil {
				return nil, err
			}
			if reviewNotes != "" {
				noted, err := s.gateway.Admin().UpdateTask(ctx, id, models.TaskPatch{ReviewNotes: &reviewNotes})
				if err != nil {
					return nil, err
				}
				if noted != nil {
					s.commit(ctx, a, "tasks", func(c *Cache) { c.Tasks = upsert(c.Tasks, *noted, taskKey) })
				}
			}
			return s.gateway.Admin().CompleteTask(ctx, id)
		},
		func(c *Cache, task models.Task) { c.Tasks = upsert(c.Tasks, task, taskKey) },
	)
}
