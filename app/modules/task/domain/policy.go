package taskdomain

import (
	"fmt"
	"slices"

	"github.com/Black-And-White-Club/hackathon-portal/app/models"
)

// StatusSet is an unordered set of task statuses.
type StatusSet map[models.TaskStatus]struct{}

// Has reports whether s contains status.
func (s StatusSet) Has(status models.TaskStatus) bool {
	_, ok := s[status]
	return ok
}

// Sorted returns the members in lifecycle order.
func (s StatusSet) Sorted() []models.TaskStatus {
	out := make([]models.TaskStatus, 0, len(s))
	for _, st := range []models.TaskStatus{models.TaskPending, models.TaskInReview, models.TaskCompleted} {
		if s.Has(st) {
			out = append(out, st)
		}
	}
	return out
}

func newSet(statuses ...models.TaskStatus) StatusSet {
	set := make(StatusSet, len(statuses))
	for _, st := range statuses {
		set[st] = struct{}{}
	}
	return set
}

// transitions is the advisory transition table. Completed has no entry for any role.
var transitions = map[models.Role]map[models.TaskStatus][]models.TaskStatus{
	models.RoleAdmin: {
		models.TaskPending:  {models.TaskInReview, models.TaskCompleted},
		models.TaskInReview: {models.TaskPending, models.TaskCompleted},
	},
	models.RoleTeam: {
		models.TaskPending: {models.TaskInReview},
	},
}

// AllowedTransitions returns the statuses a task in status may move to when the
// change is requested by role. The result never contains status itself.
func AllowedTransitions(status models.TaskStatus, role models.Role) StatusSet {
	return newSet(transitions[role][status]...)
}

// CanTransition reports whether role may move a task from one status to another.
// Re-applying a non-terminal status is accepted so that a team can resubmit notes
// while its task waits for review.
func CanTransition(from, to models.TaskStatus, role models.Role) bool {
	if !role.IsValid() || !from.IsValid() || !to.IsValid() {
		return false
	}
	if from.Terminal() {
		return false
	}
	if from == to {
		return slices.Contains(triggers[role], to)
	}
	return AllowedTransitions(from, role).Has(to)
}

// triggers lists the target statuses each role can request at all.
var triggers = map[models.Role][]models.TaskStatus{
	models.RoleAdmin: {models.TaskPending, models.TaskInReview, models.TaskCompleted},
	models.RoleTeam:  {models.TaskInReview},
}

// Decision is the outcome of evaluating a transition request against a cached task.
type Decision struct {
	Allowed bool
	From    models.TaskStatus
	To      models.TaskStatus
	Reason  string
}

// Decide evaluates moving task to the target status on behalf of role.
func Decide(task models.Task, to models.TaskStatus, role models.Role) Decision {
	d := Decision{From: task.Status, To: to}
	switch {
	case task.Status.Terminal():
		d.Reason = fmt.Sprintf("task %s is %s and cannot change status", task.ID, task.Status)
	case !CanTransition(task.Status, to, role):
		d.Reason = fmt.Sprintf("%s cannot move task %s from %s to %s", role, task.ID, task.Status, to)
	default:
		d.Allowed = true
	}
	return d
}
