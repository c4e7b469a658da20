package models

import "time"

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

const (
	TaskPending   TaskStatus = "Pending"
	TaskInReview  TaskStatus = "InReview"
	TaskCompleted TaskStatus = "Completed"
)

// IsValid checks if the status is a known lifecycle state.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskPending, TaskInReview, TaskCompleted:
		return true
	default:
		return false
	}
}

// Terminal reports whether no transition may leave this status.
func (s TaskStatus) Terminal() bool {
	return s == TaskCompleted
}

// Task is a unit of work assigned to one team.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Difficulty  string     `json:"difficulty"`
	RoundNumber int        `json:"roundNumber"`
	Points      int        `json:"points"`
	Status      TaskStatus `json:"status"`
	TeamID      string     `json:"teamId"`
	TeamNotes   *string    `json:"teamNotes,omitempty"`
	ReviewNotes *string    `json:"reviewNotes,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// TaskInput is the body of an admin task creation.
type TaskInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Difficulty  string `json:"difficulty"`
	RoundNumber int    `json:"roundNumber"`
	Points      int    `json:"points"`
	TeamID      string `json:"teamId"`
}

// TaskPatch carries admin edits to a task. Nil fields are left untouched.
type TaskPatch struct {
	Title       *string     `json:"title,omitempty"`
	Description *string     `json:"description,omitempty"`
	Difficulty  *string     `json:"difficulty,omitempty"`
	RoundNumber *int        `json:"roundNumber,omitempty"`
	Points      *int        `json:"points,omitempty"`
	Status      *TaskStatus `json:"status,omitempty"`
	ReviewNotes *string     `json:"reviewNotes,omitempty"`
}
