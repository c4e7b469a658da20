package fakeapi

import (
	"net/http"
	"slices"
	"strings"

	"github.com/Black-And-White-Club/hackathon-portal/app/models"
	"github.com/go-chi/chi/v5"
)

func (s *Server) taskIndex(id string) int {
	return slices.IndexFunc(s.tasks, func(t models.Task) bool { return t.ID == id })
}

func (s *Server) handleListTasks(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeData(w, http.StatusOK, slices.Clone(s.tasks))
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var in models.TaskInput
	if !decode(w, r, &in) {
		return
	}
	if strings.TrimSpace(in.Title) == "" || in.TeamID == "" {
		writeError(w, http.StatusBadRequest, "Title and team are required")
		return
	}
	if in.Points < 0 {
		writeError(w, http.StatusBadRequest, "Points must not be negative")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.teamIndex(in.TeamID) < 0 {
		writeError(w, http.StatusBadRequest, "Unknown team")
		return
	}
	task := models.Task{
		ID:          s.nextID("task"),
		Title:       in.Title,
		Description: in.Description,
		Difficulty:  in.Difficulty,
		RoundNumber: in.RoundNumber,
		Points:      in.Points,
		Status:      models.TaskPending,
		TeamID:      in.TeamID,
		CreatedAt:   s.now().UTC(),
	}
	s.tasks = append([]models.Task{task}, s.tasks...)
	writeData(w, http.StatusCreated, task)
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	var patch models.TaskPatch
	if !decode(w, r, &patch) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.taskIndex(chi.URLParam(r, "taskID"))
	if i < 0 {
		writeError(w, http.StatusNotFound, "Task not found")
		return
	}
	task := s.tasks[i]

	if patch.Status != nil {
		if !patch.Status.IsValid() {
			writeError(w, http.StatusBadRequest, "Unknown status")
			return
		}
		if task.Status.Terminal() && *patch.Status != task.Status {
			writeError(w, http.StatusBadRequest, "Task is already completed")
			return
		}
		task.Status = *patch.Status
	}
	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Difficulty != nil {
		task.Difficulty = *patch.Difficulty
	}
	if patch.RoundNumber != nil {
		task.RoundNumber = *patch.RoundNumber
	}
	if patch.Points != nil {
		task.Points = *patch.Points
	}
	if patch.ReviewNotes != nil {
		task.ReviewNotes = patch.ReviewNotes
	}
	s.tasks[i] = task
	writeData(w, http.StatusOK, task)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.taskIndex(chi.URLParam(r, "taskID"))
	if i < 0 {
		writeError(w, http.StatusNotFound, "Task not found")
		return
	}
	s.tasks = slices.Delete(s.tasks, i, i+1)
	writeData(w, http.StatusOK, nil)
}

func (s *Server) handleCompleteTask(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.taskIndex(chi.URLParam(r, "taskID"))
	if i < 0 {
		writeError(w, http.StatusNotFound, "Task not found")
		return
	}
	if s.tasks[i].Status == models.TaskCompleted {
		writeError(w, http.StatusBadRequest, "Task is already completed")
		return
	}
	s.tasks[i].Status = models.TaskCompleted
	writeData(w, http.StatusOK, s.tasks[i])
}

func (s *Server) handleMyTasks(w http.ResponseWriter, r *http.Request) {
	teamID := claimsFrom(r.Context()).Subject
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Task{}
	for _, t := range s.tasks {
		if t.TeamID == teamID {
			out = append(out, t)
		}
	}
	writeData(w, http.StatusOK, out)
}

type submitBody struct {
	Notes string `json:"notes"`
}

// handleSubmitTask accepts resubmission while in review; completed tasks are final.
func (s *Server) handleSubmitTask(w http.ResponseWriter, r *http.Request) {
	var body submitBody
	if !decode(w, r, &body) {
		return
	}
	teamID := claimsFrom(r.Context()).Subject

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.taskIndex(chi.URLParam(r, "taskID"))
	if i < 0 || s.tasks[i].TeamID != teamID {
		writeError(w, http.StatusNotFound, "Task not found")
		return
	}
	if s.tasks[i].Status == models.TaskCompleted {
		writeError(w, http.StatusBadRequest, "Task is already completed")
		return
	}
	notes := body.Notes
	s.tasks[i].Status = models.TaskInReview
	s.tasks[i].TeamNotes = &notes
	writeData(w, http.StatusOK, s.tasks[i])
}
