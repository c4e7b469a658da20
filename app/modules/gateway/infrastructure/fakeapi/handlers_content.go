package fakeapi

import (
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"

	"github.com/Black-And-White-Club/hackathon-portal/app/models"
	"github.com/Black-And-White-Club/hackathon-portal/app/modules/resources/infrastructure/parsers"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleListProblemStatements(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeData(w, http.StatusOK, slices.Clone(s.problemStatements))
}

func (s *Server) codeTaken(code, exceptID string) bool {
	return slices.ContainsFunc(s.problemStatements, func(p models.ProblemStatement) bool {
		return strings.EqualFold(p.Code, code) && p.ID != exceptID
	})
}

func (s *Server) handleCreateProblemStatement(w http.ResponseWriter, r *http.Request) {
	var in models.ProblemStatementInput
	if !decode(w, r, &in) {
		return
	}
	if in.Code == "" || in.Title == "" {
		writeError(w, http.StatusBadRequest, "Code and title are required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.codeTaken(in.Code, "") {
		writeError(w, http.StatusConflict, fmt.Sprintf("Problem statement %s already exists", in.Code))
		return
	}
	ps := models.ProblemStatement{ID: s.nextID("ps"), Code: in.Code, Title: in.Title, Description: in.Description, Domain: in.Domain}
	s.problemStatements = append(s.problemStatements, ps)
	writeData(w, http.StatusCreated, ps)
}

func (s *Server) handleUpdateProblemStatement(w http.ResponseWriter, r *http.Request) {
	var in models.ProblemStatementInput
	if !decode(w, r, &in) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	id := chi.URLParam(r, "psID")
	i := slices.IndexFunc(s.problemStatements, func(p models.ProblemStatement) bool { return p.ID == id })
	if i < 0 {
		writeError(w, http.StatusNotFound, "Problem statement not found")
		return
	}
	if in.Code != "" && s.codeTaken(in.Code, id) {
		writeError(w, http.StatusConflict, fmt.Sprintf("Problem statement %s already exists", in.Code))
		return
	}
	ps := s.problemStatements[i]
	if in.Code != "" {
		ps.Code = in.Code
	}
	if in.Title != "" {
		ps.Title = in.Title
	}
	if in.Description != "" {
		ps.Description = in.Description
	}
	if in.Domain != "" {
		ps.Domain = in.Domain
	}
	s.problemStatements[i] = ps
	writeData(w, http.StatusOK, ps)
}

func (s *Server) handleDeleteProblemStatement(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := chi.URLParam(r, "psID")
	i := slices.IndexFunc(s.problemStatements, func(p models.ProblemStatement) bool { return p.ID == id })
	if i < 0 {
		writeError(w, http.StatusNotFound, "Problem statement not found")
		return
	}
	s.problemStatements = slices.Delete(s.problemStatements, i, i+1)
	writeData(w, http.StatusOK, nil)
}

// handleBulkProblemStatements imports every row or none.
func (s *Server) handleBulkProblemStatements(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "Expected a multipart upload")
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "CSV file is required")
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Could not read CSV")
		return
	}
	rows, err := parsers.NewCSVParser().Parse(data)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	seen := map[string]bool{}
	for _, row := range rows {
		key := strings.ToLower(row.Code)
		if seen[key] || s.codeTaken(row.Code, "") {
			writeError(w, http.StatusConflict, fmt.Sprintf("Problem statement %s already exists", row.Code))
			return
		}
		seen[key] = true
	}
	created := make([]models.ProblemStatement, 0, len(rows))
	for _, row := range rows {
		ps := models.ProblemStatement{ID: s.nextID("ps"), Code: row.Code, Title: row.Title, Description: row.Description, Domain: row.Domain}
		created = append(created, ps)
	}
	s.problemStatements = append(s.problemStatements, created...)
	writeData(w, http.StatusCreated, created)
}

func (s *Server) handleListAnnouncements(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeData(w, http.StatusOK, slices.Clone(s.announcements))
}

func (s *Server) handleCreateAnnouncement(w http.ResponseWriter, r *http.Request) {
	var in models.AnnouncementInput
	if !decode(w, r, &in) {
		return
	}
	if strings.TrimSpace(in.Title) == "" {
		writeError(w, http.StatusBadRequest, "Title is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	a := models.Announcement{ID: s.nextID("ann"), Title: in.Title, Body: in.Body, CreatedAt: s.now().UTC()}
	s.announcements = append([]models.Announcement{a}, s.announcements...)
	writeData(w, http.StatusCreated, a)
}

func (s *Server) handleUpdateAnnouncement(w http.ResponseWriter, r *http.Request) {
	var in models.AnnouncementInput
	if !decode(w, r, &in) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	id := chi.URLParam(r, "annID")
	i := slices.IndexFunc(s.announcements, func(a models.Announcement) bool { return a.ID == id })
	if i < 0 {
		writeError(w, http.StatusNotFound, "Announcement not found")
		return
	}
	if in.Title != "" {
		s.announcements[i].Title = in.Title
	}
	if in.Body != "" {
		s.announcements[i].Body = in.Body
	}
	writeData(w, http.StatusOK, s.announcements[i])
}

func (s *Server) handleDeleteAnnouncement(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := chi.URLParam(r, "annID")
	i := slices.IndexFunc(s.announcements, func(a models.Announcement) bool { return a.ID == id })
	if i < 0 {
		writeError(w, http.StatusNotFound, "Announcement not found")
		return
	}
	s.announcements = slices.Delete(s.announcements, i, i+1)
	writeData(w, http.StatusOK, nil)
}
