package fakeapi

import (
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/Black-And-White-Club/hackathon-portal/app/models"
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var reg models.Registration
	if !decode(w, r, &reg) {
		return
	}
	if strings.TrimSpace(reg.Title) == "" {
		writeError(w, http.StatusBadRequest, "Team name is required")
		return
	}
	if len(reg.Members) == 0 {
		writeError(w, http.StatusBadRequest, "At least one member is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if slices.ContainsFunc(s.teams, func(t models.Team) bool { return strings.EqualFold(t.Title, reg.Title) }) {
		writeError(w, http.StatusConflict, "Team name already taken")
		return
	}

	team := models.Team{
		ID:           s.nextID("team"),
		ExternalCode: fmt.Sprintf("HX-%04d", len(s.teams)+1),
		Title:        reg.Title,
	}
	if reg.ProblemStatementID != "" {
		ps := s.problemStatement(reg.ProblemStatementID)
		if ps == nil {
			writeError(w, http.StatusBadRequest, "Unknown problem statement")
			return
		}
		team.ProblemStatementID = &ps.ID
		team.ProblemStatement = ps
	}
	for _, m := range reg.Members {
		team.Members = append(team.Members, models.Member{
			ID:          s.nextID("member"),
			TeamID:      team.ID,
			Name:        m.Name,
			ContactInfo: m.ContactInfo,
			CollegeInfo: m.CollegeInfo,
			ShirtSize:   m.ShirtSize,
		})
	}
	s.teams = append(s.teams, team)
	writeData(w, http.StatusCreated, models.RegistrationReceipt{TeamID: team.ID, ExternalCode: team.ExternalCode})
}

func (s *Server) handleConfirmPayment(w http.ResponseWriter, r *http.Request) {
	var p models.PaymentConfirmation
	if !decode(w, r, &p) {
		return
	}
	if p.ExternalCode == "" || p.TransactionID == "" {
		writeError(w, http.StatusBadRequest, "Team code and transaction id are required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !slices.ContainsFunc(s.teams, func(t models.Team) bool { return t.ExternalCode == p.ExternalCode }) {
		writeError(w, http.StatusNotFound, "No team with that code")
		return
	}
	s.payments[p.ExternalCode] = p
	writeData(w, http.StatusOK, nil)
}
