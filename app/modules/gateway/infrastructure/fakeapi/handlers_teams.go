package fakeapi

import (
	"io"
	"net/http"
	"slices"

	"github.com/Black-And-White-Club/hackathon-portal/app/models"
	leaderboarddomain "github.com/Black-And-White-Club/hackathon-portal/app/modules/leaderboard/domain"
	"github.com/go-chi/chi/v5"
)

const maxUploadBytes = 10 << 20

func (s *Server) teamIndex(id string) int {
	return slices.IndexFunc(s.teams, func(t models.Team) bool { return t.ID == id })
}

func (s *Server) problemStatement(id string) *models.ProblemStatement {
	i := slices.IndexFunc(s.problemStatements, func(p models.ProblemStatement) bool { return p.ID == id })
	if i < 0 {
		return nil
	}
	ps := s.problemStatements[i]
	return &ps
}

func (s *Server) handleListTeams(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeData(w, http.StatusOK, slices.Clone(s.teams))
}

func (s *Server) handleGetTeam(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.teamIndex(chi.URLParam(r, "teamID"))
	if i < 0 {
		writeError(w, http.StatusNotFound, "Team not found")
		return
	}
	writeData(w, http.StatusOK, s.teams[i])
}

func (s *Server) handleUpdateTeam(w http.ResponseWriter, r *http.Request) {
	var patch models.TeamPatch
	if !decode(w, r, &patch) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.teamIndex(chi.URLParam(r, "teamID"))
	if i < 0 {
		writeError(w, http.StatusNotFound, "Team not found")
		return
	}
	team := s.teams[i]
	if patch.Title != nil {
		team.Title = *patch.Title
	}
	if patch.ProblemStatementID != nil {
		ps := s.problemStatement(*patch.ProblemStatementID)
		if ps == nil {
			writeError(w, http.StatusBadRequest, "Unknown problem statement")
			return
		}
		team.ProblemStatementID = &ps.ID
		team.ProblemStatement = ps
	}
	s.teams[i] = team
	writeData(w, http.StatusOK, team)
}

// handleDeleteTeam also drops the team's tasks and gallery.
func (s *Server) handleDeleteTeam(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	teamID := chi.URLParam(r, "teamID")
	i := s.teamIndex(teamID)
	if i < 0 {
		writeError(w, http.StatusNotFound, "Team not found")
		return
	}
	s.teams = slices.Delete(s.teams, i, i+1)
	s.tasks = slices.DeleteFunc(s.tasks, func(t models.Task) bool { return t.TeamID == teamID })
	delete(s.gallery, teamID)
	writeData(w, http.StatusOK, nil)
}

func (s *Server) handleVerifyPayment(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.teamIndex(chi.URLParam(r, "teamID"))
	if i < 0 {
		writeError(w, http.StatusNotFound, "Team not found")
		return
	}
	s.teams[i].PaymentVerified = true
	writeData(w, http.StatusOK, s.teams[i])
}

func (s *Server) handleUpdateMember(w http.ResponseWriter, r *http.Request) {
	var patch models.MemberPatch
	if !decode(w, r, &patch) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	ti := s.teamIndex(chi.URLParam(r, "teamID"))
	if ti < 0 {
		writeError(w, http.StatusNotFound, "Team not found")
		return
	}
	memberID := chi.URLParam(r, "memberID")
	mi := slices.IndexFunc(s.teams[ti].Members, func(m models.Member) bool { return m.ID == memberID })
	if mi < 0 {
		writeError(w, http.StatusNotFound, "Member not found")
		return
	}

	members := slices.Clone(s.teams[ti].Members)
	m := members[mi]
	if patch.Name != nil {
		m.Name = *patch.Name
	}
	if patch.ContactInfo != nil {
		m.ContactInfo = *patch.ContactInfo
	}
	if patch.CollegeInfo != nil {
		m.CollegeInfo = *patch.CollegeInfo
	}
	if patch.AttendanceFlag != nil {
		m.AttendanceFlag = *patch.AttendanceFlag
	}
	if patch.ShirtSize != nil {
		m.ShirtSize = *patch.ShirtSize
	}
	members[mi] = m
	s.teams[ti].Members = members
	writeData(w, http.StatusOK, m)
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeData(w, http.StatusOK, leaderboarddomain.Aggregate(s.teams, s.tasks))
}

func (s *Server) handleMyTeam(w http.ResponseWriter, r *http.Request) {
	teamID := claimsFrom(r.Context()).Subject
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.teamIndex(teamID)
	if i < 0 {
		writeError(w, http.StatusNotFound, "Team not found")
		return
	}
	writeData(w, http.StatusOK, s.teams[i])
}

func (s *Server) handleMyProblemStatement(w http.ResponseWriter, r *http.Request) {
	teamID := claimsFrom(r.Context()).Subject
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.teamIndex(teamID)
	if i < 0 {
		writeError(w, http.StatusNotFound, "Team not found")
		return
	}
	if s.teams[i].ProblemStatementID == nil {
		writeData(w, http.StatusOK, nil)
		return
	}
	writeData(w, http.StatusOK, s.problemStatement(*s.teams[i].ProblemStatementID))
}

func (s *Server) handleAdminGallery(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	teamID := chi.URLParam(r, "teamID")
	if s.teamIndex(teamID) < 0 {
		writeError(w, http.StatusNotFound, "Team not found")
		return
	}
	writeData(w, http.StatusOK, append([]models.GalleryImage{}, s.gallery[teamID]...))
}

func (s *Server) handleMyGallery(w http.ResponseWriter, r *http.Request) {
	teamID := claimsFrom(r.Context()).Subject
	s.mu.Lock()
	defer s.mu.Unlock()
	writeData(w, http.StatusOK, append([]models.GalleryImage{}, s.gallery[teamID]...))
}

func (s *Server) handleUploadImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "Expected a multipart upload")
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Image file is required")
		return
	}
	defer file.Close()
	if _, err := io.Copy(io.Discard, file); err != nil {
		writeError(w, http.StatusBadRequest, "Could not read image")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	teamID := chi.URLParam(r, "teamID")
	if s.teamIndex(teamID) < 0 {
		writeError(w, http.StatusNotFound, "Team not found")
		return
	}
	id := s.nextID("img")
	img := models.GalleryImage{
		ID:         id,
		TeamID:     teamID,
		URL:        "/uploads/" + teamID + "/" + id + "-" + header.Filename,
		Caption:    r.FormValue("caption"),
		UploadedAt: s.now().UTC(),
	}
	s.gallery[teamID] = append(s.gallery[teamID], img)
	writeData(w, http.StatusCreated, img)
}

func (s *Server) handleDeleteImage(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	teamID, imageID := chi.URLParam(r, "teamID"), chi.URLParam(r, "imageID")
	images := s.gallery[teamID]
	i := slices.IndexFunc(images, func(g models.GalleryImage) bool { return g.ID == imageID })
	if i < 0 {
		writeError(w, http.StatusNotFound, "Image not found")
		return
	}
	s.gallery[teamID] = slices.Delete(slices.Clone(images), i, i+1)
	writeData(w, http.StatusOK, nil)
}
