package fakeapi

import (
	"net/http"

	"github.com/Black-And-White-Club/hackathon-portal/app/models"
)

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !decode(w, r, &req) {
		return
	}

	s.mu.Lock()
	acct, ok := s.accounts[req.Username]
	s.mu.Unlock()
	if !ok || acct.password != req.Password || acct.identity.Role != req.Role {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	now := s.now()
	token, claims, err := s.tokens.issue(acct.identity, now)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not create session")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  claims.ExpiresAt.Time,
	})
	writeData(w, http.StatusOK, models.LoginResponse{
		Role:   acct.identity.Role,
		UserID: acct.identity.ID,
		Token:  token,
	})
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	identity := claimsFrom(r.Context()).identity()
	writeData(w, http.StatusOK, models.SessionCheck{Valid: true, User: &identity})
}

// handleLogout revokes the presented token and clears the cookie.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	s.mu.Lock()
	s.revoked[claims.ID] = true
	s.mu.Unlock()

	http.SetCookie(w, &http.Cookie{Name: CookieName, Value: "", Path: "/", MaxAge: -1})
	writeData(w, http.StatusOK, nil)
}
