package fakeapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Black-And-White-Club/hackathon-portal/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func call(t *testing.T, s *Server, method, path, body, token string) (*httptest.ResponseRecorder, envelopeIn) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	var env envelopeIn
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	return rec, env
}

type envelopeIn struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func login(t *testing.T, s *Server, role models.Role, username, password string) string {
	t.Helper()
	body, _ := json.Marshal(models.LoginRequest{Role: role, Username: username, Password: password})
	rec, env := call(t, s, http.MethodPost, "/api/auth/login", string(body), "")
	require.Equal(t, http.StatusOK, rec.Code, env.Message)

	var resp models.LoginResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestSeedDemo_AccountsCanLogIn(t *testing.T) {
	s := New("secret")
	logins := s.SeedDemo(7, 4)
	require.Len(t, logins, 5)
	assert.Equal(t, models.RoleAdmin, logins[0].Role)

	admin := login(t, s, models.RoleAdmin, logins[0].Username, logins[0].Password)
	rec, env := call(t, s, http.MethodGet, "/api/admin/teams", "", admin)
	require.Equal(t, http.StatusOK, rec.Code)
	var teams []models.Team
	require.NoError(t, json.Unmarshal(env.Data, &teams))
	assert.Len(t, teams, 4)

	team := login(t, s, models.RoleTeam, logins[1].Username, logins[1].Password)
	rec, env = call(t, s, http.MethodGet, "/api/team/tasks", "", team)
	require.Equal(t, http.StatusOK, rec.Code)
	var tasks []models.Task
	require.NoError(t, json.Unmarshal(env.Data, &tasks))
	assert.Len(t, tasks, 3)
	for _, task := range tasks {
		assert.Equal(t, teams[0].ID, task.TeamID)
	}
}

func TestAuthenticate(t *testing.T) {
	s := New("secret")
	s.AddAccount("admin", "pw", models.Identity{ID: "a", Role: models.RoleAdmin})
	s.AddAccount("HX-0001", "pw", models.Identity{ID: "team-1", Role: models.RoleTeam})

	tests := []struct {
		name    string
		token   func(t *testing.T) string
		path    string
		status  int
		message string
	}{
		{name: "missing token", token: func(*testing.T) string { return "" }, path: "/api/admin/tasks", status: http.StatusUnauthorized, message: "Not logged in"},
		{name: "garbage token", token: func(*testing.T) string { return "nope" }, path: "/api/admin/tasks", status: http.StatusUnauthorized, message: "Session expired"},
		{name: "wrong role", token: func(t *testing.T) string { return login(t, s, models.RoleTeam, "HX-0001", "pw") }, path: "/api/admin/tasks", status: http.StatusForbidden, message: "Access denied"},
		{name: "admin", token: func(t *testing.T) string { return login(t, s, models.RoleAdmin, "admin", "pw") }, path: "/api/admin/tasks", status: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := call(t, s, http.MethodGet, tt.path, "", tt.token(t))
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.message, env.Message)
		})
	}
}

func TestLogin_RoleMustMatch(t *testing.T) {
	s := New("secret")
	s.AddAccount("admin", "pw", models.Identity{ID: "a", Role: models.RoleAdmin})

	body, _ := json.Marshal(models.LoginRequest{Role: models.RoleTeam, Username: "admin", Password: "pw"})
	rec, env := call(t, s, http.MethodPost, "/api/auth/login", string(body), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid credentials", env.Message)
}

func TestTokensExpire(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s := New("secret", WithClock(func() time.Time { return now }), WithTokenTTL(time.Minute))
	s.AddAccount("admin", "pw", models.Identity{ID: "a", Role: models.RoleAdmin})
	token := login(t, s, models.RoleAdmin, "admin", "pw")

	rec, _ := call(t, s, http.MethodGet, "/api/auth/verify", "", token)
	assert.Equal(t, http.StatusOK, rec.Code)

	now = now.Add(2 * time.Minute)
	rec, env := call(t, s, http.MethodGet, "/api/auth/verify", "", token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Session expired", env.Message)
}

func TestFailNext_OneShot(t *testing.T) {
	s := New("secret")
	s.FailNext(http.MethodGet, "/api/public/problem-statements", http.StatusBadGateway, "upstream down")

	rec, env := call(t, s, http.MethodGet, "/api/public/problem-statements", "", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "upstream down", env.Message)

	rec, _ = call(t, s, http.MethodGet, "/api/public/problem-statements", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, s.Hits(http.MethodGet, "/api/public/problem-statements"))
}

func TestSubmitThenComplete(t *testing.T) {
	s := New("secret")
	s.AddAccount("admin", "pw", models.Identity{ID: "a", Role: models.RoleAdmin})
	s.AddAccount("HX-0001", "pw", models.Identity{ID: "team-1", Role: models.RoleTeam})
	s.Seed(
		[]models.Team{{ID: "team-1", ExternalCode: "HX-0001", Title: "Byte Me"}},
		[]models.Task{{ID: "7", TeamID: "team-1", Title: "Ship", Points: 25, Status: models.TaskPending}},
		nil, nil,
	)

	team := login(t, s, models.RoleTeam, "HX-0001", "pw")
	rec, _ := call(t, s, http.MethodPost, "/api/team/tasks/7/submit", `{"notes":"see repo"}`, team)
	require.Equal(t, http.StatusOK, rec.Code)
	task, _ := s.Task("7")
	assert.Equal(t, models.TaskInReview, task.Status)

	admin := login(t, s, models.RoleAdmin, "admin", "pw")
	rec, _ = call(t, s, http.MethodPost, "/api/admin/tasks/7/complete", "", admin)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = call(t, s, http.MethodPost, "/api/team/tasks/7/submit", `{"notes":"again"}`, team)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	task, _ = s.Task("7")
	assert.Equal(t, models.TaskCompleted, task.Status)
}
