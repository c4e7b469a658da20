// Package fakeapi is an in-memory implementation of the portal REST API. It
// backs the gateway tests, the integration tests and `portalctl fake-api`.
package fakeapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/Black-And-White-Club/hackathon-portal/app/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// CookieName matches the cookie the real API sets.
const CookieName = "token"

type account struct {
	password string
	identity models.Identity
}

type failure struct {
	status  int
	message string
}

// Server holds all API state behind one mutex.
type Server struct {
	mu sync.Mutex

	tokens  tokenIssuer
	logger  *slog.Logger
	now     func() time.Time
	router  chi.Router
	revoked map[string]bool

	accounts          map[string]account
	teams             []models.Team
	tasks             []models.Task
	problemStatements []models.ProblemStatement
	announcements     []models.Announcement
	gallery           map[string][]models.GalleryImage
	payments          map[string]models.PaymentConfirmation

	seq      int
	hits     map[string]int
	failures map[string][]failure
}

// Option configures a Server.
type Option func(*Server)

// WithClock overrides time.Now, for expiring tokens in tests.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// WithTokenTTL sets the lifetime of issued tokens.
func WithTokenTTL(ttl time.Duration) Option {
	return func(s *Server) { s.tokens.ttl = ttl }
}

// WithLogger attaches a request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// New creates an empty API.
func New(secret string, opts ...Option) *Server {
	s := &Server{
		tokens:   tokenIssuer{secret: []byte(secret), ttl: 12 * time.Hour},
		now:      time.Now,
		revoked:  map[string]bool{},
		accounts: map[string]account{},
		gallery:  map[string][]models.GalleryImage{},
		payments: map[string]models.PaymentConfirmation{},
		hits:     map[string]int{},
		failures: map[string][]failure{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe runs the API on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.count)
	if s.logger != nil {
		r.Use(s.logRequests)
	}
	r.Use(s.injectFailures)

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/login", s.handleLogin)
		r.Group(func(r chi.Router) {
			r.Use(s.authenticate)
			r.Get("/verify", s.handleVerify)
			r.Post("/logout", s.handleLogout)
		})
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(s.authenticate, requireRole(models.RoleAdmin))
		r.Post("/logout", s.handleLogout)

		r.Get("/tasks", s.handleListTasks)
		r.Post("/tasks", s.handleCreateTask)
		r.Patch("/tasks/{taskID}", s.handleUpdateTask)
		r.Delete("/tasks/{taskID}", s.handleDeleteTask)
		r.Post("/tasks/{taskID}/complete", s.handleCompleteTask)

		r.Get("/teams", s.handleListTeams)
		r.Get("/teams/{teamID}", s.handleGetTeam)
		r.Patch("/teams/{teamID}", s.handleUpdateTeam)
		r.Delete("/teams/{teamID}", s.handleDeleteTeam)
		r.Post("/teams/{teamID}/verify-payment", s.handleVerifyPayment)
		r.Patch("/teams/{teamID}/members/{memberID}", s.handleUpdateMember)
		r.Get("/teams/{teamID}/gallery", s.handleAdminGallery)
		r.Post("/teams/{teamID}/gallery", s.handleUploadImage)
		r.Delete("/teams/{teamID}/gallery/{imageID}", s.handleDeleteImage)

		r.Get("/leaderboard", s.handleLeaderboard)

		r.Get("/problem-statements", s.handleListProblemStatements)
		r.Post("/problem-statements", s.handleCreateProblemStatement)
		r.Post("/problem-statements/bulk", s.handleBulkProblemStatements)
		r.Patch("/problem-statements/{psID}", s.handleUpdateProblemStatement)
		r.Delete("/problem-statements/{psID}", s.handleDeleteProblemStatement)

		r.Get("/announcements", s.handleListAnnouncements)
		r.Post("/announcements", s.handleCreateAnnouncement)
		r.Patch("/announcements/{annID}", s.handleUpdateAnnouncement)
		r.Delete("/announcements/{annID}", s.handleDeleteAnnouncement)
	})

	r.Route("/api/team", func(r chi.Router) {
		r.Use(s.authenticate, requireRole(models.RoleTeam))
		r.Post("/logout", s.handleLogout)
		r.Get("/me", s.handleMyTeam)
		r.Get("/tasks", s.handleMyTasks)
		r.Post("/tasks/{taskID}/submit", s.handleSubmitTask)
		r.Get("/problem-statement", s.handleMyProblemStatement)
		r.Get("/announcements", s.handleListAnnouncements)
		r.Get("/gallery", s.handleMyGallery)
	})

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/problem-statements", s.handleListProblemStatements)
		r.Post("/register", s.handleRegister)
		r.Post("/payment", s.handleConfirmPayment)
	})

	return r
}

func (s *Server) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s-%d", prefix, s.seq)
}

func hitKey(method, path string) string { return method + " " + path }

// Hits returns how many requests reached method and path, including rejected ones.
func (s *Server) Hits(method, path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[hitKey(method, path)]
}

// TotalHits counts every request received.
func (s *Server) TotalHits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, v := range s.hits {
		n += v
	}
	return n
}

// FailNext makes the next request to method and path fail with status and message.
// Calls queue up.
func (s *Server) FailNext(method, path string, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := hitKey(method, path)
	s.failures[key] = append(s.failures[key], failure{status: status, message: message})
}

// AddAccount registers login credentials for identity. Team identities carry
// their team id as the identity id.
func (s *Server) AddAccount(username, password string, identity models.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[username] = account{password: password, identity: identity}
}

// Seed loads entities directly, bypassing the API.
func (s *Server) Seed(teams []models.Team, tasks []models.Task, statements []models.ProblemStatement, announcements []models.Announcement) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teams = append(s.teams, teams...)
	s.tasks = append(s.tasks, tasks...)
	s.problemStatements = append(s.problemStatements, statements...)
	s.announcements = append(s.announcements, announcements...)
}

// Task returns the server's copy of a task.
func (s *Server) Task(id string) (models.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.tasks, func(t models.Task) bool { return t.ID == id })
	if i < 0 {
		return models.Task{}, false
	}
	return s.tasks[i], true
}

// Payment returns a recorded payment confirmation by team external code.
func (s *Server) Payment(externalCode string) (models.PaymentConfirmation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.payments[externalCode]
	return p, ok
}
