package fakeapi

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Black-And-White-Club/hackathon-portal/app/models"
	"github.com/go-chi/chi/v5/middleware"
)

type claimsKey struct{}

func claimsFrom(ctx context.Context) *portalClaims {
	c, _ := ctx.Value(claimsKey{}).(*portalClaims)
	return c
}

func (s *Server) count(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.hits[hitKey(r.Method, r.URL.Path)]++
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("fake api request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.String("request_id", r.Header.Get("X-Request-ID")),
			slog.Duration("duration", time.Since(start)),
		)
	})
}

func (s *Server) injectFailures(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := hitKey(r.Method, r.URL.Path)
		s.mu.Lock()
		queue := s.failures[key]
		var f *failure
		if len(queue) > 0 {
			f = &queue[0]
			s.failures[key] = queue[1:]
		}
		s.mu.Unlock()

		if f != nil {
			writeError(w, f.status, f.message)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// authenticate accepts the token from the Authorization header or the cookie.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := ""
		if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
			token = strings.TrimPrefix(h, "Bearer ")
		}
		if token == "" {
			if cookie, err := r.Cookie(CookieName); err == nil {
				token = cookie.Value
			}
		}
		if token == "" {
			writeError(w, http.StatusUnauthorized, "Not logged in")
			return
		}

		claims, err := s.tokens.validate(token, s.now())
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Session expired")
			return
		}

		s.mu.Lock()
		revoked := s.revoked[claims.ID]
		s.mu.Unlock()
		if revoked {
			writeError(w, http.StatusUnauthorized, "Session expired")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey{}, claims)))
	})
}

func requireRole(role models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := claimsFrom(r.Context())
			if claims == nil || models.Role(claims.Role) != role {
				writeError(w, http.StatusForbidden, "Access denied")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
