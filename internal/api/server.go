// ABOUTME: HTTP API server wiring routes, auth middleware, and CORS
// ABOUTME: Exposes /api/auth/* and /api/tasks* plus a health endpoint

package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/laksh-krishna-sharma/AI-Task-Manager/internal/auth"
	"github.com/laksh-krishna-sharma/AI-Task-Manager/internal/store"
)

// Config holds API server configuration.
type Config struct {
	// TokenTTL is the lifetime of issued tokens.
	TokenTTL time.Duration

	// AllowedOrigins are the origins permitted by the CORS middleware.
	// Empty means no cross-origin access.
	AllowedOrigins []string
}

// Server handles the REST API routes.
type Server struct {
	store   store.Store
	tokens  *auth.JWTVerifier
	revoked *auth.RevocationSet
	config  Config
	logger  *slog.Logger
}

// New creates a new API server.
func New(st store.Store, tokens *auth.JWTVerifier, revoked *auth.RevocationSet, cfg Config) *Server {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = auth.DefaultTokenTTL
	}
	return &Server{
		store:   st,
		tokens:  tokens,
		revoked: revoked,
		config:  cfg,
		logger:  slog.Default().With("component", "api"),
	}
}

// RegisterRoutes registers all API routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	// Public routes (no auth required)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("POST /api/auth/logout", s.handleLogout)

	// Protected routes (bearer token required)
	protected := auth.Middleware(s.tokens, s.revoked)
	mux.Handle("GET /api/tasks", protected(http.HandlerFunc(s.handleListTasks)))
	mux.Handle("POST /api/tasks", protected(http.HandlerFunc(s.handleCreateTask)))
	mux.Handle("PATCH /api/tasks/{id}", protected(http.HandlerFunc(s.handleUpdateTask)))
	mux.Handle("DELETE /api/tasks/{id}", protected(http.HandlerFunc(s.handleDeleteTask)))

	s.logger.Info("api routes registered")
}

// Handler returns the complete handler chain: routes wrapped in CORS.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.RegisterRoutes(mux)
	return s.corsMiddleware(mux)
}

// handleHealth handles GET /health requests.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// corsMiddleware answers preflight requests and sets CORS headers for
// configured origins. The browser client lives on a different origin in
// development.
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && s.originAllowed(origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Vary", "Origin")
		}

		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) originAllowed(origin string) bool {
	for _, allowed := range s.config.AllowedOrigins {
		if allowed == origin || allowed == "*" {
			return true
		}
	}
	return false
}
