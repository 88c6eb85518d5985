package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"portfoliohub/internal/app"
	"portfoliohub/internal/ratelimit"
	"portfoliohub/internal/store"
	"portfoliohub/internal/usertoken"
	"portfoliohub/internal/util"
	"portfoliohub/pkg/domain"
)

// Config wires required dependencies for the HTTP server. LoginLimiter is
// optional; when nil the login endpoint is not throttled.
type Config struct {
	App          *app.App
	Tokens       *usertoken.Signer
	LoginLimiter *ratelimit.FixedWindowLimiter
}

// Server exposes the showcase HTTP API consumed by the browser client.
type Server struct {
	app          *app.App
	tokens       *usertoken.Signer
	loginLimiter *ratelimit.FixedWindowLimiter
	mux          *http.ServeMux
}

// New constructs the server with routes configured.
func New(cfg Config) *Server {
	s := &Server{
		app:          cfg.App,
		tokens:       cfg.Tokens,
		loginLimiter: cfg.LoginLimiter,
		mux:          http.NewServeMux(),
	}
	s.routes()
	return s
}

// Router returns the configured handler with middleware applied.
func (s *Server) Router() http.Handler {
	return util.WithRequestID(util.WithRequestLog(util.WithSecurityHeaders(util.WithCORS(s.mux))))
}

func (s *Server) routes() {
	s.mux.HandleFunc("/healthz", s.handleHealth)

	// auth
	s.mux.HandleFunc("/api/auth/login", s.handleLogin)
	s.mux.Handle("/api/auth/logout", s.authenticated(s.handleLogout))
	s.mux.Handle("/api/auth/me", s.authenticated(s.handleMe))

	// user management (admin checks live in the app layer)
	s.mux.Handle("/api/users", s.authenticated(s.handleUsers))
	s.mux.Handle("/api/users/", s.authenticated(s.handleUserByID))

	// image upload (binary body in, data URI out)
	s.mux.Handle("/api/images", s.authenticated(s.handleImages))

	// portfolios
	s.mux.HandleFunc("/api/portfolios", s.handlePortfolios)
	s.mux.HandleFunc("/api/portfolios/counts", s.handleCounts)
	s.mux.HandleFunc("/api/portfolios/", s.handlePortfolioByID)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type authHandler func(http.ResponseWriter, *http.Request, domain.User)

func (s *Server) authenticated(next authHandler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := s.authorize(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next(w, r, user)
	})
}

// authorize resolves the acting user: the bearer token must verify and its
// subject must match the active session snapshot. The snapshot, not the
// token, supplies identity attributes.
func (s *Server) authorize(r *http.Request) (domain.User, bool) {
	token, ok := bearerToken(r)
	if !ok {
		return domain.User{}, false
	}
	uid, err := s.tokens.Verify(token)
	if err != nil {
		slog.Warn("token rejected", "path", r.URL.Path, "err", err)
		return domain.User{}, false
	}
	current, ok, err := s.app.CurrentUser()
	if err != nil || !ok || current.ID != uid {
		return domain.User{}, false
	}
	return current, true
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if token == "" {
		return "", false
	}
	return token, true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{
		Error:     msg,
		RequestID: strings.TrimSpace(w.Header().Get("X-Request-Id")),
	})
}

// writeDomainError maps the typed failures of the core onto status codes.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrInvalidCredentials), errors.Is(err, app.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, app.ErrForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, store.ErrUserNotFound),
		errors.Is(err, store.ErrPortfolioNotFound),
		errors.Is(err, store.ErrAuthorNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrDuplicateUsername), errors.Is(err, store.ErrLastAdmin):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, store.ErrInvalidScore), errors.Is(err, app.ErrInvalidInput):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		slog.Error("request failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func methodNotAllowed(w http.ResponseWriter) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}
