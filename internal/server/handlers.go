package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"portfoliohub/internal/app"
	"portfoliohub/internal/store"
	"portfoliohub/pkg/domain"
	"portfoliohub/pkg/imaging"
)

// Portfolio bodies can carry base64 image payloads.
const maxBodyBytes = 16 << 20

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var req loginRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if s.loginLimiter != nil && !s.loginLimiter.Allow(strings.ToLower(strings.TrimSpace(req.Username))) {
		writeError(w, http.StatusTooManyRequests, "too many login attempts")
		return
	}
	user, err := s.app.Login(req.Username, req.Password)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Token: token, User: user})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request, _ domain.User) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	if err := s.app.Logout(); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request, user domain.User) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// handleImages converts an uploaded image into a data URI that the client
// stores on the portfolio record as an opaque string.
func (s *Server) handleImages(w http.ResponseWriter, r *http.Request, _ domain.User) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	uri, err := imaging.EncodeDataURI(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid image payload")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"dataUri": uri})
}

// user management

type createUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

type updateUserRequest struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
	FullName *string `json:"fullName"`
	Role     *string `json:"role"`
}

func (s *Server) handleUsers(w http.ResponseWriter, r *http.Request, user domain.User) {
	switch r.Method {
	case http.MethodGet:
		users, err := s.app.ListUsers(user)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, users)
	case http.MethodPost:
		var req createUserRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		created, err := s.app.CreateUser(user, store.NewUser{
			Username: req.Username,
			Password: req.Password,
			FullName: req.FullName,
			Role:     domain.UserRole(req.Role),
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleUserByID(w http.ResponseWriter, r *http.Request, user domain.User) {
	id := strings.TrimPrefix(r.URL.Path, "/api/users/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	switch r.Method {
	case http.MethodPut:
		var req updateUserRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		patch := store.UserPatch{
			Username: req.Username,
			Password: req.Password,
			FullName: req.FullName,
		}
		if req.Role != nil {
			role := domain.UserRole(*req.Role)
			patch.Role = &role
		}
		updated, err := s.app.UpdateUser(user, id, patch)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	case http.MethodDelete:
		if err := s.app.DeleteUser(user, id); err != nil {
			writeDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		methodNotAllowed(w)
	}
}

// portfolios

type createPortfolioRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Type        string   `json:"type"`
	CoverImage  string   `json:"coverImage"`
	AlbumImages []string `json:"albumImages"`
}

type updatePortfolioRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"`
	Type        *string   `json:"type"`
	CoverImage  *string   `json:"coverImage"`
	AlbumImages *[]string `json:"albumImages"`
}

type rateRequest struct {
	Score int `json:"score"`
}

func (s *Server) handlePortfolios(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		q := app.PortfolioQuery{
			AuthorID: strings.TrimSpace(r.URL.Query().Get("author")),
			Search:   r.URL.Query().Get("q"),
		}
		if category, ok := parseCategory(r.URL.Query().Get("category")); ok {
			q.Category = category
		}
		portfolios, err := s.app.ListPortfolios(q)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, portfolios)
	case http.MethodPost:
		user, ok := s.authorize(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		var req createPortfolioRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		category, ok := parseCategory(req.Category)
		if !ok {
			writeError(w, http.StatusUnprocessableEntity, "unknown category")
			return
		}
		ptype, ok := parsePortfolioType(req.Type)
		if !ok {
			writeError(w, http.StatusUnprocessableEntity, "unknown type")
			return
		}
		created, err := s.app.CreatePortfolio(user, store.NewPortfolio{
			Title:       req.Title,
			Description: req.Description,
			Category:    category,
			Type:        ptype,
			CoverImage:  req.CoverImage,
			AlbumImages: req.AlbumImages,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleCounts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	counts, err := s.app.CategoryCounts()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

func (s *Server) handlePortfolioByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/portfolios/")
	id, action, _ := strings.Cut(rest, "/")
	if id == "" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	switch action {
	case "":
		s.servePortfolio(w, r, id)
	case "view":
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		p, err := s.app.ViewPortfolio(id)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	case "like":
		s.serveEngagement(w, r, func(user domain.User) (domain.Portfolio, error) {
			return s.app.ToggleLike(user, id)
		})
	case "rate":
		s.serveEngagement(w, r, func(user domain.User) (domain.Portfolio, error) {
			var req rateRequest
			if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil {
				return domain.Portfolio{}, app.ErrInvalidInput
			}
			return s.app.Rate(user, id, req.Score)
		})
	default:
		writeError(w, http.StatusNotFound, "not found")
	}
}

func (s *Server) servePortfolio(w http.ResponseWriter, r *http.Request, id string) {
	switch r.Method {
	case http.MethodGet:
		p, ok, err := s.app.GetPortfolio(id)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		if !ok {
			writeError(w, http.StatusNotFound, "portfolio not found")
			return
		}
		writeJSON(w, http.StatusOK, p)
	case http.MethodPut:
		user, ok := s.authorize(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		var req updatePortfolioRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		patch := store.PortfolioPatch{
			Title:       req.Title,
			Description: req.Description,
			CoverImage:  req.CoverImage,
			AlbumImages: req.AlbumImages,
		}
		if req.Category != nil {
			category, ok := parseCategory(*req.Category)
			if !ok {
				writeError(w, http.StatusUnprocessableEntity, "unknown category")
				return
			}
			patch.Category = &category
		}
		if req.Type != nil {
			ptype, ok := parsePortfolioType(*req.Type)
			if !ok {
				writeError(w, http.StatusUnprocessableEntity, "unknown type")
				return
			}
			patch.Type = &ptype
		}
		updated, err := s.app.UpdatePortfolio(user, id, patch)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	case http.MethodDelete:
		user, ok := s.authorize(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		if err := s.app.DeletePortfolio(user, id); err != nil {
			writeDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) serveEngagement(w http.ResponseWriter, r *http.Request, op func(domain.User) (domain.Portfolio, error)) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	user, ok := s.authorize(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	p, err := op(user)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func parseCategory(value string) (domain.PortfolioCategory, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case string(domain.CategoryCommander):
		return domain.CategoryCommander, true
	case string(domain.CategoryPersonnel):
		return domain.CategoryPersonnel, true
	default:
		return "", false
	}
}

func parsePortfolioType(value string) (domain.PortfolioType, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case string(domain.TypeApplication):
		return domain.TypeApplication, true
	case string(domain.TypeOther):
		return domain.TypeOther, true
	default:
		return "", false
	}
}
