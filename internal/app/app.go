package app

import (
	"fmt"
	"sort"
	"strings"

	"portfoliohub/internal/store"
	"portfoliohub/pkg/domain"
)

// Config holds runtime configuration for the core application.
type Config struct {
	RedisAddr     string
	RedisPassword string
	DataDir       string
	Docs          store.DocumentStore // overrides backend selection when set
}

// App wires the stores together and enforces who may do what. All
// operations are synchronous and return either the affected record or a
// typed failure; translating failures into user-facing messages is the
// caller's job.
type App struct {
	users      *store.UserStore
	portfolios *store.PortfolioStore
	sessions   *store.SessionManager
	engagement *store.Engagement
}

// New selects the document persistence backend, seeds initial data on first
// ever use, and constructs the stores.
func New(cfg Config) (*App, error) {
	docs := cfg.Docs
	if docs == nil {
		var err error
		switch {
		case cfg.RedisAddr != "":
			docs = store.NewRedisDocumentStore(cfg.RedisAddr, cfg.RedisPassword)
		case cfg.DataDir != "":
			docs, err = store.NewFileDocumentStore(cfg.DataDir)
			if err != nil {
				return nil, fmt.Errorf("init file store: %w", err)
			}
		default:
			return nil, fmt.Errorf("document store required (redisAddr or dataDir)")
		}
	}
	if err := store.Seed(docs); err != nil {
		return nil, fmt.Errorf("seed store: %w", err)
	}

	users := store.NewUserStore(docs)
	portfolios := store.NewPortfolioStore(docs, users)
	return &App{
		users:      users,
		portfolios: portfolios,
		sessions:   store.NewSessionManager(docs, users),
		engagement: store.NewEngagement(portfolios),
	}, nil
}

// Login validates credentials and records the active session snapshot.
func (a *App) Login(username, password string) (domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return domain.User{}, store.ErrInvalidCredentials
	}
	return a.sessions.Login(username, password)
}

// Logout clears the active session.
func (a *App) Logout() error {
	return a.sessions.Logout()
}

// CurrentUser returns the active session snapshot, if any.
func (a *App) CurrentUser() (domain.User, bool, error) {
	return a.sessions.Current()
}

// ListUsers returns all users with secrets stripped. Admin only.
func (a *App) ListUsers(actor domain.User) ([]domain.User, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, ErrForbidden
	}
	users, err := a.users.List()
	if err != nil {
		return nil, err
	}
	out := make([]domain.User, 0, len(users))
	for _, u := range users {
		out = append(out, u.WithoutSecret())
	}
	return out, nil
}

// CreateUser registers a new account. Admin only.
func (a *App) CreateUser(actor domain.User, data store.NewUser) (domain.User, error) {
	if actor.Role != domain.RoleAdmin {
		return domain.User{}, ErrForbidden
	}
	data.Username = strings.TrimSpace(data.Username)
	if data.Username == "" || data.Password == "" || strings.TrimSpace(data.FullName) == "" {
		return domain.User{}, fmt.Errorf("%w: username, password, and full name are required", ErrInvalidInput)
	}
	if !validRole(data.Role) {
		return domain.User{}, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, data.Role)
	}
	user, err := a.users.Create(data)
	if err != nil {
		return domain.User{}, err
	}
	return user.WithoutSecret(), nil
}

// UpdateUser merges a partial update into an account. Admin only.
func (a *App) UpdateUser(actor domain.User, id string, patch store.UserPatch) (domain.User, error) {
	if actor.Role != domain.RoleAdmin {
		return domain.User{}, ErrForbidden
	}
	if patch.Role != nil && !validRole(*patch.Role) {
		return domain.User{}, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, *patch.Role)
	}
	user, err := a.users.Update(id, patch)
	if err != nil {
		return domain.User{}, err
	}
	return user.WithoutSecret(), nil
}

// DeleteUser removes an account. Admin only; the last administrator stays.
func (a *App) DeleteUser(actor domain.User, id string) error {
	if actor.Role != domain.RoleAdmin {
		return ErrForbidden
	}
	return a.users.Delete(id)
}

// PortfolioQuery narrows and orders ListPortfolios output. Zero values mean
// "no filter". Matching is presentation logic; the store itself only
// guarantees insertion order.
type PortfolioQuery struct {
	Category domain.PortfolioCategory
	AuthorID string
	Search   string
}

// ListPortfolios returns portfolios matching the query, newest first.
func (a *App) ListPortfolios(q PortfolioQuery) ([]domain.Portfolio, error) {
	portfolios, err := a.portfolios.List()
	if err != nil {
		return nil, err
	}
	search := strings.ToLower(strings.TrimSpace(q.Search))
	out := make([]domain.Portfolio, 0, len(portfolios))
	for _, p := range portfolios {
		if q.Category != "" && p.Category != q.Category {
			continue
		}
		if q.AuthorID != "" && p.AuthorID != q.AuthorID {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Title), search) {
			continue
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Counts summarizes the showcase for the dashboard cards.
type Counts struct {
	Total     int `json:"total"`
	Commander int `json:"commander"`
	Personnel int `json:"personnel"`
}

// CategoryCounts tallies portfolios per category.
func (a *App) CategoryCounts() (Counts, error) {
	portfolios, err := a.portfolios.List()
	if err != nil {
		return Counts{}, err
	}
	counts := Counts{Total: len(portfolios)}
	for _, p := range portfolios {
		switch p.Category {
		case domain.CategoryCommander:
			counts.Commander++
		case domain.CategoryPersonnel:
			counts.Personnel++
		}
	}
	return counts, nil
}

// GetPortfolio returns a portfolio by id.
func (a *App) GetPortfolio(id string) (domain.Portfolio, bool, error) {
	return a.portfolios.GetByID(id)
}

// CreatePortfolio creates a portfolio authored by the acting user.
func (a *App) CreatePortfolio(actor domain.User, data store.NewPortfolio) (domain.Portfolio, error) {
	if actor.ID == "" {
		return domain.Portfolio{}, ErrUnauthorized
	}
	if strings.TrimSpace(data.Title) == "" {
		return domain.Portfolio{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	return a.portfolios.Create(data, actor.ID)
}

// UpdatePortfolio merges field edits. Allowed to the author or an admin.
func (a *App) UpdatePortfolio(actor domain.User, id string, patch store.PortfolioPatch) (domain.Portfolio, error) {
	if err := a.authorizeOwner(actor, id); err != nil {
		return domain.Portfolio{}, err
	}
	return a.portfolios.Update(id, patch)
}

// DeletePortfolio removes a portfolio. Allowed to the author or an admin.
func (a *App) DeletePortfolio(actor domain.User, id string) error {
	if err := a.authorizeOwner(actor, id); err != nil {
		return err
	}
	return a.portfolios.Delete(id)
}

// ViewPortfolio counts one view. No authentication required.
func (a *App) ViewPortfolio(id string) (domain.Portfolio, error) {
	return a.engagement.IncrementView(id)
}

// ToggleLike flips the acting user's like on a portfolio.
func (a *App) ToggleLike(actor domain.User, id string) (domain.Portfolio, error) {
	if actor.ID == "" {
		return domain.Portfolio{}, ErrUnauthorized
	}
	return a.engagement.ToggleLike(id, actor.ID)
}

// Rate records or replaces the acting user's star rating.
func (a *App) Rate(actor domain.User, id string, score int) (domain.Portfolio, error) {
	if actor.ID == "" {
		return domain.Portfolio{}, ErrUnauthorized
	}
	return a.engagement.Rate(id, actor.ID, score)
}

func (a *App) authorizeOwner(actor domain.User, portfolioID string) error {
	if actor.ID == "" {
		return ErrUnauthorized
	}
	p, ok, err := a.portfolios.GetByID(portfolioID)
	if err != nil {
		return err
	}
	if !ok {
		return store.ErrPortfolioNotFound
	}
	if p.AuthorID != actor.ID && actor.Role != domain.RoleAdmin {
		return ErrForbidden
	}
	return nil
}

func validRole(r domain.UserRole) bool {
	return r == domain.RoleAdmin || r == domain.RoleContributor
}
