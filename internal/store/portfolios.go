package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"portfoliohub/internal/util"
	"portfoliohub/pkg/domain"
)

// PortfolioStore owns the persisted portfolio collection. Author identity is
// resolved through the user store at creation time only; the author name is
// denormalized onto the record and never re-joined afterwards.
type PortfolioStore struct {
	mu    sync.Mutex
	docs  DocumentStore
	users *UserStore
}

// NewPortfolioStore builds a portfolio store over the given persistence.
func NewPortfolioStore(docs DocumentStore, users *UserStore) *PortfolioStore {
	return &PortfolioStore{docs: docs, users: users}
}

// NewPortfolio carries the caller-supplied fields for creation. Views,
// likes, ratings, author name, and timestamps are synthesized by Create.
type NewPortfolio struct {
	Title       string
	Description string
	Category    domain.PortfolioCategory
	Type        domain.PortfolioType
	CoverImage  string
	AlbumImages []string
}

// PortfolioPatch is a partial update. Nil fields are left untouched; slice
// fields replace the whole stored collection when supplied.
type PortfolioPatch struct {
	Title       *string
	Description *string
	Category    *domain.PortfolioCategory
	Type        *domain.PortfolioType
	CoverImage  *string
	AlbumImages *[]string
	Views       *int
	Likes       *[]string
	Ratings     *[]domain.Rating
}

// List returns all portfolios in insertion order. Callers apply their own
// filtering and sorting.
func (s *PortfolioStore) List() ([]domain.Portfolio, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// GetByID returns the portfolio with the given id.
func (s *PortfolioStore) GetByID(id string) (domain.Portfolio, bool, error) {
	portfolios, err := s.List()
	if err != nil {
		return domain.Portfolio{}, false, err
	}
	for _, p := range portfolios {
		if p.ID == id {
			return p, true, nil
		}
	}
	return domain.Portfolio{}, false, nil
}

// Create appends a new portfolio authored by authorID. The author must
// exist; nothing is persisted otherwise.
func (s *PortfolioStore) Create(data NewPortfolio, authorID string) (domain.Portfolio, error) {
	author, ok, err := s.users.GetByID(authorID)
	if err != nil {
		return domain.Portfolio{}, err
	}
	if !ok {
		return domain.Portfolio{}, ErrAuthorNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	portfolios, err := s.load()
	if err != nil {
		return domain.Portfolio{}, err
	}
	album := data.AlbumImages
	if album == nil {
		album = []string{}
	}
	p := domain.Portfolio{
		ID:          util.NewID(),
		AuthorID:    authorID,
		AuthorName:  author.FullName,
		Title:       data.Title,
		Description: data.Description,
		Category:    data.Category,
		Type:        data.Type,
		CoverImage:  data.CoverImage,
		AlbumImages: album,
		Views:       0,
		Likes:       []string{},
		Ratings:     []domain.Rating{},
		CreatedAt:   time.Now().UTC(),
	}
	portfolios = append(portfolios, p)
	if err := s.save(portfolios); err != nil {
		return domain.Portfolio{}, err
	}
	return p, nil
}

// Update merges the patch into the stored portfolio and persists.
func (s *PortfolioStore) Update(id string, patch PortfolioPatch) (domain.Portfolio, error) {
	return s.mutate(id, func(p *domain.Portfolio) error {
		applyPortfolioPatch(p, patch)
		return nil
	})
}

// Delete removes a portfolio.
func (s *PortfolioStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	portfolios, err := s.load()
	if err != nil {
		return err
	}
	idx := -1
	for i, p := range portfolios {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ErrPortfolioNotFound
	}
	portfolios = append(portfolios[:idx], portfolios[idx+1:]...)
	return s.save(portfolios)
}

// mutate runs apply on the stored record under the store lock, so the whole
// read-modify-write is one critical section. The engagement operations build
// on this to stay lost-update free under concurrent handlers.
func (s *PortfolioStore) mutate(id string, apply func(*domain.Portfolio) error) (domain.Portfolio, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	portfolios, err := s.load()
	if err != nil {
		return domain.Portfolio{}, err
	}
	idx := -1
	for i, p := range portfolios {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return domain.Portfolio{}, ErrPortfolioNotFound
	}
	if err := apply(&portfolios[idx]); err != nil {
		return domain.Portfolio{}, err
	}
	if err := s.save(portfolios); err != nil {
		return domain.Portfolio{}, err
	}
	return portfolios[idx], nil
}

func applyPortfolioPatch(p *domain.Portfolio, patch PortfolioPatch) {
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Type != nil {
		p.Type = *patch.Type
	}
	if patch.CoverImage != nil {
		p.CoverImage = *patch.CoverImage
	}
	if patch.AlbumImages != nil {
		p.AlbumImages = *patch.AlbumImages
	}
	if patch.Views != nil {
		p.Views = *patch.Views
	}
	if patch.Likes != nil {
		p.Likes = *patch.Likes
	}
	if patch.Ratings != nil {
		p.Ratings = *patch.Ratings
	}
}

func (s *PortfolioStore) load() ([]domain.Portfolio, error) {
	docs, _, err := s.docs.LoadAll(PortfoliosKey)
	if err != nil {
		return nil, fmt.Errorf("load portfolios: %w", err)
	}
	portfolios := make([]domain.Portfolio, 0, len(docs))
	for _, doc := range docs {
		var p domain.Portfolio
		if err := json.Unmarshal(doc, &p); err != nil {
			slog.Warn("corrupt portfolio record, reading collection as empty", "err", err)
			return []domain.Portfolio{}, nil
		}
		portfolios = append(portfolios, p)
	}
	return portfolios, nil
}

func (s *PortfolioStore) save(portfolios []domain.Portfolio) error {
	docs := make([]json.RawMessage, 0, len(portfolios))
	for _, p := range portfolios {
		doc, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("encode portfolio %s: %w", p.ID, err)
		}
		docs = append(docs, doc)
	}
	if err := s.docs.SaveAll(PortfoliosKey, docs); err != nil {
		return fmt.Errorf("save portfolios: %w", err)
	}
	return nil
}
