package store

import "portfoliohub/pkg/domain"

// Engagement applies the derived-state mutations (views, likes, ratings) on
// top of the portfolio store. All three operations fail with
// ErrPortfolioNotFound when the target does not exist.
type Engagement struct {
	portfolios *PortfolioStore
}

// NewEngagement builds the engagement engine over a portfolio store.
func NewEngagement(portfolios *PortfolioStore) *Engagement {
	return &Engagement{portfolios: portfolios}
}

// IncrementView adds exactly one to the view counter.
func (e *Engagement) IncrementView(id string) (domain.Portfolio, error) {
	return e.portfolios.mutate(id, func(p *domain.Portfolio) error {
		p.Views++
		return nil
	})
}

// ToggleLike flips userID's membership in the likes set: present is removed,
// absent is added. The set never holds duplicates.
func (e *Engagement) ToggleLike(id, userID string) (domain.Portfolio, error) {
	return e.portfolios.mutate(id, func(p *domain.Portfolio) error {
		for i, liker := range p.Likes {
			if liker == userID {
				p.Likes = append(p.Likes[:i], p.Likes[i+1:]...)
				return nil
			}
		}
		p.Likes = append(p.Likes, userID)
		return nil
	})
}

// Rate upserts userID's rating. An existing entry keeps its position and
// gets the new score; otherwise a new entry is appended.
func (e *Engagement) Rate(id, userID string, score int) (domain.Portfolio, error) {
	if score < 1 || score > 5 {
		return domain.Portfolio{}, ErrInvalidScore
	}
	return e.portfolios.mutate(id, func(p *domain.Portfolio) error {
		for i, r := range p.Ratings {
			if r.UserID == userID {
				p.Ratings[i].Score = score
				return nil
			}
		}
		p.Ratings = append(p.Ratings, domain.Rating{UserID: userID, Score: score})
		return nil
	})
}
