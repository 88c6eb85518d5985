package domain

import "time"

type UserRole string

const (
	RoleAdmin       UserRole = "admin"
	RoleContributor UserRole = "contributor"
)

type PortfolioCategory string

const (
	CategoryCommander PortfolioCategory = "commander"
	CategoryPersonnel PortfolioCategory = "personnel"
)

type PortfolioType string

const (
	TypeApplication PortfolioType = "application"
	TypeOther       PortfolioType = "other"
)

// User is a registered account. Password holds the plaintext secret and is
// only present on create/update payloads; read paths strip it.
type User struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Password string   `json:"password,omitempty"`
	FullName string   `json:"fullName"`
	Role     UserRole `json:"role"`
}

// WithoutSecret returns a copy safe to expose outside the store.
func (u User) WithoutSecret() User {
	u.Password = ""
	return u
}

// Rating is one user's score for a portfolio. A user appears at most once in
// a portfolio's ratings; re-rating overwrites the score in place.
type Rating struct {
	UserID string `json:"userId"`
	Score  int    `json:"score"`
}

// Portfolio is a showcased work. AuthorName is copied from the author at
// creation time and stays frozen even if the user is later renamed.
type Portfolio struct {
	ID          string            `json:"id"`
	AuthorID    string            `json:"authorId"`
	AuthorName  string            `json:"authorName"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Category    PortfolioCategory `json:"category"`
	Type        PortfolioType     `json:"type"`
	CoverImage  string            `json:"coverImage"`
	AlbumImages []string          `json:"albumImages"`
	Views       int               `json:"views"`
	Likes       []string          `json:"likes"`
	Ratings     []Rating          `json:"ratings"`
	CreatedAt   time.Time         `json:"createdAt"`
}

// AverageRating recomputes the mean score on demand; it is never stored.
func (p Portfolio) AverageRating() float64 {
	if len(p.Ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range p.Ratings {
		sum += r.Score
	}
	return float64(sum) / float64(len(p.Ratings))
}

// LikedBy reports whether userID is in the likes set.
func (p Portfolio) LikedBy(userID string) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}
