package store

import (
	"encoding/json"
	"fmt"
	"time"

	"portfoliohub/pkg/domain"
)

// Seed populates absent store keys with the fixed initial dataset: one
// administrator, two contributors, and three portfolios authored by them.
// Keys that have ever been written are left untouched, so seeding runs at
// most once per key across process restarts.
func Seed(docs DocumentStore) error {
	if _, present, err := docs.LoadAll(UsersKey); err != nil {
		return fmt.Errorf("seed users: %w", err)
	} else if !present {
		if err := saveSeed(docs, UsersKey, seedUserDocs()); err != nil {
			return fmt.Errorf("seed users: %w", err)
		}
	}
	if _, present, err := docs.LoadAll(PortfoliosKey); err != nil {
		return fmt.Errorf("seed portfolios: %w", err)
	} else if !present {
		if err := saveSeed(docs, PortfoliosKey, seedPortfolioDocs()); err != nil {
			return fmt.Errorf("seed portfolios: %w", err)
		}
	}
	return nil
}

func saveSeed(docs DocumentStore, key string, records []json.RawMessage) error {
	return docs.SaveAll(key, records)
}

func seedUserDocs() []json.RawMessage {
	users := []domain.User{
		{ID: "user-1", Username: "admin", Password: "admin", FullName: "Admin User", Role: domain.RoleAdmin},
		{ID: "user-2", Username: "jdoe", Password: "password", FullName: "Jane Doe", Role: domain.RoleContributor},
		{ID: "user-3", Username: "jsmith", Password: "password", FullName: "John Smith", Role: domain.RoleContributor},
	}
	docs := make([]json.RawMessage, 0, len(users))
	for _, u := range users {
		doc, _ := json.Marshal(u)
		docs = append(docs, doc)
	}
	return docs
}

func seedPortfolioDocs() []json.RawMessage {
	now := time.Now().UTC()
	portfolios := []domain.Portfolio{
		{
			ID:          "portfolio-1",
			AuthorID:    "user-2",
			AuthorName:  "Jane Doe",
			Title:       "Library Management System",
			Description: "A React and Node.js system for managing book lending in a school library.",
			Category:    domain.CategoryPersonnel,
			Type:        domain.TypeApplication,
			CoverImage:  "https://images.unsplash.com/photo-1544716278-ca5e3f4abd8c?q=80&w=1974&auto=format&fit=crop",
			AlbumImages: []string{
				"https://images.unsplash.com/photo-1507842217343-583bb7270b66?q=80&w=2070&auto=format&fit=crop",
				"https://images.unsplash.com/photo-1521587760476-6c12a4b040da?q=80&w=2070&auto=format&fit=crop",
			},
			Views:     152,
			Likes:     []string{"user-1", "user-3"},
			Ratings:   []domain.Rating{{UserID: "user-1", Score: 5}, {UserID: "user-3", Score: 4}},
			CreatedAt: now.Add(-5 * 24 * time.Hour),
		},
		{
			ID:          "portfolio-2",
			AuthorID:    "user-3",
			AuthorName:  "John Smith",
			Title:       "Interactive Mathematics Teaching Aids",
			Description: "Interactive teaching material that makes complex mathematical concepts easier to grasp, built with Geogebra and PowerPoint.",
			Category:    domain.CategoryCommander,
			Type:        domain.TypeOther,
			CoverImage:  "https://images.unsplash.com/photo-1509228468518-180dd4864904?q=80&w=2070&auto=format&fit=crop",
			AlbumImages: []string{},
			Views:       89,
			Likes:       []string{"user-2"},
			Ratings:     []domain.Rating{{UserID: "user-2", Score: 5}},
			CreatedAt:   now.Add(-2 * 24 * time.Hour),
		},
		{
			ID:          "portfolio-3",
			AuthorID:    "user-2",
			AuthorName:  "Jane Doe",
			Title:       "English E-learning Website",
			Description: "An online English learning platform with videos, quizzes, and educational games.",
			Category:    domain.CategoryPersonnel,
			Type:        domain.TypeApplication,
			CoverImage:  "https://images.unsplash.com/photo-1456513080510-7bf3a84b82f8?q=80&w=1973&auto=format&fit=crop",
			AlbumImages: []string{
				"https://images.unsplash.com/photo-1516321497487-e288fb19713f?q=80&w=2070&auto=format&fit=crop",
			},
			Views:     230,
			Likes:     []string{"user-1", "user-2", "user-3"},
			Ratings:   []domain.Rating{{UserID: "user-1", Score: 4}, {UserID: "user-3", Score: 5}},
			CreatedAt: now,
		},
	}
	docs := make([]json.RawMessage, 0, len(portfolios))
	for _, p := range portfolios {
		doc, _ := json.Marshal(p)
		docs = append(docs, doc)
	}
	return docs
}
