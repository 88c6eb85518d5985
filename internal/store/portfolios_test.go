package store

import (
	"errors"
	"testing"

	"portfoliohub/pkg/domain"
)

func newPortfolioFixture(t *testing.T) (*PortfolioStore, *UserStore, domain.User) {
	t.Helper()
	docs := NewMemoryDocumentStore()
	users := NewUserStore(docs)
	author, err := users.Create(NewUser{Username: "alice", Password: "pw", FullName: "Alice Adams", Role: domain.RoleContributor})
	if err != nil {
		t.Fatalf("create author: %v", err)
	}
	return NewPortfolioStore(docs, users), users, author
}

func TestPortfolioStoreCreateSynthesizesFields(t *testing.T) {
	portfolios, _, author := newPortfolioFixture(t)
	created, err := portfolios.Create(NewPortfolio{
		Title:    "Demo",
		Category: domain.CategoryPersonnel,
		Type:     domain.TypeApplication,
	}, author.ID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" || created.CreatedAt.IsZero() {
		t.Fatalf("missing synthesized fields: %+v", created)
	}
	if created.AuthorName != "Alice Adams" {
		t.Fatalf("author name not resolved: %q", created.AuthorName)
	}
	if created.Views != 0 || len(created.Likes) != 0 || len(created.Ratings) != 0 {
		t.Fatalf("engagement state must start empty: %+v", created)
	}
	if created.AlbumImages == nil {
		t.Fatalf("album must serialize as [] not null")
	}
}

func TestPortfolioStoreCreateUnknownAuthorPersistsNothing(t *testing.T) {
	portfolios, _, _ := newPortfolioFixture(t)
	if _, err := portfolios.Create(NewPortfolio{Title: "Demo"}, "ghost"); !errors.Is(err, ErrAuthorNotFound) {
		t.Fatalf("expected ErrAuthorNotFound, got %v", err)
	}
	got, err := portfolios.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("failed create must not persist, got %d portfolios", len(got))
	}
}

func TestPortfolioStoreAuthorNameStaysFrozen(t *testing.T) {
	portfolios, users, author := newPortfolioFixture(t)
	created, err := portfolios.Create(NewPortfolio{Title: "Demo"}, author.ID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := users.Update(author.ID, UserPatch{FullName: strPtr("Renamed")}); err != nil {
		t.Fatalf("rename author: %v", err)
	}
	got, ok, err := portfolios.GetByID(created.ID)
	if err != nil || !ok {
		t.Fatalf("GetByID: ok=%v err=%v", ok, err)
	}
	if got.AuthorName != "Alice Adams" {
		t.Fatalf("author name must stay frozen, got %q", got.AuthorName)
	}
}

func TestPortfolioStoreUpdateMergesPatch(t *testing.T) {
	portfolios, _, author := newPortfolioFixture(t)
	created, err := portfolios.Create(NewPortfolio{Title: "Demo", Category: domain.CategoryPersonnel}, author.ID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	category := domain.CategoryCommander
	album := []string{"img-1", "img-2"}
	updated, err := portfolios.Update(created.ID, PortfolioPatch{
		Title:       strPtr("Demo v2"),
		Category:    &category,
		AlbumImages: &album,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Title != "Demo v2" || updated.Category != domain.CategoryCommander || len(updated.AlbumImages) != 2 {
		t.Fatalf("patch not applied: %+v", updated)
	}
	if updated.AuthorID != author.ID {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
}

func TestPortfolioStoreUpdateUnknownID(t *testing.T) {
	portfolios, _, _ := newPortfolioFixture(t)
	if _, err := portfolios.Update("nope", PortfolioPatch{Title: strPtr("X")}); !errors.Is(err, ErrPortfolioNotFound) {
		t.Fatalf("expected ErrPortfolioNotFound, got %v", err)
	}
}

func TestPortfolioStoreDelete(t *testing.T) {
	portfolios, _, author := newPortfolioFixture(t)
	created, err := portfolios.Create(NewPortfolio{Title: "Demo"}, author.ID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := portfolios.Delete(created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, err := portfolios.GetByID(created.ID); err != nil || ok {
		t.Fatalf("portfolio should be gone: ok=%v err=%v", ok, err)
	}
	if err := portfolios.Delete(created.ID); !errors.Is(err, ErrPortfolioNotFound) {
		t.Fatalf("expected ErrPortfolioNotFound, got %v", err)
	}
}
