package store

import (
	"errors"
	"testing"

	"portfoliohub/pkg/domain"
)

func newUserStore(t *testing.T) *UserStore {
	t.Helper()
	return NewUserStore(NewMemoryDocumentStore())
}

func strPtr(s string) *string { return &s }

func TestUserStoreCreateAndGet(t *testing.T) {
	users := newUserStore(t)
	created, err := users.Create(NewUser{Username: "alice", Password: "pw", FullName: "Alice A", Role: domain.RoleContributor})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected generated id")
	}
	got, ok, err := users.GetByID(created.ID)
	if err != nil || !ok {
		t.Fatalf("GetByID: ok=%v err=%v", ok, err)
	}
	if got.Username != "alice" || got.Password != "pw" {
		t.Fatalf("unexpected stored user: %+v", got)
	}
}

func TestUserStoreRejectsDuplicateUsername(t *testing.T) {
	users := newUserStore(t)
	if _, err := users.Create(NewUser{Username: "alice", Password: "pw", FullName: "Alice", Role: domain.RoleContributor}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := users.Create(NewUser{Username: "alice", Password: "other", FullName: "Other", Role: domain.RoleAdmin}); !errors.Is(err, ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}
	// Usernames are case-sensitive, so a different casing is a new account.
	if _, err := users.Create(NewUser{Username: "Alice", Password: "pw", FullName: "Alice", Role: domain.RoleContributor}); err != nil {
		t.Fatalf("case-variant username should be allowed: %v", err)
	}
}

func TestUserStoreUpdateMergesPatch(t *testing.T) {
	users := newUserStore(t)
	created, err := users.Create(NewUser{Username: "alice", Password: "pw", FullName: "Alice", Role: domain.RoleContributor})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	role := domain.RoleAdmin
	updated, err := users.Update(created.ID, UserPatch{FullName: strPtr("Alice Adams"), Role: &role})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.FullName != "Alice Adams" || updated.Role != domain.RoleAdmin {
		t.Fatalf("patch not applied: %+v", updated)
	}
	if updated.Username != "alice" || updated.Password != "pw" {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
}

func TestUserStoreUpdateBlankPasswordKeepsSecret(t *testing.T) {
	users := newUserStore(t)
	created, err := users.Create(NewUser{Username: "alice", Password: "pw", FullName: "Alice", Role: domain.RoleContributor})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	updated, err := users.Update(created.ID, UserPatch{Password: strPtr("  ")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Password != "pw" {
		t.Fatalf("blank password must keep the stored secret, got %q", updated.Password)
	}
	updated, err = users.Update(created.ID, UserPatch{Password: strPtr("newpw")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Password != "newpw" {
		t.Fatalf("non-blank password must replace the secret, got %q", updated.Password)
	}
}

func TestUserStoreUpdateRejectsTakenUsername(t *testing.T) {
	users := newUserStore(t)
	if _, err := users.Create(NewUser{Username: "alice", Password: "pw", FullName: "Alice", Role: domain.RoleContributor}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	bob, err := users.Create(NewUser{Username: "bob", Password: "pw", FullName: "Bob", Role: domain.RoleContributor})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := users.Update(bob.ID, UserPatch{Username: strPtr("alice")}); !errors.Is(err, ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}
	// Writing back the current username is not a conflict.
	if _, err := users.Update(bob.ID, UserPatch{Username: strPtr("bob")}); err != nil {
		t.Fatalf("self-rename should succeed: %v", err)
	}
}

func TestUserStoreUpdateUnknownID(t *testing.T) {
	users := newUserStore(t)
	if _, err := users.Update("nope", UserPatch{FullName: strPtr("X")}); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserStoreDeleteRefusesLastAdmin(t *testing.T) {
	users := newUserStore(t)
	admin, err := users.Create(NewUser{Username: "root", Password: "pw", FullName: "Root", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := users.Create(NewUser{Username: "bob", Password: "pw", FullName: "Bob", Role: domain.RoleContributor}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := users.Delete(admin.ID); !errors.Is(err, ErrLastAdmin) {
		t.Fatalf("expected ErrLastAdmin, got %v", err)
	}

	second, err := users.Create(NewUser{Username: "root2", Password: "pw", FullName: "Root Two", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := users.Delete(admin.ID); err != nil {
		t.Fatalf("deleting one of two admins should succeed: %v", err)
	}
	if err := users.Delete(second.ID); !errors.Is(err, ErrLastAdmin) {
		t.Fatalf("expected ErrLastAdmin for the remaining admin, got %v", err)
	}
}

func TestUserStoreDeleteUnknownIDIsNoop(t *testing.T) {
	users := newUserStore(t)
	if _, err := users.Create(NewUser{Username: "alice", Password: "pw", FullName: "Alice", Role: domain.RoleContributor}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := users.Delete("nope"); err != nil {
		t.Fatalf("unknown id should be a no-op: %v", err)
	}
	got, err := users.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("no-op delete must not change the collection, got %d users", len(got))
	}
}
