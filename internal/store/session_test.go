package store

import (
	"errors"
	"testing"

	"portfoliohub/pkg/domain"
)

func newSessionFixture(t *testing.T) (*SessionManager, *UserStore, domain.User) {
	t.Helper()
	docs := NewMemoryDocumentStore()
	users := NewUserStore(docs)
	user, err := users.Create(NewUser{Username: "alice", Password: "pw", FullName: "Alice Adams", Role: domain.RoleContributor})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return NewSessionManager(docs, users), users, user
}

func TestSessionLoginStoresStrippedSnapshot(t *testing.T) {
	sessions, _, user := newSessionFixture(t)
	got, err := sessions.Login("alice", "pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if got.ID != user.ID || got.Password != "" {
		t.Fatalf("snapshot must strip the secret: %+v", got)
	}
	current, ok, err := sessions.Current()
	if err != nil || !ok {
		t.Fatalf("Current: ok=%v err=%v", ok, err)
	}
	if current.Password != "" || current.ID != user.ID {
		t.Fatalf("unexpected persisted snapshot: %+v", current)
	}
}

func TestSessionLoginRejectsBadCredentials(t *testing.T) {
	sessions, _, _ := newSessionFixture(t)
	if _, err := sessions.Login("alice", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := sessions.Login("ghost", "pw"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user: expected ErrInvalidCredentials, got %v", err)
	}
	if _, ok, err := sessions.Current(); err != nil || ok {
		t.Fatalf("failed login must not create a session: ok=%v err=%v", ok, err)
	}
}

func TestSessionLogoutClearsSnapshot(t *testing.T) {
	sessions, _, _ := newSessionFixture(t)
	if _, err := sessions.Login("alice", "pw"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if err := sessions.Logout(); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, ok, err := sessions.Current(); err != nil || ok {
		t.Fatalf("expected no session after logout: ok=%v err=%v", ok, err)
	}
	// Logging out twice is fine.
	if err := sessions.Logout(); err != nil {
		t.Fatalf("second Logout: %v", err)
	}
}

func TestSessionSnapshotNotResyncedWithUserEdits(t *testing.T) {
	sessions, users, user := newSessionFixture(t)
	if _, err := sessions.Login("alice", "pw"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if _, err := users.Update(user.ID, UserPatch{FullName: strPtr("Renamed")}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	current, ok, err := sessions.Current()
	if err != nil || !ok {
		t.Fatalf("Current: ok=%v err=%v", ok, err)
	}
	if current.FullName != "Alice Adams" {
		t.Fatalf("snapshot must stay frozen at login time, got %q", current.FullName)
	}

	// The next login picks up the edit.
	if _, err := sessions.Login("alice", "pw"); err != nil {
		t.Fatalf("relogin: %v", err)
	}
	current, _, err = sessions.Current()
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if current.FullName != "Renamed" {
		t.Fatalf("relogin should refresh the snapshot, got %q", current.FullName)
	}
}
