package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"portfoliohub/pkg/domain"
)

// SessionManager owns the persisted "currently authenticated user" snapshot.
// The snapshot is taken at login with the secret stripped and is not
// re-synchronized with later user edits; it reflects identity at login time
// until the next login.
type SessionManager struct {
	mu    sync.Mutex
	docs  DocumentStore
	users *UserStore
}

// NewSessionManager builds a session manager. It reads the user store only
// at login time and never mutates it.
func NewSessionManager(docs DocumentStore, users *UserStore) *SessionManager {
	return &SessionManager{docs: docs, users: users}
}

// Login validates the credentials and stores a credential-stripped snapshot
// as the active session.
func (s *SessionManager) Login(username, password string) (domain.User, error) {
	users, err := s.users.List()
	if err != nil {
		return domain.User{}, err
	}
	for _, u := range users {
		if u.Username != username {
			continue
		}
		if u.Password != password {
			break
		}
		snapshot := u.WithoutSecret()
		if err := s.saveSession(&snapshot); err != nil {
			return domain.User{}, err
		}
		return snapshot, nil
	}
	return domain.User{}, ErrInvalidCredentials
}

// Logout clears the active session. Clearing an empty session is fine.
func (s *SessionManager) Logout() error {
	return s.saveSession(nil)
}

// Current returns the stored snapshot, if any.
func (s *SessionManager) Current() (domain.User, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	docs, _, err := s.docs.LoadAll(SessionKey)
	if err != nil {
		return domain.User{}, false, fmt.Errorf("load session: %w", err)
	}
	if len(docs) == 0 {
		return domain.User{}, false, nil
	}
	var u domain.User
	if err := json.Unmarshal(docs[0], &u); err != nil {
		slog.Warn("corrupt session snapshot, reading as logged out", "err", err)
		return domain.User{}, false, nil
	}
	return u, true, nil
}

func (s *SessionManager) saveSession(u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	docs := []json.RawMessage{}
	if u != nil {
		doc, err := json.Marshal(u)
		if err != nil {
			return fmt.Errorf("encode session: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := s.docs.SaveAll(SessionKey, docs); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}
