package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"portfoliohub/internal/util"
	"portfoliohub/pkg/domain"
)

// UserStore owns the persisted user collection. Every mutating call loads
// the full collection, applies the change, and writes the collection back;
// the mutex keeps that read-modify-write sequence exclusive.
type UserStore struct {
	mu   sync.Mutex
	docs DocumentStore
}

// NewUserStore builds a user store over the given document persistence.
func NewUserStore(docs DocumentStore) *UserStore {
	return &UserStore{docs: docs}
}

// NewUser carries the fields required to create a user.
type NewUser struct {
	Username string
	Password string
	FullName string
	Role     domain.UserRole
}

// UserPatch is a partial update. Nil fields are left untouched. A non-nil
// blank Password also leaves the stored secret unchanged: forms submit an
// empty password field to mean "keep the current one".
type UserPatch struct {
	Username *string
	Password *string
	FullName *string
	Role     *domain.UserRole
}

// List returns all users in insertion order.
func (s *UserStore) List() ([]domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// GetByID returns the user with the given id.
func (s *UserStore) GetByID(id string) (domain.User, bool, error) {
	users, err := s.List()
	if err != nil {
		return domain.User{}, false, err
	}
	for _, u := range users {
		if u.ID == id {
			return u, true, nil
		}
	}
	return domain.User{}, false, nil
}

// Create appends a new user. Usernames are unique, case-sensitive.
func (s *UserStore) Create(data NewUser) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	users, err := s.load()
	if err != nil {
		return domain.User{}, err
	}
	for _, u := range users {
		if u.Username == data.Username {
			return domain.User{}, ErrDuplicateUsername
		}
	}
	user := domain.User{
		ID:       util.NewID(),
		Username: data.Username,
		Password: data.Password,
		FullName: data.FullName,
		Role:     data.Role,
	}
	users = append(users, user)
	if err := s.save(users); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// Update merges the patch into the stored user and persists the collection.
func (s *UserStore) Update(id string, patch UserPatch) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	users, err := s.load()
	if err != nil {
		return domain.User{}, err
	}
	idx := -1
	for i, u := range users {
		if u.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return domain.User{}, ErrUserNotFound
	}
	if patch.Username != nil {
		for _, u := range users {
			if u.ID != id && u.Username == *patch.Username {
				return domain.User{}, ErrDuplicateUsername
			}
		}
		users[idx].Username = *patch.Username
	}
	if patch.Password != nil && strings.TrimSpace(*patch.Password) != "" {
		users[idx].Password = *patch.Password
	}
	if patch.FullName != nil {
		users[idx].FullName = *patch.FullName
	}
	if patch.Role != nil {
		users[idx].Role = *patch.Role
	}
	if err := s.save(users); err != nil {
		return domain.User{}, err
	}
	return users[idx], nil
}

// Delete removes a user. Deleting the sole administrator is refused; an
// unknown id is a no-op.
func (s *UserStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	users, err := s.load()
	if err != nil {
		return err
	}
	idx := -1
	admins := 0
	for i, u := range users {
		if u.Role == domain.RoleAdmin {
			admins++
		}
		if u.ID == id {
			idx = i
		}
	}
	if idx == -1 {
		return nil
	}
	if users[idx].Role == domain.RoleAdmin && admins <= 1 {
		return ErrLastAdmin
	}
	users = append(users[:idx], users[idx+1:]...)
	return s.save(users)
}

func (s *UserStore) load() ([]domain.User, error) {
	docs, _, err := s.docs.LoadAll(UsersKey)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	users := make([]domain.User, 0, len(docs))
	for _, doc := range docs {
		var u domain.User
		if err := json.Unmarshal(doc, &u); err != nil {
			slog.Warn("corrupt user record, reading collection as empty", "err", err)
			return []domain.User{}, nil
		}
		users = append(users, u)
	}
	return users, nil
}

func (s *UserStore) save(users []domain.User) error {
	docs := make([]json.RawMessage, 0, len(users))
	for _, u := range users {
		doc, err := json.Marshal(u)
		if err != nil {
			return fmt.Errorf("encode user %s: %w", u.ID, err)
		}
		docs = append(docs, doc)
	}
	if err := s.docs.SaveAll(UsersKey, docs); err != nil {
		return fmt.Errorf("save users: %w", err)
	}
	return nil
}
