// Package store holds each service's owned in-memory collection. State is
// seeded at construction and reset on restart; all mutation is mutex-guarded
// since requests are handled concurrently.
package store

import (
	"strings"
	"sync"

	"microshop/internal/domain"
)

type UserStore struct {
	mu     sync.RWMutex
	users  []domain.User
	nextID int
}

func NewUserStore() *UserStore {
	return &UserStore{
		users: []domain.User{
			{ID: 1, Name: "Alice", Email: "alice@example.com"},
			{ID: 2, Name: "Bob", Email: "bob@example.com"},
		},
		nextID: 3,
	}
}

func (s *UserStore) List() []domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.User, len(s.users))
	copy(out, s.users)
	return out
}

func (s *UserStore) Get(id int) (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.ID == id {
			return u, true
		}
	}
	return domain.User{}, false
}

// Create appends a new user. Email uniqueness is case-insensitive on the
// mailbox convention used by the seed data.
func (s *UserStore) Create(name, email string) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return domain.User{}, domain.Duplicate("Email already registered")
		}
	}

	user := domain.User{ID: s.nextID, Name: name, Email: email}
	s.nextID++
	s.users = append(s.users, user)
	return user, nil
}
