package user

import (
	"context"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// Store looks up account records by email.
// FindByEmail returns exists == false and a nil error when there is no such account.
// Any other failure is reported through err.
type Store interface {
	FindByEmail(ctx context.Context, email string) (user User, exists bool, err error)
}

type InMemoryStore struct {
	mu            sync.RWMutex
	users         map[string]User
	caseSensitive bool
}

func (s *InMemoryStore) FindByEmail(ctx context.Context, email string) (User, bool, error) {
	if err := ctx.Err(); err != nil {
		return User{}, false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[s.key(email)]
	if !ok {
		return User{}, false, nil
	}
	return u.Copy(), true, nil
}

// Put adds or replaces a record.
func (s *InMemoryStore) Put(u User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[s.key(u.Email)] = u.Copy()
}

// Add adds a record and fails when the store already holds one with the same
// email under the store case policy.
func (s *InMemoryStore) Add(u User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := s.key(u.Email)
	if existing, ok := s.users[k]; ok {
		return errors.Errorf("duplicate user %v, conflicts with %v", u.Email, existing.Email)
	}
	s.users[k] = u.Copy()
	return nil
}

// Len returns the number of stored records.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

func (s *InMemoryStore) key(email string) string {
	if s.caseSensitive {
		return email
	}
	return strings.ToLower(email)
}

// NewInMemoryStore creates a store holding users.
// When caseSensitive is false emails are compared case-insensitively.
// Later users replace earlier ones with the same key, use Add to reject them.
func NewInMemoryStore(caseSensitive bool, users ...User) *InMemoryStore {
	s := &InMemoryStore{
		users:         make(map[string]User, len(users)),
		caseSensitive: caseSensitive,
	}
	for _, u := range users {
		s.Put(u)
	}
	return s
}
