package store

import (
	"context"
	"sort"
	"sync"
)

// Memory is an in-memory Store for tests and ephemeral runs. It is safe for
// concurrent use by the process that owns it; like every other
// implementation, it offers no cross-operation transactionality.
type Memory struct {
	mu    sync.Mutex
	users map[string]map[Kind][]byte
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{users: make(map[string]map[Kind][]byte)}
}

func (s *Memory) Get(_ context.Context, username string, kind Kind) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	docs, ok := s.users[userKey(username)]
	if !ok {
		return nil, ErrNotExist
	}
	body, ok := docs[kind]
	if !ok {
		return nil, ErrNotExist
	}
	out := make([]byte, len(body))
	copy(out, body)
	return out, nil
}

func (s *Memory) Put(_ context.Context, username string, kind Kind, body []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := userKey(username)
	docs, ok := s.users[key]
	if !ok {
		docs = make(map[Kind][]byte)
		s.users[key] = docs
	}
	stored := make([]byte, len(body))
	copy(stored, body)
	docs[kind] = stored
	return nil
}

func (s *Memory) CreateUser(_ context.Context, username string, docs map[Kind][]byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := userKey(username)
	if _, ok := s.users[key]; ok {
		return ErrUserExists
	}
	created := make(map[Kind][]byte, len(docs))
	for kind, body := range docs {
		stored := make([]byte, len(body))
		copy(stored, body)
		created[kind] = stored
	}
	s.users[key] = created
	return nil
}

func (s *Memory) DeleteUser(_ context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, userKey(username))
	return nil
}

func (s *Memory) Exists(_ context.Context, username string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	docs, ok := s.users[userKey(username)]
	if !ok {
		return false, nil
	}
	_, ok = docs[KindProfile]
	return ok, nil
}

func (s *Memory) ListUsernames(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.users))
	for name := range s.users {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

var _ Store = (*Memory)(nil)
