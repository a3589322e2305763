package session

import (
	"context"
	"sync"

	"CafeBackend/models"
)

// 記憶體Session儲存，測試用
type Memory struct {
	mu sync.Mutex
	m  map[string]models.User
}

func NewMemory() *Memory {
	return &Memory{m: make(map[string]models.User)}
}

func (s *Memory) Set(ctx context.Context, token string, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[token] = user
	return nil
}

func (s *Memory) Get(ctx context.Context, token string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.m[token]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return user, nil
}

func (s *Memory) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[token]; !ok {
		return ErrNotFound
	}
	delete(s.m, token)
	return nil
}
