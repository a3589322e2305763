package cart

import (
	"context"
	"sync"

	"CafeBackend/models"
)

// 記憶體購物車儲存，測試用
type Memory struct {
	mu sync.Mutex
	m  map[string][]models.CartItem
}

func NewMemory() *Memory {
	return &Memory{m: make(map[string][]models.CartItem)}
}

func (s *Memory) Get(ctx context.Context, cartID string) ([]models.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]models.CartItem, len(s.m[cartID]))
	copy(items, s.m[cartID])
	return items, nil
}

func (s *Memory) Save(ctx context.Context, cartID string, items []models.CartItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	saved := make([]models.CartItem, len(items))
	copy(saved, items)
	s.m[cartID] = saved
	return nil
}

func (s *Memory) Clear(ctx context.Context, cartID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, cartID)
	return nil
}
