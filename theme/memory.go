package theme

import (
	"context"
	"sync"

	"CafeBackend/models"
)

// 記憶體主題快取，測試用
type Memory struct {
	mu    sync.Mutex
	theme models.Theme
	set   bool
}

func NewMemory() *Memory {
	return &Memory{}
}

func (c *Memory) Get(ctx context.Context) (models.Theme, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.set {
		return models.Theme{}, ErrNotFound
	}
	return c.theme, nil
}

func (c *Memory) Set(ctx context.Context, theme models.Theme) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.theme = theme
	c.set = true
	return nil
}
