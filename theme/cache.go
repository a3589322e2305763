package theme

import (
	"context"
	"errors"

	"CafeBackend/models"
)

var ErrNotFound = errors.New("找不到快取主題")

// 主題快取，各頁面優先讀取快取而非整份資料庫紀錄中的主題
type Cache interface {
	Get(ctx context.Context) (models.Theme, error)
	Set(ctx context.Context, theme models.Theme) error
}
