package store

import (
	"context"
	"errors"

	"CafeBackend/models"
)

// 整份資料庫在儲存層中的固定鍵
const RecordKey = "cafeDB"

var (
	ErrNotFound = errors.New("找不到資料庫紀錄")
	ErrStale    = errors.New("資料庫紀錄版本過期")
)

// Store以單一序列化紀錄儲存整份資料庫。
// Save會檢查Version欄位，如與現存版本不符則回傳ErrStale，
// 成功時將呼叫端紀錄的版本號遞增。
type Store interface {
	Load(ctx context.Context) (*models.Record, error)
	Save(ctx context.Context, record *models.Record) error
}
