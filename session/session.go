package session

import (
	"context"
	"errors"

	"CafeBackend/models"
)

var ErrNotFound = errors.New("找不到Session")

// Session為登入當下的使用者快照，登出前不會重新向資料庫驗證，
// 其他地方修改的權限或資料要等重新登入才會反映
type Store interface {
	Set(ctx context.Context, token string, user models.User) error
	Get(ctx context.Context, token string) (models.User, error)
	Delete(ctx context.Context, token string) error
}
