package theme

import (
	"context"
	"encoding/json"
	"log"

	"github.com/redis/go-redis/v9"

	"CafeBackend/models"
)

const (
	cacheKey = "cafeTheme"
	// 主題變更通知頻道，對應瀏覽器跨分頁的storage事件
	channel = "cafeTheme.updated"
)

type Redis struct {
	rdb *redis.Client
}

func NewRedis(rdb *redis.Client) *Redis {
	return &Redis{rdb: rdb}
}

func (c *Redis) Get(ctx context.Context) (models.Theme, error) {
	var theme models.Theme
	data, err := c.rdb.Get(ctx, cacheKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return theme, ErrNotFound
		}
		return theme, err
	}
	if err := json.Unmarshal(data, &theme); err != nil {
		return theme, err
	}
	return theme, nil
}

// 更新快取並發布變更通知
func (c *Redis) Set(ctx context.Context, theme models.Theme) error {
	data, err := json.Marshal(&theme)
	if err != nil {
		return err
	}
	if err := c.rdb.Set(ctx, cacheKey, data, 0).Err(); err != nil {
		return err
	}
	return c.rdb.Publish(ctx, channel, data).Err()
}

// 訂閱主題變更通知，收到訊息時呼叫fn，ctx取消後結束
func (c *Redis) Watch(ctx context.Context, fn func(models.Theme)) {
	sub := c.rdb.Subscribe(ctx, channel)
	defer sub.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-sub.Channel():
			if !ok {
				return
			}
			var theme models.Theme
			if err := json.Unmarshal([]byte(msg.Payload), &theme); err != nil {
				log.Printf("無法反序列化主題變更通知: %v\n", err)
				continue
			}
			fn(theme)
		}
	}
}
