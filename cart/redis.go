package cart

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"CafeBackend/models"
)

const keyPrefix = "cart:"

type Redis struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedis(rdb *redis.Client, ttl time.Duration) *Redis {
	return &Redis{
		rdb: rdb,
		ttl: ttl,
	}
}

func (s *Redis) Get(ctx context.Context, cartID string) ([]models.CartItem, error) {
	data, err := s.rdb.Get(ctx, keyPrefix+cartID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return []models.CartItem{}, nil
		}
		return nil, err
	}

	var items []models.CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Redis) Save(ctx context.Context, cartID string, items []models.CartItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, keyPrefix+cartID, data, s.ttl).Err()
}

func (s *Redis) Clear(ctx context.Context, cartID string) error {
	return s.rdb.Del(ctx, keyPrefix+cartID).Err()
}
