package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"CafeBackend/models"
)

const keyPrefix = "session:"

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

func (s *Redis) Set(ctx context.Context, token string, user models.User) error {
	data, err := json.Marshal(&user)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, keyPrefix+token, data, s.ttl).Err()
}

func (s *Redis) Get(ctx context.Context, token string) (models.User, error) {
	var user models.User
	data, err := s.rdb.Get(ctx, keyPrefix+token).Bytes()
	if err != nil {
		if err == redis.Nil {
			return user, ErrNotFound
		}
		return user, err
	}
	if err := json.Unmarshal(data, &user); err != nil {
		return user, err
	}
	return user, nil
}

func (s *Redis) Delete(ctx context.Context, token string) error {
	deleted, err := s.rdb.Del(ctx, keyPrefix+token).Result()
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrNotFound
	}
	return nil
}
