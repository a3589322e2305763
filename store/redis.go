package store

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"CafeBackend/models"
)

// Redis儲存，整份紀錄以JSON存放在固定鍵之下
type Redis struct {
	rdb *redis.Client
	key string
}

func NewRedis(rdb *redis.Client) *Redis {
	return &Redis{
		rdb: rdb,
		key: RecordKey,
	}
}

func (s *Redis) Load(ctx context.Context) (*models.Record, error) {
	data, err := s.rdb.Get(ctx, s.key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var record models.Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *Redis) Save(ctx context.Context, record *models.Record) error {
	err := s.rdb.Watch(ctx, func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, s.key).Bytes()
		if err != nil && err != redis.Nil {
			return err
		}

		//檢查版本號，如不符則拒絕寫入
		if err != redis.Nil {
			var current models.Record
			if err := json.Unmarshal(data, &current); err != nil {
				return err
			}
			if current.Version != record.Version {
				return ErrStale
			}
		}

		record.Version++
		newData, err := json.Marshal(record)
		if err != nil {
			record.Version--
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, s.key, newData, 0)
			return nil
		})
		if err != nil {
			record.Version--
		}
		return err
	}, s.key)

	//交易期間鍵被其他寫入修改，視同版本過期
	if err == redis.TxFailedErr {
		return ErrStale
	}
	return err
}
