package store

import (
	"context"
	"encoding/json"
	"sync"

	"CafeBackend/models"
)

// 記憶體儲存，測試時替代Redis或MySQL
type Memory struct {
	mu   sync.Mutex
	data []byte
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Load(ctx context.Context) (*models.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.data == nil {
		return nil, ErrNotFound
	}

	var record models.Record
	if err := json.Unmarshal(m.data, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (m *Memory) Save(ctx context.Context, record *models.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.data != nil {
		var current models.Record
		if err := json.Unmarshal(m.data, &current); err != nil {
			return err
		}
		if current.Version != record.Version {
			return ErrStale
		}
	}

	record.Version++
	data, err := json.Marshal(record)
	if err != nil {
		record.Version--
		return err
	}
	m.data = data
	return nil
}
