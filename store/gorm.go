package store

import (
	"context"
	"encoding/json"
	"errors"

	"gorm.io/gorm"

	"CafeBackend/models"
)

// 資料庫中儲存整份紀錄的單一資料列
type recordRow struct {
	Key     string `gorm:"primaryKey;size:64"`
	Value   []byte `gorm:"not null"`
	Version int64  `gorm:"not null"`
}

func (recordRow) TableName() string {
	return "records"
}

// MySQL儲存，透過GORM將整份紀錄存為records資料表中的一列
type Gorm struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) (*Gorm, error) {
	if err := db.AutoMigrate(&recordRow{}); err != nil {
		return nil, err
	}
	return &Gorm{db: db}, nil
}

func (s *Gorm) Load(ctx context.Context) (*models.Record, error) {
	var row recordRow
	err := s.db.WithContext(ctx).First(&row, "`key` = ?", RecordKey).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var record models.Record
	if err := json.Unmarshal(row.Value, &record); err != nil {
		return nil, err
	}
	record.Version = row.Version
	return &record, nil
}

func (s *Gorm) Save(ctx context.Context, record *models.Record) error {
	newVersion := record.Version + 1

	saved := *record
	saved.Version = newVersion
	data, err := json.Marshal(&saved)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row recordRow
		err := tx.First(&row, "`key` = ?", RecordKey).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			//首次寫入
			if record.Version != 0 {
				return ErrStale
			}
			return tx.Create(&recordRow{
				Key:     RecordKey,
				Value:   data,
				Version: newVersion,
			}).Error
		}

		//樂觀鎖：以版本號作為更新條件，如無更新代表版本過期
		result := tx.
			Model(&recordRow{}).
			Where("`key` = ? AND version = ?", RecordKey, record.Version).
			Updates(map[string]interface{}{
				"value":   data,
				"version": newVersion,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrStale
		}
		return nil
	})
	if err != nil {
		return err
	}

	record.Version = newVersion
	return nil
}
