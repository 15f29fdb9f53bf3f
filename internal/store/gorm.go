package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type kvRecord struct {
	Owner      string `gorm:"primaryKey;size:64"`
	EntityType string `gorm:"primaryKey;size:32"`
	RecordID   string `gorm:"primaryKey;size:64"`
	Payload    []byte `gorm:"not null"`
	UpdatedAt  time.Time
}

func (kvRecord) TableName() string {
	return "kv_records"
}

// GormStore persists records in a relational table through GORM. Used as the
// local development backend when no Redis URL is configured.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore migrates the backing table and returns the store.
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&kvRecord{}); err != nil {
		return nil, fmt.Errorf("migrate kv records: %w", err)
	}
	return &GormStore{db: db}, nil
}

// Get retrieves a single record payload.
func (s *GormStore) Get(ctx context.Context, owner, entityType, id string) ([]byte, error) {
	var record kvRecord
	err := s.db.WithContext(ctx).
		Where("owner = ? AND entity_type = ? AND record_id = ?", owner, entityType, id).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("kv get: %w", err)
	}
	return record.Payload, nil
}

// Put writes a record payload, overwriting any previous value.
func (s *GormStore) Put(ctx context.Context, owner, entityType, id string, value []byte) error {
	record := kvRecord{
		Owner:      owner,
		EntityType: entityType,
		RecordID:   id,
		Payload:    value,
		UpdatedAt:  time.Now(),
	}
	if err := s.db.WithContext(ctx).Save(&record).Error; err != nil {
		return fmt.Errorf("kv put: %w", err)
	}
	return nil
}

// Delete removes a record. Deleting a missing record reports ErrNotFound.
func (s *GormStore) Delete(ctx context.Context, owner, entityType, id string) error {
	result := s.db.WithContext(ctx).
		Where("owner = ? AND entity_type = ? AND record_id = ?", owner, entityType, id).
		Delete(&kvRecord{})
	if result.Error != nil {
		return fmt.Errorf("kv delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns every record payload for the owner's entity collection.
func (s *GormStore) List(ctx context.Context, owner, entityType string) ([][]byte, error) {
	var records []kvRecord
	err := s.db.WithContext(ctx).
		Where("owner = ? AND entity_type = ?", owner, entityType).
		Order("record_id").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("kv list: %w", err)
	}

	payloads := make([][]byte, 0, len(records))
	for _, record := range records {
		payloads = append(payloads, record.Payload)
	}
	return payloads, nil
}
