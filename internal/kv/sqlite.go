package kv

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Entry is the gorm model behind the SQLite backend.
type Entry struct {
	Name      string `gorm:"primaryKey"`
	Value     []byte
	UpdatedAt time.Time
}

type SQLite struct {
	db *gorm.DB
}

// NewSQLite migrates the entries table on the given connection.
func NewSQLite(db *gorm.DB) (*SQLite, error) {
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, err
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Read(ctx context.Context, key string) ([]byte, error) {
	var e Entry
	err := s.db.WithContext(ctx).First(&e, "name = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return e.Value, nil
}

func (s *SQLite) Write(ctx context.Context, key string, value []byte) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&Entry{Name: key, Value: value, UpdatedAt: time.Now()}).Error
}
