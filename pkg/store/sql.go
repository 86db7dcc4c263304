package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Record records 表的一行：一个命名空间一份文档
type Record struct {
	Namespace string    `gorm:"type:varchar(64);primaryKey" json:"namespace"`
	Payload   string    `gorm:"type:text;not null" json:"payload"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Record) TableName() string { return "records" }

// SQLStore 基于 gorm 的存储（PostgreSQL / SQLite）
type SQLStore struct {
	db *gorm.DB
}

// NewSQL 包装已建表的 gorm 连接
func NewSQL(db *gorm.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Get(ctx context.Context, namespace string) ([]byte, error) {
	var rec Record
	err := s.db.WithContext(ctx).Where("namespace = ?", namespace).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return []byte(rec.Payload), nil
}

func (s *SQLStore) Set(ctx context.Context, namespace string, data []byte) error {
	rec := Record{
		Namespace: namespace,
		Payload:   string(data),
		UpdatedAt: time.Now(),
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "namespace"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&rec).Error
}

func (s *SQLStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
