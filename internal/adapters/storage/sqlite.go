package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// documentKey is the row key for the single task document. The table is a
// plain key/value store so other documents could share it later.
const documentKey = "tasks"

type documentRow struct {
	Name      string `gorm:"primaryKey;size:64"`
	Payload   []byte
	UpdatedAt time.Time
}

func (documentRow) TableName() string {
	return "documents"
}

// SQLiteStorage keeps the storage document in an embedded sqlite database.
type SQLiteStorage struct {
	db *gorm.DB
}

// NewSQLiteStorage opens (or creates) the database at path and migrates the
// documents table.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite database %s: %w", path, err)
	}
	if err := db.AutoMigrate(&documentRow{}); err != nil {
		return nil, fmt.Errorf("migrate documents table: %w", err)
	}
	return &SQLiteStorage{db: db}, nil
}

func (s *SQLiteStorage) Load(ctx context.Context) ([]byte, error) {
	var row documentRow
	err := s.db.WithContext(ctx).First(&row, "name = ?", documentKey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}
	return row.Payload, nil
}

func (s *SQLiteStorage) Save(ctx context.Context, raw []byte) error {
	row := documentRow{Name: documentKey, Payload: raw, UpdatedAt: time.Now().UTC()}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) Clear(ctx context.Context) error {
	err := s.db.WithContext(ctx).Delete(&documentRow{}, "name = ?", documentKey).Error
	if err != nil {
		return fmt.Errorf("clear document: %w", err)
	}
	return nil
}

// Close releases the underlying database connection.
func (s *SQLiteStorage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("get sql.DB: %w", err)
	}
	return sqlDB.Close()
}
