// Package history persists finished tasks to a local SQLite database so
// the dispatch log survives the session.
package history

import (
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mwizard/mwiz-cli/internal/tasks"
)

// TaskRecord is the persisted form of a finished task.
type TaskRecord struct {
	ID         uint   `gorm:"primaryKey"`
	TaskID     string `gorm:"index"`
	Type       string
	Action     string
	Status     string
	Error      string
	Details    string
	StartedAt  time.Time
	FinishedAt time.Time
}

// Store wraps the history database. It implements tasks.Sink.
type Store struct {
	db *gorm.DB
}

// Open opens (and migrates) the history database at path.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if err := db.AutoMigrate(&TaskRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate history database: %w", err)
	}

	return &Store{db: db}, nil
}

// Record stores a finished task. Errors are swallowed: history is
// best-effort and must never fail a dispatch.
func (s *Store) Record(task tasks.Task) {
	record := TaskRecord{
		TaskID:     task.ID,
		Type:       task.Type,
		Action:     task.Action,
		Status:     string(task.Status),
		Error:      task.Error,
		Details:    task.Details,
		StartedAt:  task.Timestamp,
		FinishedAt: time.Now(),
	}
	s.db.Create(&record)
}

// Recent returns the most recent records, newest first.
func (s *Store) Recent(limit int) ([]TaskRecord, error) {
	var records []TaskRecord
	err := s.db.Order("id desc").Limit(limit).Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	return records, nil
}

// Prune deletes records older than the cutoff.
func (s *Store) Prune(before time.Time) error {
	return s.db.Where("finished_at < ?", before).Delete(&TaskRecord{}).Error
}
