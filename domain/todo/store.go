// Package todo holds the todo record and the SQLite-backed store that owns it.
package todo

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

//go:embed schema.sql
var schemaSQL string

// MemoryPath is the DSN of the transient in-process store.
const MemoryPath = ":memory:"

// Config holds store configuration.
type Config struct {
	// Path is a SQLite file path, or ":memory:" (also ":memory") for a
	// transient store that lives as long as the process.
	Path string
	// Debug enables GORM SQL logging.
	Debug bool
}

// IsTransient reports whether path selects the in-memory store.
func IsTransient(path string) bool {
	return path == MemoryPath || path == ":memory"
}

// Store provides persistence for todo records.
//
// The connection strategy is fixed when the store is opened. A transient
// store pins its pool to one connection that is never recycled, because the
// in-memory database disappears with its last connection. A file-backed
// store keeps no idle connections, so every operation acquires a connection
// and releases it when done.
type Store struct {
	db        *gorm.DB
	path      string
	transient bool
}

// Open opens the store described by cfg and ensures the schema exists.
func Open(cfg Config) (*Store, error) {
	logLevel := logger.Silent
	if cfg.Debug {
		logLevel = logger.Info
	}

	transient := IsTransient(cfg.Path)
	dsn := cfg.Path
	if transient {
		dsn = MemoryPath
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if transient {
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(0)
		sqlDB.SetConnMaxIdleTime(0)
	} else {
		sqlDB.SetMaxIdleConns(0)
	}

	s := &Store{
		db:        db,
		path:      cfg.Path,
		transient: transient,
	}

	if err := s.Migrate(context.Background()); err != nil {
		sqlDB.Close()
		return nil, err
	}

	return s, nil
}

// Migrate creates the todos table if it does not exist.
// Existing tables and rows are left untouched.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).Exec(schemaSQL).Error; err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// Create inserts a new todo and returns it with its assigned ID.
func (s *Store) Create(ctx context.Context, title string, description *string, completed bool) (*Todo, error) {
	todo := &Todo{
		Title:       title,
		Description: cloneString(description),
		Completed:   completed,
	}
	if err := s.db.WithContext(ctx).Create(todo).Error; err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}
	return todo, nil
}

// List returns every todo in insertion order.
func (s *Store) List(ctx context.Context) ([]Todo, error) {
	todos := make([]Todo, 0)
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&todos).Error; err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	return todos, nil
}

// Get retrieves a todo by its ID.
// Returns nil without an error when no such todo exists.
func (s *Store) Get(ctx context.Context, id int64) (*Todo, error) {
	var todo Todo
	if err := s.db.WithContext(ctx).First(&todo, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get todo: %w", err)
	}
	return &todo, nil
}

// Update replaces title, description and completed of the todo with the
// given ID. Returns nil without an error when no such todo exists.
//
// The result is built from the values written by the single UPDATE rather
// than re-read, so a delete landing right after the write cannot turn a
// successful update into a not-found.
func (s *Store) Update(ctx context.Context, id int64, title string, description *string, completed bool) (*Todo, error) {
	var desc any
	if description != nil {
		desc = *description
	}

	result := s.db.WithContext(ctx).Model(&Todo{}).Where("id = ?", id).Updates(map[string]any{
		"title":       title,
		"description": desc,
		"completed":   completed,
	})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update todo: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}

	return &Todo{
		ID:          id,
		Title:       title,
		Description: cloneString(description),
		Completed:   completed,
	}, nil
}

// Delete removes the todo with the given ID.
// Reports whether a todo was actually removed.
func (s *Store) Delete(ctx context.Context, id int64) (bool, error) {
	result := s.db.WithContext(ctx).Delete(&Todo{}, id)
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete todo: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the underlying database. A transient store loses its data.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

// Path returns the configured storage location.
func (s *Store) Path() string {
	return s.path
}

// Transient reports whether the store is in-memory.
func (s *Store) Transient() bool {
	return s.transient
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
