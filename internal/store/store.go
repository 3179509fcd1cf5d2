// Package store persists the blog entities and enforces their referential rules.
//
// Every exported operation runs in its own transaction. Cascading deletes and
// nullifications are applied explicitly inside that transaction, and the schema
// carries the same ON DELETE rules for any other writer of the database.
package store

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/TatsianaKryshtofik/Test-project/internal/config"
	"github.com/TatsianaKryshtofik/Test-project/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Store struct {
	db  *gorm.DB
	now func() time.Time
}

type Option func(*Store)

// WithClock replaces the clock used for created and updated timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New wraps an open gorm connection.
func New(db *gorm.DB, opts ...Option) *Store {
	s := &Store{
		db:  db,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open connects to Postgres using the DSN from cfg.
func Open(cfg *config.Config, opts ...Option) (*Store, error) {
	if err := cfg.RequireDatabase(); err != nil {
		return nil, err
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		Logger:  newLogger(cfg),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return New(db, opts...), nil
}

func newLogger(cfg *config.Config) logger.Interface {
	level := logger.Warn
	switch cfg.LogLevel {
	case "silent":
		level = logger.Silent
	case "error":
		level = logger.Error
	case "info":
		level = logger.Info
	}
	return logger.New(log.New(os.Stdout, "\r\n", log.LstdFlags), logger.Config{
		SlowThreshold:             cfg.SlowThreshold,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
	})
}

// DB exposes the underlying connection.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Close releases the connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Migrate builds the schema in two passes. Every entity shape is parsed first so
// forward references between entities resolve, then tables, foreign keys and join
// tables are created in dependency order.
func (s *Store) Migrate(ctx context.Context) error {
	db := s.db.WithContext(ctx)
	for _, m := range models.All() {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(m); err != nil {
			return fmt.Errorf("parse %T: %w", m, err)
		}
	}

	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to auto migrate models: %w", err)
	}
	return nil
}

// timestamp returns the store clock in UTC truncated to what Postgres keeps.
func (s *Store) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

// touch returns an updated timestamp that never precedes created.
func (s *Store) touch(created time.Time) time.Time {
	now := s.timestamp()
	if now.Before(created) {
		return created
	}
	return now
}

func (s *Store) transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return s.db.WithContext(ctx).Transaction(fn)
}
