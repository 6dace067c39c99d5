// Package testutil opens throwaway stores for package tests.
package testutil

import (
	"bible_trivia_backend/internal/config"
	"bible_trivia_backend/pkg/database"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const JWTSecret = "test-secret-that-is-long-enough-for-release"

var dbSeq atomic.Int64

// NewDB returns a migrated in-memory SQLite database private to t.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:trivia_test_%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// Config is a valid configuration for wiring the app in tests.
func Config() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:         "0",
			Mode:         "test",
			StoreTimeout: 5 * time.Second,
		},
		Database: config.DatabaseConfig{Driver: "sqlite"},
		JWT: config.JWTConfig{
			Secret:     JWTSecret,
			ExpireTime: time.Hour,
		},
		Redis: config.RedisConfig{LeaderboardTTL: time.Minute},
	}
}
