// Package testutil provides shared fixtures for package tests.
package testutil

import (
	"testing"

	"nexus-service/pkg/config"
	"nexus-service/pkg/database"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a migrated in-memory SQLite database that lives for the duration of t
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.Open(&config.DBConfig{
		Driver:   "sqlite",
		Path:     "file::memory:",
		LogLevel: logger.Silent,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, zap.NewNop()))

	t.Cleanup(func() {
		_ = database.Close(db)
	})
	return db
}
