// Package dbtest opens throwaway in-memory databases for repository tests.
package dbtest

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/devopscommunity/storefront/internal/models"
)

// blogPostsDDL mirrors the Postgres table; sqlite has no array type so tags
// and authors hold the pq text-array literal.
const blogPostsDDL = `CREATE TABLE blog_posts (
	id TEXT PRIMARY KEY,
	slug TEXT NOT NULL UNIQUE,
	title TEXT NOT NULL,
	summary TEXT,
	category TEXT,
	published_at DATETIME,
	reading_time TEXT,
	cover_image TEXT,
	content TEXT,
	tags TEXT,
	authors TEXT
)`

// Open returns an in-memory database with the application schema.
func Open(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	// one connection, or every new connection sees an empty database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, gdb.Exec(blogPostsDDL).Error)
	require.NoError(t, gdb.AutoMigrate(&models.Inquiry{}, &models.PaymentWebhookLog{}))
	return gdb
}
