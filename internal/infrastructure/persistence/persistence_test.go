package persistence

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/freshlink/backend/internal/domain/catalog"
	"github.com/freshlink/backend/internal/domain/ordering"
	"github.com/freshlink/backend/internal/domain/partner"
	"github.com/freshlink/backend/internal/domain/sourcing"
)

// setupTestDB opens an in-memory sqlite database and migrates the full
// schema. Each test gets its own isolated database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&catalog.Product{},
		&ordering.Order{},
		&ordering.OrderItem{},
		&partner.Buyer{},
		&sourcing.Request{},
		&sourcing.RequestLine{},
	)
	require.NoError(t, err)

	return db
}
