package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/freshlink/backend/internal/domain/catalog"
)

func TestSnapshotRefresher(t *testing.T) {
	ctx := context.Background()

	t.Run("should expose an empty snapshot before the first refresh", func(t *testing.T) {
		refresher := NewSnapshotRefresher(new(MockProductRepository), time.Minute, zap.NewNop())

		snapshot := refresher.Current()
		require.NotNil(t, snapshot)
		assert.Equal(t, 0, snapshot.Len())
	})

	t.Run("should swap in the loaded catalog on refresh", func(t *testing.T) {
		repo := new(MockProductRepository)
		refresher := NewSnapshotRefresher(repo, time.Minute, zap.NewNop())
		products := []catalog.Product{*newCatalogProduct(t, "Bananas", "Cavendish")}

		repo.On("FindActive", ctx).Return(products, nil)

		require.NoError(t, refresher.Refresh(ctx))

		snapshot := refresher.Current()
		assert.Equal(t, 1, snapshot.Len())
		assert.True(t, snapshot.Contains(products[0].ID))
	})

	t.Run("should keep the previous snapshot when a refresh fails", func(t *testing.T) {
		repo := new(MockProductRepository)
		refresher := NewSnapshotRefresher(repo, time.Minute, zap.NewNop())
		products := []catalog.Product{*newCatalogProduct(t, "Bananas", "Cavendish")}

		repo.On("FindActive", ctx).Return(products, nil).Once()
		require.NoError(t, refresher.Refresh(ctx))
		before := refresher.Current()

		repo.On("FindActive", ctx).Return([]catalog.Product(nil), errors.New("db down")).Once()
		err := refresher.Refresh(ctx)

		require.Error(t, err)
		assert.Same(t, before, refresher.Current())
	})

	t.Run("should fail Start when the initial load fails", func(t *testing.T) {
		repo := new(MockProductRepository)
		refresher := NewSnapshotRefresher(repo, time.Minute, zap.NewNop())

		repo.On("FindActive", ctx).Return([]catalog.Product(nil), errors.New("db down"))

		assert.Error(t, refresher.Start(ctx))
	})
}
