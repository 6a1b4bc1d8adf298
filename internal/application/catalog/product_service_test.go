package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/freshlink/backend/internal/domain/catalog"
	"github.com/freshlink/backend/internal/domain/shared"
	"github.com/freshlink/backend/internal/domain/shared/valueobject"
)

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindActive(ctx context.Context) ([]catalog.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockObjectStorage is a mock implementation of ObjectStorageService
type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, storageKey, contentType, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockObjectStorage) GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, storageKey, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockObjectStorage) DeleteObject(ctx context.Context, storageKey string) error {
	args := m.Called(ctx, storageKey)
	return args.Error(0)
}

func (m *MockObjectStorage) ObjectExists(ctx context.Context, storageKey string) (bool, error) {
	args := m.Called(ctx, storageKey)
	return args.Bool(0), args.Error(1)
}

func newCatalogProduct(t *testing.T, name, variety string) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(name, variety, "Fruit", valueobject.UnitKG, valueobject.NewMoneyUSDFromFloat(1.20))
	require.NoError(t, err)
	return product
}

func TestProductService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("should create a product with normalized unit", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo, nil)

		repo.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)

		resp, err := service.Create(ctx, CreateProductRequest{
			Name:      "Bananas",
			Variety:   "Cavendish",
			Category:  "Fruit",
			Unit:      "kilos",
			UnitPrice: decimal.NewFromFloat(1.20),
		})

		require.NoError(t, err)
		assert.Equal(t, "Bananas (Cavendish)", resp.DisplayName)
		assert.Equal(t, "KG", resp.Unit)
		assert.Equal(t, "active", resp.Status)
		repo.AssertExpectations(t)
	})

	t.Run("should reject an unknown unit", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo, nil)

		_, err := service.Create(ctx, CreateProductRequest{
			Name:      "Bananas",
			Unit:      "crate",
			UnitPrice: decimal.NewFromFloat(1.20),
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_UNIT", domainErr.Code)
		repo.AssertNotCalled(t, "Save")
	})

	t.Run("should record environmental metrics when supplied", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo, nil)
		co2 := decimal.NewFromFloat(0.3)

		repo.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)

		resp, err := service.Create(ctx, CreateProductRequest{
			Name:       "Bananas",
			Unit:       "kg",
			UnitPrice:  decimal.NewFromFloat(1.20),
			CO2PerUnit: &co2,
		})

		require.NoError(t, err)
		assert.True(t, resp.CO2PerUnit.Equal(co2))
	})
}

func TestProductService_UpdatePrice(t *testing.T) {
	ctx := context.Background()

	t.Run("should update the unit price", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo, nil)
		product := newCatalogProduct(t, "Bananas", "Cavendish")

		repo.On("FindByID", ctx, product.ID).Return(product, nil)
		repo.On("Save", ctx, product).Return(nil)

		resp, err := service.UpdatePrice(ctx, product.ID, UpdatePriceRequest{
			UnitPrice: decimal.NewFromFloat(1.35),
		})

		require.NoError(t, err)
		assert.True(t, resp.UnitPrice.Equal(decimal.NewFromFloat(1.35)))
		repo.AssertExpectations(t)
	})

	t.Run("should propagate not found", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo, nil)
		id := uuid.New()

		repo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		_, err := service.UpdatePrice(ctx, id, UpdatePriceRequest{UnitPrice: decimal.NewFromInt(2)})

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestProductService_RequestImageUpload(t *testing.T) {
	ctx := context.Background()

	t.Run("should issue an upload URL and record the image key", func(t *testing.T) {
		repo := new(MockProductRepository)
		storage := new(MockObjectStorage)
		service := NewProductService(repo, storage)
		product := newCatalogProduct(t, "Bananas", "")
		expiresAt := time.Now().Add(15 * time.Minute)

		repo.On("FindByID", ctx, product.ID).Return(product, nil)
		repo.On("Save", ctx, product).Return(nil)
		storage.On("GenerateUploadURL", ctx, mock.AnythingOfType("string"), "image/jpeg", uploadURLExpiry).
			Return("https://storage.test/upload", expiresAt, nil)

		resp, err := service.RequestImageUpload(ctx, product.ID, ProductImageUploadRequest{ContentType: "image/jpeg"})

		require.NoError(t, err)
		assert.Equal(t, "https://storage.test/upload", resp.UploadURL)
		assert.NotEmpty(t, resp.ImageKey)
		assert.Equal(t, resp.ImageKey, product.ImageKey)
		storage.AssertExpectations(t)
	})

	t.Run("should reject disallowed content types", func(t *testing.T) {
		service := NewProductService(new(MockProductRepository), new(MockObjectStorage))

		_, err := service.RequestImageUpload(ctx, uuid.New(), ProductImageUploadRequest{ContentType: "image/svg+xml"})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CONTENT_TYPE", domainErr.Code)
	})

	t.Run("should fail cleanly when storage is not configured", func(t *testing.T) {
		service := NewProductService(new(MockProductRepository), nil)

		_, err := service.RequestImageUpload(ctx, uuid.New(), ProductImageUploadRequest{ContentType: "image/jpeg"})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "STORAGE_DISABLED", domainErr.Code)
	})
}

func TestProductService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("should page and filter the catalog", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo, nil)
		products := []catalog.Product{*newCatalogProduct(t, "Bananas", "Cavendish")}

		repo.On("FindAll", ctx, mock.MatchedBy(func(f shared.Filter) bool {
			return f.Filters["status"] == "active" && f.Page == 2 && f.PageSize == 10
		})).Return(products, nil)
		repo.On("Count", ctx, mock.Anything).Return(int64(11), nil)

		result, err := service.List(ctx, ProductListFilter{Status: "active", Page: 2, PageSize: 10})

		require.NoError(t, err)
		assert.Len(t, result.Items, 1)
		assert.Equal(t, int64(11), result.Total)
		assert.Equal(t, 2, result.TotalPages)
	})
}
