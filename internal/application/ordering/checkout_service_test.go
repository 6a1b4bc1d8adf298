package ordering

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/freshlink/backend/internal/domain/catalog"
	"github.com/freshlink/backend/internal/domain/ordering"
	"github.com/freshlink/backend/internal/domain/partner"
	"github.com/freshlink/backend/internal/domain/shared"
	"github.com/freshlink/backend/internal/domain/shared/valueobject"
)

// MockOrderRepository is a mock implementation of OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*ordering.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ordering.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByNumber(ctx context.Context, number string) (*ordering.Order, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ordering.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAllForBuyer(ctx context.Context, buyerID uuid.UUID, filter shared.Filter) ([]*ordering.Order, error) {
	args := m.Called(ctx, buyerID, filter)
	return args.Get(0).([]*ordering.Order), args.Error(1)
}

func (m *MockOrderRepository) CountForBuyer(ctx context.Context, buyerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, buyerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, order *ordering.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

// MockBuyerRepository is a mock implementation of BuyerRepository
type MockBuyerRepository struct {
	mock.Mock
}

func (m *MockBuyerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Buyer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Buyer), args.Error(1)
}

func (m *MockBuyerRepository) FindByEmail(ctx context.Context, email string) (*partner.Buyer, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Buyer), args.Error(1)
}

func (m *MockBuyerRepository) Save(ctx context.Context, buyer *partner.Buyer) error {
	args := m.Called(ctx, buyer)
	return args.Error(0)
}

// MockIdempotencyStore is a mock implementation of shared.IdempotencyStore
type MockIdempotencyStore struct {
	mock.Mock
}

func (m *MockIdempotencyStore) MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, key, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyStore) IsProcessed(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

type staticSnapshots struct {
	snapshot *catalog.Snapshot
}

func (s *staticSnapshots) Current() *catalog.Snapshot {
	return s.snapshot
}

func mustBuyer(t *testing.T) *partner.Buyer {
	t.Helper()
	buyer, err := partner.NewBuyer("Green Grocer Co", "Sam Field", "orders@greengrocer.test")
	require.NoError(t, err)
	return buyer
}

func mustProduct(t *testing.T, name, variety string, price float64) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(name, variety, "Fruit", valueobject.UnitKG, valueobject.NewMoneyUSDFromFloat(price))
	require.NoError(t, err)
	return product
}

func checkoutRequest(productID uuid.UUID, qty int64, method string) CheckoutRequest {
	return CheckoutRequest{
		Lines: []CartLineRequest{{
			ProductID: productID,
			Quantity:  decimal.NewFromInt(qty),
			Unit:      "kg",
		}},
		PaymentMethod: method,
		DeliveryDate:  "2026-09-02",
		DeliveryTime:  "06:00-08:00",
		ContactName:   "Sam Field",
	}
}

func TestCheckoutService_Checkout(t *testing.T) {
	ctx := context.Background()

	t.Run("should apply the pay_now discount to the catalog-priced cart", func(t *testing.T) {
		buyer := mustBuyer(t)
		product := mustProduct(t, "Bananas", "Cavendish", 1.35)
		snapshot := catalog.NewSnapshot([]catalog.Product{*product})

		orderRepo := new(MockOrderRepository)
		buyerRepo := new(MockBuyerRepository)
		service := NewCheckoutService(orderRepo, buyerRepo, &staticSnapshots{snapshot}, new(MockIdempotencyStore), zap.NewNop())

		buyerRepo.On("FindByID", ctx, buyer.ID).Return(buyer, nil)
		orderRepo.On("Save", ctx, mock.AnythingOfType("*ordering.Order")).Return(nil)

		resp, err := service.Checkout(ctx, buyer.ID, checkoutRequest(product.ID, 100, "pay_now"))

		require.NoError(t, err)
		assert.Equal(t, "135.00", resp.Subtotal)
		assert.Equal(t, "13.50", resp.Discount)
		assert.Equal(t, "121.50", resp.Total)
		assert.Equal(t, "PENDING", resp.Status)
		assert.NotEmpty(t, resp.Number)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, "1.35", resp.Items[0].UnitPrice)
	})

	t.Run("should charge the full subtotal on invoice terms", func(t *testing.T) {
		buyer := mustBuyer(t)
		product := mustProduct(t, "Bananas", "Cavendish", 1.35)
		snapshot := catalog.NewSnapshot([]catalog.Product{*product})

		orderRepo := new(MockOrderRepository)
		buyerRepo := new(MockBuyerRepository)
		service := NewCheckoutService(orderRepo, buyerRepo, &staticSnapshots{snapshot}, new(MockIdempotencyStore), zap.NewNop())

		buyerRepo.On("FindByID", ctx, buyer.ID).Return(buyer, nil)
		orderRepo.On("Save", ctx, mock.AnythingOfType("*ordering.Order")).Return(nil)

		resp, err := service.Checkout(ctx, buyer.ID, checkoutRequest(product.ID, 100, "invoice"))

		require.NoError(t, err)
		assert.Equal(t, "0.00", resp.Discount)
		assert.Equal(t, "135.00", resp.Total)
	})

	t.Run("should reject a restricted account without writing anything", func(t *testing.T) {
		buyer := mustBuyer(t)
		buyer.FlagOutstandingInvoices()
		product := mustProduct(t, "Bananas", "Cavendish", 1.35)
		snapshot := catalog.NewSnapshot([]catalog.Product{*product})

		orderRepo := new(MockOrderRepository)
		buyerRepo := new(MockBuyerRepository)
		service := NewCheckoutService(orderRepo, buyerRepo, &staticSnapshots{snapshot}, new(MockIdempotencyStore), zap.NewNop())

		buyerRepo.On("FindByID", ctx, buyer.ID).Return(buyer, nil)

		_, err := service.Checkout(ctx, buyer.ID, checkoutRequest(product.ID, 10, "pay_now"))

		assert.ErrorIs(t, err, shared.ErrAccountRestricted)
		orderRepo.AssertNotCalled(t, "Save")
	})

	t.Run("should allow checkout again once invoices are settled", func(t *testing.T) {
		buyer := mustBuyer(t)
		buyer.FlagOutstandingInvoices()
		buyer.ClearOutstandingInvoices()
		product := mustProduct(t, "Bananas", "Cavendish", 1.35)
		snapshot := catalog.NewSnapshot([]catalog.Product{*product})

		orderRepo := new(MockOrderRepository)
		buyerRepo := new(MockBuyerRepository)
		service := NewCheckoutService(orderRepo, buyerRepo, &staticSnapshots{snapshot}, new(MockIdempotencyStore), zap.NewNop())

		buyerRepo.On("FindByID", ctx, buyer.ID).Return(buyer, nil)
		orderRepo.On("Save", ctx, mock.AnythingOfType("*ordering.Order")).Return(nil)

		_, err := service.Checkout(ctx, buyer.ID, checkoutRequest(product.ID, 10, "pay_now"))

		assert.NoError(t, err)
	})

	t.Run("should reject a duplicate idempotency key", func(t *testing.T) {
		buyer := mustBuyer(t)
		snapshot := catalog.NewSnapshot(nil)

		orderRepo := new(MockOrderRepository)
		buyerRepo := new(MockBuyerRepository)
		store := new(MockIdempotencyStore)
		service := NewCheckoutService(orderRepo, buyerRepo, &staticSnapshots{snapshot}, store, zap.NewNop())

		store.On("MarkProcessed", ctx, buyer.ID.String()+":checkout:abc123", confirmationTTL).Return(false, nil)

		req := checkoutRequest(uuid.New(), 10, "pay_now")
		req.IdempotencyKey = "abc123"
		_, err := service.Checkout(ctx, buyer.ID, req)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "DUPLICATE_SUBMISSION", domainErr.Code)
		buyerRepo.AssertNotCalled(t, "FindByID")
	})

	t.Run("should reject a product that left the catalog", func(t *testing.T) {
		buyer := mustBuyer(t)
		snapshot := catalog.NewSnapshot(nil)

		orderRepo := new(MockOrderRepository)
		buyerRepo := new(MockBuyerRepository)
		service := NewCheckoutService(orderRepo, buyerRepo, &staticSnapshots{snapshot}, new(MockIdempotencyStore), zap.NewNop())

		buyerRepo.On("FindByID", ctx, buyer.ID).Return(buyer, nil)

		_, err := service.Checkout(ctx, buyer.ID, checkoutRequest(uuid.New(), 10, "pay_now"))

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
	})

	t.Run("should merge duplicate lines before pricing", func(t *testing.T) {
		buyer := mustBuyer(t)
		product := mustProduct(t, "Bananas", "Cavendish", 2.00)
		snapshot := catalog.NewSnapshot([]catalog.Product{*product})

		orderRepo := new(MockOrderRepository)
		buyerRepo := new(MockBuyerRepository)
		service := NewCheckoutService(orderRepo, buyerRepo, &staticSnapshots{snapshot}, new(MockIdempotencyStore), zap.NewNop())

		buyerRepo.On("FindByID", ctx, buyer.ID).Return(buyer, nil)
		orderRepo.On("Save", ctx, mock.AnythingOfType("*ordering.Order")).Return(nil)

		req := CheckoutRequest{
			Lines: []CartLineRequest{
				{ProductID: product.ID, Quantity: decimal.NewFromInt(3), Unit: "kg"},
				{ProductID: product.ID, Quantity: decimal.NewFromInt(2), Unit: "kg"},
			},
			PaymentMethod: "invoice",
			DeliveryDate:  "2026-09-02",
			DeliveryTime:  "06:00-08:00",
			ContactName:   "Sam Field",
		}

		resp, err := service.Checkout(ctx, buyer.ID, req)

		require.NoError(t, err)
		require.Len(t, resp.Items, 1)
		assert.True(t, resp.Items[0].Quantity.Equal(decimal.NewFromInt(5)))
		assert.Equal(t, "10.00", resp.Total)
	})
}

func TestCheckoutService_Advance(t *testing.T) {
	ctx := context.Background()

	t.Run("should advance the order and persist it", func(t *testing.T) {
		order := placedOrder(t)

		orderRepo := new(MockOrderRepository)
		service := NewCheckoutService(orderRepo, new(MockBuyerRepository), &staticSnapshots{catalog.NewSnapshot(nil)}, new(MockIdempotencyStore), zap.NewNop())

		orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
		orderRepo.On("Save", ctx, order).Return(nil)

		resp, err := service.Advance(ctx, order.ID, AdvanceRequest{Status: "confirmed"})

		require.NoError(t, err)
		assert.Equal(t, "CONFIRMED", resp.Status)
		assert.NotNil(t, resp.ConfirmedAt)
	})

	t.Run("should tolerate a feed that skips states", func(t *testing.T) {
		order := placedOrder(t)

		orderRepo := new(MockOrderRepository)
		service := NewCheckoutService(orderRepo, new(MockBuyerRepository), &staticSnapshots{catalog.NewSnapshot(nil)}, new(MockIdempotencyStore), zap.NewNop())

		orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
		orderRepo.On("Save", ctx, order).Return(nil)

		resp, err := service.Advance(ctx, order.ID, AdvanceRequest{Status: "DELIVERED"})

		require.NoError(t, err)
		assert.Equal(t, "DELIVERED", resp.Status)
		assert.NotNil(t, resp.ConfirmedAt)
		assert.NotNil(t, resp.ShippedAt)
		assert.NotNil(t, resp.DeliveredAt)
	})

	t.Run("should reject an unknown status", func(t *testing.T) {
		order := placedOrder(t)

		orderRepo := new(MockOrderRepository)
		service := NewCheckoutService(orderRepo, new(MockBuyerRepository), &staticSnapshots{catalog.NewSnapshot(nil)}, new(MockIdempotencyStore), zap.NewNop())

		orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)

		_, err := service.Advance(ctx, order.ID, AdvanceRequest{Status: "TELEPORTED"})

		require.Error(t, err)
		orderRepo.AssertNotCalled(t, "Save")
	})
}

func TestCheckoutService_Reorder(t *testing.T) {
	ctx := context.Background()

	t.Run("should rebuild cart lines repriced from the current catalog", func(t *testing.T) {
		order := placedOrder(t)
		product := mustProduct(t, "Bananas", "Cavendish", 9.99)
		// Reuse the order's product ID so the catalog lookup hits
		product.ID = order.Items[0].ProductID
		snapshot := catalog.NewSnapshot([]catalog.Product{*product})

		orderRepo := new(MockOrderRepository)
		service := NewCheckoutService(orderRepo, new(MockBuyerRepository), &staticSnapshots{snapshot}, new(MockIdempotencyStore), zap.NewNop())

		orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)

		resp, err := service.Reorder(ctx, order.BuyerID, order.ID)

		require.NoError(t, err)
		require.Len(t, resp.Lines, 1)
		assert.True(t, resp.Lines[0].InCatalog)
		assert.Equal(t, "9.99", resp.Lines[0].UnitPrice)
	})

	t.Run("should flag products no longer in the catalog", func(t *testing.T) {
		order := placedOrder(t)

		orderRepo := new(MockOrderRepository)
		service := NewCheckoutService(orderRepo, new(MockBuyerRepository), &staticSnapshots{catalog.NewSnapshot(nil)}, new(MockIdempotencyStore), zap.NewNop())

		orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)

		resp, err := service.Reorder(ctx, order.BuyerID, order.ID)

		require.NoError(t, err)
		require.Len(t, resp.Lines, 1)
		assert.False(t, resp.Lines[0].InCatalog)
	})

	t.Run("should hide other buyers' orders", func(t *testing.T) {
		order := placedOrder(t)

		orderRepo := new(MockOrderRepository)
		service := NewCheckoutService(orderRepo, new(MockBuyerRepository), &staticSnapshots{catalog.NewSnapshot(nil)}, new(MockIdempotencyStore), zap.NewNop())

		orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)

		_, err := service.Reorder(ctx, uuid.New(), order.ID)

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
