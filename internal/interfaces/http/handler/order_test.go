package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	orderingapp "github.com/freshlink/backend/internal/application/ordering"
	"github.com/freshlink/backend/internal/domain/cart"
	"github.com/freshlink/backend/internal/domain/catalog"
	"github.com/freshlink/backend/internal/domain/ordering"
	"github.com/freshlink/backend/internal/domain/partner"
	"github.com/freshlink/backend/internal/domain/pricing"
	"github.com/freshlink/backend/internal/domain/shared"
	"github.com/freshlink/backend/internal/domain/shared/valueobject"
)

// MockOrderRepository implements ordering.OrderRepository for testing
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
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
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

// MockBuyerRepository implements partner.BuyerRepository for testing
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

// noopIdempotencyStore never reports duplicates
type noopIdempotencyStore struct{}

func (noopIdempotencyStore) MarkProcessed(context.Context, string, time.Duration) (bool, error) {
	return true, nil
}
func (noopIdempotencyStore) IsProcessed(context.Context, string) (bool, error) { return false, nil }
func (noopIdempotencyStore) Close() error                                      { return nil }

// staticSnapshots serves a fixed catalog snapshot
type staticSnapshots struct {
	snapshot *catalog.Snapshot
}

func (s staticSnapshots) Current() *catalog.Snapshot { return s.snapshot }

func testProduct(t *testing.T, name string, price float64) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(name, "", "Produce", valueobject.UnitKG, valueobject.NewMoneyUSDFromFloat(price))
	require.NoError(t, err)
	return product
}

func testBuyer(t *testing.T) *partner.Buyer {
	t.Helper()
	buyer, err := partner.NewBuyer("Corner Grocer", "Dana", "orders@cornergrocer.example")
	require.NoError(t, err)
	return buyer
}

func orderTestRouter(orderRepo ordering.OrderRepository, buyerRepo partner.BuyerRepository, snapshot *catalog.Snapshot) *gin.Engine {
	gin.SetMode(gin.TestMode)
	snapshots := staticSnapshots{snapshot: snapshot}
	checkout := orderingapp.NewCheckoutService(orderRepo, buyerRepo, snapshots, noopIdempotencyStore{}, zap.NewNop())
	tracking := orderingapp.NewTrackingService(orderRepo)
	h := NewOrderHandler(checkout, tracking)

	router := gin.New()
	router.POST("/orders/checkout", h.Checkout)
	router.GET("/orders/active", h.Active)
	router.GET("/orders/:id", h.GetByID)
	router.POST("/orders/:id/verify", h.Verify)
	router.POST("/orders/:id/advance", h.Advance)
	return router
}

func TestOrderHandlerCheckout(t *testing.T) {
	product := testProduct(t, "Navel Oranges", 45)
	snapshot := catalog.NewSnapshot([]catalog.Product{*product})

	t.Run("pay_now checkout applies the discount", func(t *testing.T) {
		buyer := testBuyer(t)
		orderRepo := new(MockOrderRepository)
		buyerRepo := new(MockBuyerRepository)
		buyerRepo.On("FindByID", mock.Anything, buyer.ID).Return(buyer, nil)
		orderRepo.On("Save", mock.Anything, mock.AnythingOfType("*ordering.Order")).Return(nil)

		router := orderTestRouter(orderRepo, buyerRepo, snapshot)

		body, _ := json.Marshal(gin.H{
			"lines": []gin.H{
				{"product_id": product.ID, "quantity": "3", "unit": "KG"},
			},
			"payment_method": "pay_now",
			"delivery_date":  "2026-09-03",
			"delivery_time":  "06:00-08:00",
			"contact_name":   "Dana",
		})
		req := httptest.NewRequest("POST", "/orders/checkout", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Buyer-ID", buyer.ID.String())
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var resp struct {
			Data orderingapp.OrderResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "135.00", resp.Data.Subtotal)
		assert.Equal(t, "13.50", resp.Data.Discount)
		assert.Equal(t, "121.50", resp.Data.Total)
		orderRepo.AssertExpectations(t)
	})

	t.Run("restricted account is refused with 422", func(t *testing.T) {
		buyer := testBuyer(t)
		buyer.FlagOutstandingInvoices()
		orderRepo := new(MockOrderRepository)
		buyerRepo := new(MockBuyerRepository)
		buyerRepo.On("FindByID", mock.Anything, buyer.ID).Return(buyer, nil)

		router := orderTestRouter(orderRepo, buyerRepo, snapshot)

		body, _ := json.Marshal(gin.H{
			"lines": []gin.H{
				{"product_id": product.ID, "quantity": "1", "unit": "KG"},
			},
			"payment_method": "invoice",
			"delivery_date":  "2026-09-03",
			"delivery_time":  "06:00-08:00",
			"contact_name":   "Dana",
		})
		req := httptest.NewRequest("POST", "/orders/checkout", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Buyer-ID", buyer.ID.String())
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "ACCOUNT_RESTRICTED")
		orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("missing payment method fails validation", func(t *testing.T) {
		router := orderTestRouter(new(MockOrderRepository), new(MockBuyerRepository), snapshot)

		body, _ := json.Marshal(gin.H{
			"lines": []gin.H{
				{"product_id": product.ID, "quantity": "1", "unit": "KG"},
			},
			"delivery_date": "2026-09-03",
			"delivery_time": "06:00-08:00",
			"contact_name":  "Dana",
		})
		req := httptest.NewRequest("POST", "/orders/checkout", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Buyer-ID", uuid.New().String())
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing buyer identity is rejected", func(t *testing.T) {
		router := orderTestRouter(new(MockOrderRepository), new(MockBuyerRepository), snapshot)

		req := httptest.NewRequest("POST", "/orders/checkout", bytes.NewReader([]byte("{}")))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestOrderHandlerTracking(t *testing.T) {
	product := testProduct(t, "Bananas", 2)
	snapshot := catalog.NewSnapshot([]catalog.Product{*product})

	t.Run("get by id enforces ownership", func(t *testing.T) {
		buyer := testBuyer(t)
		other := testBuyer(t)
		order := placeTestOrder(t, product, other.ID)

		orderRepo := new(MockOrderRepository)
		orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)

		router := orderTestRouter(orderRepo, new(MockBuyerRepository), snapshot)

		req := httptest.NewRequest("GET", "/orders/"+order.ID.String(), nil)
		req.Header.Set("X-Buyer-ID", buyer.ID.String())
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("advance applies a delivery feed update", func(t *testing.T) {
		buyer := testBuyer(t)
		order := placeTestOrder(t, product, buyer.ID)

		orderRepo := new(MockOrderRepository)
		orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)
		orderRepo.On("Save", mock.Anything, order).Return(nil)

		router := orderTestRouter(orderRepo, new(MockBuyerRepository), snapshot)

		body, _ := json.Marshal(gin.H{"status": "confirmed"})
		req := httptest.NewRequest("POST", "/orders/"+order.ID.String()+"/advance", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), "CONFIRMED")
	})

	t.Run("verify before delivery is refused", func(t *testing.T) {
		buyer := testBuyer(t)
		order := placeTestOrder(t, product, buyer.ID)

		orderRepo := new(MockOrderRepository)
		orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)

		router := orderTestRouter(orderRepo, new(MockBuyerRepository), snapshot)

		req := httptest.NewRequest("POST", "/orders/"+order.ID.String()+"/verify", nil)
		req.Header.Set("X-Buyer-ID", buyer.ID.String())
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

// placeTestOrder builds a PENDING order for the given buyer
func placeTestOrder(t *testing.T, product *catalog.Product, buyerID uuid.UUID) *ordering.Order {
	t.Helper()

	line, err := cart.NewLine(product.ID, product.DisplayName(), decimal.NewFromInt(2), product.UnitPrice, valueobject.UnitKG)
	require.NoError(t, err)
	lines := []cart.Line{line}

	quote, err := pricing.NewQuote(lines, pricing.PaymentMethodInvoice)
	require.NoError(t, err)

	order, err := ordering.NewOrder("FL-20260901-TEST0001", buyerID, "Corner Grocer", lines, quote, ordering.Delivery{
		Date:        "2026-09-03",
		TimeWindow:  "06:00-08:00",
		ContactName: "Dana",
	})
	require.NoError(t, err)
	return order
}
