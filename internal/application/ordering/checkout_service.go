package ordering

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/freshlink/backend/internal/domain/cart"
	"github.com/freshlink/backend/internal/domain/catalog"
	"github.com/freshlink/backend/internal/domain/ordering"
	"github.com/freshlink/backend/internal/domain/partner"
	"github.com/freshlink/backend/internal/domain/pricing"
	"github.com/freshlink/backend/internal/domain/shared"
	"github.com/freshlink/backend/internal/domain/shared/valueobject"
)

// SnapshotProvider supplies the current catalog snapshot
type SnapshotProvider interface {
	Current() *catalog.Snapshot
}

// confirmationTTL is how long a checkout idempotency key stays marked
const confirmationTTL = 10 * time.Minute

// CheckoutService confirms carts into orders. It is the single gate all
// confirmation paths go through: manual checkout, quick-order confirm
// and one-tap re-order all end up here, so the account-status check and
// the duplicate-submit guard apply uniformly.
type CheckoutService struct {
	orderRepo   ordering.OrderRepository
	buyerRepo   partner.BuyerRepository
	snapshots   SnapshotProvider
	idempotency shared.IdempotencyStore
	logger      *zap.Logger
	now         func() time.Time
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(orderRepo ordering.OrderRepository, buyerRepo partner.BuyerRepository, snapshots SnapshotProvider, idempotency shared.IdempotencyStore, logger *zap.Logger) *CheckoutService {
	return &CheckoutService{
		orderRepo:   orderRepo,
		buyerRepo:   buyerRepo,
		snapshots:   snapshots,
		idempotency: idempotency,
		logger:      logger.Named("checkout"),
		now:         time.Now,
	}
}

// Checkout prices the cart and places the order. The buyer's account
// status is re-read on every attempt; a restricted account gets
// ACCOUNT_RESTRICTED and nothing is written. Prices come from the
// current catalog, never from the request.
func (s *CheckoutService) Checkout(ctx context.Context, buyerID uuid.UUID, req CheckoutRequest) (*OrderResponse, error) {
	if req.IdempotencyKey != "" {
		fresh, err := s.idempotency.MarkProcessed(ctx, buyerID.String()+":checkout:"+req.IdempotencyKey, confirmationTTL)
		if err != nil {
			s.logger.Warn("idempotency store unavailable, skipping duplicate guard", zap.Error(err))
		} else if !fresh {
			return nil, shared.NewDomainError("DUPLICATE_SUBMISSION", "This checkout was already submitted")
		}
	}

	buyer, err := s.buyerRepo.FindByID(ctx, buyerID)
	if err != nil {
		return nil, err
	}
	if !buyer.CanPlaceOrders() {
		return nil, shared.ErrAccountRestricted
	}

	lines, err := s.priceLines(req.Lines)
	if err != nil {
		return nil, err
	}
	lines = cart.Merge(nil, lines)

	quote, err := pricing.NewQuote(lines, pricing.PaymentMethod(req.PaymentMethod))
	if err != nil {
		return nil, err
	}

	order, err := ordering.NewOrder(s.generateOrderNumber(), buyer.ID, buyer.Name, lines, quote, ordering.Delivery{
		Date:        req.DeliveryDate,
		TimeWindow:  req.DeliveryTime,
		ContactName: req.ContactName,
	})
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("order placed",
		zap.String("order_number", order.Number),
		zap.String("buyer_id", buyer.ID.String()),
		zap.String("total", order.Total.StringFixed(2)),
		zap.String("payment_method", string(order.PaymentMethod)),
	)

	response := ToOrderResponse(order)
	return &response, nil
}

// Reorder rebuilds cart lines from a past order so the buyer can adjust
// and re-confirm them. Lines are repriced from the current catalog;
// products that have left the catalog are flagged, not dropped.
func (s *CheckoutService) Reorder(ctx context.Context, buyerID, orderID uuid.UUID) (*ReorderResponse, error) {
	order, err := s.buyerOrder(ctx, buyerID, orderID)
	if err != nil {
		return nil, err
	}

	snapshot := s.snapshots.Current()
	response := &ReorderResponse{Lines: make([]ReorderLineResponse, 0, len(order.Items))}
	for _, line := range order.CartLines() {
		item := ReorderLineResponse{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			Unit:        line.Unit.String(),
			UnitPrice:   line.UnitPrice.StringFixed(2),
		}
		if product := snapshot.ByID(line.ProductID); product != nil && product.IsActive() {
			item.InCatalog = true
			item.ProductName = product.DisplayName()
			item.UnitPrice = product.UnitPrice.StringFixed(2)
		}
		response.Lines = append(response.Lines, item)
	}
	return response, nil
}

// Advance applies a delivery-feed status update to an order.
// Data-consistency notes raised by timestamp backfills are logged at
// WARN and do not fail the update.
func (s *CheckoutService) Advance(ctx context.Context, orderID uuid.UUID, req AdvanceRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.AdvanceTo(ordering.OrderStatus(strings.ToUpper(req.Status)), s.now()); err != nil {
		return nil, err
	}

	for _, event := range order.GetDomainEvents() {
		if noted, ok := event.(*ordering.DataConsistencyNotedEvent); ok {
			backfilled := make([]string, 0, len(noted.Backfilled))
			for _, st := range noted.Backfilled {
				backfilled = append(backfilled, st.String())
			}
			s.logger.Warn("delivery feed skipped states, timestamps backfilled",
				zap.String("order_number", order.Number),
				zap.Strings("backfilled", backfilled),
			)
		}
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// priceLines resolves each requested line against the catalog snapshot
func (s *CheckoutService) priceLines(requests []CartLineRequest) ([]cart.Line, error) {
	snapshot := s.snapshots.Current()
	lines := make([]cart.Line, 0, len(requests))
	for _, req := range requests {
		product := snapshot.ByID(req.ProductID)
		if product == nil || !product.IsActive() {
			return nil, shared.NewDomainError("NOT_FOUND", "Product is not available: "+req.ProductID.String())
		}
		unit, err := valueobject.ParseUnit(req.Unit)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_UNIT", "Unit must be one of KG, TRAY, EACH, LOOSE, BAG")
		}
		line, err := cart.NewLine(product.ID, product.DisplayName(), req.Quantity, product.UnitPrice, unit)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// buyerOrder loads an order and enforces buyer ownership
func (s *CheckoutService) buyerOrder(ctx context.Context, buyerID, orderID uuid.UUID) (*ordering.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.BuyerID != buyerID {
		return nil, shared.ErrNotFound
	}
	return order, nil
}

// generateOrderNumber produces a unique, human-readable order number
func (s *CheckoutService) generateOrderNumber() string {
	suffix := strings.ToUpper(uuid.New().String()[:8])
	return fmt.Sprintf("FL-%s-%s", s.now().Format("20060102"), suffix)
}
