package ordering

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/freshlink/backend/internal/domain/ordering"
	"github.com/freshlink/backend/internal/domain/shared"
)

// activeOrderScanLimit bounds how many recent orders are considered
// when selecting the dashboard's active order
const activeOrderScanLimit = 50

// TrackingService serves the buyer dashboard's order views: the active
// order with its verification countdown, the order list, and the
// post-delivery verification act.
type TrackingService struct {
	orderRepo ordering.OrderRepository
	now       func() time.Time
}

// NewTrackingService creates a new TrackingService
func NewTrackingService(orderRepo ordering.OrderRepository) *TrackingService {
	return &TrackingService{
		orderRepo: orderRepo,
		now:       time.Now,
	}
}

// ActiveOrder picks the order the dashboard should track and attaches
// the verification countdown. Returns nil when no order needs
// attention.
func (s *TrackingService) ActiveOrder(ctx context.Context, buyerID uuid.UUID) (*TrackingResponse, error) {
	filter := shared.DefaultFilter()
	filter.PageSize = activeOrderScanLimit

	orders, err := s.orderRepo.FindAllForBuyer(ctx, buyerID, filter)
	if err != nil {
		return nil, err
	}

	active := ordering.SelectActive(orders)
	if active == nil {
		return nil, nil
	}

	response := s.toTrackingResponse(active)
	return &response, nil
}

// GetOrder returns one order with its countdown state
func (s *TrackingService) GetOrder(ctx context.Context, buyerID, orderID uuid.UUID) (*TrackingResponse, error) {
	order, err := s.buyerOrder(ctx, buyerID, orderID)
	if err != nil {
		return nil, err
	}

	response := s.toTrackingResponse(order)
	return &response, nil
}

// List returns the buyer's orders, newest first
func (s *TrackingService) List(ctx context.Context, buyerID uuid.UUID, filter OrderListFilter) (*shared.Paginated[OrderResponse], error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	orders, err := s.orderRepo.FindAllForBuyer(ctx, buyerID, domainFilter)
	if err != nil {
		return nil, err
	}

	total, err := s.orderRepo.CountForBuyer(ctx, buyerID)
	if err != nil {
		return nil, err
	}

	responses := make([]OrderResponse, 0, len(orders))
	for _, order := range orders {
		responses = append(responses, ToOrderResponse(order))
	}

	result := shared.NewPaginated(responses, total, domainFilter.Page, domainFilter.PageSize)
	return &result, nil
}

// Verify records the buyer's confirmation that the delivery was
// complete and correct. Only legal on a delivered order.
func (s *TrackingService) Verify(ctx context.Context, buyerID, orderID uuid.UUID) (*TrackingResponse, error) {
	order, err := s.buyerOrder(ctx, buyerID, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.MarkFullyVerified(); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	response := s.toTrackingResponse(order)
	return &response, nil
}

func (s *TrackingService) buyerOrder(ctx context.Context, buyerID, orderID uuid.UUID) (*ordering.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.BuyerID != buyerID {
		return nil, shared.ErrNotFound
	}
	return order, nil
}

func (s *TrackingService) toTrackingResponse(order *ordering.Order) TrackingResponse {
	response := TrackingResponse{
		Order:     ToOrderResponse(order),
		Countdown: "00:00",
	}
	if order.InVerificationWindow() && order.DeliveredAt != nil {
		remaining := ordering.VerificationRemaining(*order.DeliveredAt, s.now())
		response.InVerificationWindow = remaining > 0
		response.VerificationRemaining = int(remaining.Seconds())
		response.Countdown = ordering.FormatCountdown(remaining)
	}
	return response
}
