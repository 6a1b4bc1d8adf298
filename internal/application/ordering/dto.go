package ordering

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/freshlink/backend/internal/domain/ordering"
)

// CartLineRequest is one cart position submitted at checkout. Unit
// prices are never taken from the client; they are looked up in the
// catalog at confirmation time.
type CartLineRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	Unit      string          `json:"unit" binding:"required"`
}

// CheckoutRequest confirms a cart into an order
type CheckoutRequest struct {
	Lines          []CartLineRequest `json:"lines" binding:"required,min=1,dive"`
	PaymentMethod  string            `json:"payment_method" binding:"required,oneof=pay_now invoice"`
	DeliveryDate   string            `json:"delivery_date" binding:"required"`
	DeliveryTime   string            `json:"delivery_time" binding:"required"`
	ContactName    string            `json:"contact_name" binding:"required,min=1,max=100"`
	IdempotencyKey string            `json:"idempotency_key" binding:"omitempty,max=100"`
}

// AdvanceRequest moves an order forward in its lifecycle. It is the
// surface the delivery feed posts updates to.
type AdvanceRequest struct {
	Status string `json:"status" binding:"required"`
}

// OrderListFilter represents filter options for the order list
type OrderListFilter struct {
	Status   string `form:"status" binding:"omitempty,oneof=PENDING CONFIRMED READY_FOR_DELIVERY SHIPPED DELIVERED"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// OrderItemResponse is one line of an order
type OrderItemResponse struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
	UnitPrice   string          `json:"unit_price"`
	Amount      string          `json:"amount"`
}

// OrderResponse represents an order in API responses. Amounts are
// rounded to two decimals here and nowhere earlier.
type OrderResponse struct {
	ID            uuid.UUID           `json:"id"`
	Number        string              `json:"number"`
	BuyerID       uuid.UUID           `json:"buyer_id"`
	BuyerName     string              `json:"buyer_name"`
	Items         []OrderItemResponse `json:"items"`
	Subtotal      string              `json:"subtotal"`
	Discount      string              `json:"discount"`
	Total         string              `json:"total"`
	PaymentMethod string              `json:"payment_method"`
	Status        string              `json:"status"`
	DeliveryDate  string              `json:"delivery_date"`
	DeliveryTime  string              `json:"delivery_time"`
	ContactName   string              `json:"contact_name"`
	PlacedAt      time.Time           `json:"placed_at"`
	ConfirmedAt   *time.Time          `json:"confirmed_at,omitempty"`
	PreparedAt    *time.Time          `json:"prepared_at,omitempty"`
	ShippedAt     *time.Time          `json:"shipped_at,omitempty"`
	DeliveredAt   *time.Time          `json:"delivered_at,omitempty"`
	FullyVerified bool                `json:"fully_verified"`
}

// TrackingResponse is the dashboard's active-order view: the order plus
// the verification countdown when one is running
type TrackingResponse struct {
	Order                 OrderResponse `json:"order"`
	InVerificationWindow  bool          `json:"in_verification_window"`
	VerificationRemaining int           `json:"verification_remaining_seconds"`
	Countdown             string        `json:"countdown"`
}

// ReorderResponse carries the cart lines rebuilt from a past order
type ReorderResponse struct {
	Lines []ReorderLineResponse `json:"lines"`
}

// ReorderLineResponse is one cart line from a past order, repriced from
// the current catalog where possible
type ReorderLineResponse struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
	UnitPrice   string          `json:"unit_price"`
	InCatalog   bool            `json:"in_catalog"`
}

// ToOrderResponse converts a domain order
func ToOrderResponse(order *ordering.Order) OrderResponse {
	response := OrderResponse{
		ID:            order.ID,
		Number:        order.Number,
		BuyerID:       order.BuyerID,
		BuyerName:     order.BuyerName,
		Items:         make([]OrderItemResponse, 0, len(order.Items)),
		Subtotal:      order.Subtotal.StringFixed(2),
		Discount:      order.Discount.StringFixed(2),
		Total:         order.Total.StringFixed(2),
		PaymentMethod: string(order.PaymentMethod),
		Status:        order.Status.String(),
		DeliveryDate:  order.Delivery.Date,
		DeliveryTime:  order.Delivery.TimeWindow,
		ContactName:   order.Delivery.ContactName,
		PlacedAt:      order.CreatedAt,
		ConfirmedAt:   order.ConfirmedAt,
		PreparedAt:    order.PreparedAt,
		ShippedAt:     order.ShippedAt,
		DeliveredAt:   order.DeliveredAt,
		FullyVerified: order.FullyVerified,
	}
	for _, item := range order.Items {
		response.Items = append(response.Items, OrderItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Unit:        item.Unit.String(),
			UnitPrice:   item.UnitPrice.StringFixed(2),
			Amount:      item.Amount.StringFixed(2),
		})
	}
	return response
}
