package ordering

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/freshlink/backend/internal/domain/cart"
	"github.com/freshlink/backend/internal/domain/pricing"
	"github.com/freshlink/backend/internal/domain/shared"
	"github.com/freshlink/backend/internal/domain/shared/valueobject"
)

// OrderStatus represents the fulfillment state of an order
type OrderStatus string

const (
	OrderStatusPending          OrderStatus = "PENDING"
	OrderStatusConfirmed        OrderStatus = "CONFIRMED"
	OrderStatusReadyForDelivery OrderStatus = "READY_FOR_DELIVERY"
	OrderStatusShipped          OrderStatus = "SHIPPED"
	OrderStatusDelivered        OrderStatus = "DELIVERED"
)

// lifecycle lists the states in order. Status only ever moves forward
// through this sequence; there is no regression operation.
var lifecycle = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusReadyForDelivery,
	OrderStatusShipped,
	OrderStatusDelivered,
}

var statusRank = map[OrderStatus]int{
	OrderStatusPending:          0,
	OrderStatusConfirmed:        1,
	OrderStatusReadyForDelivery: 2,
	OrderStatusShipped:          3,
	OrderStatusDelivered:        4,
}

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	_, ok := statusRank[s]
	return ok
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// Rank returns the position of the status in the lifecycle
func (s OrderStatus) Rank() int {
	return statusRank[s]
}

// AtOrPast reports whether the status has reached the target state
func (s OrderStatus) AtOrPast(target OrderStatus) bool {
	return statusRank[s] >= statusRank[target]
}

// OrderItem represents a line item in an order
type OrderItem struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID        `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID        `gorm:"type:uuid;not null"`
	ProductName string           `gorm:"type:varchar(200);not null"`
	Quantity    decimal.Decimal  `gorm:"type:decimal(18,4);not null"`
	UnitPrice   decimal.Decimal  `gorm:"type:decimal(18,4);not null"`
	Unit        valueobject.Unit `gorm:"type:varchar(20);not null"`
	Amount      decimal.Decimal  `gorm:"type:decimal(18,4);not null"`
	CreatedAt   time.Time
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// Delivery holds the delivery details captured at checkout
type Delivery struct {
	Date        string `gorm:"column:delivery_date;type:varchar(20);not null"`
	TimeWindow  string `gorm:"column:delivery_time;type:varchar(50);not null"`
	ContactName string `gorm:"column:delivery_contact;type:varchar(100);not null"`
}

// Order is the aggregate root for a placed order. Orders are never
// deleted and their status only advances; the 90-minute post-delivery
// verification window hangs off DeliveredAt.
type Order struct {
	shared.BaseAggregateRoot
	Number        string                `gorm:"type:varchar(50);not null;uniqueIndex"`
	BuyerID       uuid.UUID             `gorm:"type:uuid;not null;index"`
	BuyerName     string                `gorm:"type:varchar(200);not null"`
	Items         []OrderItem           `gorm:"foreignKey:OrderID;references:ID"`
	Subtotal      decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	Discount      decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	Total         decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	PaymentMethod pricing.PaymentMethod `gorm:"type:varchar(20);not null"`
	Status        OrderStatus           `gorm:"type:varchar(30);not null;index"`
	Delivery      Delivery              `gorm:"embedded"`
	ConfirmedAt   *time.Time
	PreparedAt    *time.Time
	ShippedAt     *time.Time
	DeliveredAt   *time.Time
	FullyVerified bool `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates an order from priced cart lines. The order starts in
// PENDING; the quote must have been produced from the same lines.
func NewOrder(number string, buyerID uuid.UUID, buyerName string, lines []cart.Line, quote pricing.Quote, delivery Delivery) (*Order, error) {
	if strings.TrimSpace(number) == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if buyerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BUYER", "Buyer ID cannot be empty")
	}
	if len(lines) == 0 {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order must contain at least one line")
	}
	if strings.TrimSpace(delivery.ContactName) == "" {
		return nil, shared.NewDomainError("INVALID_DELIVERY", "Delivery contact name cannot be empty")
	}

	order := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            number,
		BuyerID:           buyerID,
		BuyerName:         buyerName,
		Items:             make([]OrderItem, 0, len(lines)),
		Subtotal:          quote.Subtotal,
		Discount:          quote.Discount,
		Total:             quote.Total,
		PaymentMethod:     quote.Method,
		Status:            OrderStatusPending,
		Delivery:          delivery,
	}

	for _, line := range lines {
		order.Items = append(order.Items, OrderItem{
			ID:          uuid.New(),
			OrderID:     order.ID,
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			Unit:        line.Unit,
			Amount:      line.Total(),
			CreatedAt:   order.CreatedAt,
		})
	}

	order.AddDomainEvent(NewOrderPlacedEvent(order))

	return order, nil
}

// timestampFor returns the pointer to the transition timestamp owned by
// the given status. PENDING has none; placement time is CreatedAt.
func (o *Order) timestampFor(status OrderStatus) **time.Time {
	switch status {
	case OrderStatusConfirmed:
		return &o.ConfirmedAt
	case OrderStatusReadyForDelivery:
		return &o.PreparedAt
	case OrderStatusShipped:
		return &o.ShippedAt
	case OrderStatusDelivered:
		return &o.DeliveredAt
	}
	return nil
}

// AdvanceTo moves the order forward to the target status, stamping the
// target's transition time. Advancing to a state the order is already at
// or past is a no-op, which makes delivery-feed updates idempotent.
// When intermediate timestamps are missing they are backfilled with the
// same instant and a DataConsistencyNoted event is raised; the feed can
// skip states but history must stay complete.
func (o *Order) AdvanceTo(target OrderStatus, now time.Time) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown order status: "+target.String())
	}
	if o.Status.AtOrPast(target) {
		return nil
	}

	var backfilled []OrderStatus
	for _, status := range lifecycle {
		if status.Rank() == 0 || status.Rank() >= target.Rank() {
			continue
		}
		ts := o.timestampFor(status)
		if *ts == nil {
			stamped := now
			*ts = &stamped
			backfilled = append(backfilled, status)
		}
	}

	previous := o.Status
	stamped := now
	*o.timestampFor(target) = &stamped
	o.Status = target
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderStatusAdvancedEvent(o, previous, target))
	if len(backfilled) > 0 {
		o.AddDomainEvent(NewDataConsistencyNotedEvent(o, backfilled))
	}

	return nil
}

// MarkFullyVerified records the buyer's post-delivery verification.
// Only legal once the order is DELIVERED.
func (o *Order) MarkFullyVerified() error {
	if o.Status != OrderStatusDelivered {
		return shared.NewDomainError("INVALID_STATE", "Order must be delivered before it can be verified")
	}
	if o.FullyVerified {
		return nil
	}
	o.FullyVerified = true
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	o.AddDomainEvent(NewOrderFullyVerifiedEvent(o))
	return nil
}

// CartLines converts the order items back into cart lines for one-tap
// re-ordering
func (o *Order) CartLines() []cart.Line {
	lines := make([]cart.Line, 0, len(o.Items))
	for _, item := range o.Items {
		lines = append(lines, cart.Line{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Unit:        item.Unit,
		})
	}
	return lines
}

// InVerificationWindow reports whether the order is delivered but not
// yet fully verified
func (o *Order) InVerificationWindow() bool {
	return o.Status == OrderStatusDelivered && !o.FullyVerified
}
