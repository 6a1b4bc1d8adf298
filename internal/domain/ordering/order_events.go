package ordering

import (
	"github.com/freshlink/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeOrder = "Order"

// Event type constants
const (
	EventTypeOrderPlaced          = "OrderPlaced"
	EventTypeOrderStatusAdvanced  = "OrderStatusAdvanced"
	EventTypeDataConsistencyNoted = "DataConsistencyNoted"
	EventTypeOrderFullyVerified   = "OrderFullyVerified"
)

// OrderPlacedEvent is raised when a buyer places an order
type OrderPlacedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	BuyerID     uuid.UUID `json:"buyer_id"`
	Total       string    `json:"total"`
}

// NewOrderPlacedEvent creates a new OrderPlacedEvent
func NewOrderPlacedEvent(order *Order) *OrderPlacedEvent {
	return &OrderPlacedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPlaced, AggregateTypeOrder, order.ID),
		OrderID:         order.ID,
		OrderNumber:     order.Number,
		BuyerID:         order.BuyerID,
		Total:           order.Total.StringFixed(2),
	}
}

// EventType returns the event type name
func (e *OrderPlacedEvent) EventType() string {
	return EventTypeOrderPlaced
}

// OrderStatusAdvancedEvent is raised when the order moves forward in its
// lifecycle
type OrderStatusAdvancedEvent struct {
	shared.BaseDomainEvent
	OrderID    uuid.UUID   `json:"order_id"`
	FromStatus OrderStatus `json:"from_status"`
	ToStatus   OrderStatus `json:"to_status"`
}

// NewOrderStatusAdvancedEvent creates a new OrderStatusAdvancedEvent
func NewOrderStatusAdvancedEvent(order *Order, from, to OrderStatus) *OrderStatusAdvancedEvent {
	return &OrderStatusAdvancedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderStatusAdvanced, AggregateTypeOrder, order.ID),
		OrderID:         order.ID,
		FromStatus:      from,
		ToStatus:        to,
	}
}

// EventType returns the event type name
func (e *OrderStatusAdvancedEvent) EventType() string {
	return EventTypeOrderStatusAdvanced
}

// DataConsistencyNotedEvent is raised when a status advance had to
// backfill missing intermediate timestamps. It signals a gap in the
// delivery feed, not a failure.
type DataConsistencyNotedEvent struct {
	shared.BaseDomainEvent
	OrderID    uuid.UUID     `json:"order_id"`
	Backfilled []OrderStatus `json:"backfilled"`
}

// NewDataConsistencyNotedEvent creates a new DataConsistencyNotedEvent
func NewDataConsistencyNotedEvent(order *Order, backfilled []OrderStatus) *DataConsistencyNotedEvent {
	return &DataConsistencyNotedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDataConsistencyNoted, AggregateTypeOrder, order.ID),
		OrderID:         order.ID,
		Backfilled:      backfilled,
	}
}

// EventType returns the event type name
func (e *DataConsistencyNotedEvent) EventType() string {
	return EventTypeDataConsistencyNoted
}

// OrderFullyVerifiedEvent is raised when the buyer confirms the delivery
// was complete and correct
type OrderFullyVerifiedEvent struct {
	shared.BaseDomainEvent
	OrderID uuid.UUID `json:"order_id"`
}

// NewOrderFullyVerifiedEvent creates a new OrderFullyVerifiedEvent
func NewOrderFullyVerifiedEvent(order *Order) *OrderFullyVerifiedEvent {
	return &OrderFullyVerifiedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderFullyVerified, AggregateTypeOrder, order.ID),
		OrderID:         order.ID,
	}
}

// EventType returns the event type name
func (e *OrderFullyVerifiedEvent) EventType() string {
	return EventTypeOrderFullyVerified
}
