package catalog

import (
	"github.com/freshlink/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeProduct = "Product"

// Event type constants
const (
	EventTypeProductAdded = "ProductAdded"
)

// ProductAddedEvent is raised when a new product is appended to the catalog
type ProductAddedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Variety   string    `json:"variety"`
	Category  string    `json:"category"`
}

// NewProductAddedEvent creates a new ProductAddedEvent
func NewProductAddedEvent(product *Product) *ProductAddedEvent {
	return &ProductAddedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductAdded, AggregateTypeProduct, product.ID),
		ProductID:       product.ID,
		Name:            product.Name,
		Variety:         product.Variety,
		Category:        product.Category,
	}
}

// EventType returns the event type name
func (e *ProductAddedEvent) EventType() string {
	return EventTypeProductAdded
}
