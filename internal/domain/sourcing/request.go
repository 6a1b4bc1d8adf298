package sourcing

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/freshlink/backend/internal/domain/shared"
)

// RequestStatus represents the status of a sourcing request
type RequestStatus string

const (
	RequestStatusDraft      RequestStatus = "DRAFT"
	RequestStatusDispatched RequestStatus = "DISPATCHED"
)

// RequestLine is one product the buyer-side team wants quoted at a
// target price, typically copied from a price comparison.
type RequestLine struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	RequestID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TargetPrice decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt   time.Time
}

// TableName returns the table name for GORM
func (RequestLine) TableName() string {
	return "sourcing_request_lines"
}

// Request is a sourcing request sent to a wholesaler. Draft requests can
// still be edited; dispatch freezes them.
type Request struct {
	shared.BaseAggregateRoot
	WholesalerName string        `gorm:"type:varchar(200);not null"`
	Lines          []RequestLine `gorm:"foreignKey:RequestID;references:ID"`
	Status         RequestStatus `gorm:"type:varchar(20);not null;default:'DRAFT'"`
	Notes          string        `gorm:"type:text"`
	DispatchedAt   *time.Time
}

// TableName returns the table name for GORM
func (Request) TableName() string {
	return "sourcing_requests"
}

// NewRequest creates a draft sourcing request
func NewRequest(wholesalerName string) (*Request, error) {
	if strings.TrimSpace(wholesalerName) == "" {
		return nil, shared.NewDomainError("INVALID_WHOLESALER", "Wholesaler name cannot be empty")
	}
	return &Request{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		WholesalerName:    strings.TrimSpace(wholesalerName),
		Lines:             make([]RequestLine, 0),
		Status:            RequestStatusDraft,
	}, nil
}

// AddLine adds a product line to a draft request
func (r *Request) AddLine(productID uuid.UUID, productName string, quantity, targetPrice decimal.Decimal) error {
	if r.Status != RequestStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot modify a dispatched sourcing request")
	}
	if productID == uuid.Nil {
		return shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if !quantity.IsPositive() {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be greater than zero")
	}
	if targetPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Target price cannot be negative")
	}

	r.Lines = append(r.Lines, RequestLine{
		ID:          uuid.New(),
		RequestID:   r.ID,
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		TargetPrice: targetPrice,
		CreatedAt:   time.Now(),
	})
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	return nil
}

// Dispatch sends the request to the wholesaler. Requires at least one
// line; dispatching twice is rejected.
func (r *Request) Dispatch(now time.Time) error {
	if r.Status != RequestStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Sourcing request has already been dispatched")
	}
	if len(r.Lines) == 0 {
		return shared.NewDomainError("INVALID_STATE", "Cannot dispatch an empty sourcing request")
	}
	r.Status = RequestStatusDispatched
	r.DispatchedAt = &now
	r.UpdatedAt = now
	r.IncrementVersion()
	return nil
}
