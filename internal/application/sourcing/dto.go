package sourcing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/freshlink/backend/internal/domain/sourcing"
)

// RequestLineInput is one product line in a sourcing request, typically
// copied from a price comparison
type RequestLineInput struct {
	ProductID   uuid.UUID       `json:"product_id" binding:"required"`
	ProductName string          `json:"product_name" binding:"required,min=1,max=200"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	TargetPrice decimal.Decimal `json:"target_price" binding:"required"`
}

// CreateRequestRequest creates a draft sourcing request
type CreateRequestRequest struct {
	WholesalerName string             `json:"wholesaler_name" binding:"required,min=1,max=200"`
	Notes          string             `json:"notes" binding:"max=2000"`
	Lines          []RequestLineInput `json:"lines" binding:"omitempty,dive"`
}

// AddLineRequest appends a line to a draft request
type AddLineRequest struct {
	Line RequestLineInput `json:"line" binding:"required"`
}

// RequestListFilter represents filter options for the request list
type RequestListFilter struct {
	Status   string `form:"status" binding:"omitempty,oneof=DRAFT DISPATCHED"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// RequestLineResponse is one line of a sourcing request
type RequestLineResponse struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	TargetPrice string          `json:"target_price"`
}

// RequestResponse represents a sourcing request in API responses
type RequestResponse struct {
	ID             uuid.UUID             `json:"id"`
	WholesalerName string                `json:"wholesaler_name"`
	Lines          []RequestLineResponse `json:"lines"`
	Status         string                `json:"status"`
	Notes          string                `json:"notes,omitempty"`
	CreatedAt      time.Time             `json:"created_at"`
	DispatchedAt   *time.Time            `json:"dispatched_at,omitempty"`
}

// ToRequestResponse converts a domain sourcing request
func ToRequestResponse(request *sourcing.Request) RequestResponse {
	response := RequestResponse{
		ID:             request.ID,
		WholesalerName: request.WholesalerName,
		Lines:          make([]RequestLineResponse, 0, len(request.Lines)),
		Status:         string(request.Status),
		Notes:          request.Notes,
		CreatedAt:      request.CreatedAt,
		DispatchedAt:   request.DispatchedAt,
	}
	for _, line := range request.Lines {
		response.Lines = append(response.Lines, RequestLineResponse{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			TargetPrice: line.TargetPrice.StringFixed(2),
		})
	}
	return response
}
