package intake

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/freshlink/backend/internal/domain/cart"
	"github.com/freshlink/backend/internal/domain/catalog"
	"github.com/freshlink/backend/internal/domain/intake"
)

// QuickOrderRequest carries the buyer's free-text order input
type QuickOrderRequest struct {
	Text           string `json:"text" binding:"required,min=1,max=4000"`
	IdempotencyKey string `json:"idempotency_key" binding:"omitempty,max=100"`
}

// SelectRequest commits a pending review line to a catalog product
type SelectRequest struct {
	LineIndex int       `json:"line_index" binding:"min=0"`
	ProductID uuid.UUID `json:"product_id" binding:"required"`
}

// SuggestedProductResponse is one candidate product offered for a
// pending line
type SuggestedProductResponse struct {
	ID          uuid.UUID `json:"id"`
	DisplayName string    `json:"display_name"`
	Unit        string    `json:"unit"`
	UnitPrice   string    `json:"unit_price"`
}

// ReviewLineResponse is one line of a quick-order review
type ReviewLineResponse struct {
	Index             int                        `json:"index"`
	ProductName       string                     `json:"product_name"`
	Quantity          decimal.Decimal            `json:"quantity"`
	Unit              string                     `json:"unit"`
	State             string                     `json:"state"`
	Provenance        string                     `json:"provenance,omitempty"`
	ResolvedProductID *uuid.UUID                 `json:"resolved_product_id,omitempty"`
	Suggestions       []SuggestedProductResponse `json:"suggestions,omitempty"`
	Issue             string                     `json:"issue,omitempty"`
}

// ReviewResponse is the state of a quick-order review
type ReviewResponse struct {
	ReviewID     uuid.UUID            `json:"review_id"`
	Lines        []ReviewLineResponse `json:"lines"`
	PendingCount int                  `json:"pending_count"`
	CreatedAt    time.Time            `json:"created_at"`
}

// CartLineResponse is one confirmed cart line, priced from the catalog
type CartLineResponse struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
	UnitPrice   string          `json:"unit_price"`
	Total       string          `json:"total"`
}

// ConfirmResponse carries the cart lines produced by a confirmed review
type ConfirmResponse struct {
	Lines []CartLineResponse `json:"lines"`
}

// ToCartLineResponse converts a domain cart line
func ToCartLineResponse(line cart.Line) CartLineResponse {
	return CartLineResponse{
		ProductID:   line.ProductID,
		ProductName: line.ProductName,
		Quantity:    line.Quantity,
		Unit:        line.Unit.String(),
		UnitPrice:   line.UnitPrice.StringFixed(2),
		Total:       line.Total().StringFixed(2),
	}
}

// ToCartLineResponses converts a slice of domain cart lines
func ToCartLineResponses(lines []cart.Line) []CartLineResponse {
	responses := make([]CartLineResponse, len(lines))
	for i, line := range lines {
		responses[i] = ToCartLineResponse(line)
	}
	return responses
}

func toReviewLineResponse(index int, line intake.ReviewLine, snapshot *catalog.Snapshot) ReviewLineResponse {
	response := ReviewLineResponse{
		Index:             index,
		ProductName:       line.ProductName,
		Quantity:          line.Quantity,
		Unit:              line.Unit.String(),
		State:             string(line.State),
		Provenance:        string(line.Provenance),
		ResolvedProductID: line.ResolvedProductID,
		Issue:             line.Issue,
	}
	for _, id := range line.SuggestedProductIDs {
		product := snapshot.ByID(id)
		if product == nil {
			continue
		}
		response.Suggestions = append(response.Suggestions, SuggestedProductResponse{
			ID:          product.ID,
			DisplayName: product.DisplayName(),
			Unit:        product.Unit.String(),
			UnitPrice:   product.UnitPrice.StringFixed(2),
		})
	}
	return response
}
