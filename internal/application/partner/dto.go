package partner

import (
	"time"

	"github.com/google/uuid"

	"github.com/freshlink/backend/internal/domain/partner"
)

// CreateBuyerRequest registers a new buyer account
type CreateBuyerRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	ContactName string `json:"contact_name" binding:"max=100"`
	Phone       string `json:"phone" binding:"max=50"`
	Email       string `json:"email" binding:"omitempty,email,max=200"`
	Address     string `json:"address" binding:"max=500"`
}

// BuyerResponse represents a buyer in API responses
type BuyerResponse struct {
	ID                  uuid.UUID `json:"id"`
	Name                string    `json:"name"`
	ContactName         string    `json:"contact_name"`
	Phone               string    `json:"phone"`
	Email               string    `json:"email"`
	Address             string    `json:"address"`
	Status              string    `json:"status"`
	OutstandingInvoices bool      `json:"outstanding_invoices"`
	CanPlaceOrders      bool      `json:"can_place_orders"`
	CreatedAt           time.Time `json:"created_at"`
}

// ToBuyerResponse converts a domain buyer
func ToBuyerResponse(buyer *partner.Buyer) BuyerResponse {
	return BuyerResponse{
		ID:                  buyer.ID,
		Name:                buyer.Name,
		ContactName:         buyer.ContactName,
		Phone:               buyer.Phone,
		Email:               buyer.Email,
		Address:             buyer.Address,
		Status:              string(buyer.Status),
		OutstandingInvoices: buyer.OutstandingInvoices,
		CanPlaceOrders:      buyer.CanPlaceOrders(),
		CreatedAt:           buyer.CreatedAt,
	}
}
