package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	partnerapp "github.com/freshlink/backend/internal/application/partner"
)

// BuyerHandler handles buyer account endpoints
type BuyerHandler struct {
	BaseHandler
	buyerService *partnerapp.BuyerService
}

// NewBuyerHandler creates a new BuyerHandler
func NewBuyerHandler(buyerService *partnerapp.BuyerService) *BuyerHandler {
	return &BuyerHandler{
		buyerService: buyerService,
	}
}

// Create registers a buyer account
func (h *BuyerHandler) Create(c *gin.Context) {
	var req partnerapp.CreateBuyerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	buyer, err := h.buyerService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, buyer)
}

// Me returns the authenticated buyer's own account
func (h *BuyerHandler) Me(c *gin.Context) {
	buyerID, err := getBuyerID(c)
	if err != nil {
		h.Unauthorized(c, "Buyer identity required")
		return
	}

	buyer, err := h.buyerService.GetByID(c.Request.Context(), buyerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, buyer)
}

// GetByID retrieves a buyer account (back-office surface)
func (h *BuyerHandler) GetByID(c *gin.Context) {
	buyerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid buyer ID format")
		return
	}

	buyer, err := h.buyerService.GetByID(c.Request.Context(), buyerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, buyer)
}

// OutstandingInvoicesRequest flags or clears the buyer's outstanding
// invoices marker
type OutstandingInvoicesRequest struct {
	Outstanding *bool `json:"outstanding" binding:"required"`
}

// SetOutstandingInvoices updates the billing-feed restriction flag
func (h *BuyerHandler) SetOutstandingInvoices(c *gin.Context) {
	buyerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid buyer ID format")
		return
	}

	var req OutstandingInvoicesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	buyer, err := h.buyerService.SetOutstandingInvoices(c.Request.Context(), buyerID, *req.Outstanding)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, buyer)
}

// Deactivate closes a buyer account
func (h *BuyerHandler) Deactivate(c *gin.Context) {
	buyerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid buyer ID format")
		return
	}

	if err := h.buyerService.Deactivate(c.Request.Context(), buyerID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
