package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	intakeapp "github.com/freshlink/backend/internal/application/intake"
)

// QuickOrderHandler handles the free-text quick-order intake endpoints.
// A submission produces a review the buyer works through; confirming the
// review yields priced cart lines ready for checkout.
type QuickOrderHandler struct {
	BaseHandler
	quickOrderService *intakeapp.QuickOrderService
}

// NewQuickOrderHandler creates a new QuickOrderHandler
func NewQuickOrderHandler(quickOrderService *intakeapp.QuickOrderService) *QuickOrderHandler {
	return &QuickOrderHandler{
		quickOrderService: quickOrderService,
	}
}

// Submit parses free-text input into a review
func (h *QuickOrderHandler) Submit(c *gin.Context) {
	buyerID, err := getBuyerID(c)
	if err != nil {
		h.Unauthorized(c, "Buyer identity required")
		return
	}

	var req intakeapp.QuickOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	review, err := h.quickOrderService.Submit(c.Request.Context(), buyerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, review)
}

// Get returns the current state of a review
func (h *QuickOrderHandler) Get(c *gin.Context) {
	buyerID, err := getBuyerID(c)
	if err != nil {
		h.Unauthorized(c, "Buyer identity required")
		return
	}

	reviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid review ID format")
		return
	}

	review, err := h.quickOrderService.Get(c.Request.Context(), buyerID, reviewID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, review)
}

// Select commits a pending line to one of its suggested products
func (h *QuickOrderHandler) Select(c *gin.Context) {
	buyerID, err := getBuyerID(c)
	if err != nil {
		h.Unauthorized(c, "Buyer identity required")
		return
	}

	reviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid review ID format")
		return
	}

	var req intakeapp.SelectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	review, err := h.quickOrderService.Select(c.Request.Context(), buyerID, reviewID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, review)
}

// ClearSelection reverts a line to its pending state
func (h *QuickOrderHandler) ClearSelection(c *gin.Context) {
	buyerID, err := getBuyerID(c)
	if err != nil {
		h.Unauthorized(c, "Buyer identity required")
		return
	}

	reviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid review ID format")
		return
	}

	lineIndex, err := strconv.Atoi(c.Param("index"))
	if err != nil || lineIndex < 0 {
		h.BadRequest(c, "Invalid line index")
		return
	}

	review, err := h.quickOrderService.ClearSelection(c.Request.Context(), buyerID, reviewID, lineIndex)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, review)
}

// Confirm turns a fully resolved review into priced cart lines
func (h *QuickOrderHandler) Confirm(c *gin.Context) {
	buyerID, err := getBuyerID(c)
	if err != nil {
		h.Unauthorized(c, "Buyer identity required")
		return
	}

	reviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid review ID format")
		return
	}

	confirmation, err := h.quickOrderService.Confirm(c.Request.Context(), buyerID, reviewID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, confirmation)
}
