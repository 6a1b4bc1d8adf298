package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	orderingapp "github.com/freshlink/backend/internal/application/ordering"
)

// OrderHandler handles checkout and order lifecycle endpoints
type OrderHandler struct {
	BaseHandler
	checkoutService *orderingapp.CheckoutService
	trackingService *orderingapp.TrackingService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(checkoutService *orderingapp.CheckoutService, trackingService *orderingapp.TrackingService) *OrderHandler {
	return &OrderHandler{
		checkoutService: checkoutService,
		trackingService: trackingService,
	}
}

// Checkout confirms a cart into an order
func (h *OrderHandler) Checkout(c *gin.Context) {
	buyerID, err := getBuyerID(c)
	if err != nil {
		h.Unauthorized(c, "Buyer identity required")
		return
	}

	var req orderingapp.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.checkoutService.Checkout(c.Request.Context(), buyerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, order)
}

// List returns the buyer's order history
func (h *OrderHandler) List(c *gin.Context) {
	buyerID, err := getBuyerID(c)
	if err != nil {
		h.Unauthorized(c, "Buyer identity required")
		return
	}

	filter := orderingapp.OrderListFilter{Page: 1, PageSize: 20}
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.trackingService.List(c.Request.Context(), buyerID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Active returns the buyer's most relevant in-flight order, or null when
// nothing is in flight
func (h *OrderHandler) Active(c *gin.Context) {
	buyerID, err := getBuyerID(c)
	if err != nil {
		h.Unauthorized(c, "Buyer identity required")
		return
	}

	tracking, err := h.trackingService.ActiveOrder(c.Request.Context(), buyerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tracking)
}

// GetByID returns one of the buyer's orders with tracking state
func (h *OrderHandler) GetByID(c *gin.Context) {
	buyerID, err := getBuyerID(c)
	if err != nil {
		h.Unauthorized(c, "Buyer identity required")
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	tracking, err := h.trackingService.GetOrder(c.Request.Context(), buyerID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tracking)
}

// Reorder rebuilds editable cart lines from a past order
func (h *OrderHandler) Reorder(c *gin.Context) {
	buyerID, err := getBuyerID(c)
	if err != nil {
		h.Unauthorized(c, "Buyer identity required")
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	cartLines, err := h.checkoutService.Reorder(c.Request.Context(), buyerID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, cartLines)
}

// Advance applies a delivery-feed status update to an order. This is the
// surface the logistics side posts to, so it is not buyer-scoped.
func (h *OrderHandler) Advance(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req orderingapp.AdvanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.checkoutService.Advance(c.Request.Context(), orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// Verify records the buyer's full verification of a delivered order
func (h *OrderHandler) Verify(c *gin.Context) {
	buyerID, err := getBuyerID(c)
	if err != nil {
		h.Unauthorized(c, "Buyer identity required")
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	tracking, err := h.trackingService.Verify(c.Request.Context(), buyerID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tracking)
}
