package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	sourcingapp "github.com/freshlink/backend/internal/application/sourcing"
)

// SourcingHandler handles wholesaler sourcing request endpoints
type SourcingHandler struct {
	BaseHandler
	requestService *sourcingapp.RequestService
}

// NewSourcingHandler creates a new SourcingHandler
func NewSourcingHandler(requestService *sourcingapp.RequestService) *SourcingHandler {
	return &SourcingHandler{
		requestService: requestService,
	}
}

// Create opens a draft sourcing request
func (h *SourcingHandler) Create(c *gin.Context) {
	var req sourcingapp.CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	request, err := h.requestService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, request)
}

// GetByID retrieves a sourcing request
func (h *SourcingHandler) GetByID(c *gin.Context) {
	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid request ID format")
		return
	}

	request, err := h.requestService.GetByID(c.Request.Context(), requestID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, request)
}

// List returns sourcing requests, optionally filtered by status
func (h *SourcingHandler) List(c *gin.Context) {
	filter := sourcingapp.RequestListFilter{Page: 1, PageSize: 20}
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	requests, err := h.requestService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, requests)
}

// AddLine appends a line to a draft request
func (h *SourcingHandler) AddLine(c *gin.Context) {
	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid request ID format")
		return
	}

	var req sourcingapp.AddLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	request, err := h.requestService.AddLine(c.Request.Context(), requestID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, request)
}

// Dispatch freezes a draft request and sends it to the wholesaler
func (h *SourcingHandler) Dispatch(c *gin.Context) {
	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid request ID format")
		return
	}

	request, err := h.requestService.Dispatch(c.Request.Context(), requestID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, request)
}
