package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	pricingapp "github.com/freshlink/backend/internal/application/pricing"
	"github.com/freshlink/backend/internal/interfaces/http/dto"
)

// maxInvoiceUploadSize limits competitor invoice uploads (8MB)
const maxInvoiceUploadSize = 8 * 1024 * 1024

// ComparisonHandler handles competitor invoice price comparisons
type ComparisonHandler struct {
	BaseHandler
	comparisonService *pricingapp.ComparisonService
}

// NewComparisonHandler creates a new ComparisonHandler
func NewComparisonHandler(comparisonService *pricingapp.ComparisonService) *ComparisonHandler {
	return &ComparisonHandler{
		comparisonService: comparisonService,
	}
}

// Compare extracts line items from an uploaded competitor invoice and
// derives target prices. The upload is multipart: a "document" file plus
// optional percentage form fields.
func (h *ComparisonHandler) Compare(c *gin.Context) {
	fileHeader, err := c.FormFile("document")
	if err != nil {
		h.BadRequest(c, "A document file is required")
		return
	}
	if fileHeader.Size > maxInvoiceUploadSize {
		h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodeRequestTooLarge, "Document exceeds maximum allowed size")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.InternalError(c, "Failed to read uploaded document")
		return
	}
	defer file.Close()

	document, err := io.ReadAll(io.LimitReader(file, maxInvoiceUploadSize))
	if err != nil {
		h.InternalError(c, "Failed to read uploaded document")
		return
	}

	req, err := parseComparisonRequest(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	comparison, err := h.comparisonService.Compare(c.Request.Context(), document, contentType, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, comparison)
}

// parseComparisonRequest reads the optional percentage form fields
func parseComparisonRequest(c *gin.Context) (pricingapp.ComparisonRequest, error) {
	var req pricingapp.ComparisonRequest
	if v := c.PostForm("customer_savings_pct"); v != "" {
		pct, err := decimal.NewFromString(v)
		if err != nil {
			return req, err
		}
		req.CustomerSavingsPct = pct
	}
	if v := c.PostForm("wholesale_target_pct"); v != "" {
		pct, err := decimal.NewFromString(v)
		if err != nil {
			return req, err
		}
		req.WholesaleTargetPct = pct
	}
	return req, nil
}
