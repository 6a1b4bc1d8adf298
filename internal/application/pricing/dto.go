package pricing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/freshlink/backend/internal/domain/pricing"
)

// ComparisonRequest sets the percentages a comparison is derived with
type ComparisonRequest struct {
	CustomerSavingsPct decimal.Decimal `form:"customer_savings_pct" json:"customer_savings_pct"`
	WholesaleTargetPct decimal.Decimal `form:"wholesale_target_pct" json:"wholesale_target_pct"`
}

// ComparisonLineResponse is one invoice line with its derived target
// prices
type ComparisonLineResponse struct {
	ProductID            uuid.UUID       `json:"product_id,omitempty"`
	ProductName          string          `json:"product_name"`
	Quantity             decimal.Decimal `json:"quantity"`
	InvoicePrice         string          `json:"invoice_price"`
	CustomerTargetPrice  string          `json:"customer_target_price"`
	WholesaleTargetPrice string          `json:"wholesale_target_price"`
}

// ComparisonTotalsResponse aggregates a comparison
type ComparisonTotalsResponse struct {
	OriginalTotal string `json:"original_total"`
	CustomerTotal string `json:"customer_total"`
	Savings       string `json:"savings"`
}

// ComparisonResponse is a full competitor-invoice price comparison
type ComparisonResponse struct {
	Lines  []ComparisonLineResponse `json:"lines"`
	Totals ComparisonTotalsResponse `json:"totals"`
}

func toComparisonLineResponse(line pricing.ComparisonLine, target pricing.TargetPrices) ComparisonLineResponse {
	return ComparisonLineResponse{
		ProductID:            line.ProductID,
		ProductName:          line.ProductName,
		Quantity:             line.Quantity,
		InvoicePrice:         line.InvoicePrice.StringFixed(2),
		CustomerTargetPrice:  target.Customer.StringFixed(2),
		WholesaleTargetPrice: target.Wholesale.StringFixed(2),
	}
}
