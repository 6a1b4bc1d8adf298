package pricing

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/freshlink/backend/internal/domain/shared"
)

// ComparisonLine is one row of a competitor-invoice price comparison.
// Target prices are always derived from the current percentages at read
// time, never stored alongside the line.
type ComparisonLine struct {
	ProductID    uuid.UUID       `json:"product_id"`
	ProductName  string          `json:"product_name"`
	Quantity     decimal.Decimal `json:"quantity"`
	InvoicePrice decimal.Decimal `json:"invoice_price"`
}

// TargetPrices holds the derived per-unit prices for a comparison line
type TargetPrices struct {
	Customer  decimal.Decimal
	Wholesale decimal.Decimal
}

// ComparisonTotals aggregates a comparison across its lines
type ComparisonTotals struct {
	OriginalTotal decimal.Decimal
	CustomerTotal decimal.Decimal
	Savings       decimal.Decimal
}

// InvoiceExtractor pulls comparison lines out of a competitor invoice
// document. Implementations degrade the same way the order parser does:
// unusable upstream output becomes an empty result plus an
// UPSTREAM_PARSE_FAILED error, never a panic.
type InvoiceExtractor interface {
	Extract(ctx context.Context, document []byte, contentType string) ([]ComparisonLine, error)
}

var oneHundred = decimal.NewFromInt(100)

// DeriveTargetPrices computes the customer and wholesale target prices
// from an invoice price: customer = p * (1 - customerSavingsPct/100),
// wholesale = p * wholesaleTargetPct/100. Invalid inputs are rejected,
// never clamped.
func DeriveTargetPrices(invoicePrice, customerSavingsPct, wholesaleTargetPct decimal.Decimal) (TargetPrices, error) {
	if invoicePrice.IsNegative() {
		return TargetPrices{}, shared.NewDomainError("VALIDATION_ERROR", "Invoice price cannot be negative")
	}
	if customerSavingsPct.IsNegative() || customerSavingsPct.GreaterThan(oneHundred) {
		return TargetPrices{}, shared.NewDomainError("VALIDATION_ERROR", "Customer savings percentage must be between 0 and 100")
	}
	if wholesaleTargetPct.IsNegative() || wholesaleTargetPct.GreaterThan(oneHundred) {
		return TargetPrices{}, shared.NewDomainError("VALIDATION_ERROR", "Wholesale target percentage must be between 0 and 100")
	}

	return TargetPrices{
		Customer:  invoicePrice.Mul(oneHundred.Sub(customerSavingsPct)).Div(oneHundred),
		Wholesale: invoicePrice.Mul(wholesaleTargetPct).Div(oneHundred),
	}, nil
}

// Totals aggregates original and customer-target sums over the lines.
// Savings equals the sum of per-line savings by construction.
func Totals(lines []ComparisonLine, customerSavingsPct, wholesaleTargetPct decimal.Decimal) (ComparisonTotals, error) {
	totals := ComparisonTotals{
		OriginalTotal: decimal.Zero,
		CustomerTotal: decimal.Zero,
		Savings:       decimal.Zero,
	}
	for _, line := range lines {
		if !line.Quantity.IsPositive() {
			return ComparisonTotals{}, shared.NewDomainError("VALIDATION_ERROR", "Comparison line quantity must be greater than zero")
		}
		target, err := DeriveTargetPrices(line.InvoicePrice, customerSavingsPct, wholesaleTargetPct)
		if err != nil {
			return ComparisonTotals{}, err
		}
		original := line.InvoicePrice.Mul(line.Quantity)
		customer := target.Customer.Mul(line.Quantity)
		totals.OriginalTotal = totals.OriginalTotal.Add(original)
		totals.CustomerTotal = totals.CustomerTotal.Add(customer)
		totals.Savings = totals.Savings.Add(original.Sub(customer))
	}
	return totals, nil
}
