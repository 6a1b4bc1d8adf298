package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/freshlink/backend/internal/domain/pricing"
	"github.com/freshlink/backend/internal/domain/shared"
)

// InvoiceExtractor pulls comparison lines out of competitor invoice
// documents via the model endpoint. Same degradation contract as the
// quick-order parser: unusable upstream output becomes
// UPSTREAM_PARSE_FAILED, never a panic.
type InvoiceExtractor struct {
	client *Client
	logger *zap.Logger
}

// NewInvoiceExtractor creates a new invoice extractor
func NewInvoiceExtractor(client *Client, logger *zap.Logger) *InvoiceExtractor {
	return &InvoiceExtractor{
		client: client,
		logger: logger.Named("invoice_extractor"),
	}
}

const invoicePrompt = `Extract the produce line items from the attached competitor invoice.
Respond with a JSON array only. Each element:
{"product_id": string|null, "product_name": string, "quantity": number, "invoice_price": number}
invoice_price is the per-unit price on the invoice.`

// comparisonLineWire is the wire shape of one extracted invoice line
type comparisonLineWire struct {
	ProductID    *string         `json:"product_id"`
	ProductName  string          `json:"product_name"`
	Quantity     decimal.Decimal `json:"quantity"`
	InvoicePrice decimal.Decimal `json:"invoice_price"`
}

// Extract implements pricing.InvoiceExtractor
func (e *InvoiceExtractor) Extract(ctx context.Context, document []byte, contentType string) ([]pricing.ComparisonLine, error) {
	if len(document) == 0 {
		return nil, shared.ErrUpstreamParse
	}

	output, err := e.client.CompleteWithDocument(ctx, invoicePrompt, document, contentType)
	if err != nil {
		e.logger.Warn("invoice extraction degraded", zap.Error(err))
		return nil, shared.ErrUpstreamParse
	}

	lines, err := decodeComparisonLines(output)
	if err != nil {
		e.logger.Warn("invoice extraction response unusable", zap.Error(err))
		return nil, shared.ErrUpstreamParse
	}
	if len(lines) == 0 {
		return nil, shared.ErrUpstreamParse
	}

	return lines, nil
}

func decodeComparisonLines(output string) ([]pricing.ComparisonLine, error) {
	payload := extractJSON(output)
	if payload == "" {
		return nil, fmt.Errorf("no JSON payload in model output")
	}

	var wire []comparisonLineWire
	if err := json.Unmarshal([]byte(payload), &wire); err != nil {
		return nil, fmt.Errorf("failed to decode comparison lines: %w", err)
	}

	lines := make([]pricing.ComparisonLine, 0, len(wire))
	for _, w := range wire {
		if strings.TrimSpace(w.ProductName) == "" || !w.Quantity.IsPositive() || w.InvoicePrice.IsNegative() {
			continue
		}

		line := pricing.ComparisonLine{
			ProductName:  strings.TrimSpace(w.ProductName),
			Quantity:     w.Quantity,
			InvoicePrice: w.InvoicePrice,
		}
		if w.ProductID != nil {
			if id, err := uuid.Parse(*w.ProductID); err == nil {
				line.ProductID = id
			}
		}

		lines = append(lines, line)
	}

	return lines, nil
}

// Ensure InvoiceExtractor implements pricing.InvoiceExtractor
var _ pricing.InvoiceExtractor = (*InvoiceExtractor)(nil)
