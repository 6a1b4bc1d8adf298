package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/freshlink/backend/internal/domain/catalog"
	"github.com/freshlink/backend/internal/domain/intake"
	"github.com/freshlink/backend/internal/domain/shared"
	"github.com/freshlink/backend/internal/domain/shared/valueobject"
)

// QuickOrderParser turns free-text order input into parsed lines by
// prompting the model endpoint with the catalog snapshot.
// Any upstream failure degrades to UPSTREAM_PARSE_FAILED; the buyer
// falls back to manual entry, the dashboard stays up.
type QuickOrderParser struct {
	client *Client
	logger *zap.Logger
}

// NewQuickOrderParser creates a new quick-order parser
func NewQuickOrderParser(client *Client, logger *zap.Logger) *QuickOrderParser {
	return &QuickOrderParser{
		client: client,
		logger: logger.Named("quick_order_parser"),
	}
}

const quickOrderPromptHeader = `You convert free-text produce orders into JSON.
Catalog (id | name | category | price/unit):
%s
Respond with a JSON array only. Each element:
{"product_name": string, "quantity": number, "unit": "KG"|"TRAY"|"EACH"|"LOOSE"|"BAG",
 "is_ambiguous": bool, "suggested_product_ids": [string], "selected_product_id": string|null}
Mark a line ambiguous when more than one catalog product could match it.
Order text:
%s`

// parsedLineWire is the wire shape of one line in the model's response
type parsedLineWire struct {
	ProductName         string          `json:"product_name"`
	Quantity            decimal.Decimal `json:"quantity"`
	Unit                string          `json:"unit"`
	IsAmbiguous         bool            `json:"is_ambiguous"`
	SuggestedProductIDs []string        `json:"suggested_product_ids"`
	SelectedProductID   *string         `json:"selected_product_id"`
}

// Parse implements intake.Parser
func (p *QuickOrderParser) Parse(ctx context.Context, text string, snapshot *catalog.Snapshot) ([]intake.ParsedLine, error) {
	if strings.TrimSpace(text) == "" {
		return nil, shared.ErrUpstreamParse
	}
	if limit := p.client.MaxInputChars(); limit > 0 && len(text) > limit {
		p.logger.Warn("quick-order text over input limit", zap.Int("length", len(text)), zap.Int("limit", limit))
		return nil, shared.ErrUpstreamParse
	}

	prompt := fmt.Sprintf(quickOrderPromptHeader, snapshot.Summary(), text)

	output, err := p.client.Complete(ctx, prompt)
	if err != nil {
		p.logger.Warn("quick-order parse degraded", zap.Error(err))
		return nil, shared.ErrUpstreamParse
	}

	lines, err := decodeParsedLines(output)
	if err != nil {
		p.logger.Warn("quick-order response unusable", zap.Error(err))
		return nil, shared.ErrUpstreamParse
	}
	if len(lines) == 0 {
		return nil, shared.ErrUpstreamParse
	}

	return lines, nil
}

// decodeParsedLines decodes the model output into parsed lines,
// tolerating fences and prose around the JSON payload. Lines with an
// unusable quantity are dropped; malformed IDs are skipped, not fatal.
func decodeParsedLines(output string) ([]intake.ParsedLine, error) {
	payload := extractJSON(output)
	if payload == "" {
		return nil, fmt.Errorf("no JSON payload in model output")
	}

	var wire []parsedLineWire
	if err := json.Unmarshal([]byte(payload), &wire); err != nil {
		return nil, fmt.Errorf("failed to decode parsed lines: %w", err)
	}

	lines := make([]intake.ParsedLine, 0, len(wire))
	for _, w := range wire {
		if strings.TrimSpace(w.ProductName) == "" || !w.Quantity.IsPositive() {
			continue
		}

		line := intake.ParsedLine{
			ProductName: strings.TrimSpace(w.ProductName),
			Quantity:    w.Quantity,
			Unit:        valueobject.ParseUnitOrDefault(w.Unit, valueobject.UnitEach),
			IsAmbiguous: w.IsAmbiguous,
		}

		for _, raw := range w.SuggestedProductIDs {
			if id, err := uuid.Parse(raw); err == nil {
				line.SuggestedProductIDs = append(line.SuggestedProductIDs, id)
			}
		}
		if w.SelectedProductID != nil {
			if id, err := uuid.Parse(*w.SelectedProductID); err == nil {
				line.SelectedProductID = &id
			}
		}

		lines = append(lines, line)
	}

	return lines, nil
}

// Ensure QuickOrderParser implements intake.Parser
var _ intake.Parser = (*QuickOrderParser)(nil)
