package intake

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/freshlink/backend/internal/domain/catalog"
	"github.com/freshlink/backend/internal/domain/shared/valueobject"
)

// ParsedLine is one order line as returned by the upstream parser.
// ProductName is free text; SuggestedProductIDs are catalog candidates in
// the parser's preference order. SelectedProductID is set when the parser
// (or a later user action) committed to a single product.
type ParsedLine struct {
	ProductName         string           `json:"product_name"`
	Quantity            decimal.Decimal  `json:"quantity"`
	Unit                valueobject.Unit `json:"unit"`
	IsAmbiguous         bool             `json:"is_ambiguous"`
	SuggestedProductIDs []uuid.UUID      `json:"suggested_product_ids,omitempty"`
	SelectedProductID   *uuid.UUID       `json:"selected_product_id,omitempty"`
}

// Parser turns free-text order input into parsed lines against a catalog
// snapshot. Implementations must degrade, not fail hard: a garbled or
// timed-out upstream response becomes an empty line list plus an
// UPSTREAM_PARSE_FAILED error, never a panic.
type Parser interface {
	Parse(ctx context.Context, text string, snapshot *catalog.Snapshot) ([]ParsedLine, error)
}
