package pricing

import (
	"context"

	"go.uber.org/zap"

	"github.com/freshlink/backend/internal/domain/pricing"
)

// ComparisonService builds price comparisons from competitor invoice
// documents. Target prices are derived from the request's percentages
// at read time; nothing about a comparison is persisted.
type ComparisonService struct {
	extractor pricing.InvoiceExtractor
	logger    *zap.Logger
}

// NewComparisonService creates a new ComparisonService
func NewComparisonService(extractor pricing.InvoiceExtractor, logger *zap.Logger) *ComparisonService {
	return &ComparisonService{
		extractor: extractor,
		logger:    logger.Named("comparison"),
	}
}

// Compare extracts the invoice lines and derives target prices and
// totals. Extraction failures surface as UPSTREAM_PARSE_FAILED; invalid
// percentages as VALIDATION_ERROR.
func (s *ComparisonService) Compare(ctx context.Context, document []byte, contentType string, req ComparisonRequest) (*ComparisonResponse, error) {
	lines, err := s.extractor.Extract(ctx, document, contentType)
	if err != nil {
		s.logger.Warn("invoice extraction failed", zap.Error(err))
		return nil, err
	}

	response := &ComparisonResponse{Lines: make([]ComparisonLineResponse, 0, len(lines))}
	for _, line := range lines {
		target, err := pricing.DeriveTargetPrices(line.InvoicePrice, req.CustomerSavingsPct, req.WholesaleTargetPct)
		if err != nil {
			return nil, err
		}
		response.Lines = append(response.Lines, toComparisonLineResponse(line, target))
	}

	totals, err := pricing.Totals(lines, req.CustomerSavingsPct, req.WholesaleTargetPct)
	if err != nil {
		return nil, err
	}
	response.Totals = ComparisonTotalsResponse{
		OriginalTotal: totals.OriginalTotal.StringFixed(2),
		CustomerTotal: totals.CustomerTotal.StringFixed(2),
		Savings:       totals.Savings.StringFixed(2),
	}

	return response, nil
}
