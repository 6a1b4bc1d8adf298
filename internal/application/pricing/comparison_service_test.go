package pricing

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/freshlink/backend/internal/domain/pricing"
	"github.com/freshlink/backend/internal/domain/shared"
)

// MockInvoiceExtractor is a mock implementation of pricing.InvoiceExtractor
type MockInvoiceExtractor struct {
	mock.Mock
}

func (m *MockInvoiceExtractor) Extract(ctx context.Context, document []byte, contentType string) ([]pricing.ComparisonLine, error) {
	args := m.Called(ctx, document, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]pricing.ComparisonLine), args.Error(1)
}

func TestComparisonService_Compare(t *testing.T) {
	ctx := context.Background()
	document := []byte("invoice-bytes")

	t.Run("should derive target prices and totals from the invoice", func(t *testing.T) {
		extractor := new(MockInvoiceExtractor)
		service := NewComparisonService(extractor, zap.NewNop())

		extractor.On("Extract", ctx, document, "image/jpeg").Return([]pricing.ComparisonLine{{
			ProductName:  "Bananas",
			Quantity:     decimal.NewFromInt(12),
			InvoicePrice: decimal.NewFromInt(10),
		}}, nil)

		resp, err := service.Compare(ctx, document, "image/jpeg", ComparisonRequest{
			CustomerSavingsPct: decimal.NewFromInt(30),
			WholesaleTargetPct: decimal.NewFromInt(55),
		})

		require.NoError(t, err)
		require.Len(t, resp.Lines, 1)
		assert.Equal(t, "10.00", resp.Lines[0].InvoicePrice)
		assert.Equal(t, "7.00", resp.Lines[0].CustomerTargetPrice)
		assert.Equal(t, "5.50", resp.Lines[0].WholesaleTargetPrice)
		assert.Equal(t, "120.00", resp.Totals.OriginalTotal)
		assert.Equal(t, "84.00", resp.Totals.CustomerTotal)
		assert.Equal(t, "36.00", resp.Totals.Savings)
	})

	t.Run("should reject percentages over one hundred", func(t *testing.T) {
		extractor := new(MockInvoiceExtractor)
		service := NewComparisonService(extractor, zap.NewNop())

		extractor.On("Extract", ctx, document, "image/jpeg").Return([]pricing.ComparisonLine{{
			ProductName:  "Bananas",
			Quantity:     decimal.NewFromInt(1),
			InvoicePrice: decimal.NewFromInt(10),
		}}, nil)

		_, err := service.Compare(ctx, document, "image/jpeg", ComparisonRequest{
			CustomerSavingsPct: decimal.NewFromInt(130),
			WholesaleTargetPct: decimal.NewFromInt(55),
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "VALIDATION_ERROR", domainErr.Code)
	})

	t.Run("should pass extraction degradation through", func(t *testing.T) {
		extractor := new(MockInvoiceExtractor)
		service := NewComparisonService(extractor, zap.NewNop())

		extractor.On("Extract", ctx, document, "application/pdf").Return(nil, shared.ErrUpstreamParse)

		_, err := service.Compare(ctx, document, "application/pdf", ComparisonRequest{
			CustomerSavingsPct: decimal.NewFromInt(30),
			WholesaleTargetPct: decimal.NewFromInt(55),
		})

		assert.ErrorIs(t, err, shared.ErrUpstreamParse)
	})
}
