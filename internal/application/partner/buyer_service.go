package partner

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/freshlink/backend/internal/domain/partner"
)

// BuyerService manages buyer accounts. The OutstandingInvoices flag it
// toggles is what the checkout gate reads on every confirmation
// attempt.
type BuyerService struct {
	buyerRepo partner.BuyerRepository
	logger    *zap.Logger
}

// NewBuyerService creates a new BuyerService
func NewBuyerService(buyerRepo partner.BuyerRepository, logger *zap.Logger) *BuyerService {
	return &BuyerService{
		buyerRepo: buyerRepo,
		logger:    logger.Named("buyer"),
	}
}

// Create registers a buyer account
func (s *BuyerService) Create(ctx context.Context, req CreateBuyerRequest) (*BuyerResponse, error) {
	buyer, err := partner.NewBuyer(req.Name, req.ContactName, req.Email)
	if err != nil {
		return nil, err
	}
	buyer.Phone = req.Phone
	buyer.Address = req.Address

	if err := s.buyerRepo.Save(ctx, buyer); err != nil {
		return nil, err
	}

	response := ToBuyerResponse(buyer)
	return &response, nil
}

// GetByID returns one buyer account
func (s *BuyerService) GetByID(ctx context.Context, buyerID uuid.UUID) (*BuyerResponse, error) {
	buyer, err := s.buyerRepo.FindByID(ctx, buyerID)
	if err != nil {
		return nil, err
	}

	response := ToBuyerResponse(buyer)
	return &response, nil
}

// SetOutstandingInvoices flags or clears the buyer's outstanding
// balance, blocking or unblocking order confirmations
func (s *BuyerService) SetOutstandingInvoices(ctx context.Context, buyerID uuid.UUID, outstanding bool) (*BuyerResponse, error) {
	buyer, err := s.buyerRepo.FindByID(ctx, buyerID)
	if err != nil {
		return nil, err
	}

	if outstanding {
		buyer.FlagOutstandingInvoices()
	} else {
		buyer.ClearOutstandingInvoices()
	}

	if err := s.buyerRepo.Save(ctx, buyer); err != nil {
		return nil, err
	}

	s.logger.Info("buyer outstanding-invoices flag changed",
		zap.String("buyer_id", buyer.ID.String()),
		zap.Bool("outstanding", outstanding),
	)

	response := ToBuyerResponse(buyer)
	return &response, nil
}

// Deactivate closes a buyer account without deleting its history
func (s *BuyerService) Deactivate(ctx context.Context, buyerID uuid.UUID) error {
	buyer, err := s.buyerRepo.FindByID(ctx, buyerID)
	if err != nil {
		return err
	}

	buyer.Deactivate()

	return s.buyerRepo.Save(ctx, buyer)
}
