package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/freshlink/backend/internal/domain/partner"
	"github.com/freshlink/backend/internal/domain/shared"
)

// GormBuyerRepository implements partner.BuyerRepository using GORM
type GormBuyerRepository struct {
	db *gorm.DB
}

// NewGormBuyerRepository creates a new GormBuyerRepository
func NewGormBuyerRepository(db *gorm.DB) *GormBuyerRepository {
	return &GormBuyerRepository{db: db}
}

// FindByID finds a buyer by ID. The checkout gate calls this on every
// confirmation attempt to get the current OutstandingInvoices state.
func (r *GormBuyerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Buyer, error) {
	var buyer partner.Buyer
	if err := r.db.WithContext(ctx).First(&buyer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &buyer, nil
}

// FindByEmail finds a buyer by email address
func (r *GormBuyerRepository) FindByEmail(ctx context.Context, email string) (*partner.Buyer, error) {
	var buyer partner.Buyer
	if err := r.db.WithContext(ctx).First(&buyer, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &buyer, nil
}

// Save creates or updates a buyer
func (r *GormBuyerRepository) Save(ctx context.Context, buyer *partner.Buyer) error {
	return r.db.WithContext(ctx).Save(buyer).Error
}

// Ensure GormBuyerRepository implements partner.BuyerRepository
var _ partner.BuyerRepository = (*GormBuyerRepository)(nil)
