package partner

import (
	"context"

	"github.com/google/uuid"
)

// BuyerRepository defines the persistence interface for buyers
type BuyerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Buyer, error)
	FindByEmail(ctx context.Context, email string) (*Buyer, error)
	Save(ctx context.Context, buyer *Buyer) error
}
