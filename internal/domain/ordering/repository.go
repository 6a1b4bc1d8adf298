package ordering

import (
	"context"

	"github.com/google/uuid"

	"github.com/freshlink/backend/internal/domain/shared"
)

// OrderRepository defines the persistence interface for orders
type OrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByNumber(ctx context.Context, number string) (*Order, error)
	FindAllForBuyer(ctx context.Context, buyerID uuid.UUID, filter shared.Filter) ([]*Order, error)
	CountForBuyer(ctx context.Context, buyerID uuid.UUID) (int64, error)
	Save(ctx context.Context, order *Order) error
}
