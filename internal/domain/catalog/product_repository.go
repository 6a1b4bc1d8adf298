package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/freshlink/backend/internal/domain/shared"
)

// ProductRepository defines the persistence interface for products.
// The catalog is owned by an external collaborator; the intake core only
// reads it, plus the single add-product append used by back-office staff.
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)
	FindActive(ctx context.Context) ([]Product, error)
	Save(ctx context.Context, product *Product) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
