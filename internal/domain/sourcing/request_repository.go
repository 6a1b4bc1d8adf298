package sourcing

import (
	"context"

	"github.com/google/uuid"

	"github.com/freshlink/backend/internal/domain/shared"
)

// RequestRepository defines the persistence interface for sourcing requests
type RequestRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Request, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*Request, error)
	Save(ctx context.Context, request *Request) error
}
