package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/freshlink/backend/internal/domain/shared"
	"github.com/freshlink/backend/internal/domain/sourcing"
)

// GormSourcingRequestRepository implements sourcing.RequestRepository using GORM
type GormSourcingRequestRepository struct {
	db *gorm.DB
}

// NewGormSourcingRequestRepository creates a new GormSourcingRequestRepository
func NewGormSourcingRequestRepository(db *gorm.DB) *GormSourcingRequestRepository {
	return &GormSourcingRequestRepository{db: db}
}

// FindByID finds a sourcing request with its lines by ID
func (r *GormSourcingRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*sourcing.Request, error) {
	var request sourcing.Request
	if err := r.db.WithContext(ctx).Preload("Lines").First(&request, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &request, nil
}

// FindAll finds all sourcing requests matching the filter
func (r *GormSourcingRequestRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*sourcing.Request, error) {
	var requests []*sourcing.Request
	query := r.db.WithContext(ctx).Model(&sourcing.Request{}).Preload("Lines")

	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, SourcingRequestSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	if err := query.Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// Save creates or updates a sourcing request together with its lines
func (r *GormSourcingRequestRepository) Save(ctx context.Context, request *sourcing.Request) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(request).Error
}

// Ensure GormSourcingRequestRepository implements sourcing.RequestRepository
var _ sourcing.RequestRepository = (*GormSourcingRequestRepository)(nil)
