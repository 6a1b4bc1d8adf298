package sourcing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/freshlink/backend/internal/domain/shared"
	"github.com/freshlink/backend/internal/domain/sourcing"
)

// RequestService manages sourcing requests to wholesalers: draft from
// comparison lines, edit, dispatch.
type RequestService struct {
	requestRepo sourcing.RequestRepository
	logger      *zap.Logger
	now         func() time.Time
}

// NewRequestService creates a new RequestService
func NewRequestService(requestRepo sourcing.RequestRepository, logger *zap.Logger) *RequestService {
	return &RequestService{
		requestRepo: requestRepo,
		logger:      logger.Named("sourcing"),
		now:         time.Now,
	}
}

// Create drafts a sourcing request, optionally pre-populated with lines
func (s *RequestService) Create(ctx context.Context, req CreateRequestRequest) (*RequestResponse, error) {
	request, err := sourcing.NewRequest(req.WholesalerName)
	if err != nil {
		return nil, err
	}
	request.Notes = req.Notes

	for _, line := range req.Lines {
		if err := request.AddLine(line.ProductID, line.ProductName, line.Quantity, line.TargetPrice); err != nil {
			return nil, err
		}
	}

	if err := s.requestRepo.Save(ctx, request); err != nil {
		return nil, err
	}

	response := ToRequestResponse(request)
	return &response, nil
}

// AddLine appends a line to a draft request
func (s *RequestService) AddLine(ctx context.Context, requestID uuid.UUID, req AddLineRequest) (*RequestResponse, error) {
	request, err := s.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if err := request.AddLine(req.Line.ProductID, req.Line.ProductName, req.Line.Quantity, req.Line.TargetPrice); err != nil {
		return nil, err
	}

	if err := s.requestRepo.Save(ctx, request); err != nil {
		return nil, err
	}

	response := ToRequestResponse(request)
	return &response, nil
}

// Dispatch sends a draft request to the wholesaler and freezes it
func (s *RequestService) Dispatch(ctx context.Context, requestID uuid.UUID) (*RequestResponse, error) {
	request, err := s.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if err := request.Dispatch(s.now()); err != nil {
		return nil, err
	}

	if err := s.requestRepo.Save(ctx, request); err != nil {
		return nil, err
	}

	s.logger.Info("sourcing request dispatched",
		zap.String("request_id", request.ID.String()),
		zap.String("wholesaler", request.WholesalerName),
		zap.Int("lines", len(request.Lines)),
	)

	response := ToRequestResponse(request)
	return &response, nil
}

// GetByID returns one sourcing request
func (s *RequestService) GetByID(ctx context.Context, requestID uuid.UUID) (*RequestResponse, error) {
	request, err := s.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	response := ToRequestResponse(request)
	return &response, nil
}

// List returns sourcing requests, newest first
func (s *RequestService) List(ctx context.Context, filter RequestListFilter) ([]RequestResponse, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	requests, err := s.requestRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]RequestResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, ToRequestResponse(request))
	}
	return responses, nil
}
