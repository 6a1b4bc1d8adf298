package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/freshlink/backend/internal/domain/catalog"
	"github.com/freshlink/backend/internal/domain/shared"
	"github.com/freshlink/backend/internal/domain/shared/valueobject"
)

// imageURLExpiry is how long presigned product image URLs stay valid
const imageURLExpiry = 1 * time.Hour

// uploadURLExpiry is how long presigned upload URLs stay valid
const uploadURLExpiry = 15 * time.Minute

// ProductService handles catalog operations. The intake pipeline reads
// products through snapshots; this service covers the back-office
// surface: adding lines, price changes, imagery.
type ProductService struct {
	productRepo catalog.ProductRepository
	storage     ObjectStorageService
}

// NewProductService creates a new ProductService. storage may be nil
// when no object storage backend is configured; image operations then
// return an error and everything else keeps working.
func NewProductService(productRepo catalog.ProductRepository, storage ObjectStorageService) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		storage:     storage,
	}
}

// Create adds a new product to the catalog
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	unit, err := valueobject.ParseUnit(req.Unit)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_UNIT", "Unit must be one of KG, TRAY, EACH, LOOSE, BAG")
	}

	product, err := catalog.NewProduct(req.Name, req.Variety, req.Category, unit, valueobject.NewMoneyUSD(req.UnitPrice))
	if err != nil {
		return nil, err
	}

	if req.CO2PerUnit != nil || req.WaterPerUnit != nil {
		co2 := decimal.Zero
		water := decimal.Zero
		if req.CO2PerUnit != nil {
			co2 = *req.CO2PerUnit
		}
		if req.WaterPerUnit != nil {
			water = *req.WaterPerUnit
		}
		if err := product.SetEnvironmentalMetrics(co2, water); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := s.toResponse(ctx, product)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	response := s.toResponse(ctx, product)
	return &response, nil
}

// List retrieves products with filtering and pagination
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) (*shared.Paginated[ProductResponse], error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search

	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.Category != "" {
		domainFilter.Filters["category"] = filter.Category
	}
	if filter.Unit != "" {
		domainFilter.Filters["unit"] = filter.Unit
	}

	products, err := s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = s.toResponse(ctx, &products[i])
	}

	result := shared.NewPaginated(responses, total, domainFilter.Page, domainFilter.PageSize)
	return &result, nil
}

// UpdatePrice changes a product's default unit price
func (s *ProductService) UpdatePrice(ctx context.Context, productID uuid.UUID, req UpdatePriceRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if err := product.SetUnitPrice(valueobject.NewMoneyUSD(req.UnitPrice)); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := s.toResponse(ctx, product)
	return &response, nil
}

// Deactivate removes a product from active listings
func (s *ProductService) Deactivate(ctx context.Context, productID uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return err
	}

	product.Deactivate()

	return s.productRepo.Save(ctx, product)
}

// RequestImageUpload issues a presigned upload URL for a product image
// and records the image key on the product
func (s *ProductService) RequestImageUpload(ctx context.Context, productID uuid.UUID, req ProductImageUploadRequest) (*ProductImageUploadResponse, error) {
	if s.storage == nil {
		return nil, shared.NewDomainError("STORAGE_DISABLED", "Object storage is not configured")
	}
	if !AllowedImageContentTypes[req.ContentType] {
		return nil, shared.NewDomainError("INVALID_CONTENT_TYPE", "Content type is not allowed for product images")
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	imageKey := fmt.Sprintf("products/%s/%s", product.ID, uuid.New())

	uploadURL, expiresAt, err := s.storage.GenerateUploadURL(ctx, imageKey, req.ContentType, uploadURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to generate upload URL: %w", err)
	}

	product.SetImageKey(imageKey)
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	return &ProductImageUploadResponse{
		UploadURL: uploadURL,
		ImageKey:  imageKey,
		ExpiresAt: expiresAt,
	}, nil
}

// toResponse builds a response, resolving the image key to a presigned
// download URL when storage is available. URL failures degrade to an
// empty image URL rather than failing the whole read.
func (s *ProductService) toResponse(ctx context.Context, product *catalog.Product) ProductResponse {
	response := ToProductResponse(product)
	if s.storage != nil && product.ImageKey != "" {
		if url, _, err := s.storage.GenerateDownloadURL(ctx, product.ImageKey, imageURLExpiry); err == nil {
			response.ImageURL = url
		}
	}
	return response
}
