package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/freshlink/backend/internal/domain/catalog"
)

// CreateProductRequest represents a request to add a product to the
// catalog
type CreateProductRequest struct {
	Name         string           `json:"name" binding:"required,min=1,max=200"`
	Variety      string           `json:"variety" binding:"max=100"`
	Category     string           `json:"category" binding:"max=100"`
	Unit         string           `json:"unit" binding:"required"`
	UnitPrice    decimal.Decimal  `json:"unit_price" binding:"required"`
	CO2PerUnit   *decimal.Decimal `json:"co2_per_unit"`
	WaterPerUnit *decimal.Decimal `json:"water_per_unit"`
}

// UpdatePriceRequest represents a request to change a product's unit
// price
type UpdatePriceRequest struct {
	UnitPrice decimal.Decimal `json:"unit_price" binding:"required"`
}

// ProductImageUploadRequest represents a request for a presigned
// product image upload URL
type ProductImageUploadRequest struct {
	ContentType string `json:"content_type" binding:"required"`
}

// ProductImageUploadResponse carries the presigned upload URL
type ProductImageUploadResponse struct {
	UploadURL string    `json:"upload_url"`
	ImageKey  string    `json:"image_key"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Variety      string          `json:"variety"`
	DisplayName  string          `json:"display_name"`
	Category     string          `json:"category"`
	Unit         string          `json:"unit"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	ImageURL     string          `json:"image_url,omitempty"`
	CO2PerUnit   decimal.Decimal `json:"co2_per_unit"`
	WaterPerUnit decimal.Decimal `json:"water_per_unit"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	Version      int             `json:"version"`
}

// ProductListFilter represents filter options for the product list
type ProductListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=active inactive"`
	Category string `form:"category"`
	Unit     string `form:"unit"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Variety:      p.Variety,
		DisplayName:  p.DisplayName(),
		Category:     p.Category,
		Unit:         p.Unit.String(),
		UnitPrice:    p.UnitPrice,
		CO2PerUnit:   p.CO2PerUnit,
		WaterPerUnit: p.WaterPerUnit,
		Status:       string(p.Status),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
		Version:      p.Version,
	}
}

// ToProductResponses converts a slice of domain Products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}
