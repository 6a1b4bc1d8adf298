package catalog

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/freshlink/backend/internal/domain/shared"
	"github.com/freshlink/backend/internal/domain/shared/valueobject"
)

// ProductStatus represents the status of a product
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusInactive ProductStatus = "inactive"
)

// Product represents a produce line in the marketplace catalog.
// It is the aggregate root for catalog operations. The intake pipeline
// treats products as read-only: it looks prices and units up here and
// never mutates them.
type Product struct {
	shared.BaseAggregateRoot
	Name      string           `gorm:"type:varchar(200);not null;index"`
	Variety   string           `gorm:"type:varchar(100)"`
	Category  string           `gorm:"type:varchar(100);index"`
	Unit      valueobject.Unit `gorm:"type:varchar(20);not null"`
	UnitPrice decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	ImageKey  string           `gorm:"type:varchar(500)"`
	// Per-unit environmental metrics, supplied by the grower
	CO2PerUnit   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	WaterPerUnit decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Status       ProductStatus   `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new catalog product
func NewProduct(name, variety, category string, unit valueobject.Unit, unitPrice valueobject.Money) (*Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot exceed 200 characters")
	}
	if !unit.IsValid() {
		return nil, shared.NewDomainError("INVALID_UNIT", "Unit must be one of KG, TRAY, EACH, LOOSE, BAG")
	}
	if unitPrice.Amount().IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Variety:           strings.TrimSpace(variety),
		Category:          strings.TrimSpace(category),
		Unit:              unit,
		UnitPrice:         unitPrice.Amount(),
		CO2PerUnit:        decimal.Zero,
		WaterPerUnit:      decimal.Zero,
		Status:            ProductStatusActive,
	}

	product.AddDomainEvent(NewProductAddedEvent(product))

	return product, nil
}

// SetUnitPrice updates the default unit price
func (p *Product) SetUnitPrice(price valueobject.Money) error {
	if price.Amount().IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	p.UnitPrice = price.Amount()
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// SetEnvironmentalMetrics sets the per-unit CO2 and water figures
func (p *Product) SetEnvironmentalMetrics(co2, water decimal.Decimal) error {
	if co2.IsNegative() || water.IsNegative() {
		return shared.NewDomainError("INVALID_METRIC", "Environmental metrics cannot be negative")
	}
	p.CO2PerUnit = co2
	p.WaterPerUnit = water
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// SetImageKey records the object-storage key of the product image
func (p *Product) SetImageKey(key string) {
	p.ImageKey = key
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// Deactivate removes the product from active listings without deleting it
func (p *Product) Deactivate() {
	p.Status = ProductStatusInactive
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// IsActive returns true if the product is active
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

// DisplayName returns the name with variety, e.g. "Bananas (Cavendish)"
func (p *Product) DisplayName() string {
	if p.Variety == "" {
		return p.Name
	}
	return p.Name + " (" + p.Variety + ")"
}

// UnitPriceMoney returns the unit price as a Money value object
func (p *Product) UnitPriceMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(p.UnitPrice)
}
