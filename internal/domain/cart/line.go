package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/freshlink/backend/internal/domain/shared"
	"github.com/freshlink/backend/internal/domain/shared/valueobject"
)

// Line is a single cart position. A cart holds at most one line per
// (ProductID, Unit) pair; Merge enforces that invariant.
type Line struct {
	ProductID   uuid.UUID        `json:"product_id"`
	ProductName string           `json:"product_name"`
	Quantity    decimal.Decimal  `json:"quantity"`
	UnitPrice   decimal.Decimal  `json:"unit_price"`
	Unit        valueobject.Unit `json:"unit"`
}

// Key identifies a cart line. Quantity adjustments and merges are keyed
// by product and unit together, so 2 KG and 2 TRAY of the same product
// stay separate lines.
type Key struct {
	ProductID uuid.UUID
	Unit      valueobject.Unit
}

// NewLine creates a cart line after validating quantity and price
func NewLine(productID uuid.UUID, productName string, quantity, unitPrice decimal.Decimal, unit valueobject.Unit) (Line, error) {
	if productID == uuid.Nil {
		return Line{}, shared.NewDomainError("INVALID_CART_LINE", "Cart line requires a product")
	}
	if !quantity.IsPositive() {
		return Line{}, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be greater than zero")
	}
	if unitPrice.IsNegative() {
		return Line{}, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if !unit.IsValid() {
		return Line{}, shared.NewDomainError("INVALID_UNIT", "Unit must be one of KG, TRAY, EACH, LOOSE, BAG")
	}
	return Line{
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Unit:        unit,
	}, nil
}

// Key returns the merge key of the line
func (l Line) Key() Key {
	return Key{ProductID: l.ProductID, Unit: l.Unit}
}

// Total returns quantity times unit price at full precision
func (l Line) Total() decimal.Decimal {
	return l.Quantity.Mul(l.UnitPrice)
}
