package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/freshlink/backend/internal/domain/cart"
	"github.com/freshlink/backend/internal/domain/shared"
)

// PaymentMethod selects how an order is settled
type PaymentMethod string

const (
	PaymentMethodPayNow  PaymentMethod = "pay_now"
	PaymentMethodInvoice PaymentMethod = "invoice"
)

// IsValid checks if the payment method is valid
func (m PaymentMethod) IsValid() bool {
	return m == PaymentMethodPayNow || m == PaymentMethodInvoice
}

// payNowDiscountRate is the immediate-settlement discount applied to the
// subtotal when the buyer pays at checkout
var payNowDiscountRate = decimal.NewFromFloat(0.10)

// Quote is the priced outcome of a checkout. All amounts carry full
// precision; rounding to two decimals happens only at serialization.
type Quote struct {
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
	Method   PaymentMethod
}

// NewQuote prices a set of cart lines for the given payment method.
// Subtotal is the sum of quantity times unit price per line; pay_now
// earns a 10% discount on the subtotal, invoice none.
func NewQuote(lines []cart.Line, method PaymentMethod) (Quote, error) {
	if !method.IsValid() {
		return Quote{}, shared.NewDomainError("VALIDATION_ERROR", "Payment method must be pay_now or invoice")
	}
	if len(lines) == 0 {
		return Quote{}, shared.NewDomainError("VALIDATION_ERROR", "Cannot price an empty cart")
	}
	for _, line := range lines {
		if !line.Quantity.IsPositive() {
			return Quote{}, shared.NewDomainError("VALIDATION_ERROR", "Line quantity must be greater than zero")
		}
		if line.UnitPrice.IsNegative() {
			return Quote{}, shared.NewDomainError("VALIDATION_ERROR", "Line price cannot be negative")
		}
	}

	subtotal := cart.Subtotal(lines)
	discount := decimal.Zero
	if method == PaymentMethodPayNow {
		discount = subtotal.Mul(payNowDiscountRate)
	}

	return Quote{
		Subtotal: subtotal,
		Discount: discount,
		Total:    subtotal.Sub(discount),
		Method:   method,
	}, nil
}
