package partner

import (
	"regexp"
	"strings"
	"time"

	"github.com/freshlink/backend/internal/domain/shared"
)

// BuyerStatus represents the status of a buyer account
type BuyerStatus string

const (
	BuyerStatusActive   BuyerStatus = "active"
	BuyerStatusInactive BuyerStatus = "inactive"
)

// Buyer is a B2B customer account in the marketplace. The
// OutstandingInvoices flag is the checkout gate's source of truth: it is
// re-read from the repository on every confirmation attempt, never
// cached on a session.
type Buyer struct {
	shared.BaseAggregateRoot
	Name                string      `gorm:"type:varchar(200);not null"`
	ContactName         string      `gorm:"type:varchar(100)"`
	Phone               string      `gorm:"type:varchar(50);index"`
	Email               string      `gorm:"type:varchar(200);index"`
	Address             string      `gorm:"type:text"`
	Status              BuyerStatus `gorm:"type:varchar(20);not null;default:'active'"`
	OutstandingInvoices bool        `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (Buyer) TableName() string {
	return "buyers"
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// NewBuyer creates a new buyer account
func NewBuyer(name, contactName, email string) (*Buyer, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_BUYER_NAME", "Buyer name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_BUYER_NAME", "Buyer name cannot exceed 200 characters")
	}
	if email != "" && !emailPattern.MatchString(email) {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}

	return &Buyer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		ContactName:       strings.TrimSpace(contactName),
		Email:             email,
		Status:            BuyerStatusActive,
	}, nil
}

// CanPlaceOrders reports whether confirmations are allowed for this
// account. Browsing and cart edits are never blocked by this.
func (b *Buyer) CanPlaceOrders() bool {
	return b.Status == BuyerStatusActive && !b.OutstandingInvoices
}

// FlagOutstandingInvoices blocks future confirmations until settled
func (b *Buyer) FlagOutstandingInvoices() {
	b.OutstandingInvoices = true
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
}

// ClearOutstandingInvoices lifts the confirmation block
func (b *Buyer) ClearOutstandingInvoices() {
	b.OutstandingInvoices = false
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
}

// Deactivate closes the account without deleting its history
func (b *Buyer) Deactivate() {
	b.Status = BuyerStatusInactive
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
}
