package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Snapshot is an immutable point-in-time view of the catalog.
// Dashboard polling replaces the whole snapshot atomically; the intake
// pipeline only ever operates on a snapshot passed in, never on shared
// mutable state.
type Snapshot struct {
	products []Product
	byID     map[uuid.UUID]*Product
	takenAt  time.Time
}

// NewSnapshot builds a snapshot from the given products.
// The slice is copied so later mutations of the source cannot leak in.
func NewSnapshot(products []Product) *Snapshot {
	copied := make([]Product, len(products))
	copy(copied, products)

	byID := make(map[uuid.UUID]*Product, len(copied))
	for i := range copied {
		byID[copied[i].ID] = &copied[i]
	}

	return &Snapshot{
		products: copied,
		byID:     byID,
		takenAt:  time.Now(),
	}
}

// Products returns all products in the snapshot
func (s *Snapshot) Products() []Product {
	return s.products
}

// ByID returns the product with the given ID, or nil
func (s *Snapshot) ByID(id uuid.UUID) *Product {
	return s.byID[id]
}

// Contains reports whether the snapshot holds a product with the given ID
func (s *Snapshot) Contains(id uuid.UUID) bool {
	_, ok := s.byID[id]
	return ok
}

// Len returns the number of products in the snapshot
func (s *Snapshot) Len() int {
	return len(s.products)
}

// TakenAt returns when the snapshot was captured
func (s *Snapshot) TakenAt() time.Time {
	return s.takenAt
}

// Summary renders a compact one-line-per-product listing suitable for
// prompting the upstream text model with the available catalog.
func (s *Snapshot) Summary() string {
	var b strings.Builder
	for i := range s.products {
		p := &s.products[i]
		fmt.Fprintf(&b, "%s | %s | %s | %s/%s\n",
			p.ID, p.DisplayName(), p.Category, p.UnitPrice.StringFixed(2), p.Unit)
	}
	return b.String()
}
