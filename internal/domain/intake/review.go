package intake

import (
	"strings"

	"github.com/google/uuid"

	"github.com/freshlink/backend/internal/domain/cart"
	"github.com/freshlink/backend/internal/domain/catalog"
	"github.com/freshlink/backend/internal/domain/shared"
)

// LineState is the resolution state of a review line
type LineState string

const (
	LineStateResolved LineState = "resolved"
	LineStatePending  LineState = "pending"
)

// Provenance records how a line arrived at its resolved product
type Provenance string

const (
	ProvenanceAutoMatched   Provenance = "auto_matched"
	ProvenanceModelSelected Provenance = "model_selected"
	ProvenanceUserSelected  Provenance = "user_selected"
)

// IssueDataQuality marks a line the parser flagged as ambiguous without
// offering any candidate products. Such a line can never auto-resolve and
// must be surfaced to the user, not silently dropped.
const IssueDataQuality = "UPSTREAM_PARSE_FAILED"

// ReviewLine is a parsed line plus its resolution state
type ReviewLine struct {
	ParsedLine
	State             LineState  `json:"state"`
	Provenance        Provenance `json:"provenance,omitempty"`
	ResolvedProductID *uuid.UUID `json:"resolved_product_id,omitempty"`
	Issue             string     `json:"issue,omitempty"`
}

// Resolved reports whether the line has a committed product
func (l *ReviewLine) Resolved() bool {
	return l.State == LineStateResolved && l.ResolvedProductID != nil
}

// MatchDivergence records a line where the deterministic catalog match
// disagreed with the parser's first suggestion. The application layer
// logs these for model-quality monitoring.
type MatchDivergence struct {
	LineIndex        int
	MatchedProductID uuid.UUID
	FirstSuggestion  uuid.UUID
}

// Review holds the lines of one quick-order submission while the buyer
// resolves ambiguities. Confirm is all-or-nothing: no cart lines are
// produced while any line is still pending.
type Review struct {
	lines       []ReviewLine
	snapshot    *catalog.Snapshot
	divergences []MatchDivergence
}

// NewReview classifies parsed lines against the catalog snapshot.
// A line resolves when the parser committed to a product that exists in
// the catalog, or when it is unambiguous and deterministic name matching
// finds exactly one candidate. Everything else stays pending with its
// suggestion list; an ambiguous line without suggestions is kept pending
// and flagged as a data-quality issue.
func NewReview(parsed []ParsedLine, snapshot *catalog.Snapshot) *Review {
	review := &Review{
		lines:    make([]ReviewLine, 0, len(parsed)),
		snapshot: snapshot,
	}

	for i, p := range parsed {
		line := ReviewLine{ParsedLine: p, State: LineStatePending}
		line.SuggestedProductIDs = filterKnown(p.SuggestedProductIDs, snapshot)

		switch {
		case p.SelectedProductID != nil && snapshot.Contains(*p.SelectedProductID):
			id := *p.SelectedProductID
			line.State = LineStateResolved
			line.Provenance = ProvenanceModelSelected
			line.ResolvedProductID = &id

		case !p.IsAmbiguous:
			candidates := matchCandidates(p.ProductName, snapshot)
			if len(candidates) == 1 {
				id := candidates[0]
				line.State = LineStateResolved
				line.Provenance = ProvenanceAutoMatched
				line.ResolvedProductID = &id
				if len(line.SuggestedProductIDs) > 0 && line.SuggestedProductIDs[0] != id {
					review.divergences = append(review.divergences, MatchDivergence{
						LineIndex:        i,
						MatchedProductID: id,
						FirstSuggestion:  line.SuggestedProductIDs[0],
					})
				}
			} else if len(line.SuggestedProductIDs) == 0 {
				line.SuggestedProductIDs = candidates
			}

		default:
			if len(line.SuggestedProductIDs) == 0 {
				line.Issue = IssueDataQuality
			}
		}

		if line.State == LineStatePending && len(line.SuggestedProductIDs) == 0 && line.Issue == "" {
			line.Issue = IssueDataQuality
		}

		review.lines = append(review.lines, line)
	}

	return review
}

// Lines returns the review lines
func (r *Review) Lines() []ReviewLine {
	return r.lines
}

// Divergences returns lines where deterministic matching disagreed with
// the parser's first suggestion
func (r *Review) Divergences() []MatchDivergence {
	return r.divergences
}

// PendingCount returns the number of lines still awaiting resolution
func (r *Review) PendingCount() int {
	count := 0
	for i := range r.lines {
		if !r.lines[i].Resolved() {
			count++
		}
	}
	return count
}

// Select commits the line at index i to the given catalog product.
// Selections may be made and remade any number of times before Confirm.
func (r *Review) Select(i int, productID uuid.UUID) error {
	if i < 0 || i >= len(r.lines) {
		return shared.NewDomainError("INVALID_INPUT", "Line index out of range")
	}
	if !r.snapshot.Contains(productID) {
		return shared.NewDomainError("NOT_FOUND", "Selected product is not in the catalog")
	}
	id := productID
	r.lines[i].State = LineStateResolved
	r.lines[i].Provenance = ProvenanceUserSelected
	r.lines[i].ResolvedProductID = &id
	r.lines[i].Issue = ""
	return nil
}

// ClearSelection reverts the line at index i to pending, restoring its
// suggestion list for re-selection
func (r *Review) ClearSelection(i int) error {
	if i < 0 || i >= len(r.lines) {
		return shared.NewDomainError("INVALID_INPUT", "Line index out of range")
	}
	r.lines[i].State = LineStatePending
	r.lines[i].Provenance = ""
	r.lines[i].ResolvedProductID = nil
	if len(r.lines[i].SuggestedProductIDs) == 0 {
		r.lines[i].Issue = IssueDataQuality
	}
	return nil
}

// Confirm converts the review into cart lines. It fails with
// AMBIGUITY_UNRESOLVED if any line lacks a committed product; on failure
// no lines are returned. Prices always come from the catalog, never from
// the free-text input.
func (r *Review) Confirm() ([]cart.Line, error) {
	for i := range r.lines {
		if !r.lines[i].Resolved() {
			return nil, shared.ErrAmbiguityUnresolved
		}
	}

	lines := make([]cart.Line, 0, len(r.lines))
	for i := range r.lines {
		product := r.snapshot.ByID(*r.lines[i].ResolvedProductID)
		if product == nil {
			return nil, shared.NewDomainError("NOT_FOUND", "Resolved product is no longer in the catalog")
		}
		line, err := cart.NewLine(product.ID, product.DisplayName(), r.lines[i].Quantity, product.UnitPrice, r.lines[i].Unit)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// filterKnown drops suggested IDs that are not in the snapshot
func filterKnown(ids []uuid.UUID, snapshot *catalog.Snapshot) []uuid.UUID {
	if len(ids) == 0 {
		return nil
	}
	known := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if snapshot.Contains(id) {
			known = append(known, id)
		}
	}
	if len(known) == 0 {
		return nil
	}
	return known
}

// matchCandidates finds catalog products matching a free-text name.
// Tiers are tried in order and the first non-empty tier wins:
// case-insensitive exact name, substring, then token overlap.
func matchCandidates(name string, snapshot *catalog.Snapshot) []uuid.UUID {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return nil
	}

	products := snapshot.Products()

	var exact, substring []uuid.UUID
	for i := range products {
		p := &products[i]
		if !p.IsActive() {
			continue
		}
		pname := strings.ToLower(p.Name)
		display := strings.ToLower(p.DisplayName())
		switch {
		case needle == pname || needle == display:
			exact = append(exact, p.ID)
		case strings.Contains(display, needle) || strings.Contains(needle, pname):
			substring = append(substring, p.ID)
		}
	}
	if len(exact) > 0 {
		return exact
	}
	if len(substring) > 0 {
		return substring
	}

	needleTokens := tokenize(needle)
	var best []uuid.UUID
	bestOverlap := 0
	for i := range products {
		p := &products[i]
		if !p.IsActive() {
			continue
		}
		overlap := tokenOverlap(needleTokens, tokenize(strings.ToLower(p.DisplayName())))
		if overlap == 0 {
			continue
		}
		if overlap > bestOverlap {
			bestOverlap = overlap
			best = []uuid.UUID{p.ID}
		} else if overlap == bestOverlap {
			best = append(best, p.ID)
		}
	}
	return best
}

func tokenize(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '(' || r == ')' || r == '-' || r == '/'
	})
}

func tokenOverlap(a, b []string) int {
	set := make(map[string]struct{}, len(a))
	for _, t := range a {
		set[t] = struct{}{}
	}
	count := 0
	for _, t := range b {
		if _, ok := set[t]; ok {
			count++
		}
	}
	return count
}
