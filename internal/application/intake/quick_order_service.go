package intake

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/freshlink/backend/internal/domain/catalog"
	"github.com/freshlink/backend/internal/domain/intake"
	"github.com/freshlink/backend/internal/domain/shared"
)

// SnapshotProvider supplies the current catalog snapshot
type SnapshotProvider interface {
	Current() *catalog.Snapshot
}

// submissionTTL is how long a quick-order submission key stays marked.
// A duplicate submit of the same text inside this window is rejected.
const submissionTTL = 2 * time.Minute

// reviewTTL is how long an unconfirmed review survives
const reviewTTL = 30 * time.Minute

// reviewSession pins a review to the buyer who created it and the
// snapshot it was classified against
type reviewSession struct {
	review    *intake.Review
	snapshot  *catalog.Snapshot
	buyerID   uuid.UUID
	createdAt time.Time
}

// QuickOrderService runs the free-text order intake flow: parse,
// classify against the catalog snapshot, let the buyer resolve
// ambiguities, and confirm into cart lines. Reviews are ephemeral
// dashboard state and live in memory only.
type QuickOrderService struct {
	parser      intake.Parser
	snapshots   SnapshotProvider
	idempotency shared.IdempotencyStore
	logger      *zap.Logger

	mu       sync.Mutex
	sessions map[uuid.UUID]*reviewSession
}

// NewQuickOrderService creates a new QuickOrderService
func NewQuickOrderService(parser intake.Parser, snapshots SnapshotProvider, idempotency shared.IdempotencyStore, logger *zap.Logger) *QuickOrderService {
	return &QuickOrderService{
		parser:      parser,
		snapshots:   snapshots,
		idempotency: idempotency,
		logger:      logger.Named("quick_order"),
		sessions:    make(map[uuid.UUID]*reviewSession),
	}
}

// Submit parses free-text input into a review. A duplicate submission
// of the same text by the same buyer while one is in flight is
// rejected; parser failures surface as UPSTREAM_PARSE_FAILED and leave
// no review behind.
func (s *QuickOrderService) Submit(ctx context.Context, buyerID uuid.UUID, req QuickOrderRequest) (*ReviewResponse, error) {
	key := submissionKey(buyerID, req)
	fresh, err := s.idempotency.MarkProcessed(ctx, key, submissionTTL)
	if err != nil {
		// The guard is advisory; a broken store must not take intake down
		s.logger.Warn("idempotency store unavailable, skipping duplicate guard", zap.Error(err))
	} else if !fresh {
		return nil, shared.NewDomainError("DUPLICATE_SUBMISSION", "This order text was already submitted and is being processed")
	}

	snapshot := s.snapshots.Current()

	parsed, err := s.parser.Parse(ctx, req.Text, snapshot)
	if err != nil {
		return nil, err
	}

	review := intake.NewReview(parsed, snapshot)
	for _, d := range review.Divergences() {
		s.logger.Warn("deterministic match diverged from parser suggestion",
			zap.Int("line_index", d.LineIndex),
			zap.String("matched_product_id", d.MatchedProductID.String()),
			zap.String("first_suggestion", d.FirstSuggestion.String()),
		)
	}

	session := &reviewSession{
		review:    review,
		snapshot:  snapshot,
		buyerID:   buyerID,
		createdAt: time.Now(),
	}
	reviewID := uuid.New()

	s.mu.Lock()
	s.pruneLocked()
	s.sessions[reviewID] = session
	s.mu.Unlock()

	return s.toResponse(reviewID, session), nil
}

// Get returns the current state of a review
func (s *QuickOrderService) Get(_ context.Context, buyerID, reviewID uuid.UUID) (*ReviewResponse, error) {
	session, err := s.session(buyerID, reviewID)
	if err != nil {
		return nil, err
	}
	return s.toResponse(reviewID, session), nil
}

// Select commits a pending line to a catalog product
func (s *QuickOrderService) Select(_ context.Context, buyerID, reviewID uuid.UUID, req SelectRequest) (*ReviewResponse, error) {
	session, err := s.session(buyerID, reviewID)
	if err != nil {
		return nil, err
	}
	if err := session.review.Select(req.LineIndex, req.ProductID); err != nil {
		return nil, err
	}
	return s.toResponse(reviewID, session), nil
}

// ClearSelection reverts a line to pending
func (s *QuickOrderService) ClearSelection(_ context.Context, buyerID, reviewID uuid.UUID, lineIndex int) (*ReviewResponse, error) {
	session, err := s.session(buyerID, reviewID)
	if err != nil {
		return nil, err
	}
	if err := session.review.ClearSelection(lineIndex); err != nil {
		return nil, err
	}
	return s.toResponse(reviewID, session), nil
}

// Confirm converts a fully resolved review into cart lines and retires
// the review. Fails with AMBIGUITY_UNRESOLVED while any line is
// pending; the review survives a failed confirm.
func (s *QuickOrderService) Confirm(_ context.Context, buyerID, reviewID uuid.UUID) (*ConfirmResponse, error) {
	session, err := s.session(buyerID, reviewID)
	if err != nil {
		return nil, err
	}

	lines, err := session.review.Confirm()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	delete(s.sessions, reviewID)
	s.mu.Unlock()

	return &ConfirmResponse{Lines: ToCartLineResponses(lines)}, nil
}

// session looks a review up and enforces buyer ownership
func (s *QuickOrderService) session(buyerID, reviewID uuid.UUID) (*reviewSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[reviewID]
	if !ok || time.Since(session.createdAt) > reviewTTL {
		delete(s.sessions, reviewID)
		return nil, shared.ErrNotFound
	}
	if session.buyerID != buyerID {
		return nil, shared.ErrNotFound
	}
	return session, nil
}

func (s *QuickOrderService) pruneLocked() {
	for id, session := range s.sessions {
		if time.Since(session.createdAt) > reviewTTL {
			delete(s.sessions, id)
		}
	}
}

func (s *QuickOrderService) toResponse(reviewID uuid.UUID, session *reviewSession) *ReviewResponse {
	lines := session.review.Lines()
	response := &ReviewResponse{
		ReviewID:     reviewID,
		Lines:        make([]ReviewLineResponse, 0, len(lines)),
		PendingCount: session.review.PendingCount(),
		CreatedAt:    session.createdAt,
	}
	for i, line := range lines {
		response.Lines = append(response.Lines, toReviewLineResponse(i, line, session.snapshot))
	}
	return response
}

// submissionKey derives the duplicate-submit guard key. An explicit
// idempotency key wins; otherwise the text itself identifies the
// submission.
func submissionKey(buyerID uuid.UUID, req QuickOrderRequest) string {
	if req.IdempotencyKey != "" {
		return buyerID.String() + ":" + req.IdempotencyKey
	}
	sum := sha256.Sum256([]byte(req.Text))
	return buyerID.String() + ":" + hex.EncodeToString(sum[:])
}
