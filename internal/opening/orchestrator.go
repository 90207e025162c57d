package opening

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/kabachok/dropclient/internal/domain"
	"github.com/kabachok/dropclient/internal/logger"
)

// Backend is the slice of the API client the orchestrator needs.
type Backend interface {
	OpenCase(ctx context.Context, caseID int) (*domain.OpenResult, error)
}

// CaseSource resolves case reference data (price, reward pool), typically the
// cached catalog service.
type CaseSource interface {
	Case(ctx context.Context, caseID int) (*domain.Case, error)
}

// SessionView is the read side of the session plus the single balance write
// path. The orchestrator never computes a balance itself.
type SessionView interface {
	Authenticated() bool
	Balance() int
	CommitBalance(ctx context.Context, newBalance int)
}

// InventoryInvalidator drops cached inventory so the next listing reflects the
// freshly won item.
type InventoryInvalidator interface {
	Invalidate()
}

// Outcome is everything the UI needs to run one reveal: the authoritative
// server result plus the presentation strip around it.
type Outcome struct {
	Result      *domain.OpenResult
	Sequence    []domain.RewardItem
	RevealIndex int
}

// Service orchestrates case opens: advisory preconditions, the single
// authoritative server transaction, and the two-phase reveal where the
// balance only becomes visible once the spin has run its course.
type Service interface {
	OpenCase(ctx context.Context, caseID int) (*Outcome, error)
	Opening() bool
	AwaitDismiss(ctx context.Context, dismiss <-chan struct{})
}

type service struct {
	backend   Backend
	cases     CaseSource
	session   SessionView
	inventory InventoryInvalidator

	rnd   func() float64
	after func(d time.Duration) <-chan time.Time

	mu      sync.Mutex
	opening bool
}

// NewService creates the opening orchestrator.
func NewService(backend Backend, cases CaseSource, session SessionView, inventory InventoryInvalidator) Service {
	return &service{
		backend:   backend,
		cases:     cases,
		session:   session,
		inventory: inventory,
		rnd:       rand.Float64,
		after:     time.After,
	}
}

// Opening reports whether an open is currently in flight. The flag is the
// sole mutual exclusion for the open path.
func (s *service) Opening() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opening
}

// OpenCase runs one open end to end. Exactly one open may be in flight; a
// concurrent call is rejected before touching the server. Preconditions are
// advisory (cached state may be stale), the server response is authoritative.
func (s *service) OpenCase(ctx context.Context, caseID int) (*Outcome, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}
	defer s.end()

	log := logger.FromContext(ctx)

	if !s.session.Authenticated() {
		return nil, domain.ErrNotAuthenticated
	}

	cs, err := s.cases.Case(ctx, caseID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgCaseLookup, err)
	}
	if s.session.Balance() < cs.Price {
		return nil, fmt.Errorf("%w: balance %d, case price %d",
			domain.ErrInsufficientFunds, s.session.Balance(), cs.Price)
	}

	result, err := s.backend.OpenCase(ctx, caseID)
	if err != nil {
		log.Warn(ErrMsgOpenFailed, "case_id", caseID, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrMsgOpenFailed, err)
	}

	if !result.Success || result.Reward == nil {
		// Server refused the transaction (typically a stale balance). No
		// animation, no balance change.
		log.Info("open rejected by server", "case_id", caseID, "message", result.Message)
		return &Outcome{Result: result}, nil
	}

	// Phase 1: the outcome is decided and recorded. Nothing visible changes
	// yet; the reveal strip is built around the already-known reward.
	outcome := &Outcome{
		Result:      result,
		Sequence:    buildSequence(cs.Vegetables, *result.Reward, s.rnd),
		RevealIndex: RevealIndex,
	}
	log.Info("case opened", "case_id", caseID,
		"reward", result.Reward.Name, "rarity", result.Reward.Rarity)

	// Phase 2: hold the visible state until the spin finishes, then commit
	// the server-confirmed balance and drop the stale inventory cache. A
	// cancelled context skips the wait, not the commit: the server already
	// settled the transaction.
	select {
	case <-s.after(SpinDuration):
	case <-ctx.Done():
	}
	if result.NewBalance != nil {
		s.session.CommitBalance(ctx, *result.NewBalance)
	}
	if s.inventory != nil {
		s.inventory.Invalidate()
	}

	return outcome, nil
}

// AwaitDismiss blocks until the result panel should come down: after the
// display duration, on explicit dismissal, or when ctx ends.
func (s *service) AwaitDismiss(ctx context.Context, dismiss <-chan struct{}) {
	select {
	case <-s.after(ResultDisplayDuration):
	case <-dismiss:
	case <-ctx.Done():
	}
}

func (s *service) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.opening {
		return domain.ErrOpenInProgress
	}
	s.opening = true
	return nil
}

func (s *service) end() {
	s.mu.Lock()
	s.opening = false
	s.mu.Unlock()
}
