package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/kabachok/dropclient/internal/domain"
	"github.com/kabachok/dropclient/internal/logger"
)

// Backend is the slice of the API client the catalog needs.
type Backend interface {
	Cases(ctx context.Context) ([]domain.Case, error)
	Case(ctx context.Context, caseID int) (*domain.Case, error)
}

// Service serves case reference data through a read-through cache. Cases are
// immutable on the backend, so the cache only needs time-based expiry.
type Service interface {
	Cases(ctx context.Context) ([]domain.Case, error)
	Case(ctx context.Context, caseID int) (*domain.Case, error)
	Invalidate()
}

type service struct {
	backend Backend
	cases   *caseCache
	list    *expirable.LRU[string, []domain.Case]
}

// listCacheKey is the single key under which the full catalog listing lives.
const listCacheKey = "cases"

// NewService creates the catalog service with caches of the given size and TTL.
func NewService(backend Backend, cacheSize int, cacheTTL time.Duration) Service {
	return &service{
		backend: backend,
		cases:   newCaseCache(cacheSize, cacheTTL),
		list:    expirable.NewLRU[string, []domain.Case](1, nil, cacheTTL),
	}
}

// Cases returns the active case catalog, served from cache when fresh.
func (s *service) Cases(ctx context.Context) ([]domain.Case, error) {
	if cached, ok := s.list.Get(listCacheKey); ok {
		logger.FromContext(ctx).Debug("case list served from cache", "count", len(cached))
		return cached, nil
	}

	cases, err := s.backend.Cases(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch case catalog: %w", err)
	}

	s.list.Add(listCacheKey, cases)
	for i := range cases {
		cs := cases[i]
		s.cases.Set(cs.ID, &cs)
	}
	return cases, nil
}

// Case returns one case by ID, served from cache when fresh.
func (s *service) Case(ctx context.Context, caseID int) (*domain.Case, error) {
	if cached, ok := s.cases.Get(caseID); ok {
		logger.FromContext(ctx).Debug("case served from cache", "case_id", caseID)
		return cached, nil
	}

	cs, err := s.backend.Case(ctx, caseID)
	if err != nil {
		return nil, err
	}

	s.cases.Set(caseID, cs)
	return cs, nil
}

// Invalidate drops all cached catalog data.
func (s *service) Invalidate() {
	s.list.Purge()
	s.cases.Clear()
}
