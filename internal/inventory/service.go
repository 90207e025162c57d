package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/kabachok/dropclient/internal/domain"
	"github.com/kabachok/dropclient/internal/logger"
)

// Backend is the slice of the API client the inventory service needs.
type Backend interface {
	Inventory(ctx context.Context) ([]domain.InventoryEntry, error)
	SellItem(ctx context.Context, entryID int) (*domain.BalanceUpdate, error)
}

// BalanceCommitter records a server-confirmed balance on the session. The
// service never computes a sale price locally; the backend's new_balance
// replaces the displayed value wholesale.
type BalanceCommitter interface {
	CommitBalance(ctx context.Context, newBalance int)
}

// Service lists and liquidates inventory through a read-through cache. The
// cache goes stale the moment anything changes the inventory (open, sell), so
// those paths invalidate it.
type Service interface {
	List(ctx context.Context) ([]domain.InventoryEntry, error)
	Sell(ctx context.Context, entryID int) (*domain.BalanceUpdate, error)
	Invalidate()
}

type service struct {
	backend Backend
	session BalanceCommitter
	cache   *expirable.LRU[string, []domain.InventoryEntry]
}

// inventoryCacheKey holds the single cached listing.
const inventoryCacheKey = "inventory"

// NewService creates the inventory service with a cache of the given TTL.
func NewService(backend Backend, session BalanceCommitter, cacheTTL time.Duration) Service {
	return &service{
		backend: backend,
		session: session,
		cache:   expirable.NewLRU[string, []domain.InventoryEntry](1, nil, cacheTTL),
	}
}

// List returns the inventory, served from cache when fresh.
func (s *service) List(ctx context.Context) ([]domain.InventoryEntry, error) {
	if cached, ok := s.cache.Get(inventoryCacheKey); ok {
		logger.FromContext(ctx).Debug("inventory served from cache", "entries", len(cached))
		return cached, nil
	}

	entries, err := s.backend.Inventory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch inventory: %w", err)
	}

	s.cache.Add(inventoryCacheKey, entries)
	return entries, nil
}

// Sell liquidates one unit of an entry. On success the server-confirmed
// balance is committed and the cached listing dropped; on failure nothing
// changes client-side.
func (s *service) Sell(ctx context.Context, entryID int) (*domain.BalanceUpdate, error) {
	log := logger.FromContext(ctx)

	update, err := s.backend.SellItem(ctx, entryID)
	if err != nil {
		log.Warn("sell failed", "entry_id", entryID, "error", err)
		return nil, err
	}

	s.session.CommitBalance(ctx, update.NewBalance)
	s.Invalidate()
	log.Info("item sold", "entry_id", entryID, "new_balance", update.NewBalance)
	return update, nil
}

// Invalidate drops the cached listing.
func (s *service) Invalidate() {
	s.cache.Purge()
}
