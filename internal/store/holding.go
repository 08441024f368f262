package store

import (
	"sync"

	"github.com/google/btree"
	"github.com/soliveira/tradetalk/internal/domain"
)

// holdingLess orders a portfolio's holdings by symbol ascending, so listing
// a portfolio walks its positions in a stable alphabetical order.
func holdingLess(a, b *domain.Holding) bool {
	return a.Symbol < b.Symbol
}

// HoldingStore is a thread-safe in-memory store for holdings. Each
// portfolio's positions are kept in a B-tree keyed by symbol.
type HoldingStore struct {
	mu          sync.RWMutex
	byPortfolio map[string]*btree.BTreeG[*domain.Holding]
}

// NewHoldingStore creates an empty HoldingStore.
func NewHoldingStore() *HoldingStore {
	return &HoldingStore{
		byPortfolio: make(map[string]*btree.BTreeG[*domain.Holding]),
	}
}

// Get retrieves a copy of the holding for (portfolio, symbol). The copy lets
// the executor keep a pre-trade snapshot that later writes cannot disturb.
func (s *HoldingStore) Get(portfolioID, symbol string) (*domain.Holding, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tree, ok := s.byPortfolio[portfolioID]
	if !ok {
		return nil, false
	}
	h, ok := tree.Get(&domain.Holding{Symbol: symbol})
	if !ok {
		return nil, false
	}
	copied := *h
	return &copied, true
}

// Upsert inserts or replaces the holding for (h.PortfolioID, h.Symbol).
func (s *HoldingStore) Upsert(h *domain.Holding) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tree, ok := s.byPortfolio[h.PortfolioID]
	if !ok {
		const degree = 32
		tree = btree.NewG[*domain.Holding](degree, holdingLess)
		s.byPortfolio[h.PortfolioID] = tree
	}
	copied := *h
	tree.ReplaceOrInsert(&copied)
	return nil
}

// Delete removes the holding for (portfolio, symbol). It returns
// domain.ErrHoldingNotFound if no such holding exists.
func (s *HoldingStore) Delete(portfolioID, symbol string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tree, ok := s.byPortfolio[portfolioID]
	if !ok {
		return domain.ErrHoldingNotFound
	}
	if _, found := tree.Delete(&domain.Holding{Symbol: symbol}); !found {
		return domain.ErrHoldingNotFound
	}
	return nil
}

// ListByPortfolio returns copies of the portfolio's holdings ordered by
// symbol ascending. Returns an empty slice for an unknown portfolio.
func (s *HoldingStore) ListByPortfolio(portfolioID string) []*domain.Holding {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tree, ok := s.byPortfolio[portfolioID]
	if !ok {
		return []*domain.Holding{}
	}

	result := make([]*domain.Holding, 0, tree.Len())
	tree.Ascend(func(h *domain.Holding) bool {
		copied := *h
		result = append(result, &copied)
		return true
	})
	return result
}
