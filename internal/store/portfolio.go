package store

import (
	"sync"

	"github.com/soliveira/tradetalk/internal/domain"
)

// PortfolioStore is a thread-safe in-memory store for portfolios,
// keyed by portfolio_id.
type PortfolioStore struct {
	mu         sync.RWMutex
	portfolios map[string]*domain.Portfolio
}

// NewPortfolioStore creates an empty PortfolioStore.
func NewPortfolioStore() *PortfolioStore {
	return &PortfolioStore{
		portfolios: make(map[string]*domain.Portfolio),
	}
}

// Create adds a portfolio to the store. It returns
// domain.ErrPortfolioAlreadyExists if a portfolio with the same ID
// already exists.
func (s *PortfolioStore) Create(p *domain.Portfolio) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.portfolios[p.PortfolioID]; exists {
		return domain.ErrPortfolioAlreadyExists
	}
	s.portfolios[p.PortfolioID] = p
	return nil
}

// Get retrieves a portfolio by ID. It returns
// domain.ErrPortfolioNotFound if the portfolio does not exist.
func (s *PortfolioStore) Get(id string) (*domain.Portfolio, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.portfolios[id]
	if !ok {
		return nil, domain.ErrPortfolioNotFound
	}
	return p, nil
}

// Exists returns true if a portfolio with the given ID exists.
func (s *PortfolioStore) Exists(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.portfolios[id]
	return ok
}

// Adjust applies signed deltas to the portfolio's aggregate totals under
// the portfolio's own mutex. Only the trade executor calls this, as part of
// the atomic commit alongside the holding and ledger writes.
func (s *PortfolioStore) Adjust(portfolioID string, valueDelta, countDelta int64) error {
	p, err := s.Get(portfolioID)
	if err != nil {
		return err
	}

	p.Mu.Lock()
	defer p.Mu.Unlock()
	p.TotalHoldingValue += valueDelta
	p.ActiveHoldingCount += countDelta
	return nil
}

// Aggregate returns a snapshot of the portfolio's derived totals.
func (s *PortfolioStore) Aggregate(portfolioID string) (domain.PortfolioAggregate, error) {
	p, err := s.Get(portfolioID)
	if err != nil {
		return domain.PortfolioAggregate{}, err
	}
	return p.Aggregate(), nil
}
