package store

import (
	"sync"

	"github.com/soliveira/tradetalk/internal/domain"
)

// TransactionStore is a thread-safe in-memory ledger with a primary index
// by transaction_id and a secondary chronological index by portfolio_id.
// Entries are append-only once an execution commits.
type TransactionStore struct {
	mu          sync.RWMutex
	txns        map[string]*domain.Transaction
	byPortfolio map[string][]*domain.Transaction // portfolio_id → txns (chronological)
}

// NewTransactionStore creates an empty TransactionStore.
func NewTransactionStore() *TransactionStore {
	return &TransactionStore{
		txns:        make(map[string]*domain.Transaction),
		byPortfolio: make(map[string][]*domain.Transaction),
	}
}

// Append adds a transaction to the ledger and to the portfolio's
// chronological index.
func (s *TransactionStore) Append(t *domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.txns[t.TransactionID] = t
	s.byPortfolio[t.PortfolioID] = append(s.byPortfolio[t.PortfolioID], t)
	return nil
}

// Discard removes a transaction that was appended within an execution that
// subsequently failed, so no orphan ledger entry stays visible. The executor
// only calls this on its compensation path, before the execution commits.
func (s *TransactionStore) Discard(transactionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.txns[transactionID]
	if !ok {
		return
	}
	delete(s.txns, transactionID)

	list := s.byPortfolio[t.PortfolioID]
	for i := len(list) - 1; i >= 0; i-- {
		if list[i].TransactionID == transactionID {
			s.byPortfolio[t.PortfolioID] = append(list[:i], list[i+1:]...)
			return
		}
	}
}

// Get retrieves a transaction by ID. It returns
// domain.ErrTransactionNotFound if the transaction does not exist.
func (s *TransactionStore) Get(id string) (*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.txns[id]
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}
	return t, nil
}

// ListByPortfolio returns transactions for a portfolio in reverse
// chronological order (newest first). Pagination is 1-based. Returns the
// matching transactions for the requested page and the total count before
// pagination.
func (s *TransactionStore) ListByPortfolio(portfolioID string, page, limit int) ([]*domain.Transaction, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.byPortfolio[portfolioID]

	reversed := make([]*domain.Transaction, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		reversed = append(reversed, all[i])
	}

	total := len(reversed)

	start := (page - 1) * limit
	if start >= total {
		return []*domain.Transaction{}, total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return reversed[start:end], total
}
