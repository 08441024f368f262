package service

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/soliveira/tradetalk/internal/domain"
	"github.com/soliveira/tradetalk/internal/store"
)

// RegisterPortfolioRequest represents the input for portfolio registration.
type RegisterPortfolioRequest struct {
	PortfolioID string
	PIN         string
}

// PortfolioService handles portfolio registration and read queries.
type PortfolioService struct {
	portfolios *store.PortfolioStore
	holdings   *store.HoldingStore
	ledger     *store.TransactionStore
}

// NewPortfolioService creates a new PortfolioService.
func NewPortfolioService(
	portfolios *store.PortfolioStore,
	holdings *store.HoldingStore,
	ledger *store.TransactionStore,
) *PortfolioService {
	return &PortfolioService{
		portfolios: portfolios,
		holdings:   holdings,
		ledger:     ledger,
	}
}

// Register validates the request and creates a portfolio. The confirmation
// PIN is chosen per portfolio at registration and stored only as a bcrypt
// hash; there is no shared secret.
func (s *PortfolioService) Register(req RegisterPortfolioRequest) (*domain.Portfolio, error) {
	if !portfolioIDRegex.MatchString(req.PortfolioID) {
		return nil, &domain.ValidationError{
			Message: "portfolio_id must match ^[a-zA-Z0-9_-]{1,64}$",
		}
	}
	if !pinRegex.MatchString(req.PIN) {
		return nil, &domain.ValidationError{
			Message: "pin must be 4 to 8 digits",
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.PIN), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	portfolio := &domain.Portfolio{
		PortfolioID: req.PortfolioID,
		PINHash:     hash,
		CreatedAt:   time.Now(),
	}

	if err := s.portfolios.Create(portfolio); err != nil {
		return nil, err
	}
	return portfolio, nil
}

// GetAggregate returns the portfolio's derived totals.
func (s *PortfolioService) GetAggregate(portfolioID string) (domain.PortfolioAggregate, error) {
	return s.portfolios.Aggregate(portfolioID)
}

// ListHoldings returns the portfolio's current holdings ordered by symbol.
func (s *PortfolioService) ListHoldings(portfolioID string) ([]*domain.Holding, error) {
	if !s.portfolios.Exists(portfolioID) {
		return nil, domain.ErrPortfolioNotFound
	}
	return s.holdings.ListByPortfolio(portfolioID), nil
}

// ListTransactions returns a page of the portfolio's ledger, newest first,
// with the total count of entries.
func (s *PortfolioService) ListTransactions(portfolioID string, page, limit int) ([]*domain.Transaction, int, error) {
	if !s.portfolios.Exists(portfolioID) {
		return nil, 0, domain.ErrPortfolioNotFound
	}
	if page < 1 {
		return nil, 0, &domain.ValidationError{Message: "page must be >= 1"}
	}
	if limit < 1 || limit > 100 {
		return nil, 0, &domain.ValidationError{Message: "limit must be between 1 and 100"}
	}

	txns, total := s.ledger.ListByPortfolio(portfolioID, page, limit)
	return txns, total, nil
}
