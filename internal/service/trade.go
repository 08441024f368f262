package service

import (
	"context"
	"regexp"

	"github.com/soliveira/tradetalk/internal/domain"
	"github.com/soliveira/tradetalk/internal/engine"
	"github.com/soliveira/tradetalk/internal/store"
)

var (
	portfolioIDRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)
	symbolRegex      = regexp.MustCompile(`^[A-Z]{1,5}$`)
)

// ChangeNotifier publishes state-change events to subscribers. Publishing is
// fire-and-forget: implementations must not block trade execution, and
// delivery is never confirmed.
type ChangeNotifier interface {
	PublishTradeExecuted(portfolioID string, result *domain.TradeResult)
	PublishPortfolioUpdated(portfolioID string, agg domain.PortfolioAggregate)
}

// TradeService validates confirmed trade intents, runs them through the
// executor, and fans the resulting state change out to subscribers.
type TradeService struct {
	executor   *engine.Executor
	portfolios *store.PortfolioStore
	notifier   ChangeNotifier
}

// NewTradeService creates a new TradeService. notifier may be nil, in which
// case no events are published.
func NewTradeService(executor *engine.Executor, portfolios *store.PortfolioStore, notifier ChangeNotifier) *TradeService {
	return &TradeService{
		executor:   executor,
		portfolios: portfolios,
		notifier:   notifier,
	}
}

// Execute runs a confirmed trade intent against the portfolio. On success
// the committed trade and the refreshed aggregate are published to
// subscribers; a failed execution publishes nothing.
func (s *TradeService) Execute(ctx context.Context, portfolioID string, intent domain.TradeIntent) (*domain.TradeResult, error) {
	if !portfolioIDRegex.MatchString(portfolioID) {
		return nil, &domain.ValidationError{
			Message: "portfolio_id must match ^[a-zA-Z0-9_-]{1,64}$",
		}
	}
	if !s.portfolios.Exists(portfolioID) {
		return nil, domain.ErrPortfolioNotFound
	}
	if !symbolRegex.MatchString(intent.Symbol) {
		return nil, &domain.ValidationError{
			Message: "symbol must match ^[A-Z]{1,5}$",
		}
	}
	if intent.Direction != domain.DirectionBuy && intent.Direction != domain.DirectionSell {
		return nil, &domain.ValidationError{
			Message: "direction must be 'buy' or 'sell'",
		}
	}
	if intent.Quantity <= 0 {
		return nil, &domain.ValidationError{
			Message: "quantity must be a positive integer",
		}
	}

	result, err := s.executor.Execute(ctx, portfolioID, intent)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.PublishTradeExecuted(portfolioID, result)
		if agg, err := s.portfolios.Aggregate(portfolioID); err == nil {
			s.notifier.PublishPortfolioUpdated(portfolioID, agg)
		}
	}

	return result, nil
}
