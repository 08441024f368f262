package service

import (
	"context"
	"strings"

	"github.com/soliveira/tradetalk/internal/domain"
	"github.com/soliveira/tradetalk/internal/quote"
)

// QuoteService handles quote lookups for the stock endpoint.
type QuoteService struct {
	provider quote.Provider
}

// NewQuoteService creates a new QuoteService.
func NewQuoteService(provider quote.Provider) *QuoteService {
	return &QuoteService{provider: provider}
}

// GetQuote validates the symbol and fetches its current quote.
func (s *QuoteService) GetQuote(ctx context.Context, symbol string) (*domain.Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if !symbolRegex.MatchString(symbol) {
		return nil, &domain.ValidationError{
			Message: "symbol must match ^[A-Z]{1,5}$",
		}
	}
	return s.provider.GetQuote(ctx, symbol)
}
