// Package quote provides access to current market prices. The core trades
// against whatever Provider it is wired with; the provider is consulted per
// symbol, never batched, and a fetch is only trusted for the single
// execution that requested it.
package quote

import (
	"context"

	"github.com/soliveira/tradetalk/internal/domain"
)

// Provider returns the current quote for a symbol. Implementations must be
// safe for concurrent use and must bound their own fetch latency; errors are
// surfaced to callers as domain.ErrQuoteUnavailable, never retried here.
type Provider interface {
	GetQuote(ctx context.Context, symbol string) (*domain.Quote, error)
}
