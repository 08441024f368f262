package quote

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/soliveira/tradetalk/internal/domain"
)

// StaticProvider serves quotes from an in-memory price table. It backs
// tokenless/dev runs and tests; prices only move when SetPrice is called.
type StaticProvider struct {
	mu     sync.RWMutex
	prices map[string]staticQuote
}

type staticQuote struct {
	price         int64
	percentChange float64
	volume        int64
	marketCap     int64
}

// NewStaticProvider creates a provider seeded with a handful of well-known
// symbols so a fresh instance is usable immediately.
func NewStaticProvider() *StaticProvider {
	p := &StaticProvider{prices: make(map[string]staticQuote)}
	seed := map[string]staticQuote{
		"AAPL": {price: 15000, percentChange: 0.8, volume: 52_000_000, marketCap: 230_000_000_000_000},
		"TSLA": {price: 24500, percentChange: -1.2, volume: 98_000_000, marketCap: 78_000_000_000_000},
		"MSFT": {price: 41800, percentChange: 0.3, volume: 21_000_000, marketCap: 310_000_000_000_000},
		"GOOG": {price: 17200, percentChange: 0.1, volume: 18_000_000, marketCap: 215_000_000_000_000},
		"AMZN": {price: 18600, percentChange: 1.5, volume: 35_000_000, marketCap: 195_000_000_000_000},
		"META": {price: 52300, percentChange: -0.4, volume: 12_000_000, marketCap: 132_000_000_000_000},
		"NFLX": {price: 68900, percentChange: 2.1, volume: 4_000_000, marketCap: 29_000_000_000_000},
		"NVDA": {price: 13100, percentChange: 3.4, volume: 240_000_000, marketCap: 320_000_000_000_000},
	}
	for symbol, q := range seed {
		p.prices[symbol] = q
	}
	return p
}

// SetPrice sets or updates the price (in cents) for a symbol.
func (p *StaticProvider) SetPrice(symbol string, priceCents int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	q := p.prices[symbol]
	q.price = priceCents
	p.prices[symbol] = q
}

// Remove deletes a symbol from the table, making subsequent fetches fail.
func (p *StaticProvider) Remove(symbol string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.prices, symbol)
}

// GetQuote returns the table entry for the symbol, or
// domain.ErrQuoteUnavailable for unknown symbols.
func (p *StaticProvider) GetQuote(ctx context.Context, symbol string) (*domain.Quote, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	q, ok := p.prices[symbol]
	if !ok || q.price <= 0 {
		return nil, fmt.Errorf("%w: no price for %s", domain.ErrQuoteUnavailable, symbol)
	}

	return &domain.Quote{
		Symbol:        symbol,
		Price:         q.price,
		PercentChange: q.percentChange,
		Volume:        q.volume,
		MarketCap:     q.marketCap,
		AsOf:          time.Now().UTC(),
	}, nil
}
