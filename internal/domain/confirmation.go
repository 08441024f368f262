package domain

import "time"

// PendingConfirmation holds a parsed trade awaiting PIN approval. It belongs
// to exactly one chat session, at most one may be outstanding per session,
// and it lives only in memory — losing it when the session ends is fine.
type PendingConfirmation struct {
	Intent         TradeIntent
	PortfolioID    string
	EstimatedPrice int64 // cents, advisory; execution re-fetches the quote
	IssuedAt       time.Time
	Attempts       int // failed PIN attempts so far
}

// ExpiredAt reports whether the confirmation is stale at the given time
// for the given staleness window.
func (p *PendingConfirmation) ExpiredAt(now time.Time, ttl time.Duration) bool {
	return now.Sub(p.IssuedAt) > ttl
}
