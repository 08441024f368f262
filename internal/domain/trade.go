package domain

import "time"

// TradeResult describes a committed trade execution. It carries everything
// needed to render a confirmation message and to build notifier payloads.
type TradeResult struct {
	TransactionID string
	PortfolioID   string
	Direction     Direction
	Symbol        string
	Quantity      int64
	Price         int64 // cents per share, from the quote fetched at execution
	TotalAmount   int64 // cents
	NewQuantity   int64 // holding quantity after the trade
	ExecutedAt    time.Time
}
