package domain

// Holding represents a portfolio's current position in a single symbol.
// Quantity is never negative; a holding whose quantity reaches zero is
// deleted rather than retained.
type Holding struct {
	PortfolioID     string
	Symbol          string
	Quantity        int64
	LastPrice       int64 // cents, refreshed from the quote on every trade
	LastPriceChange float64
}

// Value returns the holding's current value in cents (quantity × lastPrice).
func (h *Holding) Value() int64 {
	return h.Quantity * h.LastPrice
}
