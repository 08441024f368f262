package domain

import "time"

// Quote is a point-in-time market price snapshot for a symbol. It is
// authoritative only within the single execution it was fetched for and is
// never carried across a confirmation round-trip.
type Quote struct {
	Symbol        string
	Price         int64 // cents
	PercentChange float64
	Volume        int64
	MarketCap     int64 // cents, 0 when the provider does not report it
	AsOf          time.Time
}
