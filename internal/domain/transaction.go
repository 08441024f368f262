package domain

import "time"

// Transaction is a ledger entry recording one executed trade. Entries are
// append-only once an execution commits; they are never mutated afterwards.
type Transaction struct {
	TransactionID string
	PortfolioID   string
	Symbol        string
	Direction     Direction
	Quantity      int64 // always > 0
	PricePerUnit  int64 // cents
	TotalAmount   int64 // cents, Quantity × PricePerUnit
	ExecutedAt    time.Time
}
