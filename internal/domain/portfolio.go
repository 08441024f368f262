package domain

import (
	"sync"
	"time"
)

// Portfolio represents a registered portfolio. The aggregate fields are
// derived state: TotalHoldingValue must always equal the sum over current
// holdings of quantity × lastPrice, and ActiveHoldingCount the number of
// holdings. They are mutated only by the trade executor, under Mu,
// transactionally with the holding and ledger writes.
type Portfolio struct {
	PortfolioID        string
	PINHash            []byte // bcrypt hash of the confirmation PIN
	TotalHoldingValue  int64  // cents
	ActiveHoldingCount int64
	CreatedAt          time.Time
	Mu                 sync.Mutex // per-portfolio lock for aggregate mutations
}

// PortfolioAggregate is a read snapshot of a portfolio's derived totals.
type PortfolioAggregate struct {
	TotalHoldingValue  int64
	ActiveHoldingCount int64
}

// Aggregate returns a snapshot of the portfolio's derived totals.
// The caller must not hold Mu.
func (p *Portfolio) Aggregate() PortfolioAggregate {
	p.Mu.Lock()
	defer p.Mu.Unlock()
	return PortfolioAggregate{
		TotalHoldingValue:  p.TotalHoldingValue,
		ActiveHoldingCount: p.ActiveHoldingCount,
	}
}
