package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/soliveira/tradetalk/internal/domain"
	"github.com/soliveira/tradetalk/internal/quote"
)

// Ledger is the transaction persistence the executor commits against.
// Discard removes an entry appended within an execution that subsequently
// failed; committed entries are never discarded.
type Ledger interface {
	Append(t *domain.Transaction) error
	Discard(transactionID string)
}

// Holdings is the holding persistence the executor commits against.
type Holdings interface {
	Get(portfolioID, symbol string) (*domain.Holding, bool)
	Upsert(h *domain.Holding) error
	Delete(portfolioID, symbol string) error
}

// Aggregates applies signed deltas to a portfolio's derived totals.
type Aggregates interface {
	Adjust(portfolioID string, valueDelta, countDelta int64) error
}

// Executor runs confirmed trade intents as single logical transactions
// against the quote provider and the persistence collaborators. All writes
// for one trade happen under the per-(portfolio, symbol) lock, and any
// write failure unwinds the earlier writes so the ledger, holding, and
// aggregate always stay mutually consistent.
type Executor struct {
	quotes     quote.Provider
	holdings   Holdings
	ledger     Ledger
	aggregates Aggregates
	locks      *LockManager
}

// NewExecutor creates a new Executor with the given collaborators.
func NewExecutor(
	quotes quote.Provider,
	holdings Holdings,
	ledger Ledger,
	aggregates Aggregates,
	locks *LockManager,
) *Executor {
	return &Executor{
		quotes:     quotes,
		holdings:   holdings,
		ledger:     ledger,
		aggregates: aggregates,
		locks:      locks,
	}
}

// Execute runs a confirmed trade intent. It re-fetches the quote (an
// estimate shown earlier is never trusted), validates sell sufficiency
// against the current holding, and commits the transaction entry, the
// holding delta, and the aggregate adjustment as one unit.
//
// Failure modes: domain.ErrQuoteUnavailable (provider error or missing
// price), *domain.InsufficientHoldingsError (sell larger than the current
// position), domain.ErrPersistenceFailure (any write failed; pre-execution
// state is restored). There are no automatic retries.
func (e *Executor) Execute(ctx context.Context, portfolioID string, intent domain.TradeIntent) (*domain.TradeResult, error) {
	if intent.Quantity <= 0 {
		return nil, &domain.ValidationError{Message: "quantity must be a positive integer"}
	}

	lock := e.locks.Get(portfolioID, intent.Symbol)
	lock.Lock()
	defer lock.Unlock()

	// Step 1: fresh quote. Prices are always re-validated at execution
	// time; a quote fetched for the confirmation estimate is stale here.
	q, err := e.quotes.GetQuote(ctx, intent.Symbol)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrQuoteUnavailable, err)
	}
	if q.Price < 0 {
		return nil, fmt.Errorf("%w: negative price for %s", domain.ErrQuoteUnavailable, intent.Symbol)
	}

	// Step 2: load the current holding and check sell sufficiency.
	prev, existed := e.holdings.Get(portfolioID, intent.Symbol)
	var oldQty, oldPrice int64
	if existed {
		oldQty = prev.Quantity
		oldPrice = prev.LastPrice
	}
	if intent.Direction == domain.DirectionSell && oldQty < intent.Quantity {
		return nil, &domain.InsufficientHoldingsError{
			Symbol:    intent.Symbol,
			Available: oldQty,
			Requested: intent.Quantity,
		}
	}

	// Steps 3–4: uniform delta arithmetic (a missing holding is a zero
	// position) and the monetary total from the fresh quote.
	totalAmount := q.Price * intent.Quantity
	newQty := oldQty + intent.SignedQuantity()

	// Step 5: append the ledger entry.
	txn := &domain.Transaction{
		TransactionID: uuid.New().String(),
		PortfolioID:   portfolioID,
		Symbol:        intent.Symbol,
		Direction:     intent.Direction,
		Quantity:      intent.Quantity,
		PricePerUnit:  q.Price,
		TotalAmount:   totalAmount,
		ExecutedAt:    time.Now().UTC(),
	}
	if err := e.ledger.Append(txn); err != nil {
		return nil, fmt.Errorf("%w: ledger append: %v", domain.ErrPersistenceFailure, err)
	}

	// Step 6: apply the holding delta, deleting instead of keeping a
	// zero-quantity row.
	created := !existed && intent.Direction == domain.DirectionBuy
	emptied := existed && newQty == 0

	if emptied {
		err = e.holdings.Delete(portfolioID, intent.Symbol)
	} else {
		err = e.holdings.Upsert(&domain.Holding{
			PortfolioID:     portfolioID,
			Symbol:          intent.Symbol,
			Quantity:        newQty,
			LastPrice:       q.Price,
			LastPriceChange: q.PercentChange,
		})
	}
	if err != nil {
		e.ledger.Discard(txn.TransactionID)
		return nil, fmt.Errorf("%w: holding write: %v", domain.ErrPersistenceFailure, err)
	}

	// Step 7: adjust the aggregate. The value delta is the holding's exact
	// revaluation (the position is also marked to the fresh price), which
	// keeps the aggregate equal to the sum over holdings of qty × lastPrice.
	valueDelta := newQty*q.Price - oldQty*oldPrice
	var countDelta int64
	if created {
		countDelta = 1
	} else if emptied {
		countDelta = -1
	}

	if err := e.aggregates.Adjust(portfolioID, valueDelta, countDelta); err != nil {
		// Step 8: unwind the holding write and the ledger entry.
		if existed {
			_ = e.holdings.Upsert(prev)
		} else {
			_ = e.holdings.Delete(portfolioID, intent.Symbol)
		}
		e.ledger.Discard(txn.TransactionID)
		return nil, fmt.Errorf("%w: aggregate adjust: %v", domain.ErrPersistenceFailure, err)
	}

	return &domain.TradeResult{
		TransactionID: txn.TransactionID,
		PortfolioID:   portfolioID,
		Direction:     intent.Direction,
		Symbol:        intent.Symbol,
		Quantity:      intent.Quantity,
		Price:         q.Price,
		TotalAmount:   totalAmount,
		NewQuantity:   newQty,
		ExecutedAt:    txn.ExecutedAt,
	}, nil
}
