package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain-level error handling.
// The handler layer maps these to HTTP status codes.
var (
	ErrPortfolioAlreadyExists = errors.New("portfolio_already_exists")
	ErrPortfolioNotFound      = errors.New("portfolio_not_found")
	ErrHoldingNotFound        = errors.New("holding_not_found")
	ErrInsufficientHoldings   = errors.New("insufficient_holdings")
	ErrQuoteUnavailable       = errors.New("quote_unavailable")
	ErrPersistenceFailure     = errors.New("persistence_failure")
	ErrTransactionNotFound    = errors.New("transaction_not_found")
	ErrWebhookNotFound        = errors.New("webhook_not_found")
)

// ValidationError represents a request validation failure.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// InsufficientHoldingsError is returned when a sell requests more shares
// than the portfolio holds. The message always states the exact shortfall.
type InsufficientHoldingsError struct {
	Symbol    string
	Available int64
	Requested int64
}

func (e *InsufficientHoldingsError) Error() string {
	return fmt.Sprintf("insufficient holdings of %s: %d shares available, %d requested",
		e.Symbol, e.Available, e.Requested)
}

// Unwrap lets errors.Is match the ErrInsufficientHoldings sentinel.
func (e *InsufficientHoldingsError) Unwrap() error {
	return ErrInsufficientHoldings
}
