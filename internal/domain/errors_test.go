package domain

import (
	"errors"
	"testing"
)

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Message: "quantity must be a positive integer"}
	if err.Error() != "quantity must be a positive integer" {
		t.Errorf("Error() = %q, want %q", err.Error(), "quantity must be a positive integer")
	}
}

func TestInsufficientHoldingsError_StatesShortfall(t *testing.T) {
	err := &InsufficientHoldingsError{Symbol: "AAPL", Available: 3, Requested: 6}
	want := "insufficient holdings of AAPL: 3 shares available, 6 requested"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestInsufficientHoldingsError_MatchesSentinel(t *testing.T) {
	var err error = &InsufficientHoldingsError{Symbol: "TSLA", Available: 0, Requested: 1}
	if !errors.Is(err, ErrInsufficientHoldings) {
		t.Error("InsufficientHoldingsError should match ErrInsufficientHoldings")
	}
	var typed *InsufficientHoldingsError
	if !errors.As(err, &typed) {
		t.Fatal("errors.As should extract *InsufficientHoldingsError")
	}
	if typed.Available != 0 || typed.Requested != 1 {
		t.Errorf("got available=%d requested=%d, want 0 and 1", typed.Available, typed.Requested)
	}
}

func TestSentinelErrors_AreDistinct(t *testing.T) {
	errs := []error{
		ErrPortfolioAlreadyExists,
		ErrPortfolioNotFound,
		ErrHoldingNotFound,
		ErrInsufficientHoldings,
		ErrQuoteUnavailable,
		ErrPersistenceFailure,
		ErrTransactionNotFound,
		ErrWebhookNotFound,
	}
	for i := 0; i < len(errs); i++ {
		for j := i + 1; j < len(errs); j++ {
			if errors.Is(errs[i], errs[j]) {
				t.Errorf("sentinel errors %d and %d should be distinct", i, j)
			}
		}
	}
}
