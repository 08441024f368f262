package store

import (
	"fmt"
	"testing"
	"time"

	"github.com/soliveira/tradetalk/internal/domain"
)

func appendTxn(t *testing.T, s *TransactionStore, id, portfolioID string) *domain.Transaction {
	t.Helper()
	txn := &domain.Transaction{
		TransactionID: id,
		PortfolioID:   portfolioID,
		Symbol:        "AAPL",
		Direction:     domain.DirectionBuy,
		Quantity:      1,
		PricePerUnit:  15000,
		TotalAmount:   15000,
		ExecutedAt:    time.Now(),
	}
	if err := s.Append(txn); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	return txn
}

func TestTransactionStore_AppendAndGet(t *testing.T) {
	s := NewTransactionStore()
	appendTxn(t, s, "t1", "p1")

	txn, err := s.Get("t1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if txn.PortfolioID != "p1" {
		t.Errorf("got portfolio %q, want p1", txn.PortfolioID)
	}

	if _, err := s.Get("missing"); err != domain.ErrTransactionNotFound {
		t.Errorf("expected ErrTransactionNotFound, got %v", err)
	}
}

func TestTransactionStore_Discard(t *testing.T) {
	s := NewTransactionStore()
	appendTxn(t, s, "t1", "p1")
	appendTxn(t, s, "t2", "p1")

	s.Discard("t1")

	if _, err := s.Get("t1"); err != domain.ErrTransactionNotFound {
		t.Errorf("discarded transaction should be gone, got %v", err)
	}
	list, total := s.ListByPortfolio("p1", 1, 10)
	if total != 1 || len(list) != 1 || list[0].TransactionID != "t2" {
		t.Errorf("expected only t2 to remain, got total=%d list=%v", total, list)
	}

	// Discarding an unknown ID is a no-op.
	s.Discard("missing")
}

func TestTransactionStore_ListByPortfolio_NewestFirst(t *testing.T) {
	s := NewTransactionStore()
	for i := 1; i <= 5; i++ {
		appendTxn(t, s, fmt.Sprintf("t%d", i), "p1")
	}
	appendTxn(t, s, "other", "p2")

	list, total := s.ListByPortfolio("p1", 1, 10)
	if total != 5 || len(list) != 5 {
		t.Fatalf("got total=%d len=%d, want 5 and 5", total, len(list))
	}
	for i, want := range []string{"t5", "t4", "t3", "t2", "t1"} {
		if list[i].TransactionID != want {
			t.Errorf("position %d: got %q, want %q", i, list[i].TransactionID, want)
		}
	}
}

func TestTransactionStore_ListByPortfolio_Pagination(t *testing.T) {
	s := NewTransactionStore()
	for i := 1; i <= 5; i++ {
		appendTxn(t, s, fmt.Sprintf("t%d", i), "p1")
	}

	list, total := s.ListByPortfolio("p1", 2, 2)
	if total != 5 {
		t.Errorf("got total=%d, want 5", total)
	}
	if len(list) != 2 || list[0].TransactionID != "t3" || list[1].TransactionID != "t2" {
		t.Errorf("page 2 = %v, want [t3 t2]", list)
	}

	list, total = s.ListByPortfolio("p1", 4, 2)
	if total != 5 || len(list) != 0 {
		t.Errorf("out-of-range page should be empty, got total=%d len=%d", total, len(list))
	}
}
