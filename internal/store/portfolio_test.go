package store

import (
	"testing"
	"time"

	"github.com/soliveira/tradetalk/internal/domain"
)

func TestPortfolioStore_CreateAndGet(t *testing.T) {
	s := NewPortfolioStore()

	err := s.Create(&domain.Portfolio{PortfolioID: "p1", CreatedAt: time.Now()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p, err := s.Get("p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.PortfolioID != "p1" {
		t.Errorf("got %q, want p1", p.PortfolioID)
	}

	if err := s.Create(&domain.Portfolio{PortfolioID: "p1"}); err != domain.ErrPortfolioAlreadyExists {
		t.Errorf("expected ErrPortfolioAlreadyExists, got %v", err)
	}
	if _, err := s.Get("missing"); err != domain.ErrPortfolioNotFound {
		t.Errorf("expected ErrPortfolioNotFound, got %v", err)
	}
	if !s.Exists("p1") || s.Exists("missing") {
		t.Error("Exists gave wrong answers")
	}
}

func TestPortfolioStore_Adjust(t *testing.T) {
	s := NewPortfolioStore()
	s.Create(&domain.Portfolio{PortfolioID: "p1"})

	if err := s.Adjust("p1", 75000, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Adjust("p1", -15000, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	agg, err := s.Aggregate("p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if agg.TotalHoldingValue != 60000 {
		t.Errorf("got total value %d, want 60000", agg.TotalHoldingValue)
	}
	if agg.ActiveHoldingCount != 1 {
		t.Errorf("got count %d, want 1", agg.ActiveHoldingCount)
	}

	if err := s.Adjust("missing", 1, 0); err != domain.ErrPortfolioNotFound {
		t.Errorf("expected ErrPortfolioNotFound, got %v", err)
	}
}
