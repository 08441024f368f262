package store

import (
	"testing"
	"time"

	"github.com/soliveira/tradetalk/internal/domain"
)

func newWebhook(id, portfolioID, event, url string) *domain.Webhook {
	now := time.Now().UTC().Truncate(time.Second)
	return &domain.Webhook{
		WebhookID:   id,
		PortfolioID: portfolioID,
		Event:       event,
		URL:         url,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestWebhookStore_UpsertCreatesAndUpdates(t *testing.T) {
	s := NewWebhookStore()

	created := s.Upsert(newWebhook("w1", "p1", "trade.executed", "https://example.com/a"))
	if !created {
		t.Error("first upsert should create")
	}

	// Same (portfolio, event): updates URL, keeps the original webhook_id.
	created = s.Upsert(newWebhook("w2", "p1", "trade.executed", "https://example.com/b"))
	if created {
		t.Error("second upsert for same pair should not create")
	}

	w := s.GetByPortfolioEvent("p1", "trade.executed")
	if w == nil {
		t.Fatal("expected subscription to exist")
	}
	if w.WebhookID != "w1" {
		t.Errorf("webhook_id should be stable, got %q", w.WebhookID)
	}
	if w.URL != "https://example.com/b" {
		t.Errorf("URL should be updated, got %q", w.URL)
	}
}

func TestWebhookStore_GetAndDelete(t *testing.T) {
	s := NewWebhookStore()
	s.Upsert(newWebhook("w1", "p1", "portfolio.updated", "https://example.com/a"))

	if _, err := s.Get("w1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Delete("w1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.Get("w1"); err != domain.ErrWebhookNotFound {
		t.Errorf("expected ErrWebhookNotFound, got %v", err)
	}
	if s.GetByPortfolioEvent("p1", "portfolio.updated") != nil {
		t.Error("secondary index should be cleaned up on delete")
	}
	if err := s.Delete("w1"); err != domain.ErrWebhookNotFound {
		t.Errorf("expected ErrWebhookNotFound on double delete, got %v", err)
	}
}

func TestWebhookStore_ListByPortfolio(t *testing.T) {
	s := NewWebhookStore()
	s.Upsert(newWebhook("w1", "p1", "trade.executed", "https://example.com/a"))
	s.Upsert(newWebhook("w2", "p1", "portfolio.updated", "https://example.com/a"))
	s.Upsert(newWebhook("w3", "p2", "trade.executed", "https://example.com/c"))

	list := s.ListByPortfolio("p1")
	if len(list) != 2 {
		t.Fatalf("got %d webhooks, want 2", len(list))
	}
	if got := s.ListByPortfolio("unknown"); len(got) != 0 {
		t.Errorf("expected empty list, got %d", len(got))
	}
}
