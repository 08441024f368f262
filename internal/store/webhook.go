package store

import (
	"sync"

	"github.com/soliveira/tradetalk/internal/domain"
)

// WebhookStore is a thread-safe in-memory store for webhooks.
// Primary index: webhook_id → webhook.
// Secondary index: portfolio_id → event → webhook.
type WebhookStore struct {
	mu          sync.RWMutex
	webhooks    map[string]*domain.Webhook
	byPortfolio map[string]map[string]*domain.Webhook
}

// NewWebhookStore creates an empty WebhookStore.
func NewWebhookStore() *WebhookStore {
	return &WebhookStore{
		webhooks:    make(map[string]*domain.Webhook),
		byPortfolio: make(map[string]map[string]*domain.Webhook),
	}
}

// Upsert inserts or updates a webhook subscription keyed by
// (portfolio_id, event). If a subscription already exists for that pair, the
// URL and UpdatedAt are updated and the webhook_id remains stable. Returns
// true if a new subscription was created.
func (s *WebhookStore) Upsert(w *domain.Webhook) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if events, ok := s.byPortfolio[w.PortfolioID]; ok {
		if existing, ok := events[w.Event]; ok {
			if existing.URL != w.URL {
				existing.URL = w.URL
				existing.UpdatedAt = w.UpdatedAt
			}
			return false
		}
	}

	s.webhooks[w.WebhookID] = w

	if s.byPortfolio[w.PortfolioID] == nil {
		s.byPortfolio[w.PortfolioID] = make(map[string]*domain.Webhook)
	}
	s.byPortfolio[w.PortfolioID][w.Event] = w

	return true
}

// Get retrieves a webhook by ID. It returns
// domain.ErrWebhookNotFound if the webhook does not exist.
func (s *WebhookStore) Get(id string) (*domain.Webhook, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w, ok := s.webhooks[id]
	if !ok {
		return nil, domain.ErrWebhookNotFound
	}
	return w, nil
}

// GetByPortfolioEvent returns the subscription for (portfolio_id, event),
// or nil when the portfolio has no subscription for that event.
func (s *WebhookStore) GetByPortfolioEvent(portfolioID, event string) *domain.Webhook {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events, ok := s.byPortfolio[portfolioID]
	if !ok {
		return nil
	}
	return events[event]
}

// ListByPortfolio returns all webhook subscriptions for a portfolio.
func (s *WebhookStore) ListByPortfolio(portfolioID string) []*domain.Webhook {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events := s.byPortfolio[portfolioID]
	result := make([]*domain.Webhook, 0, len(events))
	for _, w := range events {
		result = append(result, w)
	}
	return result
}

// Delete removes a webhook subscription by ID. It returns
// domain.ErrWebhookNotFound if the webhook does not exist.
func (s *WebhookStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.webhooks[id]
	if !ok {
		return domain.ErrWebhookNotFound
	}
	delete(s.webhooks, id)
	if events, ok := s.byPortfolio[w.PortfolioID]; ok {
		delete(events, w.Event)
	}
	return nil
}
