package service

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/soliveira/tradetalk/internal/domain"
	"github.com/soliveira/tradetalk/internal/store"
)

// Valid webhook event types.
var validWebhookEvents = map[string]bool{
	"trade.executed":    true,
	"portfolio.updated": true,
}

// UpsertWebhookRequest represents the input for webhook registration.
type UpsertWebhookRequest struct {
	PortfolioID string
	URL         string
	Events      []string
}

// WebhookService handles webhook CRUD and event dispatch. It implements
// ChangeNotifier: deliveries run in their own goroutines, bounded by the
// client timeout, and failures are silently dropped.
type WebhookService struct {
	store      *store.WebhookStore
	portfolios *store.PortfolioStore
	client     *http.Client
}

// NewWebhookService creates a new WebhookService with the given dependencies.
func NewWebhookService(
	webhookStore *store.WebhookStore,
	portfolios *store.PortfolioStore,
	deliveryTimeout time.Duration,
) *WebhookService {
	return &WebhookService{
		store:      webhookStore,
		portfolios: portfolios,
		client: &http.Client{
			Timeout: deliveryTimeout,
		},
	}
}

// Upsert validates the request and creates or updates webhook subscriptions.
// Returns the resulting webhooks, whether any new subscriptions were
// created, and any error.
func (s *WebhookService) Upsert(req UpsertWebhookRequest) ([]*domain.Webhook, bool, error) {
	if !s.portfolios.Exists(req.PortfolioID) {
		return nil, false, domain.ErrPortfolioNotFound
	}

	if req.URL == "" {
		return nil, false, &domain.ValidationError{Message: "url is required"}
	}
	if len(req.URL) > 2048 {
		return nil, false, &domain.ValidationError{Message: "url must be at most 2048 characters"}
	}
	parsed, err := url.ParseRequestURI(req.URL)
	if err != nil || !parsed.IsAbs() {
		return nil, false, &domain.ValidationError{Message: "url must be a valid absolute URL"}
	}
	if parsed.Scheme != "https" {
		return nil, false, &domain.ValidationError{Message: "url must use https scheme"}
	}

	if len(req.Events) == 0 {
		return nil, false, &domain.ValidationError{Message: "events must be a non-empty array"}
	}

	// Deduplicate events while preserving order and validating.
	seen := make(map[string]bool, len(req.Events))
	dedupedEvents := make([]string, 0, len(req.Events))
	for _, event := range req.Events {
		if !validWebhookEvents[event] {
			return nil, false, &domain.ValidationError{
				Message: "Unknown event type: " + event + ". Must be one of: trade.executed, portfolio.updated",
			}
		}
		if !seen[event] {
			seen[event] = true
			dedupedEvents = append(dedupedEvents, event)
		}
	}

	// Upsert each (portfolio_id, event) pair.
	now := time.Now().UTC().Truncate(time.Second)
	anyCreated := false
	webhooks := make([]*domain.Webhook, 0, len(dedupedEvents))

	for _, event := range dedupedEvents {
		w := &domain.Webhook{
			WebhookID:   uuid.New().String(),
			PortfolioID: req.PortfolioID,
			Event:       event,
			URL:         req.URL,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		created := s.store.Upsert(w)
		if created {
			anyCreated = true
			webhooks = append(webhooks, w)
		} else {
			existing := s.store.GetByPortfolioEvent(req.PortfolioID, event)
			if existing != nil {
				webhooks = append(webhooks, existing)
			}
		}
	}

	return webhooks, anyCreated, nil
}

// List validates the portfolio exists and returns all its subscriptions.
func (s *WebhookService) List(portfolioID string) ([]*domain.Webhook, error) {
	if !s.portfolios.Exists(portfolioID) {
		return nil, domain.ErrPortfolioNotFound
	}
	return s.store.ListByPortfolio(portfolioID), nil
}

// Delete removes a webhook subscription by ID.
func (s *WebhookService) Delete(webhookID string) error {
	return s.store.Delete(webhookID)
}

// tradeExecutedPayload is the JSON payload for trade.executed webhooks.
type tradeExecutedPayload struct {
	Event     string            `json:"event"`
	Timestamp string            `json:"timestamp"`
	Data      tradeExecutedData `json:"data"`
}

type tradeExecutedData struct {
	TransactionID string  `json:"transaction_id"`
	PortfolioID   string  `json:"portfolio_id"`
	Direction     string  `json:"direction"`
	Symbol        string  `json:"symbol"`
	Quantity      int64   `json:"quantity"`
	Price         float64 `json:"price"`
	TotalAmount   float64 `json:"total_amount"`
	NewQuantity   int64   `json:"new_quantity"`
}

// portfolioUpdatedPayload is the JSON payload for portfolio.updated webhooks.
type portfolioUpdatedPayload struct {
	Event     string               `json:"event"`
	Timestamp string               `json:"timestamp"`
	Data      portfolioUpdatedData `json:"data"`
}

type portfolioUpdatedData struct {
	PortfolioID        string  `json:"portfolio_id"`
	TotalHoldingValue  float64 `json:"total_holding_value"`
	ActiveHoldingCount int64   `json:"active_holding_count"`
}

// PublishTradeExecuted dispatches a trade.executed webhook notification to
// the portfolio's subscriber. Fire-and-forget — errors are silently ignored.
func (s *WebhookService) PublishTradeExecuted(portfolioID string, result *domain.TradeResult) {
	wh := s.store.GetByPortfolioEvent(portfolioID, "trade.executed")
	if wh == nil {
		return
	}

	payload := tradeExecutedPayload{
		Event:     "trade.executed",
		Timestamp: result.ExecutedAt.UTC().Truncate(time.Second).Format(time.RFC3339),
		Data: tradeExecutedData{
			TransactionID: result.TransactionID,
			PortfolioID:   portfolioID,
			Direction:     string(result.Direction),
			Symbol:        result.Symbol,
			Quantity:      result.Quantity,
			Price:         domain.CentsToDollars(result.Price),
			TotalAmount:   domain.CentsToDollars(result.TotalAmount),
			NewQuantity:   result.NewQuantity,
		},
	}

	go s.deliver(wh, "trade.executed", payload)
}

// PublishPortfolioUpdated dispatches a portfolio.updated webhook
// notification to the portfolio's subscriber. Fire-and-forget.
func (s *WebhookService) PublishPortfolioUpdated(portfolioID string, agg domain.PortfolioAggregate) {
	wh := s.store.GetByPortfolioEvent(portfolioID, "portfolio.updated")
	if wh == nil {
		return
	}

	payload := portfolioUpdatedPayload{
		Event:     "portfolio.updated",
		Timestamp: time.Now().UTC().Truncate(time.Second).Format(time.RFC3339),
		Data: portfolioUpdatedData{
			PortfolioID:        portfolioID,
			TotalHoldingValue:  domain.CentsToDollars(agg.TotalHoldingValue),
			ActiveHoldingCount: agg.ActiveHoldingCount,
		},
	}

	go s.deliver(wh, "portfolio.updated", payload)
}

// deliver sends the webhook payload via HTTP POST with the delivery headers.
// Errors are silently ignored (fire-and-forget).
func (s *WebhookService) deliver(wh *domain.Webhook, eventType string, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		return
	}

	req, err := http.NewRequest(http.MethodPost, wh.URL, bytes.NewReader(body))
	if err != nil {
		return
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Delivery-Id", uuid.New().String())
	req.Header.Set("X-Webhook-Id", wh.WebhookID)
	req.Header.Set("X-Event-Type", eventType)

	resp, err := s.client.Do(req)
	if err != nil {
		return
	}
	resp.Body.Close()
}
