package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/soliveira/tradetalk/internal/domain"
	"github.com/soliveira/tradetalk/internal/service"
)

// StockHandler handles HTTP requests for stock endpoints.
type StockHandler struct {
	quoteSvc *service.QuoteService
}

// NewStockHandler creates a new StockHandler.
func NewStockHandler(quoteSvc *service.QuoteService) *StockHandler {
	return &StockHandler{quoteSvc: quoteSvc}
}

// quoteResponse is the JSON response for GET /stocks/{symbol}/quote.
type quoteResponse struct {
	Symbol        string  `json:"symbol"`
	Price         float64 `json:"price"`
	PercentChange float64 `json:"percent_change"`
	Volume        int64   `json:"volume"`
	MarketCap     float64 `json:"market_cap"`
	AsOf          string  `json:"as_of"`
}

// GetQuote handles GET /stocks/{symbol}/quote.
func (h *StockHandler) GetQuote(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")

	q, err := h.quoteSvc.GetQuote(r.Context(), symbol)
	if err != nil {
		mapStockError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, quoteResponse{
		Symbol:        q.Symbol,
		Price:         domain.CentsToDollars(q.Price),
		PercentChange: q.PercentChange,
		Volume:        q.Volume,
		MarketCap:     domain.CentsToDollars(q.MarketCap),
		AsOf:          q.AsOf.UTC().Format("2006-01-02T15:04:05Z"),
	})
}

// mapStockError maps domain errors to HTTP responses for stock endpoints.
func mapStockError(w http.ResponseWriter, err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		WriteValidationError(w, validationErr.Message)
		return
	}

	switch {
	case errors.Is(err, domain.ErrQuoteUnavailable):
		WriteError(w, http.StatusBadGateway, "quote_unavailable", err.Error())
	default:
		WriteError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}
