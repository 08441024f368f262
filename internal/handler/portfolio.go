package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/soliveira/tradetalk/internal/domain"
	"github.com/soliveira/tradetalk/internal/service"
)

// PortfolioHandler handles HTTP requests for portfolio endpoints.
type PortfolioHandler struct {
	portfolioSvc *service.PortfolioService
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(portfolioSvc *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{portfolioSvc: portfolioSvc}
}

// registerPortfolioRequest is the JSON request body for POST /portfolios.
type registerPortfolioRequest struct {
	PortfolioID string `json:"portfolio_id"`
	PIN         string `json:"pin"`
}

// portfolioResponse is the JSON response for POST /portfolios (201 Created).
// The PIN hash is never exposed.
type portfolioResponse struct {
	PortfolioID        string  `json:"portfolio_id"`
	TotalHoldingValue  float64 `json:"total_holding_value"`
	ActiveHoldingCount int64   `json:"active_holding_count"`
	CreatedAt          string  `json:"created_at"`
}

// holdingResponse is a single holding in the holdings listing.
type holdingResponse struct {
	Symbol          string  `json:"symbol"`
	Quantity        int64   `json:"quantity"`
	LastPrice       float64 `json:"last_price"`
	LastPriceChange float64 `json:"last_price_change"`
	Value           float64 `json:"value"`
}

// holdingListResponse is the JSON response for GET /portfolios/{portfolio_id}/holdings.
type holdingListResponse struct {
	PortfolioID string            `json:"portfolio_id"`
	Holdings    []holdingResponse `json:"holdings"`
}

// transactionResponse is a single ledger entry in the transaction listing.
type transactionResponse struct {
	TransactionID string  `json:"transaction_id"`
	Direction     string  `json:"direction"`
	Symbol        string  `json:"symbol"`
	Quantity      int64   `json:"quantity"`
	Price         float64 `json:"price"`
	TotalAmount   float64 `json:"total_amount"`
	ExecutedAt    string  `json:"executed_at"`
}

// transactionListResponse is the JSON response for GET /portfolios/{portfolio_id}/transactions.
type transactionListResponse struct {
	Transactions []transactionResponse `json:"transactions"`
	Total        int                   `json:"total"`
	Page         int                   `json:"page"`
	Limit        int                   `json:"limit"`
}

// Register handles POST /portfolios.
func (h *PortfolioHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerPortfolioRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	portfolio, err := h.portfolioSvc.Register(service.RegisterPortfolioRequest{
		PortfolioID: req.PortfolioID,
		PIN:         req.PIN,
	})
	if err != nil {
		mapPortfolioError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, portfolioResponse{
		PortfolioID:        portfolio.PortfolioID,
		TotalHoldingValue:  0,
		ActiveHoldingCount: 0,
		CreatedAt:          portfolio.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	})
}

// Get handles GET /portfolios/{portfolio_id}.
func (h *PortfolioHandler) Get(w http.ResponseWriter, r *http.Request) {
	portfolioID := chi.URLParam(r, "portfolio_id")

	agg, err := h.portfolioSvc.GetAggregate(portfolioID)
	if err != nil {
		mapPortfolioError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"portfolio_id":         portfolioID,
		"total_holding_value":  domain.CentsToDollars(agg.TotalHoldingValue),
		"active_holding_count": agg.ActiveHoldingCount,
	})
}

// ListHoldings handles GET /portfolios/{portfolio_id}/holdings.
func (h *PortfolioHandler) ListHoldings(w http.ResponseWriter, r *http.Request) {
	portfolioID := chi.URLParam(r, "portfolio_id")

	holdings, err := h.portfolioSvc.ListHoldings(portfolioID)
	if err != nil {
		mapPortfolioError(w, err)
		return
	}

	resp := holdingListResponse{
		PortfolioID: portfolioID,
		Holdings:    make([]holdingResponse, len(holdings)),
	}
	for i, holding := range holdings {
		resp.Holdings[i] = holdingResponse{
			Symbol:          holding.Symbol,
			Quantity:        holding.Quantity,
			LastPrice:       domain.CentsToDollars(holding.LastPrice),
			LastPriceChange: holding.LastPriceChange,
			Value:           domain.CentsToDollars(holding.Value()),
		}
	}

	WriteJSON(w, http.StatusOK, resp)
}

// ListTransactions handles GET /portfolios/{portfolio_id}/transactions.
func (h *PortfolioHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	portfolioID := chi.URLParam(r, "portfolio_id")

	page := 1
	if p := r.URL.Query().Get("page"); p != "" {
		var err error
		page, err = strconv.Atoi(p)
		if err != nil {
			WriteValidationError(w, "page must be a valid integer")
			return
		}
	}

	limit := 20
	if l := r.URL.Query().Get("limit"); l != "" {
		var err error
		limit, err = strconv.Atoi(l)
		if err != nil {
			WriteValidationError(w, "limit must be a valid integer")
			return
		}
	}

	txns, total, err := h.portfolioSvc.ListTransactions(portfolioID, page, limit)
	if err != nil {
		mapPortfolioError(w, err)
		return
	}

	resp := transactionListResponse{
		Transactions: make([]transactionResponse, len(txns)),
		Total:        total,
		Page:         page,
		Limit:        limit,
	}
	for i, txn := range txns {
		resp.Transactions[i] = transactionResponse{
			TransactionID: txn.TransactionID,
			Direction:     string(txn.Direction),
			Symbol:        txn.Symbol,
			Quantity:      txn.Quantity,
			Price:         domain.CentsToDollars(txn.PricePerUnit),
			TotalAmount:   domain.CentsToDollars(txn.TotalAmount),
			ExecutedAt:    txn.ExecutedAt.UTC().Format("2006-01-02T15:04:05Z"),
		}
	}

	WriteJSON(w, http.StatusOK, resp)
}

// mapPortfolioError maps domain errors to HTTP responses for portfolio endpoints.
func mapPortfolioError(w http.ResponseWriter, err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		WriteValidationError(w, validationErr.Message)
		return
	}

	switch {
	case errors.Is(err, domain.ErrPortfolioAlreadyExists):
		WriteError(w, http.StatusConflict, "portfolio_already_exists", err.Error())
	case errors.Is(err, domain.ErrPortfolioNotFound):
		WriteError(w, http.StatusNotFound, "portfolio_not_found", err.Error())
	default:
		WriteError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}
