package handler

import (
	"errors"
	"net/http"

	"github.com/soliveira/tradetalk/internal/domain"
	"github.com/soliveira/tradetalk/internal/service"
)

// ChatHandler handles HTTP requests for the conversational endpoint.
type ChatHandler struct {
	chatSvc *service.ChatService
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chatSvc *service.ChatService) *ChatHandler {
	return &ChatHandler{chatSvc: chatSvc}
}

// chatRequest is the JSON request body for POST /chat.
type chatRequest struct {
	SessionID   string `json:"session_id"`
	PortfolioID string `json:"portfolio_id"`
	Message     string `json:"message"`
}

// pendingTradeResponse echoes the trade awaiting confirmation.
type pendingTradeResponse struct {
	Direction string `json:"direction"`
	Symbol    string `json:"symbol"`
	Quantity  int64  `json:"quantity"`
}

// chatResponse is the JSON response for POST /chat. Handled=false tells the
// caller the message was not a trade instruction and should be routed to its
// general conversation layer.
type chatResponse struct {
	Reply        string                `json:"reply"`
	Handled      bool                  `json:"handled"`
	AwaitingPin  bool                  `json:"awaiting_pin"`
	PendingTrade *pendingTradeResponse `json:"pending_trade,omitempty"`
}

// HandleMessage handles POST /chat.
func (h *ChatHandler) HandleMessage(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	reply, err := h.chatSvc.HandleMessage(r.Context(), req.SessionID, req.PortfolioID, req.Message)
	if err != nil {
		mapChatError(w, err)
		return
	}

	resp := chatResponse{
		Reply:       reply.Text,
		Handled:     reply.Handled,
		AwaitingPin: reply.AwaitingPin,
	}
	if reply.PendingTrade != nil {
		resp.PendingTrade = &pendingTradeResponse{
			Direction: string(reply.PendingTrade.Direction),
			Symbol:    reply.PendingTrade.Symbol,
			Quantity:  reply.PendingTrade.Quantity,
		}
	}

	WriteJSON(w, http.StatusOK, resp)
}

// mapChatError maps domain errors to HTTP responses for the chat endpoint.
func mapChatError(w http.ResponseWriter, err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		WriteValidationError(w, validationErr.Message)
		return
	}

	switch {
	case errors.Is(err, domain.ErrPortfolioNotFound):
		WriteError(w, http.StatusNotFound, "portfolio_not_found", err.Error())
	default:
		WriteError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}
