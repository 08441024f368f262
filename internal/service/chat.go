package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/soliveira/tradetalk/internal/domain"
	"github.com/soliveira/tradetalk/internal/parser"
	"github.com/soliveira/tradetalk/internal/quote"
	"github.com/soliveira/tradetalk/internal/store"
)

// pinRegex matches a PIN-shaped message: 4–8 digits and nothing else.
var pinRegex = regexp.MustCompile(`^\d{4,8}$`)

// PendingTradeEcho is the pending trade summary returned to the caller so a
// stateless UI can round-trip it on the next turn.
type PendingTradeEcho struct {
	Direction domain.Direction
	Symbol    string
	Quantity  int64
}

// ChatReply is what the conversational boundary returns for one message.
// Handled=false means the message was not a trade instruction and the
// caller should fall through to its general conversation layer.
type ChatReply struct {
	Text         string
	Handled      bool
	AwaitingPin  bool
	PendingTrade *PendingTradeEcho
}

// ChatService is the conversational boundary over the trading core. It
// parses each inbound message, runs the confirmation state machine
// (Idle → AwaitingPin → Executing → Idle), and invokes the trade service
// once a PIN is confirmed. All pending state is session-scoped.
type ChatService struct {
	sessions    *SessionStore
	portfolios  *store.PortfolioStore
	quotes      quote.Provider
	trades      *TradeService
	maxAttempts int
}

// NewChatService creates a new ChatService.
func NewChatService(
	sessions *SessionStore,
	portfolios *store.PortfolioStore,
	quotes quote.Provider,
	trades *TradeService,
	maxAttempts int,
) *ChatService {
	return &ChatService{
		sessions:    sessions,
		portfolios:  portfolios,
		quotes:      quotes,
		trades:      trades,
		maxAttempts: maxAttempts,
	}
}

// HandleMessage processes one chat turn for a session. It returns an error
// only for request-level problems (unknown portfolio, missing session id);
// every trade-flow outcome, including failed executions, is reported in the
// reply text so the conversation can continue.
func (s *ChatService) HandleMessage(ctx context.Context, sessionID, portfolioID, message string) (*ChatReply, error) {
	if sessionID == "" {
		return nil, &domain.ValidationError{Message: "session_id is required"}
	}
	portfolio, err := s.portfolios.Get(portfolioID)
	if err != nil {
		return nil, err
	}

	// Take removes the confirmation from the store before anything acts on
	// it, so when the same session sends concurrent messages exactly one
	// request owns the pending trade. Paths that don't consume it (a wrong
	// PIN with attempts left) put it back.
	pending := s.sessions.Take(sessionID)
	// A session that re-bound to a different portfolio abandons the old
	// pending trade rather than executing it against the wrong portfolio.
	if pending != nil && pending.PortfolioID != portfolioID {
		pending = nil
	}

	trimmed := strings.TrimSpace(message)

	if pending != nil {
		if pinRegex.MatchString(trimmed) {
			return s.handlePinAttempt(ctx, sessionID, portfolio, pending, trimmed), nil
		}
		if intent := parser.Parse(message); intent != nil {
			// Latest trade request wins; the old confirmation is superseded.
			return s.challenge(ctx, sessionID, portfolioID, *intent), nil
		}
		// Any other message cancels the pending trade with no side effects
		// and falls through to normal conversation.
		return &ChatReply{
			Text:    "Okay, I've cancelled the pending trade.",
			Handled: false,
		}, nil
	}

	intent := parser.Parse(message)
	if intent == nil {
		return &ChatReply{Handled: false}, nil
	}
	return s.challenge(ctx, sessionID, portfolioID, *intent), nil
}

// challenge fetches an advisory estimate, stores the pending confirmation,
// and asks for the PIN. The estimate is informational only: execution
// re-fetches the quote after the PIN is confirmed.
func (s *ChatService) challenge(ctx context.Context, sessionID, portfolioID string, intent domain.TradeIntent) *ChatReply {
	q, err := s.quotes.GetQuote(ctx, intent.Symbol)
	if err != nil {
		return &ChatReply{
			Text:    fmt.Sprintf("I couldn't fetch a current price for %s. Please try again in a moment.", intent.Symbol),
			Handled: true,
		}
	}

	s.sessions.Put(sessionID, &domain.PendingConfirmation{
		Intent:         intent,
		PortfolioID:    portfolioID,
		EstimatedPrice: q.Price,
		IssuedAt:       time.Now(),
	})

	estimate := q.Price * intent.Quantity
	return &ChatReply{
		Text: fmt.Sprintf(
			"You are about to %s %d share(s) of %s at ~%s per share (~%s total). Reply with your PIN to confirm, or send anything else to cancel.",
			intent.Direction, intent.Quantity, intent.Symbol,
			domain.FormatDollars(q.Price), domain.FormatDollars(estimate),
		),
		Handled:     true,
		AwaitingPin: true,
		PendingTrade: &PendingTradeEcho{
			Direction: intent.Direction,
			Symbol:    intent.Symbol,
			Quantity:  intent.Quantity,
		},
	}
}

// handlePinAttempt checks a PIN-shaped message against the portfolio's PIN
// hash and either executes the pending trade or re-prompts. The caller has
// already taken the confirmation out of the store; only a mismatch with
// attempts remaining puts it back, so a confirmation can execute at most
// once. Whatever the execution outcome, the session is back in the idle
// state afterwards.
func (s *ChatService) handlePinAttempt(ctx context.Context, sessionID string, portfolio *domain.Portfolio, pending *domain.PendingConfirmation, pin string) *ChatReply {
	if bcrypt.CompareHashAndPassword(portfolio.PINHash, []byte(pin)) != nil {
		pending.Attempts++
		if pending.Attempts >= s.maxAttempts {
			return &ChatReply{
				Text:    "Too many incorrect PIN attempts. The pending trade has been cancelled.",
				Handled: true,
			}
		}
		s.sessions.Put(sessionID, pending)
		remaining := s.maxAttempts - pending.Attempts
		// Re-prompt without repeating the trade details.
		return &ChatReply{
			Text:        fmt.Sprintf("Incorrect PIN. %d attempt(s) remaining.", remaining),
			Handled:     true,
			AwaitingPin: true,
			PendingTrade: &PendingTradeEcho{
				Direction: pending.Intent.Direction,
				Symbol:    pending.Intent.Symbol,
				Quantity:  pending.Intent.Quantity,
			},
		}
	}

	// PIN confirmed: this request owns the confirmation, execute it.
	result, err := s.trades.Execute(ctx, pending.PortfolioID, pending.Intent)
	if err != nil {
		return &ChatReply{Text: executionFailureText(err), Handled: true}
	}

	verb := "Bought"
	if result.Direction == domain.DirectionSell {
		verb = "Sold"
	}
	return &ChatReply{
		Text: fmt.Sprintf("%s %d share(s) of %s at %s per share (%s total).",
			verb, result.Quantity, result.Symbol,
			domain.FormatDollars(result.Price), domain.FormatDollars(result.TotalAmount),
		),
		Handled: true,
	}
}

// executionFailureText renders an execution error for the chat user. The
// shortfall message carries exact numbers; everything else stays generic.
func executionFailureText(err error) string {
	var shortfall *domain.InsufficientHoldingsError
	if errors.As(err, &shortfall) {
		return fmt.Sprintf("I can't do that: %s.", shortfall.Error())
	}
	if errors.Is(err, domain.ErrQuoteUnavailable) {
		return "I couldn't fetch a current price to execute the trade. Please try again in a moment."
	}
	return "The trade could not be completed. No changes were made to your portfolio."
}
