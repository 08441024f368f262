// Package parser turns free-text chat messages into structured trade
// intents. Parsing is pure and deterministic: the same message always yields
// the same intent, and anything that does not match the grammar yields nil
// rather than an error.
package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/soliveira/tradetalk/internal/domain"
)

// tradeRegex matches the grammar: a buy/sell keyword, a quantity, an
// optional "share(s) (of)" filler, and a symbol-or-company token.
var tradeRegex = regexp.MustCompile(`(?i)\b(buy|sell)\s+(\d+)\s+(?:shares?\s+(?:of\s+)?)?([a-zA-Z]+)\b`)

// tickerRegex accepts resolved symbol tokens: 1–5 letters.
var tickerRegex = regexp.MustCompile(`^[a-zA-Z]{1,5}$`)

// companyAliases maps well-known company names to their tickers. Names not
// in this table and not ticker-shaped fail parsing.
var companyAliases = map[string]string{
	"apple":     "AAPL",
	"tesla":     "TSLA",
	"microsoft": "MSFT",
	"google":    "GOOG",
	"alphabet":  "GOOG",
	"amazon":    "AMZN",
	"meta":      "META",
	"facebook":  "META",
	"netflix":   "NFLX",
	"nvidia":    "NVDA",
}

// Parse extracts a trade intent from a raw chat message. It returns nil for
// anything that is not a trade: missing direction keyword, missing or
// non-positive quantity, or a symbol token that neither looks like a ticker
// nor resolves through the alias table.
func Parse(message string) *domain.TradeIntent {
	m := tradeRegex.FindStringSubmatch(message)
	if m == nil {
		return nil
	}

	quantity, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil || quantity <= 0 {
		return nil
	}

	symbol, ok := ResolveSymbol(m[3])
	if !ok {
		return nil
	}

	direction := domain.DirectionBuy
	if strings.EqualFold(m[1], string(domain.DirectionSell)) {
		direction = domain.DirectionSell
	}

	return &domain.TradeIntent{
		Direction: direction,
		Symbol:    symbol,
		Quantity:  quantity,
	}
}

// ResolveSymbol normalizes a symbol-or-company token: company names resolve
// through the alias table, ticker-shaped tokens (1–5 letters) are uppercased.
func ResolveSymbol(token string) (string, bool) {
	lower := strings.ToLower(token)
	if symbol, ok := companyAliases[lower]; ok {
		return symbol, true
	}
	if tickerRegex.MatchString(token) {
		return strings.ToUpper(token), true
	}
	return "", false
}
