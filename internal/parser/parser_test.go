package parser

import (
	"testing"

	"github.com/soliveira/tradetalk/internal/domain"
)

func TestParse_ValidTrades(t *testing.T) {
	tests := []struct {
		message   string
		direction domain.Direction
		symbol    string
		quantity  int64
	}{
		{"buy 5 shares of AAPL", domain.DirectionBuy, "AAPL", 5},
		{"sell 3 shares of TSLA", domain.DirectionSell, "TSLA", 3},
		{"buy 10 AAPL", domain.DirectionBuy, "AAPL", 10},
		{"buy 10 aapl", domain.DirectionBuy, "AAPL", 10},
		{"sell 2 shares MSFT", domain.DirectionSell, "MSFT", 2},
		{"BUY 7 SHARES OF NFLX", domain.DirectionBuy, "NFLX", 7},
		{"buy 3 apple", domain.DirectionBuy, "AAPL", 3},
		{"sell 1 share of tesla", domain.DirectionSell, "TSLA", 1},
		{"buy 4 microsoft", domain.DirectionBuy, "MSFT", 4},
		{"buy 2 google", domain.DirectionBuy, "GOOG", 2},
		{"sell 6 amazon", domain.DirectionSell, "AMZN", 6},
		{"buy 9 meta", domain.DirectionBuy, "META", 9},
		{"buy 1 netflix", domain.DirectionBuy, "NFLX", 1},
		{"I would like to buy 5 shares of AAPL please", domain.DirectionBuy, "AAPL", 5},
	}
	for _, tt := range tests {
		got := Parse(tt.message)
		if got == nil {
			t.Errorf("Parse(%q) = nil, want an intent", tt.message)
			continue
		}
		if got.Direction != tt.direction || got.Symbol != tt.symbol || got.Quantity != tt.quantity {
			t.Errorf("Parse(%q) = %+v, want {%s %s %d}", tt.message, got, tt.direction, tt.symbol, tt.quantity)
		}
	}
}

func TestParse_NotATrade(t *testing.T) {
	messages := []string{
		"",
		"hello there",
		"what is my portfolio worth?",
		"buy shares of Apple",       // no quantity
		"buy 0 shares of AAPL",      // zero quantity
		"buy -5 shares of AAPL",     // negative quantity never matches
		"buy 5 shares",              // no symbol
		"buy 5 shares of",           // no symbol
		"buy five shares of AAPL",   // non-numeric quantity
		"buy 5 shares of unknowncorp", // unresolvable company name
		"purchase 5 shares of AAPL", // no direction keyword
		"buy 99999999999999999999 AAPL", // quantity overflows int64
	}
	for _, msg := range messages {
		if got := Parse(msg); got != nil {
			t.Errorf("Parse(%q) = %+v, want nil", msg, got)
		}
	}
}

func TestParse_IsPure(t *testing.T) {
	msg := "buy 5 shares of AAPL"
	first := Parse(msg)
	second := Parse(msg)
	if first == nil || second == nil {
		t.Fatal("expected both parses to succeed")
	}
	if *first != *second {
		t.Errorf("repeated parses differ: %+v vs %+v", first, second)
	}
}

func TestResolveSymbol(t *testing.T) {
	tests := []struct {
		token  string
		symbol string
		ok     bool
	}{
		{"apple", "AAPL", true},
		{"Apple", "AAPL", true},
		{"AAPL", "AAPL", true},
		{"aapl", "AAPL", true},
		{"xyz", "XYZ", true},
		{"unknowncorp", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		symbol, ok := ResolveSymbol(tt.token)
		if symbol != tt.symbol || ok != tt.ok {
			t.Errorf("ResolveSymbol(%q) = (%q, %v), want (%q, %v)", tt.token, symbol, ok, tt.symbol, tt.ok)
		}
	}
}
