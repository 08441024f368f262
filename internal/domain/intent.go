package domain

import "fmt"

// Direction indicates whether a trade intent buys or sells shares.
type Direction string

const (
	DirectionBuy  Direction = "buy"
	DirectionSell Direction = "sell"
)

// TradeIntent is a structured trade instruction extracted from a chat
// message. It is immutable once parsed.
type TradeIntent struct {
	Direction Direction
	Symbol    string // 1–5 uppercase letters
	Quantity  int64  // always > 0
}

// Canonical renders the intent in the grammar the parser accepts, so that
// re-parsing the rendering yields an identical intent.
func (i TradeIntent) Canonical() string {
	return fmt.Sprintf("%s %d shares of %s", i.Direction, i.Quantity, i.Symbol)
}

// SignedQuantity returns the quantity with a sign matching the direction:
// positive for buys, negative for sells.
func (i TradeIntent) SignedQuantity() int64 {
	if i.Direction == DirectionSell {
		return -i.Quantity
	}
	return i.Quantity
}
