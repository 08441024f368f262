package domain

import "fmt"

// CentsToDollars converts an int64 cents value to a float64 dollar amount.
func CentsToDollars(c int64) float64 {
	return float64(c) / 100.0
}

// FormatDollars renders a cents value as a dollar string for user-facing
// messages, e.g. 75000 → "$750.00", -350 → "-$3.50".
func FormatDollars(c int64) string {
	if c < 0 {
		return fmt.Sprintf("-$%.2f", CentsToDollars(-c))
	}
	return fmt.Sprintf("$%.2f", CentsToDollars(c))
}
