// Package models defines the kiosk data models: users with their stored
// balance, and the drink catalog.
package models

import "github.com/shopspring/decimal"

// MaxAdminBalance is the upper bound for balances entered by an administrator.
var MaxAdminBalance = decimal.NewFromInt(99999)

// User is a roster entry keyed by its unique username.
type User struct {
	Username string
	// Balance is never negative and is kept rounded to cents.
	Balance decimal.Decimal
}

// Money rounds d to cents, the precision balances are stored with.
func Money(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// IsCents reports whether d has no fractional part below one cent.
func IsCents(d decimal.Decimal) bool {
	return d.Equal(d.Round(2))
}

// FormatMoney renders an amount the way the kiosk displays it, e.g. "$1.50".
func FormatMoney(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
