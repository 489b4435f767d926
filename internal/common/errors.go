// Package common defines sentinel errors shared by the kiosk repositories,
// services and the CLI front-end. Callers should match them with errors.Is.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound    = errors.New("user not found")
	ErrDuplicateUser = errors.New("username already exists")

	// ErrStorage wraps any failure of the backing table. On startup it is fatal.
	ErrStorage = errors.New("storage error")

	// Validation errors.
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidUsername = errors.New("invalid username")

	// Session errors.
	ErrNoActiveUser        = errors.New("no user selected")
	ErrUnknownDrink        = errors.New("unknown drink")
	ErrInsufficientBalance = errors.New("not enough money to purchase")
	ErrNothingToReturn     = errors.New("no money to return")
)
