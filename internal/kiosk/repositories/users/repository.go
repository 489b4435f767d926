package users

import (
	"context"

	"github.com/dmitrijs2005/drinkkiosk/internal/kiosk/models"
	"github.com/shopspring/decimal"
)

// Repository describes roster queries over the users table.
type Repository interface {
	// GetAll returns every user, ordered by username.
	GetAll(ctx context.Context) ([]models.User, error)

	// Get returns a single user or common.ErrorNotFound.
	Get(ctx context.Context, username string) (*models.User, error)

	// Create inserts a user; common.ErrDuplicateUser if the name is taken.
	Create(ctx context.Context, user *models.User) error

	// Rename changes the key of an existing user, keeping its balance.
	Rename(ctx context.Context, oldName, newName string) error

	// Delete removes a user permanently.
	Delete(ctx context.Context, username string) error

	// SetBalance overwrites the stored balance of a user.
	SetBalance(ctx context.Context, username string, balance decimal.Decimal) error
}
