// Package services contains the kiosk business logic: UserStore, the single
// owner of the persisted roster, and SessionController, which turns kiosk
// intents into balance changes.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/drinkkiosk/internal/common"
	"github.com/dmitrijs2005/drinkkiosk/internal/dbx"
	"github.com/dmitrijs2005/drinkkiosk/internal/kiosk/models"
	"github.com/dmitrijs2005/drinkkiosk/internal/kiosk/repositories/repomanager"
	"github.com/dmitrijs2005/drinkkiosk/internal/kiosk/repositories/users"
	"github.com/dmitrijs2005/drinkkiosk/internal/logging"
	"github.com/shopspring/decimal"
)

// AdjustFunc computes a new balance from the current one. Returning an error
// aborts the adjustment and leaves the stored balance unchanged.
type AdjustFunc func(current decimal.Decimal) (decimal.Decimal, error)

// UserStore owns the persisted roster {username → balance}. Every mutating
// call runs in its own transaction and is durable once it returns nil.
type UserStore struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

// NewUserStore binds a UserStore to an open database and its backend.
func NewUserStore(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *UserStore {
	return &UserStore{db: db, repomanager: m, logger: logger}
}

func (s *UserStore) repo(db dbx.DBTX) users.Repository {
	return s.repomanager.Users(db)
}

// storageErr passes kiosk sentinels through and marks everything else as
// common.ErrStorage.
func storageErr(err error) error {
	if err == nil {
		return nil
	}
	for _, known := range []error{
		common.ErrorNotFound,
		common.ErrDuplicateUser,
		common.ErrInvalidAmount,
		common.ErrInvalidUsername,
		common.ErrInsufficientBalance,
		common.ErrNothingToReturn,
	} {
		if errors.Is(err, known) {
			return err
		}
	}
	return fmt.Errorf("%w: %w", common.ErrStorage, err)
}

func normalizeUsername(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", common.ErrInvalidUsername
	}
	return name, nil
}

func validateBalance(b decimal.Decimal) error {
	if b.IsNegative() {
		return fmt.Errorf("%w: balance %s is negative", common.ErrInvalidAmount, b)
	}
	if !models.IsCents(b) {
		return fmt.Errorf("%w: balance %s has more than two decimal places", common.ErrInvalidAmount, b)
	}
	return nil
}

func validateAdminBalance(b decimal.Decimal) error {
	if err := validateBalance(b); err != nil {
		return err
	}
	if b.GreaterThan(models.MaxAdminBalance) {
		return fmt.Errorf("%w: balance %s exceeds %s", common.ErrInvalidAmount, b, models.MaxAdminBalance)
	}
	return nil
}

// LoadAll returns every persisted user and its balance.
func (s *UserStore) LoadAll(ctx context.Context) (map[string]decimal.Decimal, error) {
	list, err := s.repo(s.db).GetAll(ctx)
	if err != nil {
		return nil, storageErr(err)
	}
	roster := make(map[string]decimal.Decimal, len(list))
	for _, u := range list {
		roster[u.Username] = u.Balance
	}
	return roster, nil
}

// List returns the roster sorted by username, for display.
func (s *UserStore) List(ctx context.Context) ([]models.User, error) {
	list, err := s.repo(s.db).GetAll(ctx)
	if err != nil {
		return nil, storageErr(err)
	}
	return list, nil
}

// Get reads the current balance of username.
func (s *UserStore) Get(ctx context.Context, username string) (decimal.Decimal, error) {
	u, err := s.repo(s.db).Get(ctx, username)
	if err != nil {
		return decimal.Zero, storageErr(err)
	}
	return u.Balance, nil
}

// Create adds a user with an admin-chosen starting balance in [0, 99999].
func (s *UserStore) Create(ctx context.Context, username string, initial decimal.Decimal) error {
	name, err := normalizeUsername(username)
	if err != nil {
		return err
	}
	if err := validateAdminBalance(initial); err != nil {
		return err
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repo(tx).Create(ctx, &models.User{Username: name, Balance: initial})
	})
	if err != nil {
		s.logger.Warn(ctx, "create user failed", "user", name, "error", err)
		return storageErr(err)
	}

	s.logger.Info(ctx, "user created", "user", name, "balance", initial.StringFixed(2))
	return nil
}

// Rename changes the key of a user; the balance carries over unchanged.
func (s *UserStore) Rename(ctx context.Context, oldName, newName string) error {
	name, err := normalizeUsername(newName)
	if err != nil {
		return err
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)
		if name == oldName {
			_, err := repo.Get(ctx, oldName)
			return err
		}
		return repo.Rename(ctx, oldName, name)
	})
	if err != nil {
		s.logger.Warn(ctx, "rename user failed", "user", oldName, "new_name", name, "error", err)
		return storageErr(err)
	}

	s.logger.Info(ctx, "user renamed", "user", oldName, "new_name", name)
	return nil
}

// Delete removes a user permanently.
func (s *UserStore) Delete(ctx context.Context, username string) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repo(tx).Delete(ctx, username)
	})
	if err != nil {
		s.logger.Warn(ctx, "delete user failed", "user", username, "error", err)
		return storageErr(err)
	}

	s.logger.Info(ctx, "user deleted", "user", username)
	return nil
}

// SetBalance overwrites the balance of username. It is the only write path
// for balances; AdminSetBalance and Adjust both end up here.
func (s *UserStore) SetBalance(ctx context.Context, username string, balance decimal.Decimal) error {
	if err := validateBalance(balance); err != nil {
		return err
	}
	_, _, err := s.Adjust(ctx, username, func(decimal.Decimal) (decimal.Decimal, error) {
		return balance, nil
	})
	return err
}

// AdminSetBalance is SetBalance with the administrator's [0, 99999] bounds.
func (s *UserStore) AdminSetBalance(ctx context.Context, username string, balance decimal.Decimal) error {
	if err := validateAdminBalance(balance); err != nil {
		return err
	}
	return s.SetBalance(ctx, username, balance)
}

// Adjust reads the balance of username, computes the new value with fn and
// stores it, all within one transaction. A result that is negative or not
// whole cents is rejected with common.ErrInvalidAmount. It returns the
// balance before and after the change.
func (s *UserStore) Adjust(ctx context.Context, username string, fn AdjustFunc) (before, after decimal.Decimal, err error) {
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)

		u, err := repo.Get(ctx, username)
		if err != nil {
			return err
		}
		before = u.Balance

		next, err := fn(before)
		if err != nil {
			return err
		}
		if err := validateBalance(next); err != nil {
			return err
		}
		after = models.Money(next)

		return repo.SetBalance(ctx, username, after)
	})
	if err != nil {
		return decimal.Zero, decimal.Zero, storageErr(err)
	}

	s.logger.Debug(ctx, "balance updated", "user", username,
		"before", before.StringFixed(2), "after", after.StringFixed(2))
	return before, after, nil
}
