package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/drinkkiosk/internal/common"
	"github.com/dmitrijs2005/drinkkiosk/internal/dbx"
	"github.com/dmitrijs2005/drinkkiosk/internal/kiosk/models"
	"github.com/shopspring/decimal"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func isSQLiteConflict(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	switch se.Code() {
	case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE:
		return true
	}
	return false
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT username, balance FROM users ORDER BY username`)
	if err != nil {
		return nil, fmt.Errorf("failed to select users: %w", err)
	}
	return scanUsers(rows)
}

func (r *SQLiteRepository) Get(ctx context.Context, username string) (*models.User, error) {
	u := &models.User{}
	err := r.db.QueryRowContext(ctx, `SELECT username, balance FROM users WHERE username = ?`, username).
		Scan(&u.Username, &u.Balance)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user[%s]: %w", username, err)
	}
	u.Balance = models.Money(u.Balance)
	return u, nil
}

func (r *SQLiteRepository) Create(ctx context.Context, user *models.User) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO users (username, balance) VALUES (?, ?)`,
		user.Username, models.Money(user.Balance).InexactFloat64())
	if isSQLiteConflict(err) {
		return common.ErrDuplicateUser
	}
	if err != nil {
		return fmt.Errorf("failed to insert user[%s]: %w", user.Username, err)
	}
	return nil
}

func (r *SQLiteRepository) Rename(ctx context.Context, oldName, newName string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET username = ? WHERE username = ?`, newName, oldName)
	if isSQLiteConflict(err) {
		return common.ErrDuplicateUser
	}
	if err != nil {
		return fmt.Errorf("failed to rename user[%s]: %w", oldName, err)
	}
	return expectOneRow(res, "rename")
}

func (r *SQLiteRepository) Delete(ctx context.Context, username string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE username = ?`, username)
	if err != nil {
		return fmt.Errorf("failed to delete user[%s]: %w", username, err)
	}
	return expectOneRow(res, "delete")
}

func (r *SQLiteRepository) SetBalance(ctx context.Context, username string, balance decimal.Decimal) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET balance = ? WHERE username = ?`,
		models.Money(balance).InexactFloat64(), username)
	if err != nil {
		return fmt.Errorf("failed to set balance of user[%s]: %w", username, err)
	}
	return expectOneRow(res, "set balance")
}
