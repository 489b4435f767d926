package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/drinkkiosk/internal/common"
	"github.com/dmitrijs2005/drinkkiosk/internal/dbx"
	"github.com/dmitrijs2005/drinkkiosk/internal/kiosk/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

const pgUniqueViolation = "23505"

// PostgresRepository implements Repository on PostgreSQL through the pgx
// database/sql driver.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func isPgConflict(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func (r *PostgresRepository) GetAll(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT username, balance FROM users ORDER BY username`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return scanUsers(rows)
}

func (r *PostgresRepository) Get(ctx context.Context, username string) (*models.User, error) {
	query :=
		`SELECT username, balance FROM users
		 WHERE username = $1
		 `

	u := &models.User{}
	err := r.db.QueryRowContext(ctx, query, username).Scan(&u.Username, &u.Balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	u.Balance = models.Money(u.Balance)
	return u, nil
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO users (username, balance) VALUES ($1, $2)`,
		user.Username, models.Money(user.Balance))
	if isPgConflict(err) {
		return common.ErrDuplicateUser
	}
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Rename(ctx context.Context, oldName, newName string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET username = $1 WHERE username = $2`, newName, oldName)
	if isPgConflict(err) {
		return common.ErrDuplicateUser
	}
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res, "rename")
}

func (r *PostgresRepository) Delete(ctx context.Context, username string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE username = $1`, username)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res, "delete")
}

func (r *PostgresRepository) SetBalance(ctx context.Context, username string, balance decimal.Decimal) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET balance = $1 WHERE username = $2`,
		models.Money(balance), username)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res, "set balance")
}
