package users

import (
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/drinkkiosk/internal/common"
	"github.com/dmitrijs2005/drinkkiosk/internal/kiosk/models"
)

func scanUsers(rows *sql.Rows) ([]models.User, error) {
	defer rows.Close()

	var result []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.Username, &u.Balance); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		u.Balance = models.Money(u.Balance)
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate user rows: %w", err)
	}
	return result, nil
}

// expectOneRow turns a zero-row update or delete into common.ErrorNotFound.
func expectOneRow(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	switch n {
	case 0:
		return common.ErrorNotFound
	case 1:
		return nil
	default:
		return fmt.Errorf("%s: wrong rows affected count: %d", op, n)
	}
}
