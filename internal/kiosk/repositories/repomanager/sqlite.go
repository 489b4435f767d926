package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/drinkkiosk/internal/dbx"
	"github.com/dmitrijs2005/drinkkiosk/internal/kiosk/migrations"
	"github.com/dmitrijs2005/drinkkiosk/internal/kiosk/repositories/users"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// SQLiteRepositoryManager vends SQLite-backed repositories.
type SQLiteRepositoryManager struct{}

func (m *SQLiteRepositoryManager) DriverName() string { return "sqlite" }

func (m *SQLiteRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, migrations.DirSQLite)
}

// withBusyTimeout appends the busy_timeout pragma understood by
// modernc.org/sqlite unless the DSN already sets one.
func (m *SQLiteRepositoryManager) withBusyTimeout(dsn string, d time.Duration) string {
	if d <= 0 || strings.Contains(dsn, "busy_timeout") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%s_pragma=busy_timeout(%d)", dsn, sep, d.Milliseconds())
}
