// Package repomanager picks the storage backend from the database DSN,
// vends repositories bound to a DBTX, and applies the goose migrations of
// the chosen dialect.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/drinkkiosk/internal/common"
	"github.com/dmitrijs2005/drinkkiosk/internal/dbx"
	"github.com/dmitrijs2005/drinkkiosk/internal/kiosk/repositories/users"
	"github.com/pressly/goose/v3"
)

type RepositoryManager interface {
	// DriverName is the database/sql driver the backend is opened with.
	DriverName() string
	RunMigrations(ctx context.Context, db *sql.DB) error
	Users(db dbx.DBTX) users.Repository
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// ForDSN returns the PostgreSQL manager for postgres:// and postgresql://
// DSNs and the SQLite manager for everything else.
func ForDSN(dsn string) RepositoryManager {
	lower := strings.ToLower(dsn)
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return &PostgresRepositoryManager{}
	}
	return &SQLiteRepositoryManager{}
}

// Open connects to dsn, verifies the connection and brings the schema up to
// date. Failures are reported as common.ErrStorage. The caller owns the
// returned *sql.DB and must Close it on shutdown.
func Open(ctx context.Context, dsn string, busyTimeout time.Duration) (*sql.DB, RepositoryManager, error) {
	m := ForDSN(dsn)

	if s, ok := m.(*SQLiteRepositoryManager); ok {
		dsn = s.withBusyTimeout(dsn, busyTimeout)
	}

	db, err := sql.Open(m.DriverName(), dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: open database: %w", common.ErrStorage, err)
	}

	if _, ok := m.(*SQLiteRepositoryManager); ok {
		// one kiosk process, one writer
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("%w: ping database: %w", common.ErrStorage, err)
	}

	if err := m.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("%w: run migrations: %w", common.ErrStorage, err)
	}

	return db, m, nil
}
