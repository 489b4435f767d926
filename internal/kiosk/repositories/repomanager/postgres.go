package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/drinkkiosk/internal/dbx"
	"github.com/dmitrijs2005/drinkkiosk/internal/kiosk/migrations"
	"github.com/dmitrijs2005/drinkkiosk/internal/kiosk/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repositories, for kiosks
// that keep the roster on a shared server instead of a local file.
type PostgresRepositoryManager struct{}

func (m *PostgresRepositoryManager) DriverName() string { return "pgx" }

func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, migrations.DirPostgres)
}
