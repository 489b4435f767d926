package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/drinkkiosk/internal/common"
	"github.com/dmitrijs2005/drinkkiosk/internal/kiosk/models"
	"github.com/jackc/pgx/v5/pgconn"
)

func newPgRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

const (
	qSelectAll = `(?s)^SELECT\s+username,\s*balance\s+FROM\s+users\s+ORDER\s+BY\s+username$`
	qSelectOne = `(?s)^SELECT\s+username,\s*balance\s+FROM\s+users\s+WHERE\s+username\s*=\s*\$1\s*$`
	qInsert    = `^INSERT\s+INTO\s+users\s*\(username,\s*balance\)\s*VALUES\s*\(\$1,\s*\$2\)$`
	qRename    = `^UPDATE\s+users\s+SET\s+username\s*=\s*\$1\s+WHERE\s+username\s*=\s*\$2$`
	qDelete    = `^DELETE\s+FROM\s+users\s+WHERE\s+username\s*=\s*\$1$`
	qBalance   = `^UPDATE\s+users\s+SET\s+balance\s*=\s*\$1\s+WHERE\s+username\s*=\s*\$2$`
)

func TestPostgres_GetAll(t *testing.T) {
	repo, mock, db := newPgRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"username", "balance"}).
		AddRow("alice", "1.50").
		AddRow("bob", "0.00")
	mock.ExpectQuery(qSelectAll).WillReturnRows(rows)

	got, err := repo.GetAll(context.Background())
	if err != nil {
		t.Fatalf("GetAll error: %v", err)
	}
	if len(got) != 2 || got[0].Username != "alice" || got[0].Balance.StringFixed(2) != "1.50" {
		t.Fatalf("unexpected users: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestPostgres_Get_FoundAndNotFound(t *testing.T) {
	repo, mock, db := newPgRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(qSelectOne).WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"username", "balance"}).AddRow("alice", "2.5"))
	mock.ExpectQuery(qSelectOne).WithArgs("ghost").WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(qSelectOne).WithArgs("x").WillReturnError(errors.New("db down"))

	u, err := repo.Get(context.Background(), "alice")
	if err != nil || u.Balance.StringFixed(2) != "2.50" {
		t.Fatalf("Get alice: got (%+v, %v)", u, err)
	}

	if _, err := repo.Get(context.Background(), "ghost"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}

	_, err = repo.Get(context.Background(), "x")
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestPostgres_Create(t *testing.T) {
	repo, mock, db := newPgRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(qInsert).WithArgs("alice", "1.5").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(qInsert).WithArgs("alice", "0").WillReturnError(&pgconn.PgError{Code: pgUniqueViolation})

	if err := repo.Create(context.Background(), &models.User{Username: "alice", Balance: dec("1.50")}); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	err := repo.Create(context.Background(), &models.User{Username: "alice"})
	if !errors.Is(err, common.ErrDuplicateUser) {
		t.Fatalf("want ErrDuplicateUser, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestPostgres_Rename(t *testing.T) {
	repo, mock, db := newPgRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(qRename).WithArgs("alicia", "alice").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(qRename).WithArgs("casper", "ghost").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(qRename).WithArgs("bob", "alicia").WillReturnError(&pgconn.PgError{Code: pgUniqueViolation})

	ctx := context.Background()
	if err := repo.Rename(ctx, "alice", "alicia"); err != nil {
		t.Fatalf("Rename error: %v", err)
	}
	if err := repo.Rename(ctx, "ghost", "casper"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want ErrorNotFound, got %v", err)
	}
	if err := repo.Rename(ctx, "alicia", "bob"); !errors.Is(err, common.ErrDuplicateUser) {
		t.Fatalf("want ErrDuplicateUser, got %v", err)
	}
}

func TestPostgres_DeleteAndSetBalance(t *testing.T) {
	repo, mock, db := newPgRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(qDelete).WithArgs("alice").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(qDelete).WithArgs("ghost").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(qBalance).WithArgs("3.25", "bob").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(qBalance).WithArgs("1", "ghost").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(qBalance).WithArgs("1", "bob").WillReturnResult(sqlmock.NewErrorResult(errors.New("no count")))

	ctx := context.Background()
	if err := repo.Delete(ctx, "alice"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if err := repo.Delete(ctx, "ghost"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want ErrorNotFound, got %v", err)
	}
	if err := repo.SetBalance(ctx, "bob", dec("3.25")); err != nil {
		t.Fatalf("SetBalance error: %v", err)
	}
	if err := repo.SetBalance(ctx, "ghost", dec("1")); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want ErrorNotFound, got %v", err)
	}
	err := repo.SetBalance(ctx, "bob", dec("1"))
	if err == nil || !regexp.MustCompile(`failed to get rows affected: no count`).MatchString(err.Error()) {
		t.Fatalf("expected rows affected error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}
