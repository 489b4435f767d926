package services

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/drinkkiosk/internal/kiosk/repositories/repomanager"
	"github.com/dmitrijs2005/drinkkiosk/internal/logging"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newTestStore(t *testing.T) (*UserStore, *sql.DB) {
	t.Helper()
	db, m, err := repomanager.Open(context.Background(), filepath.Join(t.TempDir(), "kiosk.db"), 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewUserStore(db, m, logging.Discard()), db
}

func requireBalance(t *testing.T, s *UserStore, name, want string) {
	t.Helper()
	got, err := s.Get(context.Background(), name)
	require.NoError(t, err)
	require.True(t, got.Equal(dec(want)), "balance of %s: want %s, got %s", name, want, got)
}
