package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/drinkkiosk/internal/kiosk/config"
	"github.com/dmitrijs2005/drinkkiosk/internal/kiosk/models"
	"github.com/dmitrijs2005/drinkkiosk/internal/kiosk/repositories/repomanager"
	"github.com/dmitrijs2005/drinkkiosk/internal/kiosk/services"
	"github.com/dmitrijs2005/drinkkiosk/internal/logging"
	"golang.org/x/term"
)

// isTerminal is a test seam for term.IsTerminal.
var isTerminal = term.IsTerminal

type App struct {
	config  *config.Config
	db      *sql.DB
	store   *services.UserStore
	session *services.SessionController
	logger  logging.Logger

	reader      *bufio.Reader
	out         io.Writer
	interactive bool
}

// NewApp opens the database, applies migrations and checks that the roster
// can be read. Any failure here is a startup failure.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, err := logging.New(os.Stderr, c.LogLevel, c.LogFormat)
	if err != nil {
		return nil, err
	}

	catalog, err := models.NewCatalog(c.Catalog)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}

	db, m, err := repomanager.Open(ctx, c.DatabaseDSN, c.BusyTimeout)
	if err != nil {
		return nil, err
	}

	store := services.NewUserStore(db, m, logger)
	roster, err := store.LoadAll(ctx)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	logger.Info(ctx, "roster loaded", "backend", m.DriverName(), "users", len(roster))

	return &App{
		config:      c,
		db:          db,
		store:       store,
		session:     services.NewSessionController(store, catalog, c.TopUpStep, logger),
		logger:      logger,
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
		interactive: isTerminal(int(os.Stdin.Fd())),
	}, nil
}

// Run starts the REPL and closes the database once it returns.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.db.Close(); err != nil {
			a.logger.Error(ctx, "close database", "error", err)
		}
	}()

	if a.interactive {
		fmt.Fprintln(a.out, "Drink kiosk (type 'help' for commands)")
	}
	runREPL(ctx, a, a.prompt, a.reader)
	a.session.Logout(ctx)
}

func (a *App) isLoggedIn() bool {
	_, ok := a.session.Current()
	return ok
}

// prompt returns the REPL prompt, or "" when stdin is not a terminal.
func (a *App) prompt() string {
	if !a.interactive {
		return ""
	}
	if name, ok := a.session.Current(); ok {
		return fmt.Sprintf("kiosk (%s)> ", name)
	}
	return "kiosk> "
}
