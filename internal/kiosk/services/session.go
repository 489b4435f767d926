package services

import (
	"context"

	"github.com/dmitrijs2005/drinkkiosk/internal/common"
	"github.com/dmitrijs2005/drinkkiosk/internal/kiosk/models"
	"github.com/dmitrijs2005/drinkkiosk/internal/logging"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Roster is the part of UserStore the session needs. Balances are always
// re-read and written through it; the session never caches them.
type Roster interface {
	Get(ctx context.Context, username string) (decimal.Decimal, error)
	Adjust(ctx context.Context, username string, fn AdjustFunc) (before, after decimal.Decimal, err error)
}

// session is the runtime record of the active user. It is never persisted.
type session struct {
	id       string
	username string
	history  []string
	logger   logging.Logger
}

// SessionController is a two-state machine: logged out, or logged in as one
// user. It is not safe for concurrent use; the kiosk runs one action at a time.
type SessionController struct {
	roster  Roster
	catalog *models.Catalog
	step    decimal.Decimal
	logger  logging.Logger
	current *session
}

// NewSessionController returns a logged-out controller. step is the fixed
// top-up increment.
func NewSessionController(roster Roster, catalog *models.Catalog, step decimal.Decimal, logger logging.Logger) *SessionController {
	return &SessionController{roster: roster, catalog: catalog, step: step, logger: logger}
}

// Catalog returns the drinks on offer.
func (c *SessionController) Catalog() *models.Catalog {
	return c.catalog
}

// TopUpStep returns the amount added by TopUp.
func (c *SessionController) TopUpStep() decimal.Decimal {
	return c.step
}

// Select makes username the active user, starting a new session with an
// empty purchase history. Selecting while logged in switches users.
func (c *SessionController) Select(ctx context.Context, username string) error {
	if _, err := c.roster.Get(ctx, username); err != nil {
		return err
	}

	id := uuid.NewString()
	c.current = &session{
		id:       id,
		username: username,
		logger:   c.logger.With("session_id", id, "user", username),
	}
	c.current.logger.Info(ctx, "session started")
	return nil
}

// Logout ends the session, if any.
func (c *SessionController) Logout(ctx context.Context) {
	if c.current == nil {
		return
	}
	c.current.logger.Info(ctx, "session ended", "purchases", len(c.current.history))
	c.current = nil
}

// Current returns the active username.
func (c *SessionController) Current() (string, bool) {
	if c.current == nil {
		return "", false
	}
	return c.current.username, true
}

// History returns a copy of the drinks bought in this session, oldest first.
func (c *SessionController) History() []string {
	if c.current == nil {
		return nil
	}
	return append([]string(nil), c.current.history...)
}

// Balance reads the active user's balance.
func (c *SessionController) Balance(ctx context.Context) (decimal.Decimal, error) {
	if c.current == nil {
		return decimal.Zero, common.ErrNoActiveUser
	}
	return c.roster.Get(ctx, c.current.username)
}

// TopUp adds the fixed increment and returns the new balance.
func (c *SessionController) TopUp(ctx context.Context) (decimal.Decimal, error) {
	if c.current == nil {
		return decimal.Zero, common.ErrNoActiveUser
	}

	_, after, err := c.roster.Adjust(ctx, c.current.username, func(cur decimal.Decimal) (decimal.Decimal, error) {
		return cur.Add(c.step), nil
	})
	if err != nil {
		c.current.logger.Error(ctx, "top up failed", "error", err)
		return decimal.Zero, err
	}

	c.current.logger.Info(ctx, "balance topped up", "amount", c.step.StringFixed(2), "balance", after.StringFixed(2))
	return after, nil
}

// ReturnFunds empties the balance and reports how much was returned.
// A zero balance yields common.ErrNothingToReturn.
func (c *SessionController) ReturnFunds(ctx context.Context) (decimal.Decimal, error) {
	if c.current == nil {
		return decimal.Zero, common.ErrNoActiveUser
	}

	before, _, err := c.roster.Adjust(ctx, c.current.username, func(cur decimal.Decimal) (decimal.Decimal, error) {
		if !cur.IsPositive() {
			return cur, common.ErrNothingToReturn
		}
		return decimal.Zero, nil
	})
	if err != nil {
		return decimal.Zero, err
	}

	c.current.logger.Info(ctx, "funds returned", "amount", before.StringFixed(2))
	return before, nil
}

// Purchase debits the price of drink and returns the new balance. The
// balance is left untouched when the drink is unknown or not affordable;
// an exact match of balance and price succeeds.
func (c *SessionController) Purchase(ctx context.Context, drink string) (decimal.Decimal, error) {
	if c.current == nil {
		return decimal.Zero, common.ErrNoActiveUser
	}

	price, ok := c.catalog.Price(drink)
	if !ok {
		return decimal.Zero, common.ErrUnknownDrink
	}

	_, after, err := c.roster.Adjust(ctx, c.current.username, func(cur decimal.Decimal) (decimal.Decimal, error) {
		if cur.LessThan(price) {
			return cur, common.ErrInsufficientBalance
		}
		return cur.Sub(price), nil
	})
	if err != nil {
		c.current.logger.Warn(ctx, "purchase rejected", "drink", drink, "price", price.StringFixed(2), "error", err)
		return decimal.Zero, err
	}

	c.current.history = append(c.current.history, drink)
	c.current.logger.Info(ctx, "drink purchased", "drink", drink, "price", price.StringFixed(2), "balance", after.StringFixed(2))
	return after, nil
}
