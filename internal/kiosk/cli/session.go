package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/drinkkiosk/internal/kiosk/models"
)

// Users prints the roster with balances.
func (a *App) Users(ctx context.Context) error {
	list, err := a.store.List(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No users yet. Add one with 'admin add'.")
		return nil
	}
	for _, u := range list {
		fmt.Fprintf(a.out, "%-20s %s\n", u.Username, models.FormatMoney(u.Balance))
	}
	return nil
}

// Select starts a session for username.
func (a *App) Select(ctx context.Context, username string) error {
	if err := a.session.Select(ctx, username); err != nil {
		return err
	}
	balance, err := a.session.Balance(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Hello, %s! Balance: %s\n", username, models.FormatMoney(balance))
	return nil
}

// Menu prints the drinks on offer.
func (a *App) Menu(ctx context.Context) error {
	for _, d := range a.session.Catalog().Drinks() {
		fmt.Fprintf(a.out, "%-20s %s\n", d.Name, models.FormatMoney(d.Price))
	}
	return nil
}

func (a *App) Balance(ctx context.Context) error {
	balance, err := a.session.Balance(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Balance: %s\n", models.FormatMoney(balance))
	return nil
}

func (a *App) TopUp(ctx context.Context) error {
	balance, err := a.session.TopUp(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Added %s. Balance: %s\n", models.FormatMoney(a.session.TopUpStep()), models.FormatMoney(balance))
	return nil
}

func (a *App) ReturnFunds(ctx context.Context) error {
	returned, err := a.session.ReturnFunds(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Returned %s. Please take your money.\n", models.FormatMoney(returned))
	return nil
}

// Buy purchases drink for the active user.
func (a *App) Buy(ctx context.Context, drink string) error {
	balance, err := a.session.Purchase(ctx, drink)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Enjoy your %s! Balance: %s\n", drink, models.FormatMoney(balance))
	return nil
}

// History prints the drinks bought since the user was selected.
func (a *App) History(ctx context.Context) error {
	history := a.session.History()
	if len(history) == 0 {
		fmt.Fprintln(a.out, "No purchases yet.")
		return nil
	}
	for i, drink := range history {
		fmt.Fprintf(a.out, "%d. %s\n", i+1, drink)
	}
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	name, _ := a.session.Current()
	a.session.Logout(ctx)
	fmt.Fprintf(a.out, "Goodbye, %s!\n", name)
	return nil
}
