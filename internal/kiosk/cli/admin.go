package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/drinkkiosk/internal/kiosk/models"
	"github.com/shopspring/decimal"
)

const adminUsage = `Usage:
  admin add [name [balance]]       add a user (balance 0..99999, default 0)
  admin rename [old [new]]         rename a user
  admin delete [name]              delete a user, after confirmation
  admin balance [name [balance]]   set a user's balance (0..99999)

Names with spaces: pass them to delete as-is, or enter them at the prompt
for add, rename and balance.`

var errTooManyArgs = errors.New("too many arguments; enter names with spaces at the prompt")

// getSimpleText and confirm are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var confirm = Confirm

// Admin dispatches the roster management subcommands. Values missing from
// args are prompted for.
func (a *App) Admin(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, adminUsage)
		return nil
	}

	sub, rest := args[0], args[1:]
	if sub != "delete" && len(rest) > 2 {
		return errTooManyArgs
	}
	switch sub {
	case "add":
		return a.adminAdd(ctx, rest)
	case "rename":
		return a.adminRename(ctx, rest)
	case "delete":
		return a.adminDelete(ctx, rest)
	case "balance":
		return a.adminBalance(ctx, rest)
	default:
		fmt.Fprintln(a.out, adminUsage)
		return nil
	}
}

// arg returns args[i], or prompts for it when absent.
func (a *App) arg(args []string, i int, prompt string) (string, error) {
	if i < len(args) {
		return args[i], nil
	}
	return getSimpleText(a.reader, prompt, a.out)
}

func (a *App) amountArg(args []string, i int, prompt string, emptyIsZero bool) (decimal.Decimal, error) {
	s, err := a.arg(args, i, prompt)
	if err != nil {
		return decimal.Zero, err
	}
	if s == "" && emptyIsZero {
		return decimal.Zero, nil
	}
	return ParseAmount(s)
}

func (a *App) adminAdd(ctx context.Context, args []string) error {
	name, err := a.arg(args, 0, "Enter username")
	if err != nil {
		return err
	}
	initial, err := a.amountArg(args, 1, "Enter initial balance (empty for 0)", true)
	if err != nil {
		return err
	}
	if err := a.store.Create(ctx, name, initial); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "User %s added with %s.\n", name, models.FormatMoney(initial))
	return nil
}

func (a *App) adminRename(ctx context.Context, args []string) error {
	oldName, err := a.arg(args, 0, "Enter current username")
	if err != nil {
		return err
	}
	newName, err := a.arg(args, 1, "Enter new username")
	if err != nil {
		return err
	}
	if err := a.store.Rename(ctx, oldName, newName); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "User %s renamed to %s.\n", oldName, newName)
	return nil
}

// adminDelete takes the rest of the line as the name, like select.
func (a *App) adminDelete(ctx context.Context, args []string) error {
	if len(args) > 1 {
		args = []string{strings.Join(args, " ")}
	}
	name, err := a.arg(args, 0, "Enter username to delete")
	if err != nil {
		return err
	}
	if _, err := a.store.Get(ctx, name); err != nil {
		return err
	}

	ok, err := confirm(a.reader, fmt.Sprintf("Delete user %s? This cannot be undone.", name), a.out)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}

	if err := a.store.Delete(ctx, name); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "User %s deleted.\n", name)
	return nil
}

func (a *App) adminBalance(ctx context.Context, args []string) error {
	name, err := a.arg(args, 0, "Enter username")
	if err != nil {
		return err
	}
	balance, err := a.amountArg(args, 1, "Enter new balance", false)
	if err != nil {
		return err
	}
	if err := a.store.AdminSetBalance(ctx, name, balance); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Balance of %s set to %s.\n", name, models.FormatMoney(balance))
	return nil
}
