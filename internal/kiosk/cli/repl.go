package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/drinkkiosk/internal/common"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL needs.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Users(ctx context.Context) error
	Select(ctx context.Context, username string) error
	Menu(ctx context.Context) error
	Admin(ctx context.Context, args []string) error
	Balance(ctx context.Context) error
	TopUp(ctx context.Context) error
	ReturnFunds(ctx context.Context) error
	Buy(ctx context.Context, drink string) error
	History(ctx context.Context) error
	Logout(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: users, select <name>, menu, admin add|rename|delete|balance, help, exit"
	helpLoggedIn  = "Available commands: balance, topup, return, buy <drink>, menu, history, logout, help, exit"
)

// runREPL reads commands from reader until EOF or "exit"/"quit".
//
// The first token is the command; the rest of the line is its argument, so
// names with spaces work for select and buy.
//
//	No user selected:
//	  users                 list the roster with balances
//	  select <name>         start a session for name
//	  menu                  list drinks and prices
//	  admin <sub> [args]    add, rename, delete or set the balance of a user
//
//	User selected:
//	  balance               show the balance
//	  topup                 add the fixed top-up amount
//	  return                pay out the whole balance
//	  buy <drink>           buy a drink
//	  menu                  list drinks and prices
//	  history               drinks bought in this session
//	  logout                end the session
//
// Errors returned by handlers are rendered and the loop keeps running.
func runREPL(ctx context.Context, a execIface, promptFn func() string, reader *bufio.Reader) {
	for {
		if p := promptFn(); p != "" {
			fmt.Print(p)
		}

		line, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		arg := strings.Join(parts[1:], " ")

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}

		case "menu":
			cmdErr = a.Menu(ctx)

		case "users", "select", "admin":
			if a.isLoggedIn() {
				printlnFn("Log out first to use:", cmd)
				break
			}
			switch cmd {
			case "users":
				cmdErr = a.Users(ctx)
			case "select":
				if arg == "" {
					printlnFn("Usage: select <name>")
					break
				}
				cmdErr = a.Select(ctx, arg)
			case "admin":
				cmdErr = a.Admin(ctx, parts[1:])
			}

		case "balance", "topup", "return", "buy", "history", "logout":
			if !a.isLoggedIn() {
				printlnFn("Select a user first")
				break
			}
			switch cmd {
			case "balance":
				cmdErr = a.Balance(ctx)
			case "topup":
				cmdErr = a.TopUp(ctx)
			case "return":
				cmdErr = a.ReturnFunds(ctx)
			case "buy":
				if arg == "" {
					printlnFn("Usage: buy <drink>")
					break
				}
				cmdErr = a.Buy(ctx, arg)
			case "history":
				cmdErr = a.History(ctx)
			case "logout":
				cmdErr = a.Logout(ctx)
			}

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", describeError(cmdErr))
		}

		if err != nil {
			return
		}
	}
}

// describeError renders err for the operator. Storage failures are shown
// without driver detail; that goes to the log.
func describeError(err error) string {
	if errors.Is(err, common.ErrStorage) {
		return "the user table is unavailable, please try again"
	}
	if errors.Is(err, common.ErrInvalidAmount) {
		return err.Error()
	}
	for _, known := range []error{
		common.ErrorNotFound,
		common.ErrDuplicateUser,
		common.ErrInvalidUsername,
		common.ErrNoActiveUser,
		common.ErrUnknownDrink,
		common.ErrInsufficientBalance,
		common.ErrNothingToReturn,
	} {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	return err.Error()
}
