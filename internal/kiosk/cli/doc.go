// Package cli provides the interactive drink kiosk front-end.
//
// It wires configuration, storage, the user store and the session
// controller into a line-oriented REPL. The REPL only calls UserStore and
// SessionController operations and renders their results or errors; it
// holds no balances of its own.
//
// Two modes are available:
//   - No user selected: list users, select one, view the menu, and manage
//     the roster with the admin commands.
//   - User selected: view and top up the balance, return funds, buy drinks,
//     view the purchase history, log out.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits or
// input ends. See runREPL for the command table.
package cli
