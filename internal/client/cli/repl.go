package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Wallets(ctx context.Context) error
	History(ctx context.Context, args []string) error
	Refresh(ctx context.Context) error
	Create(ctx context.Context, args []string) error
	Delete(ctx context.Context) error
	Deposit(ctx context.Context) error
	Transfer(ctx context.Context) error
	Reveal(ctx context.Context) error
	Export(ctx context.Context) error
	QR(ctx context.Context) error
	SetName(ctx context.Context) error
	SetImage(ctx context.Context) error
	SetPin(ctx context.Context) error
}

const (
	helpLoggedIn  = "Available commands: wallets, history [address], refresh, create [label], delete, deposit, transfer, reveal, export, qr, setname, setimage, setpin, logout, exit"
	helpLoggedOut = "Available commands: register, login, exit"
)

// runREPL starts a read-eval-print loop for the walletdash CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Command handlers return errors for flow only; user-facing reporting
// happens inside the handlers, so the loop ignores the returned values.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("wd %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "w", "wallets":
			_ = a.Wallets(ctx)

		case "h", "history":
			_ = a.History(ctx, args)

		case "refresh":
			_ = a.Refresh(ctx)

		case "create":
			_ = a.Create(ctx, args)

		case "delete":
			_ = a.Delete(ctx)

		case "deposit":
			_ = a.Deposit(ctx)

		case "transfer":
			_ = a.Transfer(ctx)

		case "reveal":
			_ = a.Reveal(ctx)

		case "export":
			_ = a.Export(ctx)

		case "qr":
			_ = a.QR(ctx)

		case "setname":
			_ = a.SetName(ctx)

		case "setimage":
			_ = a.SetImage(ctx)

		case "setpin":
			_ = a.SetPin(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
