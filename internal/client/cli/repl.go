package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	takeRedirect() bool
	printError(err error)

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	List(ctx context.Context) error
	Reload(ctx context.Context) error
	Feed(ctx context.Context) error
	Share(ctx context.Context, username string) error
	New(ctx context.Context) error
	Edit(ctx context.Context, id string) error
	Show(ctx context.Context, id string) error
	Theme(ctx context.Context) error
}

// requiresAuth lists the commands gated behind a logged-in session.
var requiresAuth = map[string]bool{
	"l":      true,
	"list":   true,
	"reload": true,
	"new":    true,
	"edit":   true,
	"show":   true,
	"logout": true,
}

const (
	helpLoggedIn  = "Available commands: (l)ist, reload, new, edit <id>, show <id>, feed, share [username], theme, logout, exit"
	helpLoggedOut = "Available commands: register, login, feed, share <username>, theme, exit"
)

// runREPL starts a simple read-eval-print loop for the ReMood CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. The loop exits on EOF or when the user types
// "exit" or "quit".
//
// Gating
//
// Commands in requiresAuth print a login hint while logged out. "login"
// while logged in shows the entry list instead of asking for credentials.
// After every command the REPL checks whether the session was ended by the
// server and, if so, asks for credentials again.
//
// Errors returned by command handlers are printed; the loop keeps running.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		fmt.Fprintf(w, "remood %s> ", statusFn())

		line, err := reader.ReadString('\n')
		if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
			fmt.Fprintln(w)
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		arg := ""
		if len(parts) > 1 {
			arg = parts[1]
		}

		if requiresAuth[cmd] && !a.isLoggedIn() {
			fmt.Fprintln(w, "Please log in first (type 'login').")
			continue
		}

		var cmdErr error

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(w, helpLoggedIn)
			} else {
				fmt.Fprintln(w, helpLoggedOut)
			}

		case "register":
			cmdErr = a.Register(ctx)

		case "login":
			if a.isLoggedIn() {
				cmdErr = a.List(ctx)
			} else {
				cmdErr = a.Login(ctx)
			}

		case "logout":
			cmdErr = a.Logout(ctx)

		case "l", "list":
			cmdErr = a.List(ctx)

		case "reload":
			cmdErr = a.Reload(ctx)

		case "feed":
			cmdErr = a.Feed(ctx)

		case "share":
			cmdErr = a.Share(ctx, arg)

		case "new":
			cmdErr = a.New(ctx)

		case "edit":
			cmdErr = a.Edit(ctx, arg)

		case "show":
			cmdErr = a.Show(ctx, arg)

		case "theme":
			cmdErr = a.Theme(ctx)

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}

		if cmdErr != nil {
			a.printError(cmdErr)
		}

		if a.takeRedirect() {
			fmt.Fprintln(w, "Your session has ended. Please log in again.")
			if err := a.Login(ctx); err != nil {
				a.printError(err)
			}
		}
	}
}
