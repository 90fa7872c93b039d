package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/briandowns/spinner"
	"github.com/dmitrijs2005/remood/internal/client/client"
	"github.com/dmitrijs2005/remood/internal/client/config"
	"github.com/dmitrijs2005/remood/internal/client/localstore"
	"github.com/dmitrijs2005/remood/internal/client/services"
	"github.com/dmitrijs2005/remood/internal/client/session"
	"github.com/dmitrijs2005/remood/internal/filex"
	"github.com/dmitrijs2005/remood/internal/logging"
	"golang.org/x/term"
)

// sessionService is the part of *session.Session the CLI drives.
type sessionService interface {
	Login(ctx context.Context, username, password string) error
	Logout(ctx context.Context)
	Register(ctx context.Context, username, password string) error
	Restore(ctx context.Context) (session.State, error)
	IsAuthenticated() bool
	Username() string
}

type App struct {
	session sessionService
	entries services.EntryCache
	theme   services.ThemeService
	log     logging.Logger

	reader  *bufio.Reader
	out     io.Writer
	palette palette
	spin    bool

	// set by RedirectToLogin, consumed by the REPL after each command
	redirect atomic.Bool

	closers []func() error
}

// NewApp wires local storage, the API client, the session and the entry
// cache from cfg.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	if _, err := filex.EnsureParentDir(cfg.DatabasePath); err != nil {
		return nil, err
	}

	db, err := client.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	store, err := localstore.New(db, localstore.Backend(cfg.KeyBackend))
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	apiClient := client.NewHTTPClient(cfg.ServerURL, cfg.RequestTimeout, log.With("component", "api"))

	sess := session.New(apiClient, store, log.With("component", "session"))
	cache := services.NewEntryCache(apiClient, sess, log.With("component", "entries"), cfg.DecryptWorkers)
	sess.Attach(cache)

	app := &App{
		session: sess,
		entries: cache,
		theme:   services.NewThemeService(store),
		log:     log,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
		palette: newPalette(false),
		spin:    term.IsTerminal(int(os.Stdout.Fd())),
		closers: []func() error{apiClient.Close, db.Close},
	}
	sess.SetNavigator(app)

	return app, nil
}

// Run restores a persisted session and serves the REPL until the user exits
// or input ends.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	if dark, err := a.theme.IsDarkMode(ctx); err != nil {
		a.log.Warn(ctx, "failed to read theme preference", "error", err)
	} else {
		a.palette = newPalette(dark)
	}

	fmt.Fprintln(a.out, a.palette.title.Sprint("Welcome to ReMood CLI (type 'help' for commands)"))

	state, err := a.session.Restore(ctx)
	if err != nil {
		a.log.Error(ctx, "failed to restore session", "error", err)
	}
	if state == session.Authenticated {
		fmt.Fprintf(a.out, "Logged in as %s\n", a.session.Username())
		if err := a.List(ctx); err != nil {
			a.printError(err)
		}
	}

	runREPL(ctx, a, a.status, a.reader, a.out)
	return nil
}

func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) status() string {
	if u := a.session.Username(); u != "" {
		return fmt.Sprintf("(%s)", u)
	}
	return ""
}

// RedirectToLogin is called by the session after the server rejected the
// token. The REPL prompts for credentials once the current command returns.
func (a *App) RedirectToLogin(ctx context.Context) {
	a.redirect.Store(true)
}

func (a *App) takeRedirect() bool {
	return a.redirect.Swap(false)
}

// busy runs fn behind a spinner when stdout is a terminal.
func (a *App) busy(msg string, fn func() error) error {
	if !a.spin {
		return fn()
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + msg
	s.Start()
	defer s.Stop()
	return fn()
}

func (a *App) printError(err error) {
	fmt.Fprintln(a.out, a.palette.warn.Sprint("Error: ")+userMessage(err))
}
