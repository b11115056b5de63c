// Package cli is the interactive Culinary Share client. It wires the
// configuration, the local session store, the REST client and the pages,
// then runs a REPL until the user exits.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/culinaryshare/internal/client/client"
	"github.com/dmitrijs2005/culinaryshare/internal/client/config"
	"github.com/dmitrijs2005/culinaryshare/internal/client/localdb"
	"github.com/dmitrijs2005/culinaryshare/internal/client/models"
	"github.com/dmitrijs2005/culinaryshare/internal/client/notify"
	"github.com/dmitrijs2005/culinaryshare/internal/client/pages"
	"github.com/dmitrijs2005/culinaryshare/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/culinaryshare/internal/client/session"
	"github.com/dmitrijs2005/culinaryshare/internal/logging"
)

// view is the listing the numeric recipe references point into.
type view int

const (
	viewNone view = iota
	viewHome
	viewSaved
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	logFile io.Closer

	deps        pages.Deps
	unsubscribe func()

	home  *pages.Home
	saved *pages.Saved
	view  view
	last  []models.Recipe

	reader *bufio.Reader
	out    io.Writer
}

// NewApp opens the session store and builds the API client. When the
// session database cannot be opened the session only lasts for this run.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.Nop()
	var logFile io.Closer
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		logger, err = logging.New(cfg.LogBackend, f)
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		logFile = f
	}

	var store metadata.Repository
	db, err := localdb.Open(ctx, cfg.SessionDBPath)
	if err != nil {
		logger.Warn(ctx, "session database unavailable, using memory", "path", cfg.SessionDBPath, "error", err)
		store = metadata.NewMemoryRepository()
		db = nil
	} else {
		store = metadata.NewSQLiteRepository(db)
	}

	api := client.NewHTTPClient(cfg.ServerURL, cfg.RequestTimeout)
	a := newApp(cfg, logger, api, store, os.Stdin, os.Stdout)
	a.db = db
	a.logFile = logFile
	return a, nil
}

func newApp(cfg *config.Config, logger logging.Logger, api client.Client, store metadata.Repository, in io.Reader, out io.Writer) *App {
	bus := notify.NewBus()
	deps := pages.Deps{
		API:     api,
		Session: session.New(api, store, logger),
		Bus:     bus,
		Logger:  logger,
	}

	a := &App{
		config: cfg,
		logger: logger,
		deps:   deps,
		home:   pages.NewHome(deps),
		reader: bufio.NewReader(in),
		out:    out,
	}
	a.unsubscribe = bus.Subscribe(a.printNotification)
	return a
}

func (a *App) printNotification(n notify.Notification) {
	mark := "ℹ"
	switch n.Kind {
	case notify.KindSuccess:
		mark = "✔"
	case notify.KindError:
		mark = "✖"
	}
	if _, err := fmt.Fprintln(a.out, mark, n.Message); err != nil {
		a.logger.Warn(context.Background(), "failed to print notification", "error", err)
	}
}

func (a *App) isLoggedIn() bool {
	return a.deps.Session.LoggedIn()
}

// status is shown in the prompt: the user name and any active filters.
func (a *App) status() string {
	s := "guest"
	if u := a.deps.Session.User(); u != nil {
		s = u.Username
	}
	if a.home.HasFilters() {
		term, difficulty := a.home.Filters()
		if term != "" {
			s += fmt.Sprintf(" search=%q", term)
		}
		if difficulty != models.DifficultyAll {
			s += " " + difficulty
		}
	}
	return "(" + s + ") "
}

// Run restores the previous session and serves the REPL until exit or EOF.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	printlnFn("Welcome to Culinary Share (type 'help' for commands)")
	if a.deps.Session.Restore(ctx) {
		printlnFn("Welcome back,", a.deps.Session.User().Username)
	}

	runREPL(ctx, a, a.status, a.reader)
	return nil
}

// Close releases the bus, the session database and the log file.
func (a *App) Close() {
	a.unsubscribe()
	a.deps.Bus.Close()
	if a.db != nil {
		_ = a.db.Close()
	}
	if a.logFile != nil {
		_ = a.logFile.Close()
	}
}
