package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/dmitrijs2005/useradmin/internal/client/client"
	"github.com/dmitrijs2005/useradmin/internal/client/config"
	"github.com/dmitrijs2005/useradmin/internal/client/selection"
	"github.com/dmitrijs2005/useradmin/internal/client/services"
	"github.com/dmitrijs2005/useradmin/internal/client/session"
	"github.com/dmitrijs2005/useradmin/internal/client/view"
	"github.com/dmitrijs2005/useradmin/internal/logging"
)

type App struct {
	config    *config.Config
	log       logging.Logger
	db        *sql.DB
	auth      services.AuthService
	directory services.DirectoryService
	view      *view.State
	selection *selection.Tracker
	reader    *bufio.Reader
	out       io.Writer

	// busy is set while a bulk action is in flight.
	busy atomic.Bool
	// shown is the page last rendered; "#n" row references resolve against it.
	shown   view.Page
	unwatch func()
}

// NewApp opens the session database named in c and wires the API client and
// services around it.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(os.Stderr, c.LogLevel)

	db, err := session.InitDatabase(ctx, c.SessionDB)
	if err != nil {
		logger.Error(ctx, "error initializing database", "path", c.SessionDB, "error", err)
		return nil, err
	}

	store, err := session.OpenSQLiteStore(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	signal := session.NewSignal()
	apiClient, err := client.NewHTTPClient(c.APIBaseURL, c.RequestTimeout, store, signal, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	as := services.NewAuthService(apiClient, store, signal, logger)
	ds := services.NewDirectoryService(apiClient, logger)

	app := newApp(c, logger, as, ds, bufio.NewReader(os.Stdin), os.Stdout)
	app.db = db
	return app, nil
}

func newApp(c *config.Config, log logging.Logger, as services.AuthService, ds services.DirectoryService, r *bufio.Reader, w io.Writer) *App {
	a := &App{
		config:    c,
		log:       log,
		auth:      as,
		directory: ds,
		view:      view.NewState(c.RowsPerPage),
		selection: selection.NewTracker(),
		reader:    r,
		out:       w,
	}
	a.unwatch = as.Watch(a.onUnauthorized)
	return a
}

// Run blocks in the REPL until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	printlnFn("Welcome to the user admin CLI (type 'help' for commands)")
	if s, ok := a.auth.Current(); ok {
		a.sayf("Resumed session for %s", s.Email)
		_ = a.List(ctx)
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) Close() {
	if a.unwatch != nil {
		a.unwatch()
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.Warn(context.Background(), "failed to close session database", "error", err)
		}
	}
}

func (a *App) isLoggedIn() bool {
	return a.auth.IsAuthenticated()
}

// onUnauthorized runs for every 401 response. The store is already cleared;
// local view data tied to the lost session is dropped here.
func (a *App) onUnauthorized(ev session.Event) {
	a.directory.Reset()
	a.selection.Clear()
	a.shown = view.Page{}

	if ev.Path == client.PathLogin {
		return
	}
	a.say("Session expired. Please log in again.")
}

func (a *App) getStatus() string {
	s := ""
	if cur, ok := a.auth.Current(); ok {
		s = cur.Email
	}
	if a.busy.Load() {
		s += " *"
	}
	if s != "" {
		s = fmt.Sprintf("(%s) ", s)
	}
	return s
}

// say writes one line of user-facing output.
func (a *App) say(msg string) {
	fmt.Fprintln(a.out, msg)
}

func (a *App) sayf(format string, args ...any) {
	a.say(fmt.Sprintf(format, args...))
}
