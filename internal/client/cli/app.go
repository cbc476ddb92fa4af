package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path"
	"sync"

	"github.com/dmitrijs2005/outreach-console/internal/client/api"
	"github.com/dmitrijs2005/outreach-console/internal/client/config"
	"github.com/dmitrijs2005/outreach-console/internal/client/gate"
	"github.com/dmitrijs2005/outreach-console/internal/client/repositories"
	"github.com/dmitrijs2005/outreach-console/internal/client/services"
	"github.com/dmitrijs2005/outreach-console/internal/client/session"
	"github.com/dmitrijs2005/outreach-console/internal/client/views"
	"github.com/dmitrijs2005/outreach-console/internal/logging"
)

const loginRoute = "/login"

// Screen names, also the last segment of their route.
const (
	screenLeads     = "leads"
	screenCampaigns = "campaigns"
	screenCalls     = "calls"
)

type App struct {
	config    *config.Config
	log       logging.Logger
	repos     *repositories.Repositories
	session   *session.Session
	api       *api.Client
	auth      services.AuthService
	leads     *views.LeadsView
	campaigns *views.CampaignsView
	calls     *views.CallsView
	reader    *bufio.Reader

	mu          sync.Mutex
	route       string
	refreshOff  bool
	stopRefresh func()
}

// NewApp opens the state database at c.StatePath and builds every component.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	repos, err := repositories.InitDatabase(ctx, c.StatePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", c.StatePath, "err", err)
		return nil, err
	}

	s := session.New(session.NewSQLiteStore(repos.DB))
	app := newApp(c, log, s)
	app.repos = repos
	return app, nil
}

// newApp wires everything above the persistence port; tests pass a memory session.
func newApp(c *config.Config, log logging.Logger, s *session.Session) *App {
	client := api.New(api.Config{
		PrimaryURL:    c.PrimaryAPI,
		SecondaryURL:  c.SecondaryAPI,
		Timeout:       c.RequestTimeout,
		RetryAttempts: c.RetryAttempts,
		Logger:        log,
	}, s)

	return &App{
		config:    c,
		log:       log,
		session:   s,
		api:       client,
		auth:      services.NewAuthService(client, s, log),
		leads:     views.NewLeads(client, log),
		campaigns: views.NewCampaigns(client, log),
		calls:     views.NewCalls(client, log),
		reader:    bufio.NewReader(os.Stdin),
		route:     loginRoute,
	}
}

// Run starts the REPL on stdin and releases resources when it returns.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	printlnFn("Outreach console (type 'help' for commands)")
	if a.isLoggedIn() {
		_ = a.Leads(ctx)
	} else {
		a.toLogin(ctx)
	}
	runREPL(ctx, a, a.status, bufio.NewScanner(a.reader))
}

func (a *App) Close() {
	a.setAutoRefresh(nil)
	if a.repos != nil {
		_ = a.repos.Close()
	}
}

func (a *App) isLoggedIn() bool {
	return a.auth.Authenticated(context.Background())
}

// routeFor returns the protected route of a screen, e.g. /admin/leads.
func (a *App) routeFor(screen string) string {
	return path.Join("/", a.config.AdminPath, screen)
}

func (a *App) currentRoute() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.route
}

func (a *App) setRoute(r string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.route = r
}

// currentScreen is the screen name of the current route, or "" on /login.
func (a *App) currentScreen() string {
	r := a.currentRoute()
	for _, s := range []string{screenLeads, screenCampaigns, screenCalls} {
		if r == a.routeFor(s) {
			return s
		}
	}
	return ""
}

func (a *App) toLogin(context.Context) {
	a.setAutoRefresh(nil)
	a.setRoute(loginRoute)
	printlnFn("Not logged in. Use 'login' to sign in.")
}

// navigate mounts a fresh gate for screen; render runs only when a credential is stored.
func (a *App) navigate(ctx context.Context, screen string, render func(ctx context.Context) error) error {
	g := gate.New(a.auth, a.toLogin, func(ctx context.Context) error {
		a.setRoute(a.routeFor(screen))
		return render(ctx)
	})
	return g.Mount(ctx)
}

// guard re-mounts the current screen's gate before an in-screen command.
func (a *App) guard(ctx context.Context, fn func(ctx context.Context, screen string) error) error {
	screen := a.currentScreen()
	if screen == "" {
		if a.isLoggedIn() {
			printlnFn("Open a screen first: leads, campaigns or calls")
			return nil
		}
		a.toLogin(ctx)
		return nil
	}
	return a.navigate(ctx, screen, func(ctx context.Context) error { return fn(ctx, screen) })
}

func (a *App) status() string {
	who := "anonymous"
	if desc, err := a.auth.Whoami(context.Background()); err == nil {
		who = desc
	}
	return fmt.Sprintf("%s %s", who, a.currentRoute())
}
