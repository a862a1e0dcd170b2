package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/naveenspark/jobdesk/internal/jobs"
	"github.com/naveenspark/jobdesk/internal/session"
)

// API is the remote service the TUI talks to.
type API interface {
	jobs.Remote
	loginAPI
}

// Deps are the collaborators of the root model.
type Deps struct {
	Session     *session.Session
	API         API
	Log         *zap.Logger
	RegisterURL string
	ReleasesURL string // latest-release endpoint; empty disables the check
	Version     string
}

// App is the root Bubbletea model.
type App struct {
	sess        *session.Session
	guard       session.Guard
	api         API
	log         *zap.Logger
	registerURL string
	releasesURL string
	version     string
	latest      string // newer published version, if any

	view     session.View
	signin   signinModel
	register registerModel
	main     jobsModel
	mainGen  int // bumped for every fresh main view
	helpOpen bool
	notice   string

	width  int
	height int
	frame  int // logo shimmer animation frame
}

// NewApp creates the TUI. start is the view the user asked for; the session
// guard may redirect it.
func NewApp(d Deps, start session.View) App {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}
	a := App{
		sess:        d.Session,
		guard:       session.NewGuard(d.Session),
		api:         d.API,
		log:         log.Named("tui"),
		registerURL: d.RegisterURL,
		releasesURL: d.ReleasesURL,
		version:     d.Version,
		view:        -1,
	}
	a, _ = a.show(start)
	return a
}

func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{shimmerTickCmd(), checkRelease(a.releasesURL, a.version)}
	if a.view == session.ViewMain {
		cmds = append(cmds, a.main.load())
	}
	return tea.Batch(cmds...)
}

// show switches to the view the guard allows for requested. It reports
// whether a fresh main view was created and needs loading.
func (a App) show(requested session.View) (App, bool) {
	dec := a.guard.Resolve(requested)
	if dec.Redirected {
		a.log.Debug("view redirected",
			zap.Stringer("requested", requested),
			zap.Stringer("view", dec.View))
	}
	if dec.View == a.view {
		return a, false
	}

	a.view = dec.View
	switch a.view {
	case session.ViewSignIn:
		a.signin = newSigninModel(a.api)
	case session.ViewRegister:
		a.register = newRegisterModel(a.registerURL)
	case session.ViewMain:
		a.mainGen++
		a.main = newJobsModel(jobs.New(a.api, a.log), a.mainGen)
		a.main.width, a.main.height = a.width, a.bodyHeight()
		return a, true
	}
	return a, false
}

// navigate shows requested through the guard and loads the job list when
// the main view becomes active.
func (a App) navigate(requested session.View) (App, tea.Cmd) {
	a, fresh := a.show(requested)
	if fresh {
		return a, a.main.load()
	}
	return a, nil
}

func (a App) signOut() (App, tea.Cmd) {
	if err := a.sess.Logout(); err != nil {
		a.log.Warn("sign out: clearing stored token failed", zap.Error(err))
	}
	// Outcomes still in flight belong to the old session.
	a.mainGen++
	a.main.gen = -1
	a.notice = "Signed out."
	return a.navigate(session.ViewSignIn)
}

// Chrome: nav(1) + notice(1) + help(1) + one spare line.
const chromeLines = 4

func (a App) bodyHeight() int {
	return max(a.height-chromeLines, 0)
}

func (a App) editing() bool {
	switch a.view {
	case session.ViewSignIn:
		return true
	case session.ViewMain:
		return a.main.editing()
	}
	return false
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.main, _ = a.main.Update(tea.WindowSizeMsg{Width: msg.Width, Height: a.bodyHeight()})
		return a, nil

	case shimmerTickMsg:
		a.frame++
		return a, shimmerTickCmd()

	case releaseCheckMsg:
		a.latest = msg.latest
		return a, nil

	case signedInMsg:
		if a.view != session.ViewSignIn {
			return a, nil
		}
		var cmd tea.Cmd
		a.signin, cmd = a.signin.Update(msg)
		if msg.err != nil {
			a.log.Info("sign in failed", zap.Error(msg.err))
			return a, cmd
		}
		if err := a.sess.Login(msg.token); err != nil {
			a.log.Error("sign in: storing token failed", zap.Error(err))
			if !a.sess.IsAuthenticated() {
				a.signin.err = msgLoginFailed
				return a, cmd
			}
		}
		a.notice = "Login successful!"
		return a.navigate(session.ViewMain)

	case registerOpenedMsg:
		if msg.err != nil {
			a.log.Warn("opening registration page failed", zap.Error(msg.err))
		}
		a.register, _ = a.register.Update(msg)
		return a, nil

	case jobOutcomeMsg, jobCopiedMsg:
		var cmd tea.Cmd
		a.main, cmd = a.main.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		a.notice = ""

		// Help overlay captures all keys when open
		if a.helpOpen {
			switch msg.String() {
			case "?", "esc":
				a.helpOpen = false
			case "q":
				return a, tea.Quit
			}
			return a, nil
		}

		if !a.editing() {
			switch msg.String() {
			case "?":
				a.helpOpen = true
				return a, nil
			case "q":
				return a, tea.Quit
			}
		}

		switch a.view {
		case session.ViewSignIn:
			if msg.String() == "ctrl+r" {
				return a.navigate(session.ViewRegister)
			}
		case session.ViewRegister:
			switch msg.String() {
			case "s", "esc":
				return a.navigate(session.ViewSignIn)
			}
		case session.ViewMain:
			if !a.main.editing() && msg.String() == "o" {
				return a.signOut()
			}
		}
	}

	var cmd tea.Cmd
	switch a.view {
	case session.ViewSignIn:
		a.signin, cmd = a.signin.Update(msg)
	case session.ViewRegister:
		a.register, cmd = a.register.Update(msg)
	case session.ViewMain:
		a.main, cmd = a.main.Update(msg)
	}
	return a, cmd
}

func (a App) View() string {
	nav := a.navBar()

	var body, help string
	switch a.view {
	case session.ViewSignIn:
		body = a.signin.View()
		help = helpBar(
			helpEntry("tab", "next"),
			helpEntry("enter", "sign in"),
			helpEntry("ctrl+r", "register"),
			helpEntry("ctrl+c", "quit"),
		)
	case session.ViewRegister:
		body = a.register.View()
		help = helpBar(
			helpEntry("enter", "open browser"),
			helpEntry("s", "sign in"),
			helpEntry("?", "help"),
			helpEntry("q", "quit"),
		)
	case session.ViewMain:
		body = a.main.View()
		help = a.main.helpKeys()
	}

	if a.helpOpen {
		body = helpView()
		help = helpBar(helpEntry("esc", "close"), helpEntry("q", "quit"))
	}

	notice := ""
	if a.notice != "" {
		notice = " " + successStyle.Render(a.notice)
	}

	body = strings.TrimRight(truncateToHeight(body, a.bodyHeight()), "\n")
	return fmt.Sprintf("%s\n%s\n%s\n%s", nav, body, notice, help)
}

// navBar renders the brand on the left and the session links on the right,
// which depend on whether the user is signed in.
func (a App) navBar() string {
	left := " " + renderShimmerLogo(a.frame)
	if a.version != "" {
		left += "  " + metaStyle.Render(a.version)
	}
	if a.latest != "" {
		left += "  " + locationStyle.Render(a.latest+" available")
	}

	link := func(label string, active bool) string {
		if active {
			return navActiveStyle.Render(label)
		}
		return navLinkStyle.Render(label)
	}
	sep := dimStyle.Render(" · ")

	var right string
	if a.sess != nil && a.sess.IsAuthenticated() {
		right = link("Main Page", a.view == session.ViewMain) + sep + link("Sign Out", false)
		id := a.sess.Identity()
		if who := id.Label(); who != "" {
			right = dimStyle.Render(who) + "  " + right
		}
		if id.Expired(time.Now()) {
			right = errorStyle.Render("session expired") + "  " + right
		}
	} else {
		right = link("Sign In", a.view == session.ViewSignIn) + sep + link("Register", a.view == session.ViewRegister)
	}
	right += " "

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}
