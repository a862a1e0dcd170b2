package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/naveenspark/jobdesk/internal/browser"
	"github.com/naveenspark/jobdesk/internal/config"
	"github.com/naveenspark/jobdesk/internal/jobs"
	"github.com/naveenspark/jobdesk/internal/logging"
	"github.com/naveenspark/jobdesk/internal/session"
	"github.com/naveenspark/jobdesk/internal/tui"
	"github.com/naveenspark/jobdesk/pkg/client"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	cmd := ""
	if len(args) > 0 {
		cmd = args[0]
	}

	switch cmd {
	case "--version", "version", "-v":
		fmt.Fprintln(out, "jobdesk "+version)
		return nil
	case "help", "--help", "-h":
		printHelp(out)
		return nil
	case "", "login", "logout", "register", "list":
	default:
		printHelp(out)
		return fmt.Errorf("unknown command %q", cmd)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.LogFile, cfg.Debug)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	sess := openSession(cfg, log)
	c := client.New(client.Endpoints{Login: cfg.LoginURL, Jobs: cfg.JobsURL}, sess,
		client.WithTimeout(cfg.HTTPTimeout))
	log.Debug("starting",
		zap.String("command", cmd),
		zap.String("version", version),
		zap.Bool("signed_in", sess.IsAuthenticated()))

	deps := tui.Deps{
		Session:     sess,
		API:         c,
		Log:         log,
		RegisterURL: cfg.RegisterURL,
		ReleasesURL: cfg.ReleasesURL,
		Version:     version,
	}

	switch cmd {
	case "login":
		return runTUI(deps, session.ViewSignIn)
	case "register":
		return runRegister(out, cfg.RegisterURL, browser.Open)
	case "logout":
		return runLogout(out, sess, cfg.Token != "")
	case "list":
		return runList(context.Background(), out, sess, c, log)
	}
	return runTUI(deps, session.ViewMain)
}

// openSession restores the stored session. A token file that cannot be read
// leaves the user signed out rather than failing startup.
func openSession(cfg *config.Config, log *zap.Logger) *session.Session {
	dir := cfg.Home
	if dir == "" {
		d, err := session.DefaultDir()
		if err != nil {
			log.Warn("no home directory, session will not persist", zap.Error(err))
			return session.New(&session.MemoryStore{})
		}
		dir = d
	}
	store := session.NewFileStore(dir)
	sess, err := session.Open(store, cfg.Token)
	if err != nil {
		log.Warn("reading stored session failed", zap.String("path", store.Path()), zap.Error(err))
		return sess
	}
	log.Debug("session restored", zap.String("path", store.Path()))
	return sess
}

func runTUI(deps tui.Deps, start session.View) error {
	p := tea.NewProgram(tui.NewApp(deps, start), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

func runRegister(out io.Writer, registerURL string, open func(string) error) error {
	if registerURL == "" {
		return errors.New("no registration page configured (JOBDESK_REGISTER_URL)")
	}
	fmt.Fprintln(out, "Opening browser to register...")
	if err := open(registerURL); err != nil {
		fmt.Fprintf(out, "Could not open browser. Visit this URL manually:\n  %s\n", registerURL)
	}
	fmt.Fprintln(out, "Once registered, sign in with: jobdesk login")
	return nil
}

func runLogout(out io.Writer, sess *session.Session, envToken bool) error {
	if !sess.IsAuthenticated() {
		fmt.Fprintln(out, "Already logged out.")
		return nil
	}
	if err := sess.Logout(); err != nil {
		return err
	}
	fmt.Fprintln(out, "Logged out.")
	if envToken {
		fmt.Fprintln(out, "JOBDESK_TOKEN is still set in your environment; unset it to stay signed out.")
	}
	return nil
}

// runList prints the user's job posts without starting the TUI.
func runList(ctx context.Context, out io.Writer, sess *session.Session, remote jobs.Remote, log *zap.Logger) error {
	if !sess.IsAuthenticated() {
		printSignedOut(out)
		return nil
	}

	s := jobs.New(remote, log)
	if err := s.Do(ctx, s.Load()); err != nil {
		return errors.New(s.LastError())
	}

	list := s.Jobs()
	if len(list) == 0 {
		fmt.Fprintln(out, "You have no jobs created.")
		return nil
	}
	for _, j := range list {
		line := fmt.Sprintf("#%s  %s", j.ID, j.Title)
		if j.Location != "" {
			line += "  (" + j.Location + ")"
		}
		fmt.Fprintln(out, line)
		if d := strings.Join(strings.Fields(j.Description), " "); d != "" {
			fmt.Fprintln(out, "    "+d)
		}
	}
	return nil
}
