package main

import (
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/charmbracelet/lipgloss"
)

// ANSI color constants for plain output (no lipgloss renderer outside the TUI).
const (
	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"
	ansiDeep  = "\033[38;2;59;130;246m" // #3b82f6
	ansiSky   = "\033[38;2;96;165;250m" // #60a5fa
)

var signedOutLines = [...]string{
	"Your job board is waiting. It just needs to know who you are.",
	"No session found. The postings will keep until you sign in.",
	"Sign in to pick up where you left off.",
	"Hiring starts with a sign in.",
}

// printLogo prints the spaced JOBDESK wordmark in alternating blues.
func printLogo(w io.Writer) {
	letters := "JOBDESK"
	colors := [2]string{ansiDeep, ansiSky}
	fmt.Fprint(w, "\n  ")
	for i, ch := range letters {
		fmt.Fprintf(w, "%s%s%c%s", colors[i%2], ansiBold, ch, ansiReset)
		if i < len(letters)-1 {
			fmt.Fprint(w, "  ")
		}
	}
	fmt.Fprintln(w)
}

func printHelp(w io.Writer) {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#60a5fa")).
		Bold(true).
		Render("J O B D E S K")

	tagline := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		Render("Manage your job posts from the terminal.")

	cmdStyle := lipgloss.NewStyle().Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	commands := []struct{ cmd, desc string }{
		{"jobdesk", "Open your job board (interactive TUI)"},
		{"jobdesk login", "Sign in with username and password"},
		{"jobdesk register", "Create an account in the browser"},
		{"jobdesk list", "Print your job posts"},
		{"jobdesk logout", "Clear your session"},
		{"jobdesk --version", "Show version"},
		{"jobdesk help", "You are here"},
	}

	fmt.Fprintf(w, "\n  %s\n\n  %s\n\n  Commands:\n", title, tagline)
	for _, c := range commands {
		fmt.Fprintf(w, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-20s", c.cmd)), descStyle.Render(c.desc))
	}
	env := descStyle.Render("Configure with JOBDESK_LOGIN_URL, JOBDESK_JOBS_URL and friends, or a .env file.")
	fmt.Fprintf(w, "\n  %s\n\n", env)
}

func printSignedOut(w io.Writer) {
	printLogo(w)
	msg := signedOutLines[rand.IntN(len(signedOutLines))]

	quote := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		Render(msg)

	hint := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Render("To sign in: jobdesk login")

	fmt.Fprintf(w, "\n  %s\n\n  %s\n\n", quote, hint)
}
