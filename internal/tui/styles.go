package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Shimmer animation for the brand in the nav bar.
type shimmerTickMsg time.Time

func shimmerTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return shimmerTickMsg(t)
	})
}

const brand = "JOBDESK"

// renderShimmerLogo renders the brand as a slow wave of blue light.
// Deep navy (#1e2a5a) -> bright sky (#60a5fa). Letters are spaced apart.
func renderShimmerLogo(frame int) string {
	n := len(brand)
	t := float64(frame)

	var out strings.Builder
	for i := 0; i < n; i++ {
		x := float64(i) / float64(n-1)

		phase := t*0.1 - x*3.0
		phase += math.Sin(t*0.023) * 2.0

		b := math.Sin(phase)*0.5 + 0.5
		b = math.Pow(b, 1.3)

		tide := math.Sin(t*0.035) * 0.12
		b = b*0.75 + tide + 0.18

		if b > 1.0 {
			b = 1.0
		} else if b < 0.05 {
			b = 0.05
		}

		// Deep:   (30, 42, 90)    #1e2a5a
		// Bright: (96, 165, 250)  #60a5fa
		r := clampByte(30 + b*(96-30))
		g := clampByte(42 + b*(165-42))
		bl := clampByte(90 + b*(250-90))

		s := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", r, g, bl)))
		out.WriteString(s.Render(string(brand[i])))

		if i < n-1 {
			out.WriteString(" ")
		}
	}
	return out.String()
}

func clampByte(v float64) int {
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return int(v)
}

var (
	// Base styles
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e4ec")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0c4d0"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	// Help bar
	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	helpLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#60a5fa"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ade80"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e06060"))

	locationStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4a844"))

	navLinkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0c4d0"))

	navActiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e4ec")).
			Bold(true).
			Underline(true)

	sectionHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#606878"))

	inputPromptStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#60a5fa")).
				Bold(true)

	inputPlaceholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#343c4a"))

	borderColor = lipgloss.Color("#2a3350")

	// Modal box for the create/edit form.
	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(1, 2)

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e4ec")).
			Bold(true)

	buttonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#0a0a10")).
			Background(lipgloss.Color("#60a5fa")).
			Bold(true).
			Padding(0, 1)
)

// helpEntry renders a single "key label" pair for help bars.
func helpEntry(key, label string) string {
	return helpKeyStyle.Render(key) + " " + helpLabelStyle.Render(label)
}

// helpBar joins help entries with the standard spacing.
func helpBar(entries ...string) string {
	return " " + strings.Join(entries, "  ")
}

// helpView renders the help overlay.
func helpView() string {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#60a5fa")).
		Bold(true).
		Render("J O B D E S K")

	cmdStyle := lipgloss.NewStyle().Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	sectionStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)

	commands := []struct{ cmd, desc string }{
		{"jobdesk", "Open the job board (interactive TUI)"},
		{"jobdesk login", "Sign in with username and password"},
		{"jobdesk register", "Create an account in the browser"},
		{"jobdesk list", "Print your job posts"},
		{"jobdesk logout", "Clear your session"},
		{"jobdesk --version", "Show version"},
	}
	keys := []struct{ key, desc string }{
		{"j/k", "move between job posts"},
		{"n", "create a job post"},
		{"e / enter", "edit the selected job post"},
		{"d", "delete the selected job post"},
		{"c", "copy the selected job post"},
		{"r", "reload from the server"},
		{"o", "sign out"},
		{"ctrl+s", "submit the form"},
		{"esc", "close the form"},
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n  %s\n\n", title)
	fmt.Fprintf(&b, "  %s\n", sectionStyle.Render("Commands"))
	for _, c := range commands {
		fmt.Fprintf(&b, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-20s", c.cmd)), descStyle.Render(c.desc))
	}
	fmt.Fprintf(&b, "\n  %s\n", sectionStyle.Render("Keys"))
	for _, k := range keys {
		fmt.Fprintf(&b, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-20s", k.key)), descStyle.Render(k.desc))
	}
	return b.String()
}
