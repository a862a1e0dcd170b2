package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/jobdesk/internal/browser"
)

// registerOpenedMsg reports whether the registration page opened in a browser.
type registerOpenedMsg struct{ err error }

// registerModel points the user at the web registration form; accounts are
// not created from the terminal.
type registerModel struct {
	url    string
	opener func(string) error
	status string
}

func newRegisterModel(url string) registerModel {
	return registerModel{url: url, opener: browser.Open}
}

func (m registerModel) Update(msg tea.Msg) (registerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case registerOpenedMsg:
		if msg.err != nil {
			m.status = "could not open a browser · visit " + m.url
		} else {
			m.status = "opened in your browser · sign in here once registered"
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter", "b":
			if m.url == "" {
				m.status = "no registration page configured"
				return m, nil
			}
			url, open := m.url, m.opener
			return m, func() tea.Msg {
				return registerOpenedMsg{err: open(url)}
			}
		}
	}
	return m, nil
}

func (m registerModel) View() string {
	var b strings.Builder
	b.WriteString("\n " + selectedStyle.Render("Register") + "\n\n")
	b.WriteString(" " + normalStyle.Render("Accounts are created on the web.") + "\n")
	if m.url != "" {
		b.WriteString(" " + accentStyle.Render(m.url) + "\n")
	}
	b.WriteString("\n " + buttonStyle.Render("Open in browser") + "\n")
	if m.status != "" {
		b.WriteString("\n " + dimStyle.Render(m.status) + "\n")
	}
	b.WriteString("\n " + dimStyle.Render("Already registered? ") + accentStyle.Render("s") + dimStyle.Render(" to sign in") + "\n")
	return b.String()
}
