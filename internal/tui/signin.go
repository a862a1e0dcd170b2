package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/jobdesk/pkg/client"
)

// Sign-in messages shown inline under the form.
const (
	msgBadCredentials = "Invalid credentials. Please try again."
	msgLoginFailed    = "An error occurred. Please try again later."
)

// loginAPI performs the remote authentication exchange.
type loginAPI interface {
	Login(ctx context.Context, username, password string) (string, error)
}

type signinField int

const (
	fieldUsername signinField = iota
	fieldPassword
	numSigninFields
)

// signedInMsg carries the result of a login round trip.
type signedInMsg struct {
	token string
	err   error
}

type signinModel struct {
	api        loginAPI
	username   string
	password   string
	focus      signinField
	err        string
	submitting bool
}

func newSigninModel(api loginAPI) signinModel {
	return signinModel{api: api}
}

func (m signinModel) Update(msg tea.Msg) (signinModel, tea.Cmd) {
	switch msg := msg.(type) {
	case signedInMsg:
		m.submitting = false
		if msg.err != nil {
			m.err = signinError(msg.err)
			return m, nil
		}
		m.password = ""
		m.err = ""
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m signinModel) updateKeys(msg tea.KeyMsg) (signinModel, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		m.focus = (m.focus + 1) % numSigninFields
	case "shift+tab", "up":
		m.focus = (m.focus - 1 + numSigninFields) % numSigninFields
	case "enter":
		if m.focus == fieldUsername {
			m.focus = fieldPassword
			return m, nil
		}
		return m.submit()
	default:
		if m.focus == fieldUsername {
			m.username = editKey(m.username, msg)
		} else {
			m.password = editKey(m.password, msg)
		}
	}
	return m, nil
}

func (m signinModel) submit() (signinModel, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	m.err = ""
	username := strings.TrimSpace(m.username)
	if username == "" || m.password == "" {
		m.err = "username and password are required"
		return m, nil
	}

	m.submitting = true
	api, password := m.api, m.password
	return m, func() tea.Msg {
		tok, err := api.Login(context.Background(), username, password)
		return signedInMsg{token: tok, err: err}
	}
}

// signinError maps a login failure to the inline message: the API's own
// message when it sent one, otherwise a generic one by failure class.
func signinError(err error) string {
	if msg := client.APIMessage(err); msg != "" {
		return msg
	}
	if client.IsHTTP(err) {
		return msgBadCredentials
	}
	return msgLoginFailed
}

func (m signinModel) View() string {
	var b strings.Builder
	b.WriteString("\n " + selectedStyle.Render("Sign In") + "\n\n")

	if m.err != "" {
		b.WriteString(" " + errorStyle.Render(m.err) + "\n\n")
	}

	b.WriteString(m.renderField(fieldUsername, "username", m.username, "enter your username"))
	b.WriteString(m.renderField(fieldPassword, "password", maskRunes(m.password), "enter your password"))

	b.WriteString("\n")
	if m.submitting {
		b.WriteString(" " + dimStyle.Render("signing in...") + "\n")
	} else {
		b.WriteString(" " + buttonStyle.Render("Sign In") + "\n")
	}
	b.WriteString("\n " + dimStyle.Render("Don't have an account? ") + accentStyle.Render("ctrl+r") + dimStyle.Render(" to register") + "\n")
	return b.String()
}

func (m signinModel) renderField(f signinField, label, value, placeholder string) string {
	cursor := "  "
	labelStr := metaStyle.Render(label + ":")
	if f == m.focus {
		cursor = accentStyle.Render(">") + " "
		labelStr = inputPromptStyle.Render(label + ":")
	}
	switch {
	case value == "" && f != m.focus:
		value = inputPlaceholderStyle.Render(placeholder)
	case f == m.focus:
		value += accentStyle.Render("█")
	}
	return " " + cursor + labelStr + " " + value + "\n"
}
