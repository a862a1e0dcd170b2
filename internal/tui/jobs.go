package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/naveenspark/jobdesk/internal/jobs"
	"github.com/naveenspark/jobdesk/pkg/domain"
)

const emptyJobsText = "You have no jobs created."

// jobOutcomeMsg returns a finished round trip to the model that issued it.
// gen identifies that model so outcomes from a signed-out session are dropped.
type jobOutcomeMsg struct {
	gen     int
	outcome jobs.Outcome
}

// jobCopiedMsg reports a clipboard copy.
type jobCopiedMsg struct{ err error }

// Form fields, in tab order.
const (
	formTitle = iota
	formDescription
	formLocation
	numFormFields
)

// jobsModel is the main view: the job post list and the create/edit form.
// The synchronizer is the source of truth; the model only holds cursor and
// focus state.
type jobsModel struct {
	sync      *jobs.Synchronizer
	gen       int
	cursor    int
	formFocus int
	status    string
	width     int
	height    int
}

func newJobsModel(s *jobs.Synchronizer, gen int) jobsModel {
	return jobsModel{sync: s, gen: gen}
}

// run wraps a pending round trip in a command. A nil Pending yields no command.
func (m jobsModel) run(p jobs.Pending) tea.Cmd {
	if p == nil {
		return nil
	}
	gen := m.gen
	return func() tea.Msg {
		return jobOutcomeMsg{gen: gen, outcome: p(context.Background())}
	}
}

func (m jobsModel) load() tea.Cmd {
	m.sync.ClearError()
	return m.run(m.sync.Load())
}

// editing reports whether the form is open and capturing keys.
func (m jobsModel) editing() bool {
	_, ok := m.sync.Draft()
	return ok
}

func (m jobsModel) selected() (domain.JobPosting, bool) {
	list := m.sync.Jobs()
	if m.cursor < 0 || m.cursor >= len(list) {
		return domain.JobPosting{}, false
	}
	return list[m.cursor], true
}

func (m jobsModel) Update(msg tea.Msg) (jobsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case jobOutcomeMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.sync.Apply(msg.outcome)
		m.clampCursor()
		return m, nil

	case jobCopiedMsg:
		if msg.err != nil {
			m.status = "copy failed: " + msg.err.Error()
		} else {
			m.status = "copied to clipboard"
		}
		return m, nil

	case tea.KeyMsg:
		if m.editing() {
			return m.updateForm(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m *jobsModel) clampCursor() {
	n := m.sync.Len()
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m jobsModel) updateList(msg tea.KeyMsg) (jobsModel, tea.Cmd) {
	m.status = ""
	switch msg.String() {
	case "j", "down":
		if m.cursor < m.sync.Len()-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "g", "home":
		m.cursor = 0
	case "G", "end":
		m.cursor = max(m.sync.Len()-1, 0)
	case "n":
		m.sync.BeginCreate()
		m.formFocus = formTitle
	case "e", "enter":
		if j, ok := m.selected(); ok && m.sync.BeginEdit(j.ID) {
			m.formFocus = formTitle
		}
	case "d":
		if j, ok := m.selected(); ok {
			m.sync.ClearError()
			return m, m.run(m.sync.DeleteEntry(j.ID))
		}
	case "c":
		if j, ok := m.selected(); ok {
			text := formatPosting(j)
			return m, func() tea.Msg {
				return jobCopiedMsg{err: clipboard.WriteAll(text)}
			}
		}
	case "r":
		return m, m.load()
	case "esc":
		m.sync.ClearError()
	}
	return m, nil
}

func (m jobsModel) updateForm(msg tea.KeyMsg) (jobsModel, tea.Cmd) {
	d, _ := m.sync.Draft()
	f := d.Fields

	switch msg.String() {
	case "esc":
		m.sync.CancelDraft()
		m.status = ""
		return m, nil
	case "ctrl+s":
		return m.submit()
	case "tab", "down":
		m.formFocus = (m.formFocus + 1) % numFormFields
		return m, nil
	case "shift+tab", "up":
		m.formFocus = (m.formFocus - 1 + numFormFields) % numFormFields
		return m, nil
	case "enter":
		switch m.formFocus {
		case formDescription:
			f.Description = appendClamped(f.Description, "\n")
			m.sync.EditDraft(f)
		case formTitle:
			m.formFocus = formDescription
		case formLocation:
			return m.submit()
		}
		return m, nil
	}

	switch m.formFocus {
	case formTitle:
		f.Title = editKey(f.Title, msg)
	case formDescription:
		f.Description = editKey(f.Description, msg)
	case formLocation:
		f.Location = editKey(f.Location, msg)
	}
	m.sync.EditDraft(f)
	return m, nil
}

func (m jobsModel) submit() (jobsModel, tea.Cmd) {
	d, ok := m.sync.Draft()
	if !ok {
		return m, nil
	}
	f := d.Fields.Trimmed()
	if f.Title == "" {
		m.status = "a job title is required"
		m.formFocus = formTitle
		return m, nil
	}
	m.status = ""
	m.sync.EditDraft(f)
	m.sync.ClearError()
	return m, m.run(m.sync.SubmitDraft())
}

func (m jobsModel) helpKeys() string {
	if m.editing() {
		return helpBar(
			helpEntry("tab", "next"),
			helpEntry("ctrl+s", "submit"),
			helpEntry("esc", "cancel"),
		)
	}
	return helpBar(
		helpEntry("j/k", "nav"),
		helpEntry("n", "new"),
		helpEntry("e", "edit"),
		helpEntry("d", "delete"),
		helpEntry("c", "copy"),
		helpEntry("r", "reload"),
		helpEntry("o", "sign out"),
		helpEntry("?", "help"),
		helpEntry("q", "quit"),
	)
}

func (m jobsModel) View() string {
	if d, ok := m.sync.Draft(); ok {
		return m.viewForm(d)
	}
	return m.viewList()
}

func (m jobsModel) viewList() string {
	var b strings.Builder
	list := m.sync.Jobs()

	header := sectionHeaderStyle.Render(fmt.Sprintf("MY JOB POSTS · %d", len(list)))
	if m.sync.InFlight() > 0 {
		header += "  " + dimStyle.Render("syncing...")
	}
	b.WriteString("\n " + header + "\n\n")

	if e := m.sync.LastError(); e != "" {
		b.WriteString(" " + errorStyle.Render(e) + "\n\n")
	}
	if m.status != "" {
		b.WriteString(" " + successStyle.Render(m.status) + "\n\n")
	}

	if len(list) == 0 {
		b.WriteString(" " + dimStyle.Render(emptyJobsText) + "\n")
		b.WriteString(" " + dimStyle.Render("press ") + accentStyle.Render("n") + dimStyle.Render(" to create one") + "\n")
		return b.String()
	}

	width := m.width
	if width <= 0 {
		width = 80
	}
	start, end := m.visibleRange(len(list))
	for i := start; i < end; i++ {
		b.WriteString(renderJobRow(list[i], i == m.cursor, width))
	}
	if end < len(list) {
		b.WriteString(" " + metaStyle.Render(fmt.Sprintf("… %d more", len(list)-end)) + "\n")
	}
	return b.String()
}

// visibleRange returns the window of rows that keeps the cursor on screen.
// Each row takes three lines.
func (m jobsModel) visibleRange(n int) (int, int) {
	rows := n
	if m.height > 0 {
		rows = max((m.height-6)/3, 1)
	}
	start := 0
	if m.cursor >= rows {
		start = m.cursor - rows + 1
	}
	return start, min(start+rows, n)
}

func renderJobRow(j domain.JobPosting, selected bool, width int) string {
	marker := "  "
	title := normalStyle.Render(truncStr(j.Title, width-20))
	if selected {
		marker = accentStyle.Render("▸") + " "
		title = selectedStyle.Render(truncStr(j.Title, width-20))
	}
	line := " " + marker + title
	if j.Location != "" {
		line += "  " + locationStyle.Render(truncStr(j.Location, 24))
	}

	desc := oneLine(j.Description)
	if desc == "" {
		desc = "no description"
	}
	return line + "\n" + "   " + dimStyle.Render(truncStr(desc, width-6)) + "\n\n"
}

func (m jobsModel) viewForm(d jobs.Draft) string {
	title, button := "Create a New Job", "Create Job"
	if _, editing := d.Editing(); editing {
		title, button = "Edit Job", "Save Changes"
	}

	inner := 56
	if m.width > 0 && m.width-10 < inner {
		inner = max(m.width-10, 20)
	}

	var b strings.Builder
	b.WriteString(modalTitleStyle.Render(title) + "\n\n")
	b.WriteString(m.renderFormField(formTitle, "Job Title", d.Fields.Title, "Software Engineer", inner))
	b.WriteString(m.renderFormField(formDescription, "Job Description", d.Fields.Description, "What the role involves", inner))
	b.WriteString(m.renderFormField(formLocation, "Job Location", d.Fields.Location, "Remote", inner))

	if e := m.sync.LastError(); e != "" {
		b.WriteString(errorStyle.Render(e) + "\n\n")
	}
	if m.status != "" {
		b.WriteString(errorStyle.Render(m.status) + "\n\n")
	}
	if m.sync.InFlight() > 0 {
		b.WriteString(dimStyle.Render("saving...") + "\n")
	} else {
		b.WriteString(buttonStyle.Render(button) + "  " + dimStyle.Render("esc to cancel") + "\n")
	}

	box := modalStyle.Width(inner).Render(strings.TrimRight(b.String(), "\n"))
	if m.width <= 0 || m.height <= 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m jobsModel) renderFormField(field int, label, value, placeholder string, width int) string {
	focused := field == m.formFocus
	labelStr := metaStyle.Render(label)
	if focused {
		labelStr = inputPromptStyle.Render(label)
	}

	var body string
	switch {
	case value == "" && !focused:
		body = inputPlaceholderStyle.Render(placeholder)
	case field == formDescription:
		lines := strings.Split(value, "\n")
		for i, l := range lines {
			lines[i] = normalStyle.Render(truncStr(l, width))
		}
		body = strings.Join(lines, "\n")
	default:
		body = normalStyle.Render(truncStr(value, width))
	}
	if focused {
		body += accentStyle.Render("█")
	}
	return labelStr + "\n" + body + "\n\n"
}
