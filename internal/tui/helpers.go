package tui

import (
	"strings"
	"unicode/utf8"

	"github.com/naveenspark/jobdesk/pkg/domain"
)

// truncStr truncates a string to maxLen runes, appending an ellipsis if needed.
func truncStr(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	if maxLen <= 0 {
		return ""
	}
	runes := []rune(s)
	return string(runes[:maxLen-1]) + "…"
}

// oneLine collapses newlines and runs of whitespace so multi-line
// descriptions fit on a single list row.
func oneLine(raw string) string {
	return strings.Join(strings.Fields(raw), " ")
}

// formatPosting renders a job posting as plain text for the clipboard.
func formatPosting(j domain.JobPosting) string {
	var b strings.Builder
	b.WriteString(j.Title)
	if j.Location != "" {
		b.WriteString(" (" + j.Location + ")")
	}
	if d := strings.TrimSpace(j.Description); d != "" {
		b.WriteString("\n\n" + d)
	}
	return b.String()
}
