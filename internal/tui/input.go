package tui

import (
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
)

// maxInputLen is the maximum number of runes allowed in form inputs.
const maxInputLen = 2000

// editKey applies a keystroke to inline text. Backspace removes one rune,
// space and printable runes (including pastes) are appended, everything
// else leaves the text unchanged. Input is clamped to maxInputLen runes.
func editKey(text string, msg tea.KeyMsg) string {
	if msg.Alt {
		return text
	}
	switch msg.Type {
	case tea.KeyBackspace:
		if len(text) > 0 {
			runes := []rune(text)
			return string(runes[:len(runes)-1])
		}
		return text
	case tea.KeySpace:
		return appendClamped(text, " ")
	case tea.KeyRunes:
		return appendClamped(text, string(msg.Runes))
	}
	return text
}

// appendClamped appends as much of s as fits within maxInputLen runes.
func appendClamped(text, s string) string {
	room := maxInputLen - utf8.RuneCountInString(text)
	if room <= 0 {
		return text
	}
	if utf8.RuneCountInString(s) > room {
		s = string([]rune(s)[:room])
	}
	return text + s
}

// maskRunes hides a secret behind one bullet per rune.
func maskRunes(s string) string {
	return strings.Repeat("•", utf8.RuneCountInString(s))
}

// truncateToHeight limits output to maxLines newline-delimited lines.
// Returns the original string if it fits or maxLines is <= 0.
func truncateToHeight(s string, maxLines int) string {
	if maxLines <= 0 {
		return s
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			n++
			if n >= maxLines {
				return s[:i+1]
			}
		}
	}
	return s
}
