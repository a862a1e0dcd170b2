package tui

import (
	"testing"

	"github.com/naveenspark/jobdesk/pkg/domain"
)

func TestTruncStr(t *testing.T) {
	tests := []struct {
		name   string
		s      string
		maxLen int
		want   string
	}{
		{"under limit", "hello", 10, "hello"},
		{"at limit", "hello", 5, "hello"},
		{"over limit", "hello world", 5, "hell…"},
		{"empty string", "", 5, ""},
		{"single char over", "ab", 1, "…"},
		{"zero width", "hello", 0, ""},
		{"negative width", "hello", -3, ""},
		{"emoji", "\U0001f600\U0001f601\U0001f602", 2, "\U0001f600…"},
		{"CJK chars", "你好世界", 3, "你好…"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncStr(tt.s, tt.maxLen)
			if got != tt.want {
				t.Errorf("truncStr(%q, %d) = %q, want %q", tt.s, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestOneLine(t *testing.T) {
	got := oneLine("  Build the\n\nAPI   layer\t today ")
	if got != "Build the API layer today" {
		t.Errorf("oneLine = %q", got)
	}
}

func TestFormatPosting(t *testing.T) {
	tests := []struct {
		name string
		job  domain.JobPosting
		want string
	}{
		{
			"all fields",
			domain.JobPosting{ID: "1", Title: "Go Engineer", Description: "Build services.\n", Location: "Berlin"},
			"Go Engineer (Berlin)\n\nBuild services.",
		},
		{
			"no location",
			domain.JobPosting{ID: "2", Title: "SRE", Description: "On call."},
			"SRE\n\nOn call.",
		},
		{
			"title only",
			domain.JobPosting{ID: "3", Title: "Intern", Description: "  "},
			"Intern",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := formatPosting(tc.job)
			if got != tc.want {
				t.Errorf("formatPosting = %q, want %q", got, tc.want)
			}
		})
	}
}
