package tui

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// releaseCheckMsg carries the newest published version when it is newer
// than the running one; latest is empty otherwise.
type releaseCheckMsg struct {
	latest string
}

// checkRelease asks the releases endpoint for the latest tag in the
// background. Returns nil for dev builds or when no endpoint is configured.
// Failures are silent.
func checkRelease(url, current string) tea.Cmd {
	if url == "" || current == "" || current == "dev" {
		return nil
	}
	return func() tea.Msg {
		client := &http.Client{Timeout: 5 * time.Second}
		resp, err := client.Get(url)
		if err != nil {
			return releaseCheckMsg{}
		}
		defer resp.Body.Close() //nolint:errcheck
		if resp.StatusCode != http.StatusOK {
			return releaseCheckMsg{}
		}
		var release struct {
			TagName string `json:"tag_name"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
			return releaseCheckMsg{}
		}
		latest := strings.TrimPrefix(release.TagName, "v")
		if isNewerVersion(latest, current) {
			return releaseCheckMsg{latest: "v" + latest}
		}
		return releaseCheckMsg{}
	}
}

// isNewerVersion returns true if latest is a newer semver than current.
// Unparseable parts count as zero.
func isNewerVersion(latest, current string) bool {
	parse := func(v string) [3]int {
		var out [3]int
		v = strings.TrimPrefix(v, "v")
		for i, p := range strings.SplitN(v, ".", 3) {
			n, _ := strconv.Atoi(p) //nolint:errcheck
			out[i] = n
		}
		return out
	}
	l, c := parse(latest), parse(current)
	for i := range l {
		if l[i] != c[i] {
			return l[i] > c[i]
		}
	}
	return false
}
