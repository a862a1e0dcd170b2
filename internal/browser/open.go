// Package browser hands URLs to the desktop's default browser.
package browser

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

// Open opens rawURL in the user's default browser. Only absolute http and
// https URLs are accepted. It returns once the launcher has started.
func Open(rawURL string) error {
	cmd, err := command(runtime.GOOS, rawURL)
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("browser.Open: %w", err)
	}
	return nil
}

// command builds the launcher invocation for goos.
func command(goos, rawURL string) (*exec.Cmd, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("browser.Open: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("browser.Open: refusing to open %q", rawURL)
	}

	switch goos {
	case "darwin":
		return exec.Command("open", rawURL), nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return exec.Command("xdg-open", rawURL), nil
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", rawURL), nil
	default:
		return nil, fmt.Errorf("browser.Open: unsupported OS: %s", goos)
	}
}
