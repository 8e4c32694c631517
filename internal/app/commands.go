package app

import (
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/notas/internal/config"
	"github.com/marcus/notas/internal/keymap"
)

// TickMsg is sent every second to refresh time-relative text.
type TickMsg time.Time

// linkOpenedMsg reports the result of starting the platform opener.
type linkOpenedMsg struct {
	URL string
	Err error
}

// configReloadedMsg carries a config reloaded from disk.
type configReloadedMsg struct {
	Config *config.Config
}

// tickCmd returns a command that ticks every second.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// listenConfig waits for the next reloaded config.
func listenConfig(ch <-chan *config.Config) tea.Cmd {
	return func() tea.Msg {
		cfg, ok := <-ch
		if !ok {
			return nil
		}
		return configReloadedMsg{Config: cfg}
	}
}

// startOpener launches the platform URL opener without waiting for it.
var startOpener = func(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	case "linux", "freebsd", "openbsd", "netbsd":
		cmd = exec.Command("xdg-open", url)
	default:
		return fmt.Errorf("no URL opener for %s", runtime.GOOS)
	}
	return cmd.Start()
}

// openLink opens url in the default browser.
func openLink(url string) tea.Cmd {
	return func() tea.Msg {
		return linkOpenedMsg{URL: url, Err: startOpener(url)}
	}
}

// BuildKeymap returns the default bindings with overrides applied. Overrides
// naming unknown commands are logged and skipped.
func BuildKeymap(overrides map[string]string, logger *slog.Logger) *keymap.Registry {
	if logger == nil {
		logger = slog.Default()
	}
	r := keymap.NewRegistry()
	keymap.RegisterDefaults(r)

	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if !r.SetUserOverride(k, overrides[k]) {
			logger.Warn("keymap override ignored", "key", k, "command", overrides[k])
		}
	}
	return r
}
