package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Storage.Driver != DriverPure {
		t.Errorf("got driver %q, want %q", cfg.Storage.Driver, DriverPure)
	}
	if cfg.Editor.SaveDebounce != 500*time.Millisecond {
		t.Errorf("got save debounce %v, want 500ms", cfg.Editor.SaveDebounce)
	}
	if cfg.Editor.MenuCloseDelay != 500*time.Millisecond {
		t.Errorf("got menu close delay %v, want 500ms", cfg.Editor.MenuCloseDelay)
	}
	if !cfg.UI.ShowFooter || !cfg.UI.Mouse {
		t.Error("footer and mouse should be on by default")
	}
	if cfg.Export.Prefix != "notas" || cfg.Export.Extension != "js" {
		t.Errorf("export defaults = %+v", cfg.Export)
	}
}

func TestLoadFrom_NonExistent(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.json")
	if err != nil {
		t.Errorf("should not error on missing file: %v", err)
	}
	if cfg == nil {
		t.Fatal("should return default config")
	}
	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, ".config", "notas", "notas.db"); cfg.Storage.Path != want {
		t.Errorf("default db path = %q, want %q", cfg.Storage.Path, want)
	}
}

func TestLoadFrom_ValidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	content := []byte(`{
		"storage": {
			"driver": "sqlite3",
			"path": "~/notes/notas.db"
		},
		"editor": {
			"saveDebounce": "1s"
		},
		"export": {
			"extension": ".mjs"
		},
		"keymap": {
			"overrides": {"a": "add-row"}
		},
		"ui": {
			"showFooter": false
		}
	}`)

	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	if cfg.Storage.Driver != DriverCgo {
		t.Errorf("driver = %q", cfg.Storage.Driver)
	}
	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, "notes", "notas.db"); cfg.Storage.Path != want {
		t.Errorf("path = %q, want %q", cfg.Storage.Path, want)
	}
	if cfg.Editor.SaveDebounce != time.Second {
		t.Errorf("got debounce %v, want 1s", cfg.Editor.SaveDebounce)
	}
	if cfg.Export.Extension != "mjs" {
		t.Errorf("extension = %q", cfg.Export.Extension)
	}
	if cfg.Keymap.Overrides["a"] != "add-row" {
		t.Errorf("overrides = %v", cfg.Keymap.Overrides)
	}
	if cfg.UI.ShowFooter {
		t.Error("showFooter should be false")
	}
	// Default values should still be present
	if cfg.Editor.MenuCloseDelay != 500*time.Millisecond {
		t.Errorf("menu close delay = %v", cfg.Editor.MenuCloseDelay)
	}
	if !cfg.UI.Mouse {
		t.Error("mouse should still be enabled (default)")
	}
}

func TestLoadFrom_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	if err := os.WriteFile(path, []byte(`{invalid`), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFrom(path); err == nil {
		t.Error("should error on invalid JSON")
	}
}

func TestLoadFrom_BadDurationKeepsDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(`{"editor":{"saveDebounce":"soon"}}`), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Editor.SaveDebounce != 500*time.Millisecond {
		t.Errorf("debounce = %v", cfg.Editor.SaveDebounce)
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		input  string
		expect string
	}{
		{"~/.config/notas", filepath.Join(home, ".config/notas")},
		{"/absolute/path", "/absolute/path"},
		{"relative/path", "relative/path"},
	}

	for _, tc := range tests {
		if got := ExpandPath(tc.input); got != tc.expect {
			t.Errorf("ExpandPath(%q) = %q, want %q", tc.input, got, tc.expect)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		apply func(*Config)
		check func(*testing.T, *Config)
	}{
		{
			name:  "unknown driver",
			apply: func(c *Config) { c.Storage.Driver = "postgres" },
			check: func(t *testing.T, c *Config) {
				if c.Storage.Driver != DriverPure {
					t.Errorf("driver = %q", c.Storage.Driver)
				}
			},
		},
		{
			name:  "negative debounce",
			apply: func(c *Config) { c.Editor.SaveDebounce = -1 },
			check: func(t *testing.T, c *Config) {
				if c.Editor.SaveDebounce != 500*time.Millisecond {
					t.Errorf("debounce = %v", c.Editor.SaveDebounce)
				}
			},
		},
		{
			name:  "narrow width",
			apply: func(c *Config) { c.UI.BaseWidth = 5 },
			check: func(t *testing.T, c *Config) {
				if c.UI.BaseWidth != minBaseWidth {
					t.Errorf("width = %d", c.UI.BaseWidth)
				}
			},
		},
		{
			name:  "huge width",
			apply: func(c *Config) { c.UI.BaseWidth = 1000 },
			check: func(t *testing.T, c *Config) {
				if c.UI.BaseWidth != maxBaseWidth {
					t.Errorf("width = %d", c.UI.BaseWidth)
				}
			},
		},
		{
			name:  "negative quota",
			apply: func(c *Config) { c.Storage.MaxValueBytes = -5 },
			check: func(t *testing.T, c *Config) {
				if c.Storage.MaxValueBytes != 0 {
					t.Errorf("quota = %d", c.Storage.MaxValueBytes)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.apply(cfg)
			if err := cfg.Validate(); err != nil {
				t.Fatalf("Validate failed: %v", err)
			}
			tt.check(t, cfg)
		})
	}
}
