package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	configDir  = ".config/notas"
	configFile = "config.json"
)

// rawConfig is the JSON-unmarshaling intermediary.
type rawConfig struct {
	Storage rawStorageConfig `json:"storage"`
	Editor  rawEditorConfig  `json:"editor"`
	Export  ExportConfig     `json:"export"`
	Keymap  KeymapConfig     `json:"keymap"`
	UI      rawUIConfig      `json:"ui"`
}

type rawStorageConfig struct {
	Path          string `json:"path"`
	Driver        string `json:"driver"`
	MaxValueBytes *int   `json:"maxValueBytes"`
}

type rawEditorConfig struct {
	SaveDebounce   string `json:"saveDebounce"`
	MenuCloseDelay string `json:"menuCloseDelay"`
}

type rawUIConfig struct {
	ShowFooter *bool `json:"showFooter"`
	BaseWidth  *int  `json:"baseWidth"`
	Mouse      *bool `json:"mouse"`
}

// Load loads configuration from the default location.
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom loads configuration from a specific path.
// If path is empty, uses ~/.config/notas/config.json
func LoadFrom(path string) (*Config, error) {
	cfg := Default()
	cfg.Storage.Path = ExpandPath(cfg.Storage.Path)

	if path == "" {
		path = ConfigPath()
		if path == "" {
			return cfg, nil // Return defaults on error
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	var raw rawConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	// Merge raw config into defaults
	mergeConfig(cfg, &raw)

	// Expand paths
	cfg.Storage.Path = ExpandPath(cfg.Storage.Path)
	cfg.Export.Dir = ExpandPath(cfg.Export.Dir)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// mergeConfig merges raw config values into the config.
func mergeConfig(cfg *Config, raw *rawConfig) {
	// Storage
	if raw.Storage.Path != "" {
		cfg.Storage.Path = raw.Storage.Path
	}
	if raw.Storage.Driver != "" {
		cfg.Storage.Driver = raw.Storage.Driver
	}
	if raw.Storage.MaxValueBytes != nil {
		cfg.Storage.MaxValueBytes = *raw.Storage.MaxValueBytes
	}

	// Editor
	if raw.Editor.SaveDebounce != "" {
		if d, err := time.ParseDuration(raw.Editor.SaveDebounce); err == nil {
			cfg.Editor.SaveDebounce = d
		}
	}
	if raw.Editor.MenuCloseDelay != "" {
		if d, err := time.ParseDuration(raw.Editor.MenuCloseDelay); err == nil {
			cfg.Editor.MenuCloseDelay = d
		}
	}

	// Export
	if raw.Export.Dir != "" {
		cfg.Export.Dir = raw.Export.Dir
	}
	if raw.Export.Prefix != "" {
		cfg.Export.Prefix = raw.Export.Prefix
	}
	if raw.Export.Extension != "" {
		cfg.Export.Extension = strings.TrimPrefix(raw.Export.Extension, ".")
	}
	if raw.Export.SyntaxStyle != "" {
		cfg.Export.SyntaxStyle = raw.Export.SyntaxStyle
	}

	// Keymap
	for k, v := range raw.Keymap.Overrides {
		cfg.Keymap.Overrides[k] = v
	}

	// UI
	if raw.UI.ShowFooter != nil {
		cfg.UI.ShowFooter = *raw.UI.ShowFooter
	}
	if raw.UI.BaseWidth != nil {
		cfg.UI.BaseWidth = *raw.UI.BaseWidth
	}
	if raw.UI.Mouse != nil {
		cfg.UI.Mouse = *raw.UI.Mouse
	}
}

// ExpandPath expands ~ to home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Dir returns the notas configuration directory.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, configDir)
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	if testConfigPath != "" {
		return testConfigPath
	}
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, configFile)
}
