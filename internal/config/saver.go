package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// testConfigPath overrides ConfigPath in tests.
var testConfigPath string

// SetTestConfigPath points Save and ConfigPath at path.
func SetTestConfigPath(path string) { testConfigPath = path }

// ResetTestConfigPath restores the default config path.
func ResetTestConfigPath() { testConfigPath = "" }

// saveConfig is the JSON-marshaling intermediary that uses string durations.
type saveConfig struct {
	Storage StorageConfig    `json:"storage"`
	Editor  saveEditorConfig `json:"editor"`
	Export  ExportConfig     `json:"export"`
	Keymap  KeymapConfig     `json:"keymap"`
	UI      UIConfig         `json:"ui"`
}

type saveEditorConfig struct {
	SaveDebounce   string `json:"saveDebounce,omitempty"`
	MenuCloseDelay string `json:"menuCloseDelay,omitempty"`
}

// toSaveConfig converts Config to the JSON-serializable format.
func toSaveConfig(cfg *Config) saveConfig {
	return saveConfig{
		Storage: cfg.Storage,
		Editor: saveEditorConfig{
			SaveDebounce:   cfg.Editor.SaveDebounce.String(),
			MenuCloseDelay: cfg.Editor.MenuCloseDelay.String(),
		},
		Export: cfg.Export,
		Keymap: cfg.Keymap,
		UI:     cfg.UI,
	}
}

// Save writes the config to ~/.config/notas/config.json.
func Save(cfg *Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("config path unavailable")
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the config to path. Top-level keys of an existing file that
// notas does not manage are preserved.
func SaveTo(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	merged := make(map[string]json.RawMessage)
	if data, err := os.ReadFile(path); err == nil {
		if err := json.Unmarshal(data, &merged); err != nil {
			return fmt.Errorf("existing config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	managed, err := json.Marshal(toSaveConfig(cfg))
	if err != nil {
		return err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(managed, &fields); err != nil {
		return err
	}
	for k, v := range fields {
		merged[k] = v
	}

	data, err := json.MarshalIndent(merged, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}
