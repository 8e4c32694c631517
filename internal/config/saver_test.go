package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSave_PreservesUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	initial := []byte(`{
  "customKey": "should survive",
  "ui": {"showFooter": true}
}`)
	if err := os.WriteFile(path, initial, 0644); err != nil {
		t.Fatal(err)
	}

	SetTestConfigPath(path)
	defer ResetTestConfigPath()

	cfg := Default()
	cfg.UI.ShowFooter = false
	if err := Save(cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal saved config: %v", err)
	}
	if _, ok := raw["customKey"]; !ok {
		t.Error("Save() deleted 'customKey' from config.json")
	}
	for _, key := range []string{"storage", "editor", "export", "keymap", "ui"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("Save() did not write %q", key)
		}
	}

	var ui UIConfig
	if err := json.Unmarshal(raw["ui"], &ui); err != nil {
		t.Fatal(err)
	}
	if ui.ShowFooter {
		t.Error("managed key not overwritten")
	}
}

func TestSaveTo_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg := Default()
	cfg.Storage.Path = "/tmp/notas-test.db"
	cfg.Editor.SaveDebounce = 750 * time.Millisecond
	cfg.Keymap.Overrides["a"] = "add-row"

	if err := SaveTo(cfg, path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if loaded.Editor.SaveDebounce != 750*time.Millisecond {
		t.Errorf("debounce = %v", loaded.Editor.SaveDebounce)
	}
	if loaded.Storage.Path != "/tmp/notas-test.db" {
		t.Errorf("path = %q", loaded.Storage.Path)
	}
	if loaded.Keymap.Overrides["a"] != "add-row" {
		t.Errorf("overrides = %v", loaded.Keymap.Overrides)
	}
}

func TestSaveTo_RejectsCorruptExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{broken"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := SaveTo(Default(), path); err == nil {
		t.Error("SaveTo should refuse to overwrite an unreadable config")
	}
}
