// Package state persists small UI preferences between runs, separate from
// the notes themselves.
package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// State holds persistent user preferences.
type State struct {
	// LastCategory is the slug open when the app last quit ("" is home).
	LastCategory string `json:"lastCategory"`

	FooterHidden bool `json:"footerHidden,omitempty"`

	// Cursors remembers the row cursor per category slug.
	Cursors map[string]int `json:"cursors,omitempty"`
}

var (
	current *State
	mu      sync.RWMutex
	path    string
)

// Init loads state from the default location.
func Init() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	return InitWithDir(filepath.Join(home, ".config", "notas"))
}

// InitWithDir loads state from a specified directory.
// This is primarily for testing to avoid reading real user state.
func InitWithDir(dir string) error {
	mu.Lock()
	path = filepath.Join(dir, "state.json")
	mu.Unlock()
	return Load()
}

// Load reads state from disk.
func Load() error {
	mu.Lock()
	defer mu.Unlock()

	current = &State{}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil // no state file yet, use defaults
	}
	if err != nil {
		return err
	}

	return json.Unmarshal(data, current)
}

// Save writes state to disk. It is a no-op before Init.
func Save() error {
	mu.RLock()
	defer mu.RUnlock()

	if current == nil || path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(current, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// GetLastCategory returns the slug open at the last quit.
func GetLastCategory() string {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil {
		return ""
	}
	return current.LastCategory
}

// SetLastCategory saves the open category.
func SetLastCategory(slug string) error {
	mu.Lock()
	if current == nil {
		current = &State{}
	}
	current.LastCategory = slug
	mu.Unlock()
	return Save()
}

// GetFooterHidden reports whether the footer was hidden.
func GetFooterHidden() bool {
	mu.RLock()
	defer mu.RUnlock()
	return current != nil && current.FooterHidden
}

// SetFooterHidden saves the footer visibility.
func SetFooterHidden(hidden bool) error {
	mu.Lock()
	if current == nil {
		current = &State{}
	}
	current.FooterHidden = hidden
	mu.Unlock()
	return Save()
}

// GetCursor returns the saved row cursor of a category.
func GetCursor(slug string) int {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil {
		return 0
	}
	return current.Cursors[slug]
}

// SetCursor records the row cursor of a category without writing to disk;
// it is persisted by the next Save.
func SetCursor(slug string, cursor int) {
	mu.Lock()
	defer mu.Unlock()
	if current == nil {
		current = &State{}
	}
	if current.Cursors == nil {
		current.Cursors = make(map[string]int)
	}
	if cursor <= 0 {
		delete(current.Cursors, slug)
		return
	}
	current.Cursors[slug] = cursor
}

// ForgetCategory drops everything remembered about a category.
func ForgetCategory(slug string) {
	mu.Lock()
	defer mu.Unlock()
	if current == nil {
		return
	}
	delete(current.Cursors, slug)
	if current.LastCategory == slug {
		current.LastCategory = ""
	}
}
