package config

import "time"

// Config is the root configuration structure.
type Config struct {
	Storage StorageConfig `json:"storage"`
	Editor  EditorConfig  `json:"editor"`
	Export  ExportConfig  `json:"export"`
	Keymap  KeymapConfig  `json:"keymap"`
	UI      UIConfig      `json:"ui"`
}

// Storage drivers.
const (
	DriverPure = "sqlite"  // modernc.org/sqlite
	DriverCgo  = "sqlite3" // github.com/mattn/go-sqlite3
)

// StorageConfig configures the key-value database.
type StorageConfig struct {
	Path   string `json:"path"`   // database file (supports ~ expansion)
	Driver string `json:"driver"` // "sqlite" or "sqlite3"
	// MaxValueBytes caps a single stored value, 0 disables the cap.
	MaxValueBytes int `json:"maxValueBytes"`
}

// EditorConfig configures editing timers.
type EditorConfig struct {
	SaveDebounce   time.Duration `json:"saveDebounce"`
	MenuCloseDelay time.Duration `json:"menuCloseDelay"`
}

// ExportConfig configures the export file.
type ExportConfig struct {
	Dir         string `json:"dir"`
	Prefix      string `json:"prefix"`
	Extension   string `json:"extension"`
	SyntaxStyle string `json:"syntaxStyle"` // chroma style for `notas export --stdout`
}

// KeymapConfig holds key binding overrides.
type KeymapConfig struct {
	Overrides map[string]string `json:"overrides"`
}

// UIConfig configures UI appearance.
type UIConfig struct {
	ShowFooter bool `json:"showFooter"`
	BaseWidth  int  `json:"baseWidth"` // content width at zoom 1.0
	Mouse      bool `json:"mouse"`
}

const (
	defaultSaveDebounce   = 500 * time.Millisecond
	defaultMenuCloseDelay = 500 * time.Millisecond
	defaultBaseWidth      = 72
	minBaseWidth          = 32
	maxBaseWidth          = 240
	defaultMaxValueBytes  = 5 * 1024 * 1024
)

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Path:          "~/" + configDir + "/notas.db",
			Driver:        DriverPure,
			MaxValueBytes: defaultMaxValueBytes,
		},
		Editor: EditorConfig{
			SaveDebounce:   defaultSaveDebounce,
			MenuCloseDelay: defaultMenuCloseDelay,
		},
		Export: ExportConfig{
			Dir:         ".",
			Prefix:      "notas",
			Extension:   "js",
			SyntaxStyle: "monokai",
		},
		Keymap: KeymapConfig{
			Overrides: make(map[string]string),
		},
		UI: UIConfig{
			ShowFooter: true,
			BaseWidth:  defaultBaseWidth,
			Mouse:      true,
		},
	}
}

// Validate repairs out-of-range values.
func (c *Config) Validate() error {
	if c.Storage.Driver != DriverPure && c.Storage.Driver != DriverCgo {
		c.Storage.Driver = DriverPure
	}
	if c.Storage.MaxValueBytes < 0 {
		c.Storage.MaxValueBytes = 0
	}
	if c.Editor.SaveDebounce < 0 {
		c.Editor.SaveDebounce = defaultSaveDebounce
	}
	if c.Editor.MenuCloseDelay < 0 {
		c.Editor.MenuCloseDelay = defaultMenuCloseDelay
	}
	if c.Export.Prefix == "" {
		c.Export.Prefix = "notas"
	}
	if c.Export.Extension == "" {
		c.Export.Extension = "js"
	}
	switch {
	case c.UI.BaseWidth == 0:
		c.UI.BaseWidth = defaultBaseWidth
	case c.UI.BaseWidth < minBaseWidth:
		c.UI.BaseWidth = minBaseWidth
	case c.UI.BaseWidth > maxBaseWidth:
		c.UI.BaseWidth = maxBaseWidth
	}
	if c.Keymap.Overrides == nil {
		c.Keymap.Overrides = make(map[string]string)
	}
	return nil
}
