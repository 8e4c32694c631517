package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/notas/internal/app"
	"github.com/marcus/notas/internal/config"
	"github.com/marcus/notas/internal/kv"
	"github.com/marcus/notas/internal/slug"
	"github.com/marcus/notas/internal/state"
	"github.com/marcus/notas/internal/store"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = ""

// logFileName is written in the config dir while the TUI owns the terminal.
const logFileName = "notas.log"

type options struct {
	configPath string
	category   string
	dbPath     string
	driver     string
	ephemeral  bool
	debug      bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "notas",
		Short:         "Checklist pages of rows with videos, true/false items and quizzes",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(opts)
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&opts.configPath, "config", "", "path to config file")
	f.StringVar(&opts.dbPath, "db", "", "path to the SQLite database (overrides storage.path)")
	f.StringVar(&opts.driver, "driver", "", "SQLite driver: sqlite3 (cgo) or sqlite (pure Go)")
	f.BoolVar(&opts.ephemeral, "ephemeral", false, "keep everything in memory; nothing is written to disk")
	f.BoolVar(&opts.debug, "debug", false, "enable debug logging")
	root.Flags().StringVar(&opts.category, "category", "", "open this category (slugified)")

	root.AddCommand(
		newExportCmd(opts),
		newCategoriesCmd(opts),
		newConfigCmd(opts),
		newVersionCmd(),
	)
	return root
}

func runTUI(opts *options) error {
	logger, closeLog := opts.fileLogger()
	defer closeLog()

	cfg, st, closeStore, err := opts.open(logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Error("close storage", "err", err)
		}
	}()

	// Load persistent state (ignore errors - state is optional)
	_ = state.Init()

	category := state.GetLastCategory()
	if opts.category != "" {
		category = slug.Slugify(opts.category)
	}

	var updates <-chan *config.Config
	if path := opts.watchPath(); path != "" {
		ch, closer, err := config.Watch(path, logger)
		if err != nil {
			logger.Warn("config watch disabled", "path", path, "err", err)
		} else {
			updates = ch
			defer closer.Close()
		}
	}

	model := app.New(app.Options{
		Config:        cfg,
		Store:         st,
		Logger:        logger,
		Category:      category,
		ConfigUpdates: updates,
	})

	progOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.UI.Mouse {
		// Hover opens and closes the delete menus, so every motion event is needed.
		progOpts = append(progOpts, tea.WithMouseAllMotion())
	}
	if _, err := tea.NewProgram(model, progOpts...).Run(); err != nil {
		return fmt.Errorf("running application: %w", err)
	}
	return nil
}

func (o *options) level() slog.Level {
	if o.debug {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// fileLogger logs to the config dir so the alternate screen stays clean.
func (o *options) fileLogger() (*slog.Logger, func()) {
	handlerOpts := &slog.HandlerOptions{Level: o.level()}
	dir := config.Dir()
	if dir == "" {
		return slog.New(slog.NewTextHandler(io.Discard, handlerOpts)), func() {}
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return slog.New(slog.NewTextHandler(io.Discard, handlerOpts)), func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, logFileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return slog.New(slog.NewTextHandler(io.Discard, handlerOpts)), func() {}
	}
	return slog.New(slog.NewTextHandler(f, handlerOpts)), func() { _ = f.Close() }
}

func (o *options) stderrLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: o.level()}))
}

func (o *options) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadFrom(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if o.dbPath != "" {
		cfg.Storage.Path = config.ExpandPath(o.dbPath)
	}
	if o.driver != "" {
		cfg.Storage.Driver = o.driver
	}
	return cfg, nil
}

func (o *options) watchPath() string {
	if o.configPath != "" {
		return config.ExpandPath(o.configPath)
	}
	return config.ConfigPath()
}

// open loads the config and opens the row store it points at.
func (o *options) open(logger *slog.Logger) (*config.Config, *store.Store, func() error, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}

	var backend kv.Store
	closeFn := func() error { return nil }
	if o.ephemeral {
		backend = kv.NewMemory()
	} else {
		db, err := kv.OpenSQLite(cfg.Storage.Path, cfg.Storage.Driver)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("open storage %s: %w", cfg.Storage.Path, err)
		}
		backend = db
		closeFn = db.Close
	}
	if cfg.Storage.MaxValueBytes > 0 {
		backend = kv.WithQuota(backend, cfg.Storage.MaxValueBytes)
	}

	logger.Debug("storage opened", "path", cfg.Storage.Path, "driver", cfg.Storage.Driver, "ephemeral", o.ephemeral)
	return cfg, store.New(backend, logger), closeFn, nil
}
