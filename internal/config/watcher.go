package config

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDelay coalesces the burst of events an editor produces on save.
const reloadDelay = 100 * time.Millisecond

// Watch reloads the config file at path whenever it changes and delivers
// the new Config on the returned channel. The directory is watched rather
// than the file so atomic rename-on-save is picked up. Files that fail to
// load are logged and skipped.
func Watch(path string, logger *slog.Logger) (<-chan *Config, io.Closer, error) {
	if logger == nil {
		logger = slog.Default()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		_ = watcher.Close()
		return nil, nil, err
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, nil, err
	}

	target := filepath.Clean(path)
	updates := make(chan *Config, 1)

	go func() {
		var debounceTimer *time.Timer
		var closed bool
		var mu sync.Mutex

		defer func() {
			mu.Lock()
			closed = true
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			mu.Unlock()
			close(updates)
		}()

		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}

				mu.Lock()
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(reloadDelay, func() {
					cfg, err := LoadFrom(path)

					mu.Lock()
					defer mu.Unlock()
					if closed {
						return
					}
					if err != nil {
						logger.Warn("config reload failed", "path", path, "err", err)
						return
					}

					// Keep only the newest config.
					select {
					case <-updates:
					default:
					}
					select {
					case updates <- cfg:
					default:
					}
				})
				mu.Unlock()

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("config watcher error", "err", err)
			}
		}
	}()

	return updates, watcher, nil
}
