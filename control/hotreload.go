// control/hotreload.go
// Author: momentics <momentics@gmail.com>
//
// Watches a YAML config file and applies every valid revision to a ConfigStore.

package control

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher reloads a config file into a store when it changes on disk.
// Invalid revisions are logged and skipped; the store keeps the last good one.
type FileWatcher struct {
	path    string
	store   *ConfigStore
	logger  *slog.Logger
	watcher *fsnotify.Watcher
	applied func(*Config)
}

// NewFileWatcher prepares a watcher. Start must be called to begin watching.
// A nil logger means slog.Default().
func NewFileWatcher(path string, store *ConfigStore, logger *slog.Logger) (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FileWatcher{path: filepath.Clean(path), store: store, logger: logger, watcher: w}, nil
}

// OnApplied sets a hook run after each successful reload. Call it before Start.
func (fw *FileWatcher) OnApplied(fn func(*Config)) { fw.applied = fn }

// Start watches until ctx is done or Stop is called. It blocks; run it in a
// goroutine. The underlying watcher is closed when Start returns, so a
// FileWatcher serves one Start call.
//
// The parent directory is watched rather than the file, so editors that
// replace the file by rename are handled too.
func (fw *FileWatcher) Start(ctx context.Context) error {
	defer fw.watcher.Close()
	if err := fw.watcher.Add(filepath.Dir(fw.path)); err != nil {
		return err
	}
	fw.logger.Debug("config watcher started", slog.String("path", fw.path))
	for {
		select {
		case ev, ok := <-fw.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != fw.path {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				fw.reload()
			}
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return nil
			}
			fw.logger.Warn("config watcher error", slog.Any("error", err))
		case <-ctx.Done():
			fw.logger.Debug("config watcher stopping", slog.String("path", fw.path))
			return ctx.Err()
		}
	}
}

// reload reads the file once and applies it.
func (fw *FileWatcher) reload() {
	cfg, err := LoadConfig(fw.path)
	if err != nil {
		fw.logger.Warn("config reload rejected", slog.String("path", fw.path), slog.Any("error", err))
		return
	}
	if err := fw.store.ApplySync(cfg); err != nil {
		fw.logger.Warn("config reload rejected", slog.String("path", fw.path), slog.Any("error", err))
		return
	}
	fw.logger.Info("config reloaded", slog.String("path", fw.path))
	if fw.applied != nil {
		fw.applied(cfg)
	}
}

// Stop releases the underlying watcher and ends a running Start. Safe to call
// more than once, before or after Start returns.
func (fw *FileWatcher) Stop() error {
	return fw.watcher.Close()
}
