// Package watcher reruns generation when the registry changes. Editors often
// write a file several times per save, so events are debounced.
package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

type Watcher struct {
	fw       *fsnotify.Watcher
	debounce time.Duration
	logger   *slog.Logger

	mu      sync.Mutex
	targets map[string]bool
}

func New(debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	return &Watcher{
		fw:       fw,
		debounce: debounce,
		logger:   logger,
		targets:  make(map[string]bool),
	}, nil
}

// Add watches path. The parent directory is watched rather than the file so
// that saves which replace the file by renaming over it are still seen.
func (w *Watcher) Add(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	if err := w.fw.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	w.mu.Lock()
	w.targets[abs] = true
	w.mu.Unlock()

	return nil
}

// Run calls onChange with the changed path once events for it stop arriving
// for the debounce interval. It blocks until ctx is done.
func (w *Watcher) Run(ctx context.Context, onChange func(path string)) error {
	var (
		timer   *time.Timer
		fire    <-chan time.Time
		pending = make(map[string]bool)
	)

	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fw.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			path := filepath.Clean(event.Name)
			w.mu.Lock()
			watched := w.targets[path]
			w.mu.Unlock()
			if !watched {
				continue
			}

			w.logger.Debug("registry event", "path", path, "op", event.Op.String())
			pending[path] = true

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			for path := range pending {
				onChange(path)
			}
			clear(pending)

		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)
		}
	}
}

func (w *Watcher) Close() error {
	return w.fw.Close()
}
