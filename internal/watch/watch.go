// Package watch re-runs checks when schema files change on disk.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the delay applied after the last file event before
// the change callback fires. Editors often emit several events per save.
const DefaultDebounce = 100 * time.Millisecond

// Watcher watches a directory tree for schema file changes.
type Watcher struct {
	dir        string
	extensions []string
	debounce   time.Duration
	logger     *slog.Logger
}

// New creates a watcher over dir. Only files matching one of the given
// extensions trigger the callback; an empty list matches everything.
// A non-positive debounce falls back to DefaultDebounce, a nil logger
// discards debug output.
func New(dir string, extensions []string, debounce time.Duration, logger *slog.Logger) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Watcher{
		dir:        dir,
		extensions: normalizeExtensions(extensions),
		debounce:   debounce,
		logger:     logger,
	}
}

// Run blocks watching for changes until ctx is cancelled. Each debounced
// batch of changed paths is passed to onChange, deduplicated and sorted.
func (w *Watcher) Run(ctx context.Context, onChange func(paths []string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := addRecursive(watcher, w.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}

	var mu sync.Mutex
	pending := make(map[string]struct{})
	var debounceTimer *time.Timer
	defer func() {
		mu.Lock()
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
		mu.Unlock()
	}()

	flush := func() {
		mu.Lock()
		if len(pending) == 0 {
			mu.Unlock()
			return
		}
		changed := make([]string, 0, len(pending))
		for path := range pending {
			changed = append(changed, path)
		}
		pending = make(map[string]struct{})
		mu.Unlock()

		sort.Strings(changed)
		onChange(changed)
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			// A directory created mid-watch gets watched too, so files
			// dropped into it keep triggering events.
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if !skipDir(filepath.Base(event.Name)) {
						_ = addRecursive(watcher, event.Name)
					}
					continue
				}
			}

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if !matchesExtension(event.Name, w.extensions) {
				continue
			}

			w.logger.Debug("change detected", slog.String("path", event.Name), slog.String("op", event.Op.String()))

			mu.Lock()
			pending[event.Name] = struct{}{}
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(w.debounce, flush)
			mu.Unlock()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", slog.String("error", err.Error()))
		}
	}
}

// addRecursive adds dir and all non-hidden subdirectories to the watcher.
func addRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if path != dir && skipDir(info.Name()) {
				return filepath.SkipDir
			}
			return watcher.Add(path)
		}
		return nil
	})
}

// skipDir reports whether a directory should be excluded from watching.
func skipDir(name string) bool {
	if name == "node_modules" {
		return true
	}
	return len(name) > 1 && strings.HasPrefix(name, ".")
}

// matchesExtension reports whether path has one of the given extensions.
// An empty extension list matches everything.
func matchesExtension(path string, extensions []string) bool {
	if len(extensions) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// normalizeExtensions lowercases extensions and ensures a leading dot.
func normalizeExtensions(extensions []string) []string {
	out := make([]string, 0, len(extensions))
	for _, e := range extensions {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		out = append(out, e)
	}
	return out
}
