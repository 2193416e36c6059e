// Package watch reloads prompt templates when their files change on
// disk, so template edits take effect without a server restart.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/groundchat/internal/core/ports/driven"
	"github.com/custodia-labs/groundchat/internal/logger"
)

// PromptWatcher invalidates a PromptStore's cache whenever a template
// file in the watched directory changes.
type PromptWatcher struct {
	dir     string
	prompts driven.PromptStore

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	closed  bool
}

// NewPromptWatcher creates a watcher over the given prompts directory.
// Call Watch to start it.
func NewPromptWatcher(dir string, prompts driven.PromptStore) *PromptWatcher {
	return &PromptWatcher{
		dir:     dir,
		prompts: prompts,
	}
}

// Watch starts watching the prompts directory. It returns once the
// watch is established; reloads happen on a background goroutine until
// the context is cancelled or the watcher is closed.
func (w *PromptWatcher) Watch(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return fmt.Errorf("prompt watcher is closed")
	}
	if w.watcher != nil {
		return fmt.Errorf("prompt watcher already started")
	}

	if _, err := os.Stat(w.dir); err != nil {
		return fmt.Errorf("prompts dir error: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(w.dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	w.watcher = watcher

	go w.run(ctx, watcher)

	return nil
}

func (w *PromptWatcher) run(ctx context.Context, watcher *fsnotify.Watcher) {
	for {
		select {
		case <-ctx.Done():
			w.Close()
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !isTemplate(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("prompt template changed, reloading: %s", filepath.Base(event.Name))
			w.prompts.Reload()
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("prompt watcher error: %v", err)
		}
	}
}

// isTemplate reports whether a path names a prompt template file.
// The README written alongside the templates is ignored.
func isTemplate(path string) bool {
	return filepath.Ext(path) == ".txt"
}

// Close stops the watcher. It is safe to call multiple times.
func (w *PromptWatcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	if w.watcher != nil {
		return w.watcher.Close()
	}
	return nil
}
