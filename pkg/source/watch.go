package source

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/jfortez/flowgraph/pkg/graph"
)

// DefaultDebounce spaces out reloads while an editor is still writing.
const DefaultDebounce = 100 * time.Millisecond

// Watch reloads a graph file whenever it changes and invokes onReload with
// the fresh document. It blocks until ctx is cancelled.
//
// onReload runs on the watcher's goroutine; hosts with a single-threaded
// scene must forward the graph onto their own loop. Parse and validation
// failures are logged and skipped so a half-saved file never tears down the
// running scene.
func Watch(ctx context.Context, path string, debounce time.Duration, logger *log.Logger, onReload func(graph.Graph)) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = log.Default()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory, not the file: editors that save via rename
	// replace the inode and a file-level watch would go stale.
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	src := NewFile(path)
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != filepath.Clean(path) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				g, err := src.Load(ctx)
				if err != nil {
					logger.Error("reload skipped", "path", path, "error", err)
					return
				}
				logger.Debug("graph reloaded", "path", path, "nodes", len(g.Nodes))
				onReload(g)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watch error", "path", path, "error", err)
		}
	}
}
