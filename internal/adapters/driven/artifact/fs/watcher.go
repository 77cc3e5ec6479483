package fs

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/devdev758/indiainflation/internal/logger"
)

// Watcher observes an artifact directory and reports slugs whose
// artifacts were created, replaced or removed. The serving path uses
// it to invalidate cached exports when an artifact is republished in
// place; without it, republication under the same slug serves stale
// data until a restart.
type Watcher struct {
	watcher *fsnotify.Watcher
}

// NewWatcher starts watching the artifact directory.
func NewWatcher(dir string) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsWatcher.Add(dir); err != nil {
		fsWatcher.Close()
		return nil, err
	}
	return &Watcher{watcher: fsWatcher}, nil
}

// Run delivers changed slugs to onChange until the context ends.
// It blocks; run it in its own goroutine.
func (w *Watcher) Run(ctx context.Context, onChange func(slug string)) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			slug, ok := slugFromPath(event.Name)
			if !ok {
				continue
			}
			logger.Info("artifact watcher: %s changed (%s)", slug, event.Op)
			onChange(slug)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("artifact watcher: %v", err)
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

// slugFromPath extracts the dataset slug from an artifact path.
// Temp files from in-progress writes are ignored.
func slugFromPath(path string) (string, bool) {
	name := filepath.Base(path)
	if !strings.HasSuffix(name, artifactSuffix) {
		return "", false
	}
	slug := strings.TrimSuffix(name, artifactSuffix)
	if slug == "" {
		return "", false
	}
	return slug, true
}
