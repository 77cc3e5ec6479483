package fs

import (
	"compress/gzip"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/devdev758/indiainflation/internal/core/domain"
	"github.com/devdev758/indiainflation/internal/core/ports/driven"
)

// Ensure Writer implements the interface.
var _ driven.ArtifactWriter = (*Writer)(nil)

// Writer persists export payloads as gzip artifacts. Writes go through
// a temp file in the same directory followed by a rename, so readers
// never observe a partially written artifact.
type Writer struct {
	dir string
}

// NewWriter creates an artifact writer rooted at dir.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Write compresses and stores the payload under the slug. An existing
// artifact is left untouched unless force is set.
func (w *Writer) Write(ctx context.Context, slug string, payload []byte, force bool) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if slug == "" || slug != filepath.Base(slug) {
		return false, fmt.Errorf("%w: slug %q", domain.ErrInvalidInput, slug)
	}

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return false, fmt.Errorf("creating artifact directory: %w", err)
	}

	destination := filepath.Join(w.dir, slug+artifactSuffix)
	if !force {
		if _, err := os.Stat(destination); err == nil {
			return false, nil
		}
	}

	tmp, err := os.CreateTemp(w.dir, slug+".*.tmp")
	if err != nil {
		return false, fmt.Errorf("creating temp artifact: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	gz := gzip.NewWriter(tmp)
	if _, err := gz.Write(payload); err != nil {
		tmp.Close()
		return false, fmt.Errorf("compressing artifact %s: %w", slug, err)
	}
	if err := gz.Close(); err != nil {
		tmp.Close()
		return false, fmt.Errorf("finalizing gzip stream for %s: %w", slug, err)
	}
	if err := tmp.Close(); err != nil {
		return false, fmt.Errorf("closing temp artifact for %s: %w", slug, err)
	}

	if err := os.Rename(tmpPath, destination); err != nil {
		return false, fmt.Errorf("replacing artifact %s: %w", slug, err)
	}
	return true, nil
}
