// Package fs provides the local-filesystem artifact adapter: a
// read-only store for serving compressed exports, an atomic writer for
// the generation pipeline, and a change watcher for cache invalidation.
package fs

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/devdev758/indiainflation/internal/core/domain"
	"github.com/devdev758/indiainflation/internal/core/ports/driven"
)

// artifactSuffix is the on-disk artifact file extension.
const artifactSuffix = ".json.gz"

// Default size ceilings. The compressed ceiling is checked against the
// file size before any decompression; the decompressed ceiling bounds
// memory against a hostile or corrupt gzip stream.
const (
	DefaultMaxCompressedBytes   = 8 << 20  // 8 MiB
	DefaultMaxDecompressedBytes = 64 << 20 // 64 MiB
)

// Ensure Store implements the interface.
var _ driven.ArtifactStore = (*Store)(nil)

// Store resolves dataset slugs to gzip artifacts under a directory.
// It never mutates or deletes source artifacts.
type Store struct {
	dir             string
	maxCompressed   int64
	maxDecompressed int64
}

// NewStore creates an artifact store over a directory. Zero ceilings
// fall back to the defaults.
func NewStore(dir string, maxCompressed, maxDecompressed int64) *Store {
	if maxCompressed <= 0 {
		maxCompressed = DefaultMaxCompressedBytes
	}
	if maxDecompressed <= 0 {
		maxDecompressed = DefaultMaxDecompressedBytes
	}
	return &Store{
		dir:             dir,
		maxCompressed:   maxCompressed,
		maxDecompressed: maxDecompressed,
	}
}

// Fetch returns the fully buffered decompressed artifact bytes.
// The compressed size is checked before decompression starts.
func (s *Store) Fetch(ctx context.Context, slug string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := s.resolve(slug)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, slug)
		}
		return nil, fmt.Errorf("stat artifact %s: %w", slug, err)
	}
	if info.Size() > s.maxCompressed {
		return nil, fmt.Errorf("%w: %s compressed size %d exceeds ceiling %d",
			domain.ErrTooLarge, slug, info.Size(), s.maxCompressed)
	}

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, slug)
		}
		return nil, fmt.Errorf("open artifact %s: %w", slug, err)
	}
	defer file.Close()

	reader, err := gzip.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %s is not valid gzip", domain.ErrMalformed, slug)
	}
	defer reader.Close()

	// Read one byte past the ceiling to observe overflow.
	data, err := io.ReadAll(io.LimitReader(reader, s.maxDecompressed+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %s gzip stream truncated", domain.ErrMalformed, slug)
	}
	if int64(len(data)) > s.maxDecompressed {
		return nil, fmt.Errorf("%w: %s decompressed size exceeds ceiling %d",
			domain.ErrTooLarge, slug, s.maxDecompressed)
	}
	return data, nil
}

// Open returns the raw compressed stream and its content length for
// pass-through download.
func (s *Store) Open(ctx context.Context, slug string) (io.ReadCloser, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	path, err := s.resolve(slug)
	if err != nil {
		return nil, 0, err
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, 0, fmt.Errorf("%w: %s", domain.ErrNotFound, slug)
		}
		return nil, 0, fmt.Errorf("stat artifact %s: %w", slug, err)
	}
	if info.Size() > s.maxCompressed {
		return nil, 0, fmt.Errorf("%w: %s compressed size %d exceeds ceiling %d",
			domain.ErrTooLarge, slug, info.Size(), s.maxCompressed)
	}

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, 0, fmt.Errorf("%w: %s", domain.ErrNotFound, slug)
		}
		return nil, 0, fmt.Errorf("open artifact %s: %w", slug, err)
	}
	return file, info.Size(), nil
}

// resolve maps a slug to its artifact path, rejecting slugs that would
// escape the artifact directory.
func (s *Store) resolve(slug string) (string, error) {
	if slug == "" || slug != filepath.Base(slug) || slug == "." || slug == ".." {
		return "", fmt.Errorf("%w: slug %q", domain.ErrInvalidInput, slug)
	}
	return filepath.Join(s.dir, slug+artifactSuffix), nil
}
