// Package memory provides an in-memory artifact store, used in tests
// and anywhere a filesystem-backed store is unnecessary.
package memory

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/devdev758/indiainflation/internal/core/domain"
	"github.com/devdev758/indiainflation/internal/core/ports/driven"
)

// Ensure Store implements the interfaces.
var (
	_ driven.ArtifactStore  = (*Store)(nil)
	_ driven.ArtifactWriter = (*Store)(nil)
)

// Store is an in-memory implementation of driven.ArtifactStore and
// driven.ArtifactWriter holding gzip-compressed payloads keyed by slug.
type Store struct {
	mu            sync.RWMutex
	artifacts     map[string][]byte
	maxCompressed int64
}

// NewStore creates an empty in-memory artifact store. A positive
// maxCompressed enables the size ceiling check.
func NewStore(maxCompressed int64) *Store {
	return &Store{
		artifacts:     make(map[string][]byte),
		maxCompressed: maxCompressed,
	}
}

// Fetch returns the decompressed artifact bytes.
func (s *Store) Fetch(ctx context.Context, slug string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	compressed, ok := s.artifacts[slug]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, slug)
	}
	if s.maxCompressed > 0 && int64(len(compressed)) > s.maxCompressed {
		return nil, fmt.Errorf("%w: %s", domain.ErrTooLarge, slug)
	}

	reader, err := gzip.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("%w: %s is not valid gzip", domain.ErrMalformed, slug)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %s gzip stream truncated", domain.ErrMalformed, slug)
	}
	return data, nil
}

// Open returns the compressed bytes as a stream with a known length.
func (s *Store) Open(ctx context.Context, slug string) (io.ReadCloser, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	s.mu.RLock()
	compressed, ok := s.artifacts[slug]
	s.mu.RUnlock()
	if !ok {
		return nil, 0, fmt.Errorf("%w: %s", domain.ErrNotFound, slug)
	}
	if s.maxCompressed > 0 && int64(len(compressed)) > s.maxCompressed {
		return nil, 0, fmt.Errorf("%w: %s", domain.ErrTooLarge, slug)
	}
	return io.NopCloser(bytes.NewReader(compressed)), int64(len(compressed)), nil
}

// Write compresses and stores the payload under the slug.
func (s *Store) Write(ctx context.Context, slug string, payload []byte, force bool) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.artifacts[slug]; exists && !force {
		return false, nil
	}

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write(payload); err != nil {
		return false, err
	}
	if err := gz.Close(); err != nil {
		return false, err
	}
	s.artifacts[slug] = buf.Bytes()
	return true, nil
}

// PutCompressed stores raw pre-compressed bytes under the slug,
// bypassing compression. Useful for corrupt-artifact tests.
func (s *Store) PutCompressed(slug string, compressed []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.artifacts[slug] = compressed
}
