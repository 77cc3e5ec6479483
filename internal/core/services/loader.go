package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/devdev758/indiainflation/internal/core/domain"
	"github.com/devdev758/indiainflation/internal/core/ports/driven"
	"github.com/devdev758/indiainflation/internal/core/ports/driving"
	"github.com/devdev758/indiainflation/internal/logger"
)

// Ensure ExportLoader implements the interface.
var _ driving.ExportService = (*ExportLoader)(nil)

// loadEntry is one cached or in-flight load. Waiters block on done;
// after it closes either export or err is set.
type loadEntry struct {
	done   chan struct{}
	export *domain.ItemExport
	err    error
}

// ExportLoader decompresses and parses artifacts into ItemExports,
// caching them process-wide keyed by slug. Concurrent loads for the
// same slug share a single fetch; loads for different slugs proceed
// independently. Artifacts are treated as append-only, so there is no
// TTL; Invalidate and ClearCache are the only eviction paths.
type ExportLoader struct {
	store driven.ArtifactStore

	mu      sync.Mutex
	entries map[string]*loadEntry
}

// NewExportLoader creates an export loader over an artifact store.
func NewExportLoader(store driven.ArtifactStore) *ExportLoader {
	return &ExportLoader{
		store:   store,
		entries: make(map[string]*loadEntry),
	}
}

// Load returns the parsed export for a slug. On a cache hit with
// useCache=true the cached object is returned without touching the
// store; with useCache=false a fresh fetch replaces the cached entry.
func (l *ExportLoader) Load(ctx context.Context, slug string, useCache bool) (*domain.ItemExport, error) {
	if slug == "" {
		return nil, domain.ErrInvalidInput
	}

	l.mu.Lock()
	if entry, ok := l.entries[slug]; ok && useCache {
		l.mu.Unlock()
		logger.Debug("export cache: awaiting entry for %s", slug)
		select {
		case <-entry.done:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		if entry.err != nil {
			return nil, entry.err
		}
		return entry.export, nil
	}

	entry := &loadEntry{done: make(chan struct{})}
	l.entries[slug] = entry
	l.mu.Unlock()

	entry.export, entry.err = l.fetch(ctx, slug)
	if entry.err != nil {
		// A failed load must not poison subsequent lookups.
		l.mu.Lock()
		if l.entries[slug] == entry {
			delete(l.entries, slug)
		}
		l.mu.Unlock()
	}
	close(entry.done)

	return entry.export, entry.err
}

// fetch retrieves, decompresses and parses one artifact.
func (l *ExportLoader) fetch(ctx context.Context, slug string) (*domain.ItemExport, error) {
	logger.Debug("export loader: fetching %s", slug)
	raw, err := l.store.Fetch(ctx, slug)
	if err != nil {
		return nil, err
	}

	var export domain.ItemExport
	if err := json.Unmarshal(raw, &export); err != nil {
		logger.Warn("export loader: %s does not parse: %v", slug, err)
		return nil, fmt.Errorf("%w: %s", domain.ErrMalformed, slug)
	}
	if err := export.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", err, slug)
	}
	return &export, nil
}

// StreamForDownload returns the compressed artifact bytes unmodified,
// preserving the gzip envelope so the client can decompress it itself.
func (l *ExportLoader) StreamForDownload(ctx context.Context, slug string) (io.ReadCloser, int64, string, error) {
	if slug == "" {
		return nil, 0, "", domain.ErrInvalidInput
	}
	stream, length, err := l.store.Open(ctx, slug)
	if err != nil {
		return nil, 0, "", err
	}
	return stream, length, slug + ".json.gz", nil
}

// ToCSV flattens the default-region series: one row per point with a
// date,index_value,yoy_pct,mom_pct header. Nil percentages render as
// empty fields, never as the literal text "null".
func (l *ExportLoader) ToCSV(export *domain.ItemExport) string {
	var b strings.Builder
	b.WriteString("date,index_value,yoy_pct,mom_pct\n")
	for _, point := range export.Series {
		b.WriteString(point.Date.String())
		b.WriteByte(',')
		b.WriteString(formatCSVFloat(point.IndexValue))
		b.WriteByte(',')
		if point.YoYPct != nil {
			b.WriteString(formatCSVFloat(*point.YoYPct))
		}
		b.WriteByte(',')
		if point.MoMPct != nil {
			b.WriteString(formatCSVFloat(*point.MoMPct))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Normalize reshapes one export into its region-indexed view.
func (l *ExportLoader) Normalize(export *domain.ItemExport) *domain.NormalizedDataset {
	return NormalizeExport(export)
}

// Invalidate drops the cached entry for one slug. Called by the
// artifact watcher when an export is republished in place.
func (l *ExportLoader) Invalidate(slug string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.entries, slug)
}

// ClearCache drops every cached entry.
func (l *ExportLoader) ClearCache() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = make(map[string]*loadEntry)
}

// formatCSVFloat renders a float without trailing zeros.
func formatCSVFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
