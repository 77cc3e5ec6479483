package services

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devdev758/indiainflation/internal/core/domain"
)

// mockArtifactStore is a test double for the artifact store port.
type mockArtifactStore struct {
	payloads   map[string][]byte
	fetchErr   map[string]error
	fetchCalls atomic.Int64
}

func newMockArtifactStore() *mockArtifactStore {
	return &mockArtifactStore{
		payloads: make(map[string][]byte),
		fetchErr: make(map[string]error),
	}
}

func (m *mockArtifactStore) put(t *testing.T, export *domain.ItemExport) {
	t.Helper()
	raw, err := json.Marshal(export)
	require.NoError(t, err)
	m.payloads[export.Slug] = raw
}

func (m *mockArtifactStore) Fetch(_ context.Context, slug string) ([]byte, error) {
	m.fetchCalls.Add(1)
	if err, ok := m.fetchErr[slug]; ok {
		return nil, err
	}
	raw, ok := m.payloads[slug]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return raw, nil
}

func (m *mockArtifactStore) Open(_ context.Context, slug string) (io.ReadCloser, int64, error) {
	raw, ok := m.payloads[slug]
	if !ok {
		return nil, 0, domain.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(raw)), int64(len(raw)), nil
}

func testExport(slug string) *domain.ItemExport {
	jan := domain.NewMonth(2020, time.January)
	series := sampleSeries(jan, 100, 100.8)
	return &domain.ItemExport{
		Slug:          slug,
		Name:          "Test Dataset",
		DefaultRegion: domain.DefaultRegionCode,
		Series:        series,
		Metadata:      domain.ComputeMetadata(series),
		SchemaVersion: domain.ExportSchemaVersion,
	}
}

func TestLoaderLoad(t *testing.T) {
	store := newMockArtifactStore()
	store.put(t, testExport("cpi-all-items"))
	loader := NewExportLoader(store)

	export, err := loader.Load(context.Background(), "cpi-all-items", true)
	require.NoError(t, err)
	assert.Equal(t, "cpi-all-items", export.Slug)
	assert.Len(t, export.Series, 2)
}

func TestLoaderLoadNotFound(t *testing.T) {
	loader := NewExportLoader(newMockArtifactStore())

	_, err := loader.Load(context.Background(), "missing", true)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLoaderLoadMalformed(t *testing.T) {
	store := newMockArtifactStore()
	store.payloads["broken"] = []byte("{not json")
	loader := NewExportLoader(store)

	_, err := loader.Load(context.Background(), "broken", true)
	assert.ErrorIs(t, err, domain.ErrMalformed)
}

func TestLoaderLoadRejectsIncompleteExport(t *testing.T) {
	store := newMockArtifactStore()
	store.payloads["nameless"] = []byte(`{"slug":"nameless"}`)
	loader := NewExportLoader(store)

	_, err := loader.Load(context.Background(), "nameless", true)
	assert.ErrorIs(t, err, domain.ErrMalformed)
}

func TestLoaderLoadEmptySlug(t *testing.T) {
	loader := NewExportLoader(newMockArtifactStore())

	_, err := loader.Load(context.Background(), "", true)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLoaderCacheHitSkipsStore(t *testing.T) {
	store := newMockArtifactStore()
	store.put(t, testExport("cpi-all-items"))
	loader := NewExportLoader(store)

	first, err := loader.Load(context.Background(), "cpi-all-items", true)
	require.NoError(t, err)
	second, err := loader.Load(context.Background(), "cpi-all-items", true)
	require.NoError(t, err)

	assert.Same(t, first, second, "cache hits return the cached object")
	assert.Equal(t, int64(1), store.fetchCalls.Load())
}

func TestLoaderBypassRefetches(t *testing.T) {
	store := newMockArtifactStore()
	store.put(t, testExport("cpi-all-items"))
	loader := NewExportLoader(store)

	_, err := loader.Load(context.Background(), "cpi-all-items", true)
	require.NoError(t, err)
	_, err = loader.Load(context.Background(), "cpi-all-items", false)
	require.NoError(t, err)

	assert.Equal(t, int64(2), store.fetchCalls.Load())

	// The refreshed entry serves subsequent cached loads.
	_, err = loader.Load(context.Background(), "cpi-all-items", true)
	require.NoError(t, err)
	assert.Equal(t, int64(2), store.fetchCalls.Load())
}

func TestLoaderConcurrentLoadsShareOneFetch(t *testing.T) {
	store := newMockArtifactStore()
	store.put(t, testExport("cpi-all-items"))
	loader := NewExportLoader(store)

	const callers = 50
	var wg sync.WaitGroup
	results := make([]*domain.ItemExport, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = loader.Load(context.Background(), "cpi-all-items", true)
		}(i)
	}
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Same(t, results[0], results[i])
	}
	assert.Equal(t, int64(1), store.fetchCalls.Load())
}

func TestLoaderFailureDoesNotPoisonCache(t *testing.T) {
	store := newMockArtifactStore()
	store.fetchErr["flaky"] = domain.ErrNotFound
	loader := NewExportLoader(store)

	_, err := loader.Load(context.Background(), "flaky", true)
	require.ErrorIs(t, err, domain.ErrNotFound)

	// Once the artifact appears, the next load succeeds.
	delete(store.fetchErr, "flaky")
	store.put(t, testExport("flaky"))

	export, err := loader.Load(context.Background(), "flaky", true)
	require.NoError(t, err)
	assert.Equal(t, "flaky", export.Slug)
	assert.Equal(t, int64(2), store.fetchCalls.Load())
}

func TestLoaderInvalidate(t *testing.T) {
	store := newMockArtifactStore()
	store.put(t, testExport("cpi-all-items"))
	store.put(t, testExport("wpi-all-commodities"))
	loader := NewExportLoader(store)

	_, err := loader.Load(context.Background(), "cpi-all-items", true)
	require.NoError(t, err)
	_, err = loader.Load(context.Background(), "wpi-all-commodities", true)
	require.NoError(t, err)

	loader.Invalidate("cpi-all-items")

	_, err = loader.Load(context.Background(), "cpi-all-items", true)
	require.NoError(t, err)
	_, err = loader.Load(context.Background(), "wpi-all-commodities", true)
	require.NoError(t, err)
	assert.Equal(t, int64(3), store.fetchCalls.Load(), "only the invalidated slug refetches")
}

func TestLoaderClearCache(t *testing.T) {
	store := newMockArtifactStore()
	store.put(t, testExport("cpi-all-items"))
	loader := NewExportLoader(store)

	_, err := loader.Load(context.Background(), "cpi-all-items", true)
	require.NoError(t, err)
	loader.ClearCache()
	_, err = loader.Load(context.Background(), "cpi-all-items", true)
	require.NoError(t, err)
	assert.Equal(t, int64(2), store.fetchCalls.Load())
}

func TestLoaderStreamForDownload(t *testing.T) {
	store := newMockArtifactStore()
	store.put(t, testExport("cpi-all-items"))
	loader := NewExportLoader(store)

	stream, length, filename, err := loader.StreamForDownload(context.Background(), "cpi-all-items")
	require.NoError(t, err)
	defer stream.Close()

	raw, err := io.ReadAll(stream)
	require.NoError(t, err)
	assert.Equal(t, int64(len(raw)), length)
	assert.Equal(t, "cpi-all-items.json.gz", filename)
}

func TestLoaderToCSV(t *testing.T) {
	jan := domain.NewMonth(2020, time.January)
	yoy := 4.25
	mom := 0.5
	export := &domain.ItemExport{
		Slug: "cpi-all-items",
		Name: "CPI All Items",
		Series: []domain.SeriesPoint{
			{Date: jan, IndexValue: 100},
			{Date: jan.AddMonths(1), IndexValue: 100.5, YoYPct: &yoy, MoMPct: &mom},
		},
	}

	csv := NewExportLoader(newMockArtifactStore()).ToCSV(export)
	want := "date,index_value,yoy_pct,mom_pct\n" +
		"2020-01-01,100,,\n" +
		"2020-02-01,100.5,4.25,0.5\n"
	assert.Equal(t, want, csv)
}
