package httpapi

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devdev758/indiainflation/internal/adapters/driven/artifact/memory"
	"github.com/devdev758/indiainflation/internal/core/domain"
	"github.com/devdev758/indiainflation/internal/core/services"
)

// stubCatalogStore serves a fixed definition list.
type stubCatalogStore struct {
	definitions []domain.DatasetDefinition
}

func (s *stubCatalogStore) SaveDefinition(context.Context, domain.DatasetDefinition) error {
	return nil
}

func (s *stubCatalogStore) ListDefinitions(context.Context) ([]domain.DatasetDefinition, error) {
	return s.definitions, nil
}

func (s *stubCatalogStore) GetDefinition(context.Context, string) (*domain.DatasetDefinition, error) {
	return nil, domain.ErrNotFound
}

// stubSearchIndex serves a fixed result list.
type stubSearchIndex struct {
	results []domain.SearchResult
}

func (s *stubSearchIndex) Index(context.Context, domain.SearchResult) error {
	return nil
}

func (s *stubSearchIndex) Search(context.Context, string, string, int) ([]domain.SearchResult, error) {
	return s.results, nil
}

func testExportPayload(t *testing.T) []byte {
	t.Helper()
	jan := domain.NewMonth(2020, time.January)
	mom := 0.8
	series := []domain.SeriesPoint{
		{Date: jan, IndexValue: 100},
		{Date: jan.AddMonths(1), IndexValue: 100.8, MoMPct: &mom},
	}
	export := domain.ItemExport{
		Slug:          "cpi-all-items",
		Name:          "CPI All Items",
		DefaultRegion: domain.DefaultRegionCode,
		Series:        series,
		Metadata:      domain.ComputeMetadata(series),
		SchemaVersion: domain.ExportSchemaVersion,
	}
	raw, err := json.Marshal(export)
	require.NoError(t, err)
	return raw
}

func newTestHandler(t *testing.T) (http.Handler, *memory.Store) {
	t.Helper()
	store := memory.NewStore(0)
	_, err := store.Write(context.Background(), "cpi-all-items", testExportPayload(t), false)
	require.NoError(t, err)

	loader := services.NewExportLoader(store)
	catalog := services.NewCatalogService(&stubCatalogStore{definitions: []domain.DatasetDefinition{
		{Slug: "cpi-all-items", Name: "CPI All Items", Kind: domain.KindCPI},
	}}, loader)
	search := services.NewSearchService(&stubSearchIndex{results: []domain.SearchResult{
		{ID: "cpi-all-items", Name: "CPI All Items", Category: "cpi"},
	}}, nil)

	return NewServer(loader, catalog, search).Handler(), store
}

func doRequest(t *testing.T, handler http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

func TestHealth(t *testing.T) {
	handler, _ := newTestHandler(t)

	rec := doRequest(t, handler, http.MethodGet, "/api/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestExportJSON(t *testing.T) {
	handler, _ := newTestHandler(t)

	rec := doRequest(t, handler, http.MethodGet, "/api/exports/cpi-all-items")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, exportCacheControl, rec.Header().Get("Cache-Control"))
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	var export domain.ItemExport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &export))
	assert.Equal(t, "cpi-all-items", export.Slug)
	assert.Len(t, export.Series, 2)
}

func TestExportJSONCacheBypass(t *testing.T) {
	handler, store := newTestHandler(t)

	rec := doRequest(t, handler, http.MethodGet, "/api/exports/cpi-all-items")
	require.Equal(t, http.StatusOK, rec.Code)

	// Republish under the same slug; only cached=false sees the update.
	updated := []byte(`{"slug":"cpi-all-items","name":"CPI All Items (revised)","default_region":"all-india","series":[]}`)
	_, err := store.Write(context.Background(), "cpi-all-items", updated, true)
	require.NoError(t, err)

	rec = doRequest(t, handler, http.MethodGet, "/api/exports/cpi-all-items")
	var export domain.ItemExport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &export))
	assert.Equal(t, "CPI All Items", export.Name)

	rec = doRequest(t, handler, http.MethodGet, "/api/exports/cpi-all-items?cached=false")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &export))
	assert.Equal(t, "CPI All Items (revised)", export.Name)
}

func TestExportJSONNotFound(t *testing.T) {
	handler, _ := newTestHandler(t)

	rec := doRequest(t, handler, http.MethodGet, "/api/exports/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, codeNotFound, decodeError(t, rec))
}

func TestExportMissingSlug(t *testing.T) {
	handler, _ := newTestHandler(t)

	for _, target := range []string{"/api/exports", "/api/exports/"} {
		rec := doRequest(t, handler, http.MethodGet, target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		assert.Equal(t, codeMissingSlug, decodeError(t, rec), target)
	}
}

func TestExportTooLarge(t *testing.T) {
	store := memory.NewStore(8)
	_, err := store.Write(context.Background(), "cpi-all-items", testExportPayload(t), false)
	require.NoError(t, err)
	loader := services.NewExportLoader(store)
	handler := NewServer(loader, services.NewCatalogService(&stubCatalogStore{}, loader), services.NewSearchService(&stubSearchIndex{}, nil)).Handler()

	rec := doRequest(t, handler, http.MethodGet, "/api/exports/cpi-all-items")
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, codePayloadTooLarge, decodeError(t, rec))
}

func TestExportMalformedArtifact(t *testing.T) {
	handler, store := newTestHandler(t)
	store.PutCompressed("corrupt", []byte("definitely not gzip"))

	rec := doRequest(t, handler, http.MethodGet, "/api/exports/corrupt")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, codeInternalError, decodeError(t, rec))
}

func TestExportDownload(t *testing.T) {
	handler, _ := newTestHandler(t)

	rec := doRequest(t, handler, http.MethodGet, "/api/exports/cpi-all-items/download")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/gzip", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="cpi-all-items.json.gz"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, strconv.Itoa(rec.Body.Len()), rec.Header().Get("Content-Length"))

	// The body is the gzip envelope, passed through untouched.
	gz, err := gzip.NewReader(rec.Body)
	require.NoError(t, err)
	raw, err := io.ReadAll(gz)
	require.NoError(t, err)
	var export domain.ItemExport
	require.NoError(t, json.Unmarshal(raw, &export))
	assert.Equal(t, "cpi-all-items", export.Slug)
}

func TestExportCSV(t *testing.T) {
	handler, _ := newTestHandler(t)

	rec := doRequest(t, handler, http.MethodGet, "/api/exports/cpi-all-items/csv")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="cpi-all-items.csv"`, rec.Header().Get("Content-Disposition"))

	want := "date,index_value,yoy_pct,mom_pct\n" +
		"2020-01-01,100,,\n" +
		"2020-02-01,100.8,,0.8\n"
	assert.Equal(t, want, rec.Body.String())
}

func TestExportUnknownSubresource(t *testing.T) {
	handler, _ := newTestHandler(t)

	rec := doRequest(t, handler, http.MethodGet, "/api/exports/cpi-all-items/xml")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, codeNotFound, decodeError(t, rec))
}

func TestCatalog(t *testing.T) {
	handler, _ := newTestHandler(t)

	rec := doRequest(t, handler, http.MethodGet, "/api/catalog")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data []domain.CatalogRow `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "cpi-all-items", body.Data[0].Slug)
	assert.Equal(t, 2, body.Data[0].Observations)
	assert.Equal(t, 1, body.Data[0].Regions)
}

func TestSearch(t *testing.T) {
	handler, _ := newTestHandler(t)

	rec := doRequest(t, handler, http.MethodGet, "/api/search?q=cpi")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data []domain.SearchResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "cpi-all-items", body.Data[0].ID)
}

func TestSearchMissingQuery(t *testing.T) {
	handler, _ := newTestHandler(t)

	for _, target := range []string{"/api/search", "/api/search?q=%20%20"} {
		rec := doRequest(t, handler, http.MethodGet, target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		assert.Equal(t, codeMissingQuery, decodeError(t, rec), target)
	}
}

func TestSearchEmptyResults(t *testing.T) {
	store := memory.NewStore(0)
	loader := services.NewExportLoader(store)
	handler := NewServer(loader, services.NewCatalogService(&stubCatalogStore{}, loader), services.NewSearchService(&stubSearchIndex{}, nil)).Handler()

	rec := doRequest(t, handler, http.MethodGet, "/api/search?q=nothing")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":[]}`, rec.Body.String())
}

func TestMethodNotAllowed(t *testing.T) {
	handler, _ := newTestHandler(t)

	for _, target := range []string{"/api/health", "/api/exports/cpi-all-items", "/api/catalog", "/api/search?q=x"} {
		rec := doRequest(t, handler, http.MethodPost, target)
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, target)
		assert.Equal(t, codeMethodNotAllowed, decodeError(t, rec), target)
	}
}
