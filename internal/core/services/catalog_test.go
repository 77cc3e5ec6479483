package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devdev758/indiainflation/internal/core/domain"
)

// mockCatalogStore is a test double for the dataset registry port.
type mockCatalogStore struct {
	definitions []domain.DatasetDefinition
	listErr     error
}

func (m *mockCatalogStore) SaveDefinition(_ context.Context, def domain.DatasetDefinition) error {
	m.definitions = append(m.definitions, def)
	return nil
}

func (m *mockCatalogStore) ListDefinitions(context.Context) ([]domain.DatasetDefinition, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.definitions, nil
}

func (m *mockCatalogStore) GetDefinition(_ context.Context, slug string) (*domain.DatasetDefinition, error) {
	for i := range m.definitions {
		if m.definitions[i].Slug == slug {
			return &m.definitions[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func TestCatalogList(t *testing.T) {
	store := newMockArtifactStore()
	store.put(t, testExport("cpi-all-items"))
	registry := &mockCatalogStore{definitions: []domain.DatasetDefinition{
		{Slug: "cpi-all-items", Name: "CPI All Items", Kind: domain.KindCPI},
	}}
	catalog := NewCatalogService(registry, NewExportLoader(store))

	rows, err := catalog.List(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "cpi-all-items", row.Slug)
	assert.Equal(t, "CPI All Items", row.Name)
	assert.Equal(t, 2, row.Observations)
	require.NotNil(t, row.LatestMonth)
	assert.Equal(t, 1, row.Regions)
}

func TestCatalogListDegradedRow(t *testing.T) {
	store := newMockArtifactStore()
	store.put(t, testExport("cpi-all-items"))
	registry := &mockCatalogStore{definitions: []domain.DatasetDefinition{
		{Slug: "cpi-all-items", Name: "CPI All Items", Kind: domain.KindCPI},
		{Slug: "wpi-missing", Name: "WPI Missing", Kind: domain.KindWPI},
	}}
	catalog := NewCatalogService(registry, NewExportLoader(store))

	rows, err := catalog.List(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// The missing artifact yields a zero-valued row, not an error.
	degraded := rows[1]
	assert.Equal(t, "wpi-missing", degraded.Slug)
	assert.Zero(t, degraded.Observations)
	assert.Nil(t, degraded.LatestMonth)
	assert.Zero(t, degraded.Regions)
}

func TestCatalogListRegistryError(t *testing.T) {
	registry := &mockCatalogStore{listErr: errors.New("registry unavailable")}
	catalog := NewCatalogService(registry, NewExportLoader(newMockArtifactStore()))

	_, err := catalog.List(context.Background())
	assert.Error(t, err)
}
