package driven

import (
	"context"

	"github.com/devdev758/indiainflation/internal/core/domain"
)

// CatalogStore persists the dataset registry.
// Backed by SQLite for metadata storage.
type CatalogStore interface {
	// SaveDefinition stores or replaces a dataset definition.
	SaveDefinition(ctx context.Context, def domain.DatasetDefinition) error

	// ListDefinitions returns all registered definitions ordered by slug.
	ListDefinitions(ctx context.Context) ([]domain.DatasetDefinition, error)

	// GetDefinition retrieves a definition by slug.
	// Returns domain.ErrNotFound when the slug is not registered.
	GetDefinition(ctx context.Context, slug string) (*domain.DatasetDefinition, error)
}
