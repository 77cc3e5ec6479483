package driven

import (
	"context"

	"github.com/devdev758/indiainflation/internal/core/domain"
)

// SearchIndex is the secondary text-search collaborator. Lookups may
// suspend on I/O; the search service deduplicates and caches them.
type SearchIndex interface {
	// Index stores or replaces one searchable item.
	Index(ctx context.Context, item domain.SearchResult) error

	// Search returns items matching the free-text query, optionally
	// filtered by category, ordered by name.
	Search(ctx context.Context, query, category string, limit int) ([]domain.SearchResult, error)
}
