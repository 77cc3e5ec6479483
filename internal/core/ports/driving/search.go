package driving

import (
	"context"

	"github.com/devdev758/indiainflation/internal/core/domain"
)

// SearchService answers free-text dataset lookups with deduplicated,
// bounded caching of collaborator fetches.
type SearchService interface {
	// Search returns matching items for a query and optional category
	// filter. An empty query fails with domain.ErrInvalidInput.
	Search(ctx context.Context, query, category string) ([]domain.SearchResult, error)

	// ClearCache drops all cached lookups. Exposed for test isolation.
	ClearCache()
}
