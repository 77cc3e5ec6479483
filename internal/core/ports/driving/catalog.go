package driving

import (
	"context"

	"github.com/devdev758/indiainflation/internal/core/domain"
)

// CatalogService aggregates per-dataset summaries across all
// registered definitions.
type CatalogService interface {
	// List returns one row per registered dataset. A dataset whose
	// export cannot be loaded yields a zero-valued row rather than
	// failing the listing.
	List(ctx context.Context) ([]domain.CatalogRow, error)
}
