package services

import (
	"context"

	"github.com/devdev758/indiainflation/internal/core/domain"
	"github.com/devdev758/indiainflation/internal/core/ports/driven"
	"github.com/devdev758/indiainflation/internal/core/ports/driving"
	"github.com/devdev758/indiainflation/internal/logger"
)

// Ensure CatalogService implements the interface.
var _ driving.CatalogService = (*CatalogService)(nil)

// CatalogService aggregates per-dataset summaries across the registry.
type CatalogService struct {
	registry driven.CatalogStore
	exports  driving.ExportService
}

// NewCatalogService creates a catalog service over a dataset registry
// and the export loader.
func NewCatalogService(registry driven.CatalogStore, exports driving.ExportService) *CatalogService {
	return &CatalogService{
		registry: registry,
		exports:  exports,
	}
}

// List returns one summary row per registered dataset. A single failed
// export load degrades to a zero-valued row rather than failing the
// whole listing.
func (c *CatalogService) List(ctx context.Context) ([]domain.CatalogRow, error) {
	definitions, err := c.registry.ListDefinitions(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]domain.CatalogRow, 0, len(definitions))
	for _, def := range definitions {
		row := domain.CatalogRow{Slug: def.Slug, Name: def.Name}

		export, err := c.exports.Load(ctx, def.Slug, true)
		if err != nil {
			logger.Warn("catalog: %s failed to load: %v", def.Slug, err)
			rows = append(rows, row)
			continue
		}

		normalized := c.exports.Normalize(export)
		row.Observations = export.Metadata.Count
		row.LatestMonth = export.Metadata.LastDate
		row.Regions = len(normalized.Regions)
		rows = append(rows, row)
	}

	return rows, nil
}
