package services

import (
	"time"

	"github.com/devdev758/indiainflation/internal/core/domain"
)

// BuildExport assembles a complete ItemExport for one dataset
// definition: one generated series per region, with the default region
// mirrored at the top level for schema-v1 readers.
func BuildExport(def domain.DatasetDefinition, regions []domain.RegionSpec, start domain.Month, months int, now time.Time) *domain.ItemExport {
	export := &domain.ItemExport{
		Slug:          def.Slug,
		Name:          def.Name,
		DefaultRegion: domain.DefaultRegionCode,
		GeneratedAt:   now.UTC(),
		SchemaVersion: domain.ExportSchemaVersion,
	}

	for _, region := range regions {
		series, metadata := GenerateSeries(Recipe{
			Base:       def.Base,
			Growth:     def.Growth,
			Offset:     region.Offset,
			Volatility: def.Volatility,
			Start:      start,
			Months:     months,
		})
		export.Regions = append(export.Regions, region.RegionDescriptor)
		export.RegionalSeries = append(export.RegionalSeries, domain.RegionSeries{
			Code:     region.Code,
			Name:     region.Name,
			Type:     region.Type,
			Series:   series,
			Metadata: metadata,
		})
		if region.Code == domain.DefaultRegionCode {
			export.Series = series
			export.Metadata = metadata
		}
	}

	return export
}
