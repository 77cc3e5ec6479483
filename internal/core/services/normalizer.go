package services

import (
	"sort"

	"github.com/devdev758/indiainflation/internal/core/domain"
)

// NormalizeExport reconciles one export into a NormalizedDataset with
// guaranteed structural completeness. It is total over structurally
// valid exports: a missing or empty series degrades to an empty
// RegionSeries rather than erroring.
func NormalizeExport(export *domain.ItemExport) *domain.NormalizedDataset {
	regionMap := make(map[string]domain.RegionSeries)

	if len(export.RegionalSeries) > 0 {
		for _, entry := range export.RegionalSeries {
			if entry.Code == "" {
				continue
			}
			metadata := entry.Metadata
			if metadata.IsZero() {
				if len(entry.Series) > 0 {
					metadata = domain.ComputeMetadata(entry.Series)
				} else {
					metadata = export.Metadata
				}
			}
			regionMap[entry.Code] = domain.RegionSeries{
				Code:     entry.Code,
				Name:     entry.Name,
				Type:     entry.Type,
				Series:   entry.Series,
				Metadata: metadata,
			}
		}
	} else {
		regionMap[export.DefaultRegion] = synthesizeDefaultRegion(export)
	}

	// The declared default region must always resolve, even when the
	// source payload never carried a matching regional entry.
	if _, ok := regionMap[export.DefaultRegion]; !ok {
		regionMap[export.DefaultRegion] = synthesizeDefaultRegion(export)
	}

	codes := make([]string, 0, len(regionMap))
	for code := range regionMap {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	regions := make([]domain.RegionSeries, 0, len(codes))
	for _, code := range codes {
		regions = append(regions, regionMap[code])
	}

	defaultRegion := export.DefaultRegion
	if _, ok := regionMap[defaultRegion]; !ok {
		defaultRegion = regions[0].Code
	}

	return &domain.NormalizedDataset{
		Slug:          export.Slug,
		Name:          export.Name,
		Metadata:      export.Metadata,
		DefaultRegion: defaultRegion,
		Regions:       regions,
		RegionMap:     regionMap,
	}
}

// synthesizeDefaultRegion builds a RegionSeries from the top-level
// default-region series, naming it from the descriptor list when
// available and falling back to the dataset name.
func synthesizeDefaultRegion(export *domain.ItemExport) domain.RegionSeries {
	name := export.Name
	regionType := domain.RegionTypeNation
	for _, descriptor := range export.Regions {
		if descriptor.Code == export.DefaultRegion {
			name = descriptor.Name
			if descriptor.Type != "" {
				regionType = descriptor.Type
			}
			break
		}
	}

	metadata := export.Metadata
	if metadata.IsZero() && len(export.Series) > 0 {
		metadata = domain.ComputeMetadata(export.Series)
	}

	return domain.RegionSeries{
		Code:     export.DefaultRegion,
		Name:     name,
		Type:     regionType,
		Series:   export.Series,
		Metadata: metadata,
	}
}
