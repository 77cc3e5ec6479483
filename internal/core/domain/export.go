package domain

import "time"

// ExportSchemaVersion is the current artifact schema version.
// Version 1 carried only the default-region series; version 2 added
// the regional breakdown.
const ExportSchemaVersion = 2

// ItemExport is the canonical per-dataset artifact, stored as a
// gzip-compressed UTF-8 JSON blob. It is produced out of band by the
// generation pipeline and read-only from the serving path.
type ItemExport struct {
	// Slug is the stable dataset identifier, e.g. "cpi-all-items".
	Slug string `json:"slug"`

	// Name is the dataset display name.
	Name string `json:"name"`

	// DefaultRegion is the region code treated as the canonical series.
	DefaultRegion string `json:"default_region"`

	// Metadata summarizes the default-region series.
	Metadata SeriesMetadata `json:"metadata"`

	// Series is the default-region point sequence, kept at the top
	// level for backward compatibility with schema version 1 readers.
	Series []SeriesPoint `json:"series"`

	// Regions lists the declared region descriptors.
	Regions []RegionDescriptor `json:"regions,omitempty"`

	// RegionalSeries carries the per-region breakdown. May be empty in
	// older artifacts; the normalizer synthesizes coverage from the
	// default-region series in that case.
	RegionalSeries []RegionSeries `json:"regional_series,omitempty"`

	GeneratedAt   time.Time `json:"generated_at"`
	SchemaVersion int       `json:"export_schema_version"`
}

// Validate checks the structural contract required of a parsed export.
// It returns ErrMalformed when a required field is missing.
func (e *ItemExport) Validate() error {
	if e.Slug == "" || e.Name == "" {
		return ErrMalformed
	}
	return nil
}

// NormalizedDataset is the per-request view built by the normalizer.
// Regions is sorted by code; RegionMap always contains DefaultRegion.
// Immutable after construction and owned by the requesting caller.
type NormalizedDataset struct {
	Slug          string                  `json:"slug"`
	Name          string                  `json:"name"`
	Metadata      SeriesMetadata          `json:"metadata"`
	DefaultRegion string                  `json:"defaultRegion"`
	Regions       []RegionSeries          `json:"regions"`
	RegionMap     map[string]RegionSeries `json:"regionMap"`
}
