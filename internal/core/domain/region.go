package domain

// Region type constants. The export schema only distinguishes the
// national aggregate from state-level breakdowns.
const (
	RegionTypeNation = "nation"
	RegionTypeState  = "state"
)

// RegionDescriptor is immutable reference data for one region.
type RegionDescriptor struct {
	// Code is the unique region slug, e.g. "all-india".
	Code string `json:"code"`

	// Name is the display name, e.g. "All India".
	Name string `json:"name"`

	// Type is one of RegionTypeNation or RegionTypeState.
	Type string `json:"type"`
}

// RegionSeries is the full index series for one region.
// Metadata is always consistent with Series: recomputing it from the
// points must reproduce it exactly.
type RegionSeries struct {
	Code     string         `json:"code"`
	Name     string         `json:"name"`
	Type     string         `json:"type"`
	Series   []SeriesPoint  `json:"series"`
	Metadata SeriesMetadata `json:"metadata"`
}
