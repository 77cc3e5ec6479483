package domain

// DatasetKind distinguishes the two published index families.
const (
	KindCPI = "cpi"
	KindWPI = "wpi"
)

// DatasetDefinition registers one dataset for generation and catalog
// listing. Base, Growth and Volatility parameterize the synthetic
// series recipe used until real observations replace it.
type DatasetDefinition struct {
	Slug       string  `json:"slug"`
	Name       string  `json:"name"`
	Kind       string  `json:"kind"`
	Base       float64 `json:"base"`
	Growth     float64 `json:"growth"`
	Volatility float64 `json:"volatility"`
}

// CatalogRow is one per-dataset summary in the catalog listing.
// A dataset whose export failed to load degrades to a zero-valued row.
type CatalogRow struct {
	Slug         string `json:"slug"`
	Name         string `json:"name"`
	Observations int    `json:"observations"`
	LatestMonth  *Month `json:"latestMonth"`
	Regions      int    `json:"regions"`
}
