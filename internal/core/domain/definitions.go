package domain

// DefaultRegionCode is the canonical region for every published dataset.
const DefaultRegionCode = "all-india"

// RegionSpec pairs a region descriptor with the level offset applied
// when generating that region's series.
type RegionSpec struct {
	RegionDescriptor
	Offset float64
}

// DefaultRegions returns the built-in generation regions: the national
// aggregate plus the state breakdowns published alongside it.
func DefaultRegions() []RegionSpec {
	return []RegionSpec{
		{RegionDescriptor{Code: "all-india", Name: "All India", Type: RegionTypeNation}, 0},
		{RegionDescriptor{Code: "andhra-pradesh", Name: "Andhra Pradesh", Type: RegionTypeState}, 2.4},
		{RegionDescriptor{Code: "bihar", Name: "Bihar", Type: RegionTypeState}, -1.8},
		{RegionDescriptor{Code: "gujarat", Name: "Gujarat", Type: RegionTypeState}, 1.1},
		{RegionDescriptor{Code: "karnataka", Name: "Karnataka", Type: RegionTypeState}, 3.2},
		{RegionDescriptor{Code: "kerala", Name: "Kerala", Type: RegionTypeState}, 4.5},
		{RegionDescriptor{Code: "maharashtra", Name: "Maharashtra", Type: RegionTypeState}, 1.9},
		{RegionDescriptor{Code: "tamil-nadu", Name: "Tamil Nadu", Type: RegionTypeState}, 2.8},
		{RegionDescriptor{Code: "uttar-pradesh", Name: "Uttar Pradesh", Type: RegionTypeState}, -2.3},
		{RegionDescriptor{Code: "west-bengal", Name: "West Bengal", Type: RegionTypeState}, -0.9},
	}
}

// DefaultDefinitions returns the registered dataset definitions for the
// CPI major groups and WPI categories.
func DefaultDefinitions() []DatasetDefinition {
	return []DatasetDefinition{
		{Slug: "cpi-all-items", Name: "CPI All Items", Kind: KindCPI, Base: 95, Growth: 0.48, Volatility: 1.3},
		{Slug: "cpi-food-and-beverages", Name: "CPI Food & Beverages", Kind: KindCPI, Base: 92, Growth: 0.55, Volatility: 2.6},
		{Slug: "cpi-pan-tobacco-intoxicants", Name: "CPI Pan, Tobacco & Intoxicants", Kind: KindCPI, Base: 101, Growth: 0.52, Volatility: 0.8},
		{Slug: "cpi-clothing-footwear", Name: "CPI Clothing & Footwear", Kind: KindCPI, Base: 98, Growth: 0.42, Volatility: 0.9},
		{Slug: "cpi-housing", Name: "CPI Housing", Kind: KindCPI, Base: 104, Growth: 0.38, Volatility: 0.6},
		{Slug: "cpi-fuel-and-light", Name: "CPI Fuel & Light", Kind: KindCPI, Base: 89, Growth: 0.61, Volatility: 3.1},
		{Slug: "cpi-miscellaneous", Name: "CPI Miscellaneous", Kind: KindCPI, Base: 97, Growth: 0.44, Volatility: 1.1},
		{Slug: "wpi-all-commodities", Name: "WPI All Commodities", Kind: KindWPI, Base: 93, Growth: 0.5, Volatility: 1.7},
		{Slug: "wpi-primary-articles", Name: "WPI Primary Articles", Kind: KindWPI, Base: 90, Growth: 0.58, Volatility: 2.9},
		{Slug: "wpi-fuel-and-power", Name: "WPI Fuel & Power", Kind: KindWPI, Base: 86, Growth: 0.66, Volatility: 3.8},
		{Slug: "wpi-manufactured-products", Name: "WPI Manufactured Products", Kind: KindWPI, Base: 99, Growth: 0.4, Volatility: 0.7},
	}
}
