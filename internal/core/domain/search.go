package domain

// SearchResult is a single item returned by the search collaborator.
type SearchResult struct {
	// ID is the dataset slug.
	ID string `json:"id"`

	// Name is the dataset display name.
	Name string `json:"name"`

	// Category is the index family the item belongs to ("cpi" or "wpi").
	Category string `json:"category"`

	// LastIndexValue is the most recent index level, when known.
	LastIndexValue *float64 `json:"last_index_value"`
}
