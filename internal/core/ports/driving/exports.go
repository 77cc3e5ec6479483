package driving

import (
	"context"
	"io"

	"github.com/devdev758/indiainflation/internal/core/domain"
)

// ExportService loads, streams and converts dataset exports.
type ExportService interface {
	// Load returns the parsed export for the slug. With useCache=true a
	// cached object is returned without touching the artifact store;
	// with useCache=false a fresh fetch replaces the cached entry.
	Load(ctx context.Context, slug string, useCache bool) (*domain.ItemExport, error)

	// StreamForDownload returns the compressed artifact bytes
	// unmodified for direct client delivery, the content length
	// (-1 when unknown) and the download filename.
	StreamForDownload(ctx context.Context, slug string) (io.ReadCloser, int64, string, error)

	// ToCSV flattens the default-region series into comma-separated
	// text with a header row. Nil percentages render as empty fields.
	ToCSV(export *domain.ItemExport) string

	// Normalize reshapes one export into its region-indexed view.
	Normalize(export *domain.ItemExport) *domain.NormalizedDataset

	// Invalidate drops the cached entry for one slug.
	Invalidate(slug string)

	// ClearCache drops every cached entry. Exposed for test isolation
	// and operational cache busting.
	ClearCache()
}
