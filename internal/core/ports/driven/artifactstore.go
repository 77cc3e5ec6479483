package driven

import (
	"context"
	"io"
)

// ArtifactStore resolves a dataset slug to its compressed export
// artifact. Implementations are read-only: they must never mutate or
// delete source artifacts.
//
// Fetch fails with domain.ErrNotFound when no artifact exists and with
// domain.ErrTooLarge when the artifact's compressed or decompressed
// size exceeds the configured ceiling; the compressed ceiling is
// checked before decompression starts.
type ArtifactStore interface {
	// Fetch returns the fully buffered decompressed artifact bytes.
	Fetch(ctx context.Context, slug string) ([]byte, error)

	// Open returns the raw compressed byte stream for pass-through
	// download, plus the compressed content length (-1 when unknown).
	// The caller owns the stream and must close it.
	Open(ctx context.Context, slug string) (io.ReadCloser, int64, error)
}

// ArtifactWriter persists one export artifact. Used only by the
// generation pipeline; the serving path never writes.
type ArtifactWriter interface {
	// Write stores the gzip-compressed payload under the slug,
	// replacing atomically. When force is false an existing artifact
	// is left untouched and written=false is returned.
	Write(ctx context.Context, slug string, payload []byte, force bool) (written bool, err error)
}
