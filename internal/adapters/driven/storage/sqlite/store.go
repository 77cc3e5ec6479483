// Package sqlite provides the SQLite-backed dataset registry and the
// search collaborator index.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/devdev758/indiainflation/internal/core/domain"
	"github.com/devdev758/indiainflation/internal/core/ports/driven"
)

// schema holds the registry tables. Search items live in their own
// table so the collaborator can be re-seeded independently of the
// definitions.
const schema = `
CREATE TABLE IF NOT EXISTS datasets (
	slug        TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	kind        TEXT NOT NULL,
	base        REAL NOT NULL DEFAULT 0,
	growth      REAL NOT NULL DEFAULT 0,
	volatility  REAL NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS search_items (
	slug             TEXT PRIMARY KEY,
	name             TEXT NOT NULL,
	category         TEXT NOT NULL,
	last_index_value REAL
);
`

// Store is the unified SQLite storage. Access the port implementations
// through CatalogStore and SearchIndex.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (or creates) the metadata database under dataDir.
func NewStore(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "metadata.db")

	// WAL mode for better concurrency between the serving path and
	// the generation pipeline.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}

	return &Store{db: db, path: dbPath}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// CatalogStore returns a CatalogStore interface backed by this store.
func (s *Store) CatalogStore() driven.CatalogStore {
	return &catalogStore{store: s}
}

// SearchIndex returns a SearchIndex interface backed by this store.
func (s *Store) SearchIndex() driven.SearchIndex {
	return &searchIndex{store: s}
}

// catalogStore implements driven.CatalogStore.
type catalogStore struct {
	store *Store
}

var _ driven.CatalogStore = (*catalogStore)(nil)

// SaveDefinition stores or replaces a dataset definition.
func (c *catalogStore) SaveDefinition(ctx context.Context, def domain.DatasetDefinition) error {
	_, err := c.store.db.ExecContext(ctx, `
		INSERT INTO datasets (slug, name, kind, base, growth, volatility)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(slug) DO UPDATE SET
			name = excluded.name,
			kind = excluded.kind,
			base = excluded.base,
			growth = excluded.growth,
			volatility = excluded.volatility`,
		def.Slug, def.Name, def.Kind, def.Base, def.Growth, def.Volatility)
	if err != nil {
		return fmt.Errorf("saving definition %s: %w", def.Slug, err)
	}
	return nil
}

// ListDefinitions returns all registered definitions ordered by slug.
func (c *catalogStore) ListDefinitions(ctx context.Context) ([]domain.DatasetDefinition, error) {
	rows, err := c.store.db.QueryContext(ctx, `
		SELECT slug, name, kind, base, growth, volatility
		FROM datasets ORDER BY slug`)
	if err != nil {
		return nil, fmt.Errorf("listing definitions: %w", err)
	}
	defer rows.Close()

	var definitions []domain.DatasetDefinition
	for rows.Next() {
		var def domain.DatasetDefinition
		if err := rows.Scan(&def.Slug, &def.Name, &def.Kind, &def.Base, &def.Growth, &def.Volatility); err != nil {
			return nil, fmt.Errorf("scanning definition: %w", err)
		}
		definitions = append(definitions, def)
	}
	return definitions, rows.Err()
}

// GetDefinition retrieves a definition by slug.
func (c *catalogStore) GetDefinition(ctx context.Context, slug string) (*domain.DatasetDefinition, error) {
	var def domain.DatasetDefinition
	err := c.store.db.QueryRowContext(ctx, `
		SELECT slug, name, kind, base, growth, volatility
		FROM datasets WHERE slug = ?`, slug).
		Scan(&def.Slug, &def.Name, &def.Kind, &def.Base, &def.Growth, &def.Volatility)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, slug)
	}
	if err != nil {
		return nil, fmt.Errorf("getting definition %s: %w", slug, err)
	}
	return &def, nil
}

// searchIndex implements driven.SearchIndex.
type searchIndex struct {
	store *Store
}

var _ driven.SearchIndex = (*searchIndex)(nil)

// Index stores or replaces one searchable item.
func (s *searchIndex) Index(ctx context.Context, item domain.SearchResult) error {
	var lastValue sql.NullFloat64
	if item.LastIndexValue != nil {
		lastValue = sql.NullFloat64{Float64: *item.LastIndexValue, Valid: true}
	}
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO search_items (slug, name, category, last_index_value)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(slug) DO UPDATE SET
			name = excluded.name,
			category = excluded.category,
			last_index_value = excluded.last_index_value`,
		item.ID, item.Name, item.Category, lastValue)
	if err != nil {
		return fmt.Errorf("indexing %s: %w", item.ID, err)
	}
	return nil
}

// Search returns items whose slug or name contains the query,
// optionally filtered by category, ordered by name.
func (s *searchIndex) Search(ctx context.Context, query, category string, limit int) ([]domain.SearchResult, error) {
	if limit <= 0 {
		limit = 20
	}

	pattern := "%" + query + "%"
	args := []any{pattern, pattern}
	stmt := `
		SELECT slug, name, category, last_index_value
		FROM search_items
		WHERE (lower(slug) LIKE ? OR lower(name) LIKE ?)`
	if category != "" {
		stmt += " AND category = ?"
		args = append(args, category)
	}
	stmt += " ORDER BY name LIMIT ?"
	args = append(args, limit)

	rows, err := s.store.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("searching %q: %w", query, err)
	}
	defer rows.Close()

	var results []domain.SearchResult
	for rows.Next() {
		var item domain.SearchResult
		var lastValue sql.NullFloat64
		if err := rows.Scan(&item.ID, &item.Name, &item.Category, &lastValue); err != nil {
			return nil, fmt.Errorf("scanning search item: %w", err)
		}
		if lastValue.Valid {
			value := lastValue.Float64
			item.LastIndexValue = &value
		}
		results = append(results, item)
	}
	return results, rows.Err()
}
