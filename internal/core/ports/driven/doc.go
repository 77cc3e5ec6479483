// Package driven defines the interfaces the core depends on.
// Adapters (filesystem artifact store, SQLite catalog, TOML config)
// implement these interfaces.
package driven
