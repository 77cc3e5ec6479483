// Package file loads service configuration from a TOML file.
package file

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config is the full service configuration. Every field has a working
// default so the service runs with no config file at all.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Artifacts ArtifactsConfig `toml:"artifacts"`
	Storage   StorageConfig   `toml:"storage"`
	Search    SearchConfig    `toml:"search"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `toml:"addr"`
}

// ArtifactsConfig configures the artifact store.
type ArtifactsConfig struct {
	// Dir is the directory holding <slug>.json.gz artifacts.
	Dir string `toml:"dir"`

	// MaxCompressedBytes is the pre-decompression size ceiling.
	MaxCompressedBytes int64 `toml:"max_compressed_bytes"`

	// MaxDecompressedBytes bounds the inflated payload size.
	MaxDecompressedBytes int64 `toml:"max_decompressed_bytes"`

	// Watch enables the fsnotify watcher that invalidates cached
	// exports when an artifact is republished in place.
	Watch bool `toml:"watch"`
}

// StorageConfig configures the SQLite metadata store.
type StorageConfig struct {
	// DataDir holds metadata.db.
	DataDir string `toml:"data_dir"`
}

// SearchConfig throttles the search collaborator.
type SearchConfig struct {
	// RequestsPerSecond is the sustained collaborator lookup rate.
	RequestsPerSecond float64 `toml:"requests_per_second"`

	// BurstSize is the maximum lookup burst.
	BurstSize int `toml:"burst_size"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server:    ServerConfig{Addr: ":8080"},
		Artifacts: ArtifactsConfig{Dir: "data/exports"},
		Storage:   StorageConfig{DataDir: "data"},
		Search:    SearchConfig{RequestsPerSecond: 25, BurstSize: 50},
	}
}

// Load reads configuration from a TOML file, applying defaults for
// absent fields. A missing file yields the defaults; path == "" skips
// the file read entirely.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	// Re-apply defaults the file may have zeroed out.
	defaults := Default()
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = defaults.Server.Addr
	}
	if cfg.Artifacts.Dir == "" {
		cfg.Artifacts.Dir = defaults.Artifacts.Dir
	}
	if cfg.Storage.DataDir == "" {
		cfg.Storage.DataDir = defaults.Storage.DataDir
	}
	if cfg.Search.RequestsPerSecond <= 0 {
		cfg.Search.RequestsPerSecond = defaults.Search.RequestsPerSecond
	}
	if cfg.Search.BurstSize <= 0 {
		cfg.Search.BurstSize = defaults.Search.BurstSize
	}
	return cfg, nil
}
