// Package cli provides the indiainflation command-line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	artifactfs "github.com/devdev758/indiainflation/internal/adapters/driven/artifact/fs"
	"github.com/devdev758/indiainflation/internal/adapters/driven/config/file"
	"github.com/devdev758/indiainflation/internal/adapters/driven/storage/sqlite"
	"github.com/devdev758/indiainflation/internal/core/services"
	"github.com/devdev758/indiainflation/internal/logger"
)

var (
	configPath string
	verboseLog bool
)

var rootCmd = &cobra.Command{
	Use:   "indiainflation",
	Short: "Versioned inflation dataset export service",
	Long: `indiainflation generates, serves and searches versioned CPI/WPI
dataset exports: gzip-compressed JSON artifacts with per-region index
series and derived month-over-month and year-over-year analytics.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseLog)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to TOML config file")
	rootCmd.PersistentFlags().BoolVarP(&verboseLog, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// app bundles the wired service stack for one command invocation.
type app struct {
	cfg     file.Config
	store   *sqlite.Store
	writer  *artifactfs.Writer
	loader  *services.ExportLoader
	catalog *services.CatalogService
	search  *services.SearchService
}

// buildApp loads configuration and wires the adapters and services.
// The caller must Close the returned app.
func buildApp() (*app, error) {
	cfg, err := file.Load(configPath)
	if err != nil {
		return nil, err
	}

	store, err := sqlite.NewStore(cfg.Storage.DataDir)
	if err != nil {
		return nil, fmt.Errorf("opening metadata store: %w", err)
	}

	artifacts := artifactfs.NewStore(cfg.Artifacts.Dir, cfg.Artifacts.MaxCompressedBytes, cfg.Artifacts.MaxDecompressedBytes)
	loader := services.NewExportLoader(artifacts)
	limiter := rate.NewLimiter(rate.Limit(cfg.Search.RequestsPerSecond), cfg.Search.BurstSize)

	return &app{
		cfg:     cfg,
		store:   store,
		writer:  artifactfs.NewWriter(cfg.Artifacts.Dir),
		loader:  loader,
		catalog: services.NewCatalogService(store.CatalogStore(), loader),
		search:  services.NewSearchService(store.SearchIndex(), limiter),
	}, nil
}

// Close releases the app's resources.
func (a *app) Close() error {
	return a.store.Close()
}
