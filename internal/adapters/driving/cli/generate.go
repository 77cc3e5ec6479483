package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	artifactfs "github.com/devdev758/indiainflation/internal/adapters/driven/artifact/fs"
	"github.com/devdev758/indiainflation/internal/core/domain"
	"github.com/devdev758/indiainflation/internal/core/services"
)

var (
	generateSlugs  []string
	generateStart  string
	generateSpan   int
	generateForce  bool
	generateOutDir string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate dataset export artifacts",
	Long: `Builds gzip-compressed export artifacts for the registered dataset
definitions, seeds the dataset registry and refreshes the search index.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringSliceVar(&generateSlugs, "slug", nil, "generate only the given dataset slugs")
	generateCmd.Flags().StringVar(&generateStart, "start", "2006-01", "first generated month (YYYY-MM)")
	generateCmd.Flags().IntVar(&generateSpan, "months", 240, "number of months to generate")
	generateCmd.Flags().BoolVar(&generateForce, "force", false, "overwrite existing artifacts")
	generateCmd.Flags().StringVar(&generateOutDir, "output-dir", "", "artifact output directory (overrides config)")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	start, err := domain.ParseMonth(generateStart)
	if err != nil {
		return err
	}
	if generateSpan <= 0 {
		return fmt.Errorf("months must be positive, got %d", generateSpan)
	}

	application, err := buildApp()
	if err != nil {
		return err
	}
	defer application.Close()

	definitions := selectDefinitions(generateSlugs)
	if len(definitions) == 0 {
		return fmt.Errorf("no matching dataset definitions for slugs %v", generateSlugs)
	}

	writer := application.writer
	if generateOutDir != "" {
		writer = artifactfs.NewWriter(generateOutDir)
	}

	ctx := context.Background()
	registry := application.store.CatalogStore()
	index := application.store.SearchIndex()
	regions := domain.DefaultRegions()
	now := time.Now()

	written := 0
	for _, def := range definitions {
		export := services.BuildExport(def, regions, start, generateSpan, now)
		payload, err := json.Marshal(export)
		if err != nil {
			return fmt.Errorf("encoding export %s: %w", def.Slug, err)
		}

		stored, err := writer.Write(ctx, def.Slug, payload, generateForce)
		if err != nil {
			return fmt.Errorf("writing artifact %s: %w", def.Slug, err)
		}
		if !stored {
			cmd.Printf("skipped %s (artifact exists, use --force)\n", def.Slug)
		} else {
			written++
		}

		if err := registry.SaveDefinition(ctx, def); err != nil {
			return err
		}
		if err := index.Index(ctx, domain.SearchResult{
			ID:             def.Slug,
			Name:           def.Name,
			Category:       def.Kind,
			LastIndexValue: export.Metadata.LastIndexValue,
		}); err != nil {
			return err
		}
	}

	cmd.Printf("generated %d artifact(s) for %d dataset(s)\n", written, len(definitions))
	return nil
}

// selectDefinitions filters the built-in definitions by slug; an empty
// filter selects everything.
func selectDefinitions(slugs []string) []domain.DatasetDefinition {
	all := domain.DefaultDefinitions()
	if len(slugs) == 0 {
		return all
	}

	wanted := make(map[string]struct{}, len(slugs))
	for _, slug := range slugs {
		wanted[slug] = struct{}{}
	}

	selected := make([]domain.DatasetDefinition, 0, len(slugs))
	for _, def := range all {
		if _, ok := wanted[def.Slug]; ok {
			selected = append(selected, def)
		}
	}
	return selected
}
