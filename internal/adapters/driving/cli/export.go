package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var exportCSV bool

var exportCmd = &cobra.Command{
	Use:   "export [slug]",
	Short: "Print one dataset export",
	Long: `Loads a dataset export artifact and prints it as JSON, or as the
flattened default-region CSV with --csv.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().BoolVar(&exportCSV, "csv", false, "output the default-region series as CSV")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	application, err := buildApp()
	if err != nil {
		return err
	}
	defer application.Close()

	export, err := application.loader.Load(context.Background(), args[0], false)
	if err != nil {
		return fmt.Errorf("loading export: %w", err)
	}

	if exportCSV {
		cmd.Print(application.loader.ToCSV(export))
		return nil
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal export: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
