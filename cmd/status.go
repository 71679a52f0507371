package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jacobjacobjacobjacobjacob/apple-health-data-parser/internal/extract"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show pipeline artifacts and last parse-run counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireConfig(); err != nil {
			return err
		}
		fmt.Println("Source:")
		printArtifact("export zip", cfg.ZipPath)
		printArtifact("export xml", cfg.XMLPath)

		fmt.Println("Parsed:")
		for _, category := range extract.Categories {
			printArtifact(string(category), cfg.ParsedJSONPath(string(category)))
		}

		fmt.Println("Cleaned:")
		for _, category := range extract.Categories {
			printArtifact(string(category), cfg.CleanedCSVPath(string(category)))
		}

		manifest, err := extract.LoadManifest(cfg.ManifestPath())
		if err != nil {
			fmt.Println("Last parse run: (none)")
			return nil
		}
		fmt.Printf("Last parse run: %s (%d records, finished %s)\n",
			manifest.RunID, manifest.TotalRecords, manifest.FinishedAt.Format("2006-01-02 15:04:05"))
		for _, e := range manifest.Extractors {
			if e.Error != "" {
				fmt.Printf("  - %s / %s: error: %s\n", e.Category, e.Label, e.Error)
				continue
			}
			fmt.Printf("  - %s / %s: %d records\n", e.Category, e.Label, e.Records)
		}
		return nil
	},
}

func printArtifact(name, path string) {
	info, err := os.Stat(path)
	if err != nil {
		fmt.Printf("  - %-10s %s (missing)\n", name, path)
		return
	}
	fmt.Printf("  - %-10s %s (%d bytes)\n", name, path, info.Size())
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
