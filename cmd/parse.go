package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jacobjacobjacobjacobjacob/apple-health-data-parser/internal/extract"
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Extract raw records from the export into per-category JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireConfig(); err != nil {
			return err
		}
		data, manifest, err := extractAll()
		if err != nil {
			return err
		}
		fmt.Printf("Parsed %d records (run %s)\n", manifest.TotalRecords, manifest.RunID)
		for _, category := range extract.Categories {
			fmt.Printf("  %-8s %d records\n", category, len(data[category]))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
}
