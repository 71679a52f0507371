package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var runXLSX string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline: parse, clean, analyze",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireConfig(); err != nil {
			return err
		}
		data, manifest, err := extractAll()
		if err != nil {
			return err
		}
		fmt.Printf("Parsed %d records (run %s)\n", manifest.TotalRecords, manifest.RunID)

		result, err := cleanAll(data)
		if err != nil {
			return err
		}
		return analyze(result, runXLSX)
	},
}

func init() {
	runCmd.Flags().StringVar(&runXLSX, "xlsx", "", "also write the summaries to an Excel workbook at this path")
	rootCmd.AddCommand(runCmd)
}
