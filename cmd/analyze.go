package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jacobjacobjacobjacobjacob/apple-health-data-parser/internal/export"
	"github.com/jacobjacobjacobjacobjacob/apple-health-data-parser/internal/merge"
	"github.com/jacobjacobjacobjacobjacob/apple-health-data-parser/internal/summary"
)

var analyzeXLSX string

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Merge cleaned tables and print monthly summaries",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireConfig(); err != nil {
			return err
		}
		return analyze(loadCleaned(), analyzeXLSX)
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeXLSX, "xlsx", "", "also write the summaries to an Excel workbook at this path")
	rootCmd.AddCommand(analyzeCmd)
}

// analyze merges the clean tables and produces the two monthly reports.
func analyze(c *cleaned, xlsxPath string) error {
	unified, err := merge.Merge(c.activity, c.health, c.sleep, c.workout)
	if err != nil {
		return fmt.Errorf("merge: %w", err)
	}
	if len(unified.Rows) == 0 {
		fmt.Println("(no days with both activity and health data)")
		return nil
	}

	mean, err := summary.MonthlyMean(unified, summary.MonthOrder)
	if err != nil {
		return fmt.Errorf("mean summary: %w", err)
	}
	sum, err := summary.MonthlySum(unified, summary.MonthOrder, summary.SumColumns)
	if err != nil {
		return fmt.Errorf("sum summary: %w", err)
	}

	fmt.Printf("Merged %d days across %d metrics\n\n", len(unified.Rows), len(unified.Columns))
	fmt.Println("Monthly Mean Summary:")
	fmt.Print(export.RenderMonthly(mean))
	fmt.Println()
	fmt.Println("Monthly Sum Summary:")
	fmt.Print(export.RenderMonthly(sum))

	if xlsxPath != "" {
		if err := export.WriteSummaryWorkbook(xlsxPath, mean, sum); err != nil {
			return fmt.Errorf("write workbook: %w", err)
		}
		fmt.Printf("\nSummary workbook written to %s\n", xlsxPath)
	}
	return nil
}
