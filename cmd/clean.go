package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jacobjacobjacobjacobjacob/apple-health-data-parser/internal/extract"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Clean parsed records into per-day CSV tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireConfig(); err != nil {
			return err
		}
		data := loadRawRecords()
		result, err := cleanAll(data)
		if err != nil {
			return err
		}
		fmt.Printf("Cleaned tables written to %s\n", cfg.CleanedDir)
		fmt.Printf("  %-8s %d rows\n", extract.CategoryHealth, len(result.health))
		fmt.Printf("  %-8s %d rows\n", extract.CategorySleep, len(result.sleep))
		fmt.Printf("  %-8s %d rows\n", extract.CategoryActivity, len(result.activity))
		fmt.Printf("  %-8s %d rows\n", extract.CategoryWorkout, len(result.workout))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}
