package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	cfgpkg "github.com/jacobjacobjacobjacobjacob/apple-health-data-parser/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set healthparse configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			fmt.Println("No config loaded")
			return nil
		}
		fmt.Printf("zip_path: %s\n", cfg.ZipPath)
		fmt.Printf("extraction_dir: %s\n", cfg.ExtractionDir)
		fmt.Printf("xml_path: %s\n", cfg.XMLPath)
		fmt.Printf("parsed_dir: %s\n", cfg.ParsedDir)
		fmt.Printf("cleaned_dir: %s\n", cfg.CleanedDir)
		fmt.Printf("target_year: %d\n", cfg.TargetYear)
		fmt.Printf("min_workout_minutes: %g\n", cfg.MinWorkoutMinutes)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "zip_path":
			cfg.ZipPath = val
		case "extraction_dir":
			cfg.ExtractionDir = val
		case "xml_path":
			cfg.XMLPath = val
		case "parsed_dir":
			cfg.ParsedDir = val
		case "cleaned_dir":
			cfg.CleanedDir = val
		case "target_year":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid int for target_year: %v", val)
			}
			cfg.TargetYear = i
		case "min_workout_minutes":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil || f < 0 {
				return fmt.Errorf("invalid number for min_workout_minutes: %v", val)
			}
			cfg.MinWorkoutMinutes = f
		default:
			return fmt.Errorf("unknown config key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Printf("✓ %s updated\n", key)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
