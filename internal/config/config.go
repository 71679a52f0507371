package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	ZipPath           string  `mapstructure:"zip_path" yaml:"zip_path"`
	ExtractionDir     string  `mapstructure:"extraction_dir" yaml:"extraction_dir"`
	XMLPath           string  `mapstructure:"xml_path" yaml:"xml_path"`
	ParsedDir         string  `mapstructure:"parsed_dir" yaml:"parsed_dir"`
	CleanedDir        string  `mapstructure:"cleaned_dir" yaml:"cleaned_dir"`
	TargetYear        int     `mapstructure:"target_year" yaml:"target_year"`
	MinWorkoutMinutes float64 `mapstructure:"min_workout_minutes" yaml:"min_workout_minutes"`
}

// ParsedJSONPath returns the raw-record JSON path for one category.
func (c *Global) ParsedJSONPath(category string) string {
	return filepath.Join(c.ParsedDir, category+"_data.json")
}

// CleanedCSVPath returns the cleaned CSV path for one category.
func (c *Global) CleanedCSVPath(category string) string {
	return filepath.Join(c.CleanedDir, "cleaned_"+category+"_data.csv")
}

// ManifestPath returns the location of the parse-run manifest.
func (c *Global) ManifestPath() string {
	return filepath.Join(c.ParsedDir, "manifest.json")
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.healthparse/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".healthparse")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("HEALTHPARSE")
	v.AutomaticEnv()

	// Defaults mirror the on-disk layout of an unpacked Apple Health export.
	v.SetDefault("zip_path", filepath.Join("data", "raw", "export.zip"))
	v.SetDefault("extraction_dir", filepath.Join("data", "raw"))
	v.SetDefault("xml_path", filepath.Join("data", "raw", "apple_health_export", "export.xml"))
	v.SetDefault("parsed_dir", filepath.Join("data", "processed"))
	v.SetDefault("cleaned_dir", filepath.Join("data", "cleaned"))
	v.SetDefault("target_year", time.Now().Year())
	v.SetDefault("min_workout_minutes", 5.0)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".healthparse")
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.TargetYear <= 0 {
		return nil, fmt.Errorf("invalid target_year: %d", c.TargetYear)
	}
	return &c, nil
}
