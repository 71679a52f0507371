package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/jacobjacobjacobjacobjacob/apple-health-data-parser/internal/archive"
	"github.com/jacobjacobjacobjacobjacob/apple-health-data-parser/internal/clean"
	"github.com/jacobjacobjacobjacobjacob/apple-health-data-parser/internal/export"
	"github.com/jacobjacobjacobjacobjacob/apple-health-data-parser/internal/extract"
	"github.com/jacobjacobjacobjacobjacob/apple-health-data-parser/internal/utils"
)

// cleaned holds the per-category clean tables for one run. A nil slice means
// the category produced no usable table and is omitted from the merge.
type cleaned struct {
	health   []clean.MetricRow
	activity []clean.MetricRow
	sleep    []clean.SleepRow
	workout  []clean.WorkoutRow
}

// extractAll unzips the export if needed and runs every extractor, returning
// the per-category raw records and the run manifest.
func extractAll() (map[extract.Category][]extract.RawRecord, *extract.Manifest, error) {
	if !utils.FileExists(cfg.XMLPath) && utils.FileExists(cfg.ZipPath) {
		slog.Info("extracting export archive", slog.String("zip", cfg.ZipPath))
		if err := archive.Unzip(cfg.ZipPath, cfg.ExtractionDir); err != nil {
			// Parsing may still work if a previous extraction left the XML.
			slog.Error("archive extraction failed", slog.Any("error", err))
		}
	}
	a := &extract.Assembler{XMLPath: cfg.XMLPath, ParsedDir: cfg.ParsedDir}
	return a.Run()
}

// loadRawRecords reads the persisted per-category JSON from a prior parse.
func loadRawRecords() map[extract.Category][]extract.RawRecord {
	data := make(map[extract.Category][]extract.RawRecord, len(extract.Categories))
	for _, category := range extract.Categories {
		path := cfg.ParsedJSONPath(string(category))
		records, err := extract.ReadRecords(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				slog.Warn("no parsed data for category; run parse first",
					slog.String("category", string(category)))
			} else {
				slog.Error("loading parsed data failed",
					slog.String("category", string(category)), slog.Any("error", err))
			}
			continue
		}
		data[category] = records
	}
	return data
}

// cleanAll cleans every category and writes the per-category CSVs. A failing
// category is logged and omitted; siblings continue.
func cleanAll(data map[extract.Category][]extract.RawRecord) (*cleaned, error) {
	if err := utils.EnsureDir(cfg.CleanedDir); err != nil {
		return nil, fmt.Errorf("create cleaned dir: %w", err)
	}
	out := &cleaned{}

	var err error
	out.health, err = clean.Health(data[extract.CategoryHealth], cfg.TargetYear, extract.Aggregations(extract.CategoryHealth))
	reportClean(extract.CategoryHealth, len(out.health), err)
	if err != nil {
		out.health = nil
	} else if out.health != nil {
		writeClean(extract.CategoryHealth, func(path string) error {
			return export.WriteMetricCSV(path, out.health)
		})
	}

	out.sleep, err = clean.Sleep(data[extract.CategorySleep], cfg.TargetYear)
	reportClean(extract.CategorySleep, len(out.sleep), err)
	if err != nil {
		out.sleep = nil
	} else if out.sleep != nil {
		writeClean(extract.CategorySleep, func(path string) error {
			return export.WriteSleepCSV(path, out.sleep)
		})
	}

	out.activity, err = clean.Activity(data[extract.CategoryActivity], extract.Aggregations(extract.CategoryActivity))
	reportClean(extract.CategoryActivity, len(out.activity), err)
	if err != nil {
		out.activity = nil
	} else if out.activity != nil {
		writeClean(extract.CategoryActivity, func(path string) error {
			return export.WriteMetricCSV(path, out.activity)
		})
	}

	out.workout, err = clean.Workout(data[extract.CategoryWorkout], cfg.MinWorkoutMinutes)
	reportClean(extract.CategoryWorkout, len(out.workout), err)
	if err != nil {
		out.workout = nil
	} else if out.workout != nil {
		writeClean(extract.CategoryWorkout, func(path string) error {
			return export.WriteWorkoutCSV(path, out.workout)
		})
	}

	return out, nil
}

func reportClean(category extract.Category, rows int, err error) {
	switch {
	case err != nil:
		slog.Error("cleaning failed, category omitted from merge",
			slog.String("category", string(category)), slog.Any("error", err))
	case rows == 0:
		slog.Warn("no data to clean", slog.String("category", string(category)))
	default:
		slog.Info("category cleaned",
			slog.String("category", string(category)), slog.Int("rows", rows))
	}
}

func writeClean(category extract.Category, write func(path string) error) {
	path := cfg.CleanedCSVPath(string(category))
	if err := write(path); err != nil {
		slog.Error("writing cleaned csv failed",
			slog.String("category", string(category)), slog.Any("error", err))
	}
}

// loadCleaned reads the cleaned CSVs from a prior clean run. Missing or
// unreadable tables are logged and omitted from the merge.
func loadCleaned() *cleaned {
	out := &cleaned{}
	var err error
	if out.health, err = export.ReadMetricCSV(cfg.CleanedCSVPath(string(extract.CategoryHealth))); err != nil {
		slog.Warn("health table unavailable", slog.Any("error", err))
		out.health = nil
	}
	if out.activity, err = export.ReadMetricCSV(cfg.CleanedCSVPath(string(extract.CategoryActivity))); err != nil {
		slog.Warn("activity table unavailable", slog.Any("error", err))
		out.activity = nil
	}
	if out.sleep, err = export.ReadSleepCSV(cfg.CleanedCSVPath(string(extract.CategorySleep))); err != nil {
		slog.Warn("sleep table unavailable", slog.Any("error", err))
		out.sleep = nil
	}
	if out.workout, err = export.ReadWorkoutCSV(cfg.CleanedCSVPath(string(extract.CategoryWorkout))); err != nil {
		slog.Warn("workout table unavailable", slog.Any("error", err))
		out.workout = nil
	}
	return out
}
