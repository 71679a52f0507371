package extract

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/jacobjacobjacobjacobjacob/apple-health-data-parser/internal/utils"
)

// Assembler runs every registered extractor against one export document and
// gathers the results per category.
type Assembler struct {
	XMLPath   string
	ParsedDir string
}

// Run executes the extractors in the fixed category order and concatenates
// their outputs. An extractor failure is recorded in the manifest and
// contributes zero records; siblings keep running. Each category's records
// are persisted as JSON next to the manifest, but existing category files
// are left untouched so a re-run never reparses over a previous result.
func (a *Assembler) Run() (map[Category][]RawRecord, *Manifest, error) {
	if err := utils.EnsureDir(a.ParsedDir); err != nil {
		return nil, nil, fmt.Errorf("create parsed dir: %w", err)
	}

	manifest := NewManifest(a.XMLPath)
	data := make(map[Category][]RawRecord, len(Categories))

	slog.Info("parsing all data", slog.String("source", a.XMLPath))
	for _, category := range Categories {
		categoryStart := time.Now()
		var categoryData []RawRecord

		for _, spec := range Specs(category) {
			extractorStart := time.Now()
			records, err := ExtractFile(a.XMLPath, spec)
			entry := ExtractorEntry{Category: category, Label: spec.Label, Records: len(records)}
			if err != nil {
				entry.Error = err.Error()
				slog.Error("extractor failed",
					slog.String("category", string(category)),
					slog.String("metric", spec.Label),
					slog.Any("error", err))
			} else {
				slog.Info("extracted records",
					slog.String("category", string(category)),
					slog.String("metric", spec.Label),
					slog.Int("records", len(records)),
					slog.Duration("elapsed", time.Since(extractorStart)))
			}
			manifest.Extractors = append(manifest.Extractors, entry)
			manifest.TotalRecords += len(records)
			categoryData = append(categoryData, records...)
		}

		data[category] = categoryData
		if err := a.saveCategory(category, categoryData); err != nil {
			slog.Error("persisting category failed",
				slog.String("category", string(category)), slog.Any("error", err))
		}
		slog.Info("category parsed",
			slog.String("category", string(category)),
			slog.Int("records", len(categoryData)),
			slog.Duration("elapsed", time.Since(categoryStart)))
	}

	manifest.FinishedAt = time.Now().UTC()
	if err := manifest.Save(a.manifestPath()); err != nil {
		slog.Error("saving manifest failed", slog.Any("error", err))
	}
	slog.Info("parsing complete",
		slog.Int("total_records", manifest.TotalRecords),
		slog.Duration("elapsed", manifest.FinishedAt.Sub(manifest.StartedAt)))
	return data, manifest, nil
}

func (a *Assembler) saveCategory(category Category, records []RawRecord) error {
	if records == nil {
		records = []RawRecord{}
	}
	b, err := utils.PrettyJSON(records)
	if err != nil {
		return err
	}
	written, err := utils.WriteFileIfAbsent(a.categoryPath(category), b)
	if err != nil {
		return err
	}
	if !written {
		slog.Info("category file already exists, keeping previous parse",
			slog.String("category", string(category)))
	}
	return nil
}

func (a *Assembler) categoryPath(category Category) string {
	return filepath.Join(a.ParsedDir, string(category)+"_data.json")
}

func (a *Assembler) manifestPath() string {
	return filepath.Join(a.ParsedDir, "manifest.json")
}

// ReadRecords loads a persisted per-category raw-record JSON array.
func ReadRecords(path string) ([]RawRecord, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}
	var records []RawRecord
	if err := json.Unmarshal(b, &records); err != nil {
		return nil, fmt.Errorf("parse records: %w", err)
	}
	return records, nil
}
