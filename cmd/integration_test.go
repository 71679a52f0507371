package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	cfgpkg "github.com/jacobjacobjacobjacobjacob/apple-health-data-parser/internal/config"
	"github.com/jacobjacobjacobjacobjacob/apple-health-data-parser/internal/extract"
	"github.com/jacobjacobjacobjacobjacob/apple-health-data-parser/internal/merge"
	"github.com/jacobjacobjacobjacobjacob/apple-health-data-parser/internal/summary"
)

const pipelineXML = `<?xml version="1.0" encoding="UTF-8"?>
<HealthData locale="en_US">
 <Record type="HKQuantityTypeIdentifierStepCount" unit="count" startDate="2024-01-05 09:00:00 +0100" endDate="2024-01-05 09:10:00 +0100" value="100"/>
 <Record type="HKQuantityTypeIdentifierStepCount" unit="count" startDate="2024-01-05 13:00:00 +0100" endDate="2024-01-05 13:10:00 +0100" value="200"/>
 <Record type="HKQuantityTypeIdentifierStepCount" unit="count" startDate="2024-01-05 18:00:00 +0100" endDate="2024-01-05 18:10:00 +0100" value="300"/>
 <Record type="HKQuantityTypeIdentifierRestingHeartRate" unit="count/min" startDate="2024-01-05 07:00:00 +0100" endDate="2024-01-05 07:00:00 +0100" value="60"/>
 <Record type="HKQuantityTypeIdentifierRestingHeartRate" unit="count/min" startDate="2024-01-05 12:00:00 +0100" endDate="2024-01-05 12:00:00 +0100" value="62"/>
 <Record type="HKQuantityTypeIdentifierRestingHeartRate" unit="count/min" startDate="2024-01-05 20:00:00 +0100" endDate="2024-01-05 20:00:00 +0100" value="58"/>
 <Record type="HKCategoryTypeIdentifierSleepAnalysis" startDate="2024-01-05 00:30:00 +0100" endDate="2024-01-05 06:30:00 +0100" value="HKCategoryValueSleepAnalysisAsleepCore"/>
 <Workout workoutActivityType="HKWorkoutActivityTypeRunning" duration="90" durationUnit="min" startDate="2024-01-05 17:00:00 +0100" endDate="2024-01-05 18:30:00 +0100"/>
</HealthData>
`

// setupPipeline points the package config at a temp layout holding the
// fixture export and returns the temp root.
func setupPipeline(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	xmlPath := filepath.Join(dir, "raw", "apple_health_export", "export.xml")
	if err := os.MkdirAll(filepath.Dir(xmlPath), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(xmlPath, []byte(pipelineXML), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	prev := cfg
	cfg = &cfgpkg.Global{
		ZipPath:           filepath.Join(dir, "raw", "export.zip"),
		ExtractionDir:     filepath.Join(dir, "raw"),
		XMLPath:           xmlPath,
		ParsedDir:         filepath.Join(dir, "processed"),
		CleanedDir:        filepath.Join(dir, "cleaned"),
		TargetYear:        2024,
		MinWorkoutMinutes: 5,
	}
	t.Cleanup(func() { cfg = prev })
	return dir
}

func TestPipelineEndToEnd(t *testing.T) {
	setupPipeline(t)

	data, manifest, err := extractAll()
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if manifest.TotalRecords != 8 {
		t.Fatalf("expected 8 extracted records, got %d", manifest.TotalRecords)
	}

	c, err := cleanAll(data)
	if err != nil {
		t.Fatalf("clean: %v", err)
	}
	unified, err := merge.Merge(c.activity, c.health, c.sleep, c.workout)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if len(unified.Rows) != 1 {
		t.Fatalf("expected 1 unified day, got %d", len(unified.Rows))
	}
	day := unified.Rows[0]
	if day.DayOfWeek != "Fri" || day.Month != "Jan" || day.Year != 2024 {
		t.Fatalf("unexpected day labels: %+v", day)
	}
	if day.Values["Step Count"] != 600.0 {
		t.Fatalf("Step Count = %v, want 600", day.Values["Step Count"])
	}
	if day.Values["Resting Heartrate"] != 60.0 {
		t.Fatalf("Resting Heartrate = %v, want 60", day.Values["Resting Heartrate"])
	}
	if day.Values[merge.ColWorkoutHours] != 1.5 {
		t.Fatalf("Workout Hours = %v, want 1.5", day.Values[merge.ColWorkoutHours])
	}
	if day.Values[merge.ColSleepHours] != 6.0 {
		t.Fatalf("Sleep Hours = %v, want 6", day.Values[merge.ColSleepHours])
	}

	mean, err := summary.MonthlyMean(unified, summary.MonthOrder)
	if err != nil {
		t.Fatalf("mean summary: %v", err)
	}
	if mean.Rows[0].Values["Step Count"] != 600.0 {
		t.Fatalf("Jan mean Step Count = %v", mean.Rows[0].Values["Step Count"])
	}
	sum, err := summary.MonthlySum(unified, summary.MonthOrder, summary.SumColumns)
	if err != nil {
		t.Fatalf("sum summary: %v", err)
	}
	if sum.Rows[0].Values[merge.ColWorkoutHours] != 1.5 {
		t.Fatalf("Jan sum Workout Hours = %v", sum.Rows[0].Values[merge.ColWorkoutHours])
	}
}

func TestPipelineCleanedTablesRoundTrip(t *testing.T) {
	setupPipeline(t)

	data, _, err := extractAll()
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if _, err := cleanAll(data); err != nil {
		t.Fatalf("clean: %v", err)
	}

	reloaded := loadCleaned()
	if len(reloaded.activity) != 1 || reloaded.activity[0].Value != 600.0 {
		t.Fatalf("unexpected reloaded activity table: %+v", reloaded.activity)
	}
	if len(reloaded.health) != 1 || reloaded.health[0].Value != 60.0 {
		t.Fatalf("unexpected reloaded health table: %+v", reloaded.health)
	}
	if len(reloaded.sleep) != 1 || reloaded.sleep[0].Duration != 360.0 {
		t.Fatalf("unexpected reloaded sleep table: %+v", reloaded.sleep)
	}
	if len(reloaded.workout) != 1 || reloaded.workout[0].Duration != 90 {
		t.Fatalf("unexpected reloaded workout table: %+v", reloaded.workout)
	}
}

func TestPipelineParseIsIdempotent(t *testing.T) {
	setupPipeline(t)

	if _, _, err := extractAll(); err != nil {
		t.Fatalf("first parse: %v", err)
	}
	activityPath := cfg.ParsedJSONPath(string(extract.CategoryActivity))
	if err := os.WriteFile(activityPath, []byte("[]"), 0o644); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	if _, _, err := extractAll(); err != nil {
		t.Fatalf("second parse: %v", err)
	}
	b, err := os.ReadFile(activityPath)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if strings.TrimSpace(string(b)) != "[]" {
		t.Fatal("reparse must not overwrite existing category artifacts")
	}

	raw := loadRawRecords()
	if len(raw[extract.CategoryActivity]) != 0 {
		t.Fatalf("expected persisted (empty) activity data, got %d records", len(raw[extract.CategoryActivity]))
	}
	if len(raw[extract.CategoryHealth]) != 3 {
		t.Fatalf("expected 3 persisted health records, got %d", len(raw[extract.CategoryHealth]))
	}
}
