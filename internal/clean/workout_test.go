package clean

import (
	"testing"

	"github.com/jacobjacobjacobjacobjacob/apple-health-data-parser/internal/extract"
)

func workoutRecord(date, duration, code string) extract.RawRecord {
	return extract.RawRecord{
		Date:        date,
		Duration:    duration,
		WorkoutType: code,
		Type:        extract.LabelWorkout,
	}
}

func TestWorkoutType(t *testing.T) {
	if got := WorkoutType("HKWorkoutActivityTypeRunning"); got != "Running" {
		t.Fatalf("WorkoutType = %q", got)
	}
	if got := WorkoutType("HKWorkoutActivityTypeHighIntensityIntervalTraining"); got != "HighIntensityIntervalTraining" {
		t.Fatalf("WorkoutType = %q", got)
	}
	if got := WorkoutType("garbage"); got != "Unknown" {
		t.Fatalf("WorkoutType fallback = %q", got)
	}
}

func TestWorkoutDurationsAndTimes(t *testing.T) {
	records := []extract.RawRecord{
		workoutRecord("2024-01-05 17:00:00 +0100", "90", "HKWorkoutActivityTypeRunning"),
		workoutRecord("2024-01-06 06:30:00 +0100", "42.4", "HKWorkoutActivityTypeCycling"),
	}
	rows, err := Workout(records, 5)
	if err != nil {
		t.Fatalf("clean: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	run := rows[0]
	if run.WorkoutType != "Running" || run.Duration != 90 {
		t.Fatalf("unexpected row: %+v", run)
	}
	if run.StartTime != "17:00" || run.EndTime != "18:30" {
		t.Fatalf("expected 17:00-18:30, got %s-%s", run.StartTime, run.EndTime)
	}
	ride := rows[1]
	if ride.Duration != 42 {
		t.Fatalf("expected duration rounded to 42, got %d", ride.Duration)
	}
}

func TestWorkoutDropsShortWorkouts(t *testing.T) {
	records := []extract.RawRecord{
		workoutRecord("2024-01-05 17:00:00 +0100", "4", "HKWorkoutActivityTypeRunning"),
		workoutRecord("2024-01-05 18:00:00 +0100", "5", "HKWorkoutActivityTypeRunning"),
	}
	rows, err := Workout(records, 5)
	if err != nil {
		t.Fatalf("clean: %v", err)
	}
	if len(rows) != 1 || rows[0].Duration != 5 {
		t.Fatalf("expected only the 5-minute workout, got %+v", rows)
	}
}

func TestWorkoutEmptyInput(t *testing.T) {
	rows, err := Workout(nil, 5)
	if err != nil {
		t.Fatalf("clean: %v", err)
	}
	if rows != nil {
		t.Fatalf("expected no table, got %+v", rows)
	}
}
