package clean

import (
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"sort"
	"strconv"
	"time"

	"github.com/jacobjacobjacobjacobjacob/apple-health-data-parser/internal/extract"
)

// WorkoutRow is one clean workout row. Duration is whole minutes.
type WorkoutRow struct {
	DateParts
	WorkoutType string
	StartTime   string
	EndTime     string
	Duration    int
}

var workoutTypeRe = regexp.MustCompile(`HKWorkoutActivityType(\w+)`)

// WorkoutType extracts the semantic activity label from a raw workout code.
func WorkoutType(code string) string {
	if m := workoutTypeRe.FindStringSubmatch(code); m != nil {
		return m[1]
	}
	return "Unknown"
}

// Workout cleans workout-category records: resolve the activity label,
// derive the end time from start + duration, drop workouts shorter than
// minMinutes, and round durations to whole minutes.
func Workout(records []extract.RawRecord, minMinutes float64) ([]WorkoutRow, error) {
	if len(records) == 0 {
		return nil, nil
	}

	rows := make([]WorkoutRow, 0, len(records))
	skipped := 0
	for _, rec := range records {
		start, err := ParseTimestamp(rec.Date)
		if err != nil {
			skipped++
			continue
		}
		minutes, err := strconv.ParseFloat(rec.Duration, 64)
		if err != nil {
			skipped++
			continue
		}
		if minutes < minMinutes {
			continue
		}
		end := start.Add(time.Duration(minutes * float64(time.Minute)))
		rows = append(rows, WorkoutRow{
			DateParts:   SplitDate(start),
			WorkoutType: WorkoutType(rec.WorkoutType),
			StartTime:   start.Format(ClockLayout),
			EndTime:     end.Format(ClockLayout),
			Duration:    int(math.Round(minutes)),
		})
	}
	if skipped > 0 {
		slog.Warn("skipped unparseable workout records", slog.Int("skipped", skipped))
	}
	if len(rows) == 0 && skipped == len(records) {
		return nil, fmt.Errorf("workout: no record has a usable date and duration: %w", ErrMissingColumn)
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Date != rows[j].Date {
			return rows[i].Date < rows[j].Date
		}
		return rows[i].StartTime < rows[j].StartTime
	})
	return rows, nil
}
