// Package merge reshapes the clean per-category tables into one unified
// wide table keyed by calendar date.
package merge

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jacobjacobjacobjacobjacob/apple-health-data-parser/internal/clean"
)

// ErrDuplicateCell reports two clean rows sharing a (date, type) cell. The
// cleaning contract guarantees one row per cell, so this is fatal rather
// than silently picking a value.
var ErrDuplicateCell = errors.New("duplicate date/type cell in pivot")

// ErrUnknownCode reports a weekday or month code outside its valid range.
var ErrUnknownCode = errors.New("unmapped weekday or month code")

// Column names the merge derives from the sleep and workout tables.
const (
	ColWorkoutHours = "Workout Hours"
	ColSleepHours   = "Sleep Hours"
)

// WeekdayLabels maps ISO weekday codes to display labels.
var WeekdayLabels = map[int]string{
	1: "Mon", 2: "Tue", 3: "Wed", 4: "Thu", 5: "Fri", 6: "Sat", 7: "Sun",
}

// MonthLabels maps month numbers to display labels.
var MonthLabels = map[int]string{
	1: "Jan", 2: "Feb", 3: "Mar", 4: "Apr", 5: "May", 6: "Jun",
	7: "Jul", 8: "Aug", 9: "Sep", 10: "Oct", 11: "Nov", 12: "Dec",
}

// Unified is the merged wide table: one row per date surviving the
// activity × health inner join, sorted by date.
type Unified struct {
	// Columns lists the value columns in output order: activity metrics,
	// health metrics, then the derived hour totals.
	Columns []string
	Rows    []Row
}

// Row is one unified day. A column absent from Values is null for that day.
type Row struct {
	Date      time.Time
	DayOfWeek string
	Month     string
	Year      int
	Values    map[string]float64
}

type dateKey struct {
	date      string
	dayOfWeek int
	month     int
	year      int
}

func keyOf(p clean.DateParts) dateKey {
	return dateKey{date: p.Date, dayOfWeek: p.DayOfWeek, month: p.Month, year: p.Year}
}

// Merge pivots the long activity and health tables to wide form, inner-joins
// them on the date key, left-joins the summed workout and sleep hour totals,
// and maps weekday/month codes to labels.
func Merge(activity, health []clean.MetricRow, sleep []clean.SleepRow, workout []clean.WorkoutRow) (*Unified, error) {
	pivotActivity, activityCols, err := pivot(activity)
	if err != nil {
		return nil, fmt.Errorf("pivot activity: %w", err)
	}
	pivotHealth, healthCols, err := pivot(health)
	if err != nil {
		return nil, fmt.Errorf("pivot health: %w", err)
	}

	workoutHours := make(map[dateKey]float64)
	for _, r := range workout {
		workoutHours[keyOf(r.DateParts)] += float64(r.Duration) / 60
	}
	sleepHours := make(map[dateKey]float64)
	for _, r := range sleep {
		sleepHours[keyOf(r.DateParts)] += r.Duration / 60
	}

	columns := make([]string, 0, len(activityCols)+len(healthCols)+2)
	columns = append(columns, activityCols...)
	columns = append(columns, healthCols...)
	columns = append(columns, ColWorkoutHours, ColSleepHours)

	unified := &Unified{Columns: columns}
	for key, activityVals := range pivotActivity {
		healthVals, ok := pivotHealth[key]
		if !ok {
			// A day without both activity and health telemetry is not usable.
			continue
		}
		values := make(map[string]float64, len(activityVals)+len(healthVals)+2)
		for col, v := range activityVals {
			values[col] = v
		}
		for col, v := range healthVals {
			values[col] = v
		}
		if h, ok := workoutHours[key]; ok {
			values[ColWorkoutHours] = h
		}
		if h, ok := sleepHours[key]; ok {
			values[ColSleepHours] = h
		}

		dayLabel, ok := WeekdayLabels[key.dayOfWeek]
		if !ok {
			return nil, fmt.Errorf("day_of_week %d: %w", key.dayOfWeek, ErrUnknownCode)
		}
		monthLabel, ok := MonthLabels[key.month]
		if !ok {
			return nil, fmt.Errorf("month %d: %w", key.month, ErrUnknownCode)
		}
		date, err := time.Parse(clean.DateLayout, key.date)
		if err != nil {
			return nil, fmt.Errorf("parse date %q: %w", key.date, err)
		}
		unified.Rows = append(unified.Rows, Row{
			Date:      date,
			DayOfWeek: dayLabel,
			Month:     monthLabel,
			Year:      key.year,
			Values:    values,
		})
	}

	sort.Slice(unified.Rows, func(i, j int) bool {
		return unified.Rows[i].Date.Before(unified.Rows[j].Date)
	})
	return unified, nil
}

// pivot reshapes a long (date, type, value) table to one cell map per date
// key, returning the metric columns in sorted order.
func pivot(rows []clean.MetricRow) (map[dateKey]map[string]float64, []string, error) {
	cells := make(map[dateKey]map[string]float64)
	colSet := make(map[string]bool)
	for _, r := range rows {
		key := keyOf(r.DateParts)
		byCol := cells[key]
		if byCol == nil {
			byCol = make(map[string]float64)
			cells[key] = byCol
		}
		if _, exists := byCol[r.Type]; exists {
			return nil, nil, fmt.Errorf("%s %q: %w", r.Date, r.Type, ErrDuplicateCell)
		}
		byCol[r.Type] = r.Value
		colSet[r.Type] = true
	}
	columns := make([]string, 0, len(colSet))
	for col := range colSet {
		columns = append(columns, col)
	}
	sort.Strings(columns)
	return cells, columns, nil
}
