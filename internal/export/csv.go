// Package export persists clean tables as CSV, reads them back for
// analysis, and renders summary tables.
package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/jacobjacobjacobjacobjacob/apple-health-data-parser/internal/clean"
	"github.com/jacobjacobjacobjacobjacob/apple-health-data-parser/internal/utils"
)

// Clean-table headers. Date components lead; remaining columns keep their
// original order. This layout is part of the output contract.
var (
	metricHeader  = []string{"date", "day_of_week", "month", "year", "type", "value", "unit"}
	sleepHeader   = []string{"date", "day_of_week", "month", "year", "sleep_type", "start_time", "end_time", "duration"}
	workoutHeader = []string{"date", "day_of_week", "month", "year", "workout_type", "start_time", "end_time", "duration"}
)

// WriteMetricCSV writes a clean health or activity table. Cleaned CSVs are
// always overwritten, unlike the raw JSON artifacts.
func WriteMetricCSV(path string, rows []clean.MetricRow) error {
	records := make([][]string, 0, len(rows)+1)
	records = append(records, metricHeader)
	for _, r := range rows {
		records = append(records, []string{
			r.Date,
			strconv.Itoa(r.DayOfWeek),
			strconv.Itoa(r.Month),
			strconv.Itoa(r.Year),
			r.Type,
			formatFloat(r.Value),
			r.Unit,
		})
	}
	return writeCSV(path, records)
}

// WriteSleepCSV writes a clean sleep table.
func WriteSleepCSV(path string, rows []clean.SleepRow) error {
	records := make([][]string, 0, len(rows)+1)
	records = append(records, sleepHeader)
	for _, r := range rows {
		records = append(records, []string{
			r.Date,
			strconv.Itoa(r.DayOfWeek),
			strconv.Itoa(r.Month),
			strconv.Itoa(r.Year),
			r.Stage,
			r.StartTime,
			r.EndTime,
			formatFloat(r.Duration),
		})
	}
	return writeCSV(path, records)
}

// WriteWorkoutCSV writes a clean workout table.
func WriteWorkoutCSV(path string, rows []clean.WorkoutRow) error {
	records := make([][]string, 0, len(rows)+1)
	records = append(records, workoutHeader)
	for _, r := range rows {
		records = append(records, []string{
			r.Date,
			strconv.Itoa(r.DayOfWeek),
			strconv.Itoa(r.Month),
			strconv.Itoa(r.Year),
			r.WorkoutType,
			r.StartTime,
			r.EndTime,
			strconv.Itoa(r.Duration),
		})
	}
	return writeCSV(path, records)
}

// ReadMetricCSV loads a clean health or activity table.
func ReadMetricCSV(path string) ([]clean.MetricRow, error) {
	var rows []clean.MetricRow
	err := readCSV(path, metricHeader, func(get func(string) string) error {
		parts, err := readDateParts(get)
		if err != nil {
			return err
		}
		value, err := strconv.ParseFloat(get("value"), 64)
		if err != nil {
			return fmt.Errorf("value: %w", err)
		}
		rows = append(rows, clean.MetricRow{
			DateParts: parts,
			Type:      get("type"),
			Value:     value,
			Unit:      get("unit"),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ReadSleepCSV loads a clean sleep table.
func ReadSleepCSV(path string) ([]clean.SleepRow, error) {
	var rows []clean.SleepRow
	err := readCSV(path, sleepHeader, func(get func(string) string) error {
		parts, err := readDateParts(get)
		if err != nil {
			return err
		}
		duration, err := strconv.ParseFloat(get("duration"), 64)
		if err != nil {
			return fmt.Errorf("duration: %w", err)
		}
		rows = append(rows, clean.SleepRow{
			DateParts: parts,
			Stage:     get("sleep_type"),
			StartTime: get("start_time"),
			EndTime:   get("end_time"),
			Duration:  duration,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ReadWorkoutCSV loads a clean workout table.
func ReadWorkoutCSV(path string) ([]clean.WorkoutRow, error) {
	var rows []clean.WorkoutRow
	err := readCSV(path, workoutHeader, func(get func(string) string) error {
		parts, err := readDateParts(get)
		if err != nil {
			return err
		}
		duration, err := strconv.Atoi(get("duration"))
		if err != nil {
			return fmt.Errorf("duration: %w", err)
		}
		rows = append(rows, clean.WorkoutRow{
			DateParts:   parts,
			WorkoutType: get("workout_type"),
			StartTime:   get("start_time"),
			EndTime:     get("end_time"),
			Duration:    duration,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func readDateParts(get func(string) string) (clean.DateParts, error) {
	dow, err := strconv.Atoi(get("day_of_week"))
	if err != nil {
		return clean.DateParts{}, fmt.Errorf("day_of_week: %w", err)
	}
	month, err := strconv.Atoi(get("month"))
	if err != nil {
		return clean.DateParts{}, fmt.Errorf("month: %w", err)
	}
	year, err := strconv.Atoi(get("year"))
	if err != nil {
		return clean.DateParts{}, fmt.Errorf("year: %w", err)
	}
	return clean.DateParts{Date: get("date"), DayOfWeek: dow, Month: month, Year: year}, nil
}

func writeCSV(path string, records [][]string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(records); err != nil {
		return fmt.Errorf("encode csv: %w", err)
	}
	if err := utils.SafeWriteFile(path, buf.Bytes()); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// readCSV streams a clean CSV, resolving columns by header name. A required
// column missing from the header is a schema violation for the whole table;
// an unparseable row is skipped with a warning and the scan continues.
func readCSV(path string, required []string, visit func(get func(string) string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.ReuseRecord = true
	r.TrimLeadingSpace = true
	header, err := r.Read()
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}
	for _, name := range required {
		if _, ok := index[name]; !ok {
			return fmt.Errorf("%s: column %q: %w", path, name, clean.ErrMissingColumn)
		}
	}

	line := 1
	skipped := 0
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf("read row %d: %w", line+1, err)
		}
		line++
		get := func(name string) string {
			i := index[name]
			if i >= len(rec) {
				return ""
			}
			return rec[i]
		}
		if err := visit(get); err != nil {
			skipped++
			slog.Warn("skipping unparseable csv row",
				slog.String("file", path), slog.Int("line", line), slog.Any("error", err))
		}
	}
	if skipped > 0 {
		slog.Warn("csv rows skipped", slog.String("file", path), slog.Int("skipped", skipped))
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
