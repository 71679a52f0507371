package clean

import (
	"fmt"
	"log/slog"
	"sort"
	"strconv"

	"github.com/jacobjacobjacobjacobjacob/apple-health-data-parser/internal/extract"
)

// MetricRow is one clean long-format row: one metric observation per day.
type MetricRow struct {
	DateParts
	Type  string
	Value float64
	Unit  string
}

// Health cleans health-category records: filter to the target year, collapse
// to one row per (date, type) using each metric's declared aggregation, and
// round values to one decimal.
func Health(records []extract.RawRecord, targetYear int, aggs map[string]extract.AggKind) ([]MetricRow, error) {
	rows, err := aggregateMetrics(records, targetYear, aggs)
	if err != nil {
		return nil, fmt.Errorf("health: %w", err)
	}
	return rows, nil
}

// Activity cleans activity-category records. No year filter is applied, but
// the same per-(date, type) collapse runs so the later pivot is unambiguous.
func Activity(records []extract.RawRecord, aggs map[string]extract.AggKind) ([]MetricRow, error) {
	rows, err := aggregateMetrics(records, 0, aggs)
	if err != nil {
		return nil, fmt.Errorf("activity: %w", err)
	}
	return rows, nil
}

type metricKey struct {
	date  string
	label string
}

type metricAcc struct {
	parts DateParts
	sum   float64
	count int
	unit  string
}

// aggregateMetrics collapses raw samples into one value per (date, type).
// targetYear of 0 disables the year filter. Records with unparseable dates
// or values are skipped; if every record is unusable the category fails
// with ErrMissingColumn.
func aggregateMetrics(records []extract.RawRecord, targetYear int, aggs map[string]extract.AggKind) ([]MetricRow, error) {
	if len(records) == 0 {
		return nil, nil
	}

	acc := make(map[metricKey]*metricAcc)
	skipped := 0
	for _, rec := range records {
		t, err := ParseTimestamp(rec.Date)
		if err != nil {
			skipped++
			continue
		}
		if targetYear != 0 && t.Year() != targetYear {
			continue
		}
		v, err := strconv.ParseFloat(rec.Value, 64)
		if err != nil {
			skipped++
			continue
		}
		parts := SplitDate(t)
		key := metricKey{date: parts.Date, label: rec.Type}
		a := acc[key]
		if a == nil {
			a = &metricAcc{parts: parts, unit: rec.Unit}
			acc[key] = a
		}
		a.sum += v
		a.count++
	}
	if skipped > 0 {
		slog.Warn("skipped unparseable records", slog.Int("skipped", skipped))
	}
	if len(acc) == 0 {
		if skipped == len(records) {
			return nil, fmt.Errorf("no record has a usable date and value: %w", ErrMissingColumn)
		}
		// Everything fell outside the target year.
		return nil, nil
	}

	rows := make([]MetricRow, 0, len(acc))
	for key, a := range acc {
		value := a.sum
		if aggs[key.label] != extract.AggSum {
			value = a.sum / float64(a.count)
		}
		rows = append(rows, MetricRow{
			DateParts: a.parts,
			Type:      key.label,
			Value:     Round1(value),
			Unit:      a.unit,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Date != rows[j].Date {
			return rows[i].Date < rows[j].Date
		}
		return rows[i].Type < rows[j].Type
	})
	return rows, nil
}
