// Package summary produces monthly reports from the unified table.
package summary

import (
	"errors"
	"fmt"

	"github.com/jacobjacobjacobjacobjacob/apple-health-data-parser/internal/clean"
	"github.com/jacobjacobjacobjacobjacob/apple-health-data-parser/internal/merge"
)

// ErrNoAdditiveColumns reports that none of the sum-summary allowlist
// columns exist in the unified table; such a summary would be meaningless.
var ErrNoAdditiveColumns = errors.New("no additive columns present")

// MonthOrder is the fixed calendar ordering used as the summary index.
var MonthOrder = []string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// SumColumns is the allowlist of semantically additive columns permitted in
// the sum summary. Rates and speeds must never be summed across a month.
var SumColumns = []string{
	"Energy Burned",
	"Physical Effort",
	"Step Count",
	"Exercise Time",
	"Flights Climbed",
	merge.ColWorkoutHours,
	merge.ColSleepHours,
}

// Monthly is a 12-row report indexed by month label in calendar order.
type Monthly struct {
	Columns []string
	Rows    []MonthRow
}

// MonthRow holds one month's aggregates. A column absent from Values had no
// observations that month.
type MonthRow struct {
	Month  string
	Values map[string]float64
}

// MonthlyMean groups the unified table by month and computes the mean of
// every numeric column, rounded to one decimal. Months without observations
// appear as empty rows so the report always has twelve, in calendar order.
func MonthlyMean(u *merge.Unified, order []string) (*Monthly, error) {
	groups, err := groupByMonth(u, order)
	if err != nil {
		return nil, err
	}
	out := &Monthly{Columns: u.Columns}
	for _, month := range order {
		values := make(map[string]float64)
		for _, col := range u.Columns {
			sum, count := 0.0, 0
			for _, row := range groups[month] {
				if v, ok := row.Values[col]; ok {
					sum += v
					count++
				}
			}
			if count > 0 {
				values[col] = clean.Round1(sum / float64(count))
			}
		}
		out.Rows = append(out.Rows, MonthRow{Month: month, Values: values})
	}
	return out, nil
}

// MonthlySum groups by month, sums each column, and projects the result down
// to the allowlisted additive columns present in the table.
func MonthlySum(u *merge.Unified, order, allowlist []string) (*Monthly, error) {
	groups, err := groupByMonth(u, order)
	if err != nil {
		return nil, err
	}
	present := make(map[string]bool, len(u.Columns))
	for _, col := range u.Columns {
		present[col] = true
	}
	var columns []string
	for _, col := range allowlist {
		if present[col] {
			columns = append(columns, col)
		}
	}
	if len(columns) == 0 {
		return nil, ErrNoAdditiveColumns
	}

	out := &Monthly{Columns: columns}
	for _, month := range order {
		values := make(map[string]float64)
		for _, col := range columns {
			sum, count := 0.0, 0
			for _, row := range groups[month] {
				if v, ok := row.Values[col]; ok {
					sum += v
					count++
				}
			}
			if count > 0 {
				values[col] = clean.Round1(sum)
			}
		}
		out.Rows = append(out.Rows, MonthRow{Month: month, Values: values})
	}
	return out, nil
}

func groupByMonth(u *merge.Unified, order []string) (map[string][]merge.Row, error) {
	known := make(map[string]bool, len(order))
	for _, m := range order {
		known[m] = true
	}
	groups := make(map[string][]merge.Row)
	for _, row := range u.Rows {
		if !known[row.Month] {
			return nil, fmt.Errorf("month label %q not in fixed order", row.Month)
		}
		groups[row.Month] = append(groups[row.Month], row)
	}
	return groups, nil
}
