package summary

import (
	"errors"
	"testing"
	"time"

	"github.com/jacobjacobjacobjacobjacob/apple-health-data-parser/internal/clean"
	"github.com/jacobjacobjacobjacobjacob/apple-health-data-parser/internal/merge"
)

func day(date, month string, values map[string]float64) merge.Row {
	ts, err := time.Parse(clean.DateLayout, date)
	if err != nil {
		panic(err)
	}
	return merge.Row{Date: ts, DayOfWeek: "Mon", Month: month, Year: ts.Year(), Values: values}
}

func sampleUnified() *merge.Unified {
	return &merge.Unified{
		Columns: []string{"Step Count", "Walking Speed", merge.ColWorkoutHours, merge.ColSleepHours},
		Rows: []merge.Row{
			day("2024-01-01", "Jan", map[string]float64{"Step Count": 1000, "Walking Speed": 5.0}),
			day("2024-01-02", "Jan", map[string]float64{"Step Count": 2000, "Walking Speed": 5.5, merge.ColWorkoutHours: 1.5}),
			day("2024-03-10", "Mar", map[string]float64{"Step Count": 4000, merge.ColSleepHours: 7.25}),
		},
	}
}

func TestMonthlyMeanCalendarOrder(t *testing.T) {
	m, err := MonthlyMean(sampleUnified(), MonthOrder)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if len(m.Rows) != 12 {
		t.Fatalf("expected 12 rows, got %d", len(m.Rows))
	}
	for i, month := range MonthOrder {
		if m.Rows[i].Month != month {
			t.Fatalf("row %d = %s, want %s", i, m.Rows[i].Month, month)
		}
	}
	jan := m.Rows[0]
	if jan.Values["Step Count"] != 1500.0 {
		t.Fatalf("Jan Step Count mean = %v, want 1500", jan.Values["Step Count"])
	}
	// Means run over present cells only: one January day has workout hours.
	if jan.Values[merge.ColWorkoutHours] != 1.5 {
		t.Fatalf("Jan workout hours mean = %v, want 1.5", jan.Values[merge.ColWorkoutHours])
	}
	if got := jan.Values["Walking Speed"]; got != 5.3 {
		t.Fatalf("Jan walking speed mean = %v, want 5.3", got)
	}
	feb := m.Rows[1]
	if len(feb.Values) != 0 {
		t.Fatalf("expected empty February, got %+v", feb.Values)
	}
}

func TestMonthlySumAllowlist(t *testing.T) {
	m, err := MonthlySum(sampleUnified(), MonthOrder, SumColumns)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	// Allowlist order, restricted to columns the table actually has.
	want := []string{"Step Count", merge.ColWorkoutHours, merge.ColSleepHours}
	if len(m.Columns) != len(want) {
		t.Fatalf("columns = %v, want %v", m.Columns, want)
	}
	for i, col := range want {
		if m.Columns[i] != col {
			t.Fatalf("columns = %v, want %v", m.Columns, want)
		}
	}
	for _, col := range m.Columns {
		if col == "Walking Speed" {
			t.Fatal("non-additive column leaked into sum summary")
		}
	}
	jan := m.Rows[0]
	if jan.Values["Step Count"] != 3000.0 {
		t.Fatalf("Jan Step Count sum = %v, want 3000", jan.Values["Step Count"])
	}
	mar := m.Rows[2]
	if mar.Values[merge.ColSleepHours] != 7.3 {
		t.Fatalf("Mar sleep hours sum = %v, want 7.3", mar.Values[merge.ColSleepHours])
	}
}

func TestMonthlySumNoAdditiveColumns(t *testing.T) {
	u := &merge.Unified{
		Columns: []string{"Walking Speed"},
		Rows:    []merge.Row{day("2024-01-01", "Jan", map[string]float64{"Walking Speed": 5.0})},
	}
	_, err := MonthlySum(u, MonthOrder, SumColumns)
	if !errors.Is(err, ErrNoAdditiveColumns) {
		t.Fatalf("expected ErrNoAdditiveColumns, got %v", err)
	}
}

func TestGroupByMonthRejectsUnknownLabel(t *testing.T) {
	u := &merge.Unified{
		Columns: []string{"Step Count"},
		Rows:    []merge.Row{day("2024-01-01", "Janvier", map[string]float64{"Step Count": 100})},
	}
	if _, err := MonthlyMean(u, MonthOrder); err == nil {
		t.Fatal("expected error for unknown month label")
	}
}
