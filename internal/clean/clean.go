// Package clean turns raw record collections into clean per-day tables.
// Each category's cleaning is a pure function from records to rows; the
// shared primitives here (timestamp parsing, date decomposition, rounding)
// are composed explicitly per category.
package clean

import (
	"errors"
	"math"
	"time"
)

const (
	// TimestampLayout matches the export's attribute format.
	TimestampLayout = "2006-01-02 15:04:05 -0700"
	// DateLayout is the canonical calendar-date form used in clean tables.
	DateLayout = "2006-01-02"
	// ClockLayout is the HH:MM form used for start/end times.
	ClockLayout = "15:04"
)

// ErrMissingColumn reports that a category's records carry none of the
// fields its cleaner requires. The category is dropped from the merge; the
// run continues.
var ErrMissingColumn = errors.New("required column missing")

// DateParts is the decomposed calendar date every clean row leads with.
// DayOfWeek is ISO (Mon=1..Sun=7), Month is 1..12.
type DateParts struct {
	Date      string
	DayOfWeek int
	Month     int
	Year      int
}

// ParseTimestamp parses an export timestamp attribute.
func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse(TimestampLayout, s)
}

// SplitDate decomposes a timestamp into its clean-table date components.
func SplitDate(t time.Time) DateParts {
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7
	}
	return DateParts{
		Date:      t.Format(DateLayout),
		DayOfWeek: wd,
		Month:     int(t.Month()),
		Year:      t.Year(),
	}
}

// Round1 rounds to one decimal.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
