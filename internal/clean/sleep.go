package clean

import (
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"time"

	"github.com/jacobjacobjacobjacobjacob/apple-health-data-parser/internal/extract"
)

// SleepRow is one clean sleep row: one stage per date with the summed
// duration and the interval bounds of that stage.
type SleepRow struct {
	DateParts
	Stage     string
	StartTime string
	EndTime   string
	Duration  float64 // minutes
}

var sleepStageRe = regexp.MustCompile(`HKCategoryValueSleepAnalysisAsleep(\w+)`)

// SleepStage extracts the simplified stage tag from a raw stage code.
func SleepStage(code string) string {
	if m := sleepStageRe.FindStringSubmatch(code); m != nil {
		return m[1]
	}
	return "Unknown"
}

type sleepKey struct {
	date  string
	stage string
}

type sleepAcc struct {
	parts    DateParts
	duration float64
	start    time.Time
	end      time.Time
}

// Sleep cleans sleep-category records: derive the stage tag and calendar
// date, filter to the target year, compute duration minutes, and collapse to
// one row per (date, stage) keeping the earliest start and latest end.
func Sleep(records []extract.RawRecord, targetYear int) ([]SleepRow, error) {
	if len(records) == 0 {
		return nil, nil
	}

	acc := make(map[sleepKey]*sleepAcc)
	skipped := 0
	for _, rec := range records {
		start, err := ParseTimestamp(rec.StartTime)
		if err != nil {
			skipped++
			continue
		}
		end, err := ParseTimestamp(rec.EndTime)
		if err != nil || end.Before(start) {
			skipped++
			continue
		}
		if start.Year() != targetYear {
			continue
		}
		parts := SplitDate(start)
		key := sleepKey{date: parts.Date, stage: SleepStage(rec.Value)}
		a := acc[key]
		if a == nil {
			a = &sleepAcc{parts: parts, start: start, end: end}
			acc[key] = a
		}
		a.duration += end.Sub(start).Minutes()
		if start.Before(a.start) {
			a.start = start
		}
		if end.After(a.end) {
			a.end = end
		}
	}
	if skipped > 0 {
		slog.Warn("skipped unparseable sleep records", slog.Int("skipped", skipped))
	}
	if len(acc) == 0 {
		if skipped == len(records) {
			return nil, fmt.Errorf("sleep: no record has usable start/end times: %w", ErrMissingColumn)
		}
		return nil, nil
	}

	rows := make([]SleepRow, 0, len(acc))
	for key, a := range acc {
		rows = append(rows, SleepRow{
			DateParts: a.parts,
			Stage:     key.stage,
			StartTime: a.start.Format(ClockLayout),
			EndTime:   a.end.Format(ClockLayout),
			Duration:  a.duration,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Date != rows[j].Date {
			return rows[i].Date < rows[j].Date
		}
		return rows[i].Stage < rows[j].Stage
	})
	return rows, nil
}
