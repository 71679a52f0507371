package extract

import (
	"bufio"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
)

// RawRecord is one typed record pulled from the export. Field presence
// depends on the category: metric records carry date/value/unit, sleep
// records carry start/end/value, workout records carry date/duration and
// the workout type code.
type RawRecord struct {
	Date        string `json:"date,omitempty"`
	StartTime   string `json:"start_time,omitempty"`
	EndTime     string `json:"end_time,omitempty"`
	Value       string `json:"value,omitempty"`
	Unit        string `json:"unit,omitempty"`
	Duration    string `json:"duration,omitempty"`
	WorkoutType string `json:"workout_type,omitempty"`
	Type        string `json:"type"`
}

// ExtractFile scans the export document once, front to back, and returns
// every record matching spec. Elements are inspected as they stream past;
// nothing keeps the document tree resident.
//
// A missing document yields an empty slice plus the error so the caller can
// log and continue. A malformed element ends the scan at that point but the
// records gathered so far are still returned.
func ExtractFile(path string, spec MetricSpec) ([]RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("export not found: %s: %w", path, err)
		}
		return nil, fmt.Errorf("open export: %w", err)
	}
	defer f.Close()
	return extractStream(bufio.NewReaderSize(f, 1<<20), spec)
}

func extractStream(r io.Reader, spec MetricSpec) ([]RawRecord, error) {
	dec := xml.NewDecoder(r)
	var records []RawRecord
	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return records, nil
			}
			// Truncated or corrupt markup: keep what was already scanned.
			slog.Warn("stopping scan on malformed element",
				slog.String("metric", spec.Label), slog.Any("error", err))
			return records, nil
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		// The record is built and appended only inside the matched branch;
		// unmatched elements carry no state into the next iteration.
		switch se.Name.Local {
		case "Record":
			if spec.Category == CategoryWorkout {
				continue
			}
			attrs := attrMap(se)
			if attrs["type"] != spec.TypeCode {
				continue
			}
			if spec.Category == CategorySleep {
				if !RecognizedSleepStage(attrs["value"]) {
					continue
				}
				records = append(records, RawRecord{
					StartTime: attrs["startDate"],
					EndTime:   attrs["endDate"],
					Value:     attrs["value"],
					Type:      spec.Label,
				})
				continue
			}
			records = append(records, RawRecord{
				Date:  attrs["startDate"],
				Value: attrs["value"],
				Unit:  attrs["unit"],
				Type:  spec.Label,
			})
		case "Workout":
			if spec.Category != CategoryWorkout {
				continue
			}
			attrs := attrMap(se)
			if spec.TypeCode != "" && attrs["workoutActivityType"] != spec.TypeCode {
				continue
			}
			records = append(records, RawRecord{
				Date:        attrs["startDate"],
				Duration:    attrs["duration"],
				WorkoutType: attrs["workoutActivityType"],
				Type:        spec.Label,
			})
		}
	}
}

func attrMap(se xml.StartElement) map[string]string {
	m := make(map[string]string, len(se.Attr))
	for _, a := range se.Attr {
		m[a.Name.Local] = a.Value
	}
	return m
}
