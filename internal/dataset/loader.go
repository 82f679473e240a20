package dataset

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
)

// Normalized column names the loader understands. Headers in the raw CSV are
// lowercased with spaces and slashes turned into underscores before lookup,
// so "Road/Intersection Name" becomes road_intersection_name.
const (
	ColRoadName   = "road_intersection_name"
	ColVolume     = "traffic_volume"
	ColSpeed      = "average_speed"
	ColCongestion = "congestion_level"
	ColDate       = "date"
)

// ErrMissingColumn reports a required dataset column that is absent after
// header normalization.
var ErrMissingColumn = errors.New("missing required column")

// TrafficRecord is one normalized dataset row.
type TrafficRecord struct {
	RoadName   string
	Date       time.Time
	HasDate    bool
	Volume     float64
	Speed      float64
	Congestion float64
}

var dateLayouts = []string{
	"2006-01-02",
	"02-01-2006",
	"2006/01/02",
	"01/02/2006",
	time.RFC3339,
}

// Load reads the traffic dataset CSV and returns one record per input row.
// Missing files and missing required columns are terminal input errors.
func Load(path string) ([]TrafficRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	df := dataframe.ReadCSV(f)
	if df.Error() != nil {
		return nil, fmt.Errorf("read dataset: %w", df.Error())
	}

	names := df.Names()
	normalized := make([]string, len(names))
	for i, n := range names {
		normalized[i] = NormalizeColumn(n)
	}
	if err := df.SetNames(normalized...); err != nil {
		return nil, fmt.Errorf("normalize columns: %w", err)
	}

	present := make(map[string]bool, len(normalized))
	for _, n := range normalized {
		present[n] = true
	}
	for _, required := range []string{ColRoadName, ColVolume} {
		if !present[required] {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, required)
		}
	}

	records := make([]TrafficRecord, 0, df.Nrow())
	for _, row := range df.Maps() {
		rec := TrafficRecord{
			RoadName:   asString(row[ColRoadName]),
			Volume:     asFloat(row[ColVolume]),
			Speed:      asFloat(row[ColSpeed]),
			Congestion: asFloat(row[ColCongestion]),
		}
		if present[ColDate] {
			if t, ok := parseDate(asString(row[ColDate])); ok {
				rec.Date = t
				rec.HasDate = true
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

// NormalizeColumn maps a raw CSV header to its canonical snake_case form.
func NormalizeColumn(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.ReplaceAll(n, " ", "_")
	n = strings.ReplaceAll(n, "/", "_")
	return n
}

// SplitByWeekend partitions records into weekday and weekend groups. Records
// without a parseable date count as weekday.
func SplitByWeekend(records []TrafficRecord) (weekday, weekend []TrafficRecord) {
	for _, r := range records {
		if r.HasDate && (r.Date.Weekday() == time.Saturday || r.Date.Weekday() == time.Sunday) {
			weekend = append(weekend, r)
			continue
		}
		weekday = append(weekday, r)
	}
	return weekday, weekend
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func asString(v interface{}) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprintf("%v", v)
	}
}

func asFloat(v interface{}) float64 {
	switch n := v.(type) {
	case nil:
		return 0
	case float64:
		return n
	case int:
		return float64(n)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}
