package feature

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// ErrInvalidTimestamp marks a check-in timestamp that is not ISO-8601.
var ErrInvalidTimestamp = errors.New("invalid timestamp")

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp accepts ISO-8601 forms with or without an offset; a
// trailing Z reads as UTC, a naive timestamp is taken as UTC.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
}

// BuildRow assembles the feature row for a check-in under the active
// manifest. Every manifest column ends up populated; columns the
// manifest does not declare are never computed.
func BuildRow(c CheckIn, m Manifest) (Row, error) {
	ts, err := ParseTimestamp(c.Timestamp)
	if err != nil {
		return Row{}, err
	}
	return BuildRowAt(c, ts, m), nil
}

// BuildRowAt is BuildRow with the timestamp already parsed. The
// training pipeline uses it after cleaning has normalized timestamps.
func BuildRowAt(c CheckIn, ts time.Time, m Manifest) Row {
	row := NewRow()

	// Mood arrives as valence; the model consumes distress.
	base := map[string]float64{
		"sleep":          c.Sleep,
		"energy":         c.Energy,
		"mood":           10.0 - c.Mood,
		"anxiety_7d_avg": c.Anxiety7dAvg,
	}
	for _, col := range BaseNumericColumns {
		if m.Wants(col) {
			row.SetNumeric(col, base[col])
		}
	}

	hour := ts.Hour()
	dow := (int(ts.Weekday()) + 6) % 7 // 0=Mon .. 6=Sun
	if m.Wants("hour") {
		row.SetNumeric("hour", float64(hour))
	}
	if m.Wants("is_weekend") {
		weekend := 0.0
		if dow >= 5 {
			weekend = 1.0
		}
		row.SetNumeric("is_weekend", weekend)
	}
	if m.Wants("dow_sin") {
		row.SetNumeric("dow_sin", math.Sin(2*math.Pi*float64(dow)/7))
	}
	if m.Wants("dow_cos") {
		row.SetNumeric("dow_cos", math.Cos(2*math.Pi*float64(dow)/7))
	}
	if m.Wants("hour_sin") {
		row.SetNumeric("hour_sin", math.Sin(2*math.Pi*float64(hour)/24))
	}
	if m.Wants("hour_cos") {
		row.SetNumeric("hour_cos", math.Cos(2*math.Pi*float64(hour)/24))
	}

	switch m.TriggerMode() {
	case TriggerModeSingle:
		row.SetTriggers(c.Triggers.Joined())
	case TriggerModeExpanded:
		present := c.Triggers.Normalized()
		for _, col := range m.Trigger {
			if !strings.HasPrefix(col, TriggerPrefix) {
				continue
			}
			name := strings.ToLower(strings.TrimPrefix(col, TriggerPrefix))
			hit := 0.0
			// Substring match, so trigger_sleep fires on "sleep deprivation".
			for _, item := range present {
				if strings.Contains(item, name) {
					hit = 1.0
					break
				}
			}
			row.SetNumeric(col, hit)
		}
	}

	noteFeats := NotesFeaturize(c.Notes)
	for col, v := range noteFeats {
		if m.Wants(col) {
			row.SetNumeric(col, v)
		}
	}
	// Older bundles named the sentiment column notes_sent.
	if m.Wants("notes_sent") {
		row.SetNumeric("notes_sent", noteFeats["notes_sentiment"])
	}

	for _, col := range m.Columns() {
		if row.Has(col) {
			continue
		}
		if col == TriggerColumn {
			row.SetTriggers("")
		} else {
			row.SetNumeric(col, 0.0)
		}
	}
	return row
}
