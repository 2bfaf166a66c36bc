package train

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"calmcast/internal/feature"
	"calmcast/internal/pkg/convert"
)

// ErrMissingTarget means the dataset has no anxiety label column, so
// nothing can be trained. Fatal for the run.
var ErrMissingTarget = errors.New("dataset is missing the anxiety target column")

// Sample is one cleaned, typed training row.
type Sample struct {
	CheckIn feature.CheckIn
	At      time.Time
	User    string
	Target  float64
}

// Table is the cleaned dataset plus the column facts the split
// cascade branches on.
type Table struct {
	Samples []Sample
	HasUser bool
	HasTime bool
}

// Clean coerces the raw table into typed samples: numerics fall back
// to 0 when unparseable, triggers and notes are stringified, and
// unparseable timestamps default to now. The target column must be
// present.
func Clean(ds Dataset, now time.Time) (Table, error) {
	if !ds.HasColumn("anxiety") {
		return Table{}, fmt.Errorf("%w (columns: %s)", ErrMissingTarget, strings.Join(ds.Columns, ", "))
	}
	t := Table{
		HasUser: ds.HasColumn("user_id"),
		HasTime: ds.HasColumn("timestamp"),
	}
	for _, row := range ds.Rows {
		s := Sample{
			CheckIn: feature.CheckIn{
				Sleep:        convert.ToFloat64(row["sleep"]),
				Energy:       convert.ToFloat64(row["energy"]),
				Mood:         convert.ToFloat64(row["mood"]),
				Anxiety7dAvg: convert.ToFloat64(row["anxiety_7d_avg"]),
				Triggers:     feature.TriggerString(strings.TrimSpace(row["triggers"])),
				Timestamp:    strings.TrimSpace(row["timestamp"]),
				Notes:        row["notes"],
			},
			User:   strings.TrimSpace(row["user_id"]),
			Target: convert.ToFloat64(row["anxiety"]),
		}
		at, err := feature.ParseTimestamp(s.CheckIn.Timestamp)
		if err != nil {
			at = now
		}
		s.At = at
		t.Samples = append(t.Samples, s)
	}
	return t, nil
}
