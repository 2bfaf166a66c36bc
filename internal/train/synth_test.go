package train

import (
	"testing"

	"calmcast/internal/pkg/convert"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynthesizeDeterministic(t *testing.T) {
	first := Synthesize(50, 42)
	second := Synthesize(50, 42)
	assert.Equal(t, first, second)

	other := Synthesize(50, 7)
	assert.NotEqual(t, first.Rows, other.Rows)
}

func TestSynthesizeShape(t *testing.T) {
	ds := Synthesize(200, 42)
	require.Len(t, ds.Rows, 200)
	for _, col := range []string{"user_id", "timestamp", "sleep", "energy", "mood", "anxiety_7d_avg", "triggers", "notes", "anxiety"} {
		assert.True(t, ds.HasColumn(col), col)
	}
}

func TestSynthesizeRanges(t *testing.T) {
	ds := Synthesize(300, 42)
	pool := make(map[string]bool, len(triggerPool))
	for _, trig := range triggerPool {
		pool[trig] = true
	}
	bank := make(map[string]bool, len(notesBank))
	for _, note := range notesBank {
		bank[note] = true
	}
	for _, row := range ds.Rows {
		sleep := convert.ToFloat64(row["sleep"])
		target := convert.ToFloat64(row["anxiety"])
		assert.GreaterOrEqual(t, sleep, 3.0)
		assert.LessOrEqual(t, sleep, 10.0)
		assert.GreaterOrEqual(t, target, 0.0)
		assert.LessOrEqual(t, target, 10.0)
		assert.True(t, pool[row["triggers"]], row["triggers"])
		assert.True(t, bank[row["notes"]], row["notes"])
		user := convert.ToFloat64(row["user_id"])
		assert.GreaterOrEqual(t, user, 1.0)
		assert.LessOrEqual(t, user, 7.0)
	}
}

func TestSynthesizeHourlyTimestamps(t *testing.T) {
	ds := Synthesize(3, 42)
	assert.Equal(t, "2025-01-01T00:00:00Z", ds.Rows[0]["timestamp"])
	assert.Equal(t, "2025-01-01T01:00:00Z", ds.Rows[1]["timestamp"])
	assert.Equal(t, "2025-01-01T02:00:00Z", ds.Rows[2]["timestamp"])
}
