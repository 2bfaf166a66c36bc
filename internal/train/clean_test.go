package train

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanMissingTarget(t *testing.T) {
	ds := Dataset{
		Columns: []string{"sleep", "mood"},
		Rows:    []map[string]string{{"sleep": "7", "mood": "5"}},
	}
	_, err := Clean(ds, time.Now())
	assert.ErrorIs(t, err, ErrMissingTarget)
}

func TestCleanCoercesNumerics(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ds := Dataset{
		Columns: []string{"sleep", "energy", "mood", "anxiety_7d_avg", "triggers", "notes", "timestamp", "anxiety"},
		Rows: []map[string]string{
			{
				"sleep": "7.5", "energy": "not-a-number", "mood": "6",
				"anxiety_7d_avg": " 4.2 ", "triggers": " Work,Noise ",
				"notes": "ok day", "timestamp": "2025-03-14T21:30:00Z", "anxiety": "5.1",
			},
		},
	}
	table, err := Clean(ds, now)
	require.NoError(t, err)
	require.Len(t, table.Samples, 1)

	s := table.Samples[0]
	assert.Equal(t, 7.5, s.CheckIn.Sleep)
	assert.Equal(t, 0.0, s.CheckIn.Energy)
	assert.Equal(t, 6.0, s.CheckIn.Mood)
	assert.Equal(t, 4.2, s.CheckIn.Anxiety7dAvg)
	assert.Equal(t, "Work,Noise", s.CheckIn.Triggers.Joined())
	assert.Equal(t, 5.1, s.Target)
	assert.Equal(t, 2025, s.At.Year())
	assert.Equal(t, time.March, s.At.Month())
}

func TestCleanDefaultsBadTimestampToNow(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ds := Dataset{
		Columns: []string{"timestamp", "anxiety"},
		Rows:    []map[string]string{{"timestamp": "whenever", "anxiety": "3"}},
	}
	table, err := Clean(ds, now)
	require.NoError(t, err)
	assert.True(t, table.Samples[0].At.Equal(now))
}

func TestCleanColumnFlags(t *testing.T) {
	ds := Dataset{
		Columns: []string{"user_id", "timestamp", "anxiety"},
		Rows:    []map[string]string{{"user_id": "3", "timestamp": "2025-01-01T00:00:00Z", "anxiety": "2"}},
	}
	table, err := Clean(ds, time.Now())
	require.NoError(t, err)
	assert.True(t, table.HasUser)
	assert.True(t, table.HasTime)
	assert.Equal(t, "3", table.Samples[0].User)

	ds2 := Dataset{Columns: []string{"anxiety"}, Rows: []map[string]string{{"anxiety": "2"}}}
	table2, err := Clean(ds2, time.Now())
	require.NoError(t, err)
	assert.False(t, table2.HasUser)
	assert.False(t, table2.HasTime)
}
