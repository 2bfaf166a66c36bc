package feature

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkin(mood float64) CheckIn {
	return CheckIn{
		Sleep:        7,
		Energy:       5,
		Mood:         mood,
		Anxiety7dAvg: 4,
		Triggers:     TriggerList("Work", "Sleep deprivation"),
		Timestamp:    "2025-03-14T21:30:00Z",
		Notes:        "Felt anxious at work today",
	}
}

func TestParseTimestamp(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{"rfc3339 zulu", "2025-03-14T21:30:00Z", false},
		{"rfc3339 offset", "2025-03-14T21:30:00+02:00", false},
		{"naive", "2025-03-14T21:30:00", false},
		{"date only", "2025-03-14", false},
		{"garbage", "yesterday-ish", true},
		{"empty", "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseTimestamp(tc.in)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimestamp)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBuildRowRejectsBadTimestamp(t *testing.T) {
	c := checkin(5)
	c.Timestamp = "not-a-time"
	_, err := BuildRow(c, TrainingManifest())
	assert.ErrorIs(t, err, ErrInvalidTimestamp)
}

func TestBuildRowMoodInversion(t *testing.T) {
	m := TrainingManifest()
	prev := math.Inf(1)
	for mood := 0.0; mood <= 10.0; mood++ {
		row, err := BuildRow(checkin(mood), m)
		require.NoError(t, err)
		got, ok := row.Numeric("mood")
		require.True(t, ok)
		assert.Equal(t, 10.0-mood, got)
		assert.Less(t, got, prev)
		prev = got
	}
}

func TestBuildRowCoversManifest(t *testing.T) {
	manifests := []struct {
		name string
		m    Manifest
	}{
		{"training", TrainingManifest()},
		{"legacy", LegacyManifest()},
		{"time features", Manifest{
			Numeric: []string{"sleep", "hour", "is_weekend", "dow_sin", "dow_cos", "hour_sin", "hour_cos"},
			Trigger: []string{TriggerColumn},
		}},
		{"expanded triggers", Manifest{
			Numeric: []string{"sleep", "notes_sent"},
			Trigger: []string{"trigger_work", "trigger_sleep", "trigger_caffeine"},
		}},
	}
	for _, tc := range manifests {
		t.Run(tc.name, func(t *testing.T) {
			row, err := BuildRow(checkin(6), tc.m)
			require.NoError(t, err)
			assert.NoError(t, row.Complete(tc.m))
		})
	}
}

func TestBuildRowSingleTriggerColumn(t *testing.T) {
	row, err := BuildRow(checkin(5), LegacyManifest())
	require.NoError(t, err)

	got, ok := row.Triggers()
	require.True(t, ok)
	assert.Equal(t, "Work,Sleep deprivation", got)
}

func TestBuildRowStringTriggersPassThrough(t *testing.T) {
	c := checkin(5)
	c.Triggers = TriggerString("Work, Noise")
	row, err := BuildRow(c, LegacyManifest())
	require.NoError(t, err)

	got, _ := row.Triggers()
	assert.Equal(t, "Work, Noise", got)
}

func TestBuildRowExpandedTriggers(t *testing.T) {
	m := Manifest{
		Numeric: []string{"sleep"},
		Trigger: []string{"trigger_work", "trigger_sleep", "trigger_caffeine"},
	}
	row, err := BuildRow(checkin(5), m)
	require.NoError(t, err)

	work, _ := row.Numeric("trigger_work")
	sleep, _ := row.Numeric("trigger_sleep")
	caffeine, _ := row.Numeric("trigger_caffeine")
	assert.Equal(t, 1.0, work)
	// "Sleep deprivation" matches the trigger_sleep suffix by substring.
	assert.Equal(t, 1.0, sleep)
	assert.Equal(t, 0.0, caffeine)
}

func TestBuildRowTimeFeatures(t *testing.T) {
	m := Manifest{
		Numeric: []string{"hour", "is_weekend", "dow_sin", "dow_cos", "hour_sin", "hour_cos"},
		Trigger: []string{TriggerColumn},
	}
	// 2025-03-14 is a Friday; 21:30 UTC.
	row, err := BuildRow(checkin(5), m)
	require.NoError(t, err)

	hour, _ := row.Numeric("hour")
	weekend, _ := row.Numeric("is_weekend")
	dowSin, _ := row.Numeric("dow_sin")
	hourCos, _ := row.Numeric("hour_cos")
	assert.Equal(t, 21.0, hour)
	assert.Equal(t, 0.0, weekend)
	assert.InDelta(t, math.Sin(2*math.Pi*4/7), dowSin, 1e-12)
	assert.InDelta(t, math.Cos(2*math.Pi*21/24), hourCos, 1e-12)
}

func TestBuildRowWeekend(t *testing.T) {
	c := checkin(5)
	c.Timestamp = "2025-03-15T10:00:00Z" // Saturday
	m := Manifest{Numeric: []string{"is_weekend"}, Trigger: []string{TriggerColumn}}
	row, err := BuildRow(c, m)
	require.NoError(t, err)

	weekend, _ := row.Numeric("is_weekend")
	assert.Equal(t, 1.0, weekend)
}

func TestBuildRowLegacySentimentAlias(t *testing.T) {
	m := Manifest{Numeric: []string{"sleep", "notes_sent"}, Trigger: []string{TriggerColumn}}
	row, err := BuildRow(checkin(5), m)
	require.NoError(t, err)

	sent, ok := row.Numeric("notes_sent")
	require.True(t, ok)
	assert.InDelta(t, -0.2, sent, 1e-9)
}

func TestBuildRowFillsDefaults(t *testing.T) {
	m := Manifest{
		Numeric: []string{"sleep", "some_future_column"},
		Trigger: []string{TriggerColumn},
	}
	c := checkin(5)
	c.Triggers = Triggers{}
	row, err := BuildRow(c, m)
	require.NoError(t, err)

	v, ok := row.Numeric("some_future_column")
	require.True(t, ok)
	assert.Equal(t, 0.0, v)
	trig, ok := row.Triggers()
	require.True(t, ok)
	assert.Equal(t, "", trig)
}
