package bundle

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"calmcast/internal/feature"
	"calmcast/internal/ml"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fittedPipeline(t *testing.T) *ml.Pipeline {
	t.Helper()
	m := feature.Manifest{Numeric: []string{"sleep", "mood"}, Trigger: []string{feature.TriggerColumn}}
	rows := make([]feature.Row, 8)
	y := make([]float64, 8)
	for i := range rows {
		row := feature.NewRow()
		row.SetNumeric("sleep", float64(3+i))
		row.SetNumeric("mood", float64(i%4))
		row.SetTriggers([]string{"Work", "None"}[i%2])
		rows[i] = row
		y[i] = float64(i) * 0.5
	}
	pipe, err := ml.FitPipeline(rows, y, m, ml.Config{Trees: 5, LearningRate: 0.3, MaxDepth: 2, MinLeaf: 1})
	require.NoError(t, err)
	return pipe
}

func testBundle(t *testing.T) *Bundle {
	return &Bundle{
		Pipeline:  fittedPipeline(t),
		Numeric:   []string{"sleep", "mood"},
		Trigger:   []string{"triggers"},
		TrainedAt: "2025-08-30T12:00:00Z",
		RunID:     "run-1",
		NTrain:    8,
		NTest:     2,
		Metrics:   Metrics{MAE: 0.21, RMSE: 0.34, R2: 0.87},
		Version:   "1.3.0-notes",
	}
}

func TestBundleRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	original := testBundle(t)
	require.NoError(t, Save(original, path))

	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, original.Manifest(), loaded.Manifest())
	assert.Equal(t, original.Metrics, loaded.Metrics)
	assert.Equal(t, original.NTrain, loaded.NTrain)
	assert.Equal(t, original.NTest, loaded.NTest)
	assert.Equal(t, original.TrainedAt, loaded.TrainedAt)
	assert.Equal(t, original.Version, loaded.Version)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.ErrorIs(t, err, ErrModelUnavailable)
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	_, err := Load(path)
	assert.ErrorIs(t, err, ErrModelUnavailable)
}

func TestLoadRejectsMissingPipeline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version":"1.0.0"}`), 0o644))
	_, err := Load(path)
	assert.ErrorIs(t, err, ErrModelUnavailable)
}

func TestLoadLegacyKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	b := testBundle(t)
	raw, err := json.Marshal(b)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	doc["numeric"] = doc["numeric_features"]
	doc["trigger_cols"] = doc["trigger_features"]
	delete(doc, "numeric_features")
	delete(doc, "trigger_features")
	legacy, err := json.Marshal(doc)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, legacy, 0o644))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"sleep", "mood"}, loaded.Manifest().Numeric)
	assert.Equal(t, []string{"triggers"}, loaded.Manifest().Trigger)
}

func TestManifestFallbackDefaults(t *testing.T) {
	b := &Bundle{Pipeline: fittedPipeline(t), Version: "0.9.0"}
	m := b.Manifest()
	assert.Equal(t, feature.LegacyManifest().Numeric, m.Numeric)
	assert.Equal(t, []string{feature.TriggerColumn}, m.Trigger)
}

func TestValidateRejectsMixedManifest(t *testing.T) {
	b := testBundle(t)
	b.Trigger = []string{"triggers", "trigger_work"}
	assert.ErrorIs(t, b.Validate(), ErrModelUnavailable)
}

func TestSaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	first := testBundle(t)
	require.NoError(t, Save(first, path))

	second := testBundle(t)
	second.Version = "1.4.0-notes"
	require.NoError(t, Save(second, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "1.4.0-notes", loaded.Version)
}

func TestKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, Save(testBundle(t), path))
	keys, err := Keys(path)
	require.NoError(t, err)
	assert.Contains(t, keys, "pipeline")
	assert.Contains(t, keys, "metrics")
	assert.Contains(t, keys, "version")
}
