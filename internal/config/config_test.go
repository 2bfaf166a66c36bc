package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.toml", "")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.App.Env)
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, ":8000", cfg.App.HTTPAddr)
	assert.Equal(t, "anxiety_model.json", cfg.Model.BundlePath)
	assert.Equal(t, 1000, cfg.Train.Rows)
	assert.Equal(t, int64(42), cfg.Train.Seed)
	assert.True(t, cfg.Generator.Enabled)
	assert.Equal(t, "http://127.0.0.1:8010/v1", cfg.Generator.APIURL)
	assert.Equal(t, "google/flan-t5-small", cfg.Generator.Model)
	assert.Equal(t, 60, cfg.Generator.TimeoutSeconds)
	assert.Equal(t, 10, cfg.Generator.MaxPerCall)
	assert.Equal(t, 0, cfg.Generator.MaxRetries)
	assert.InDelta(t, 0.7, cfg.Generator.Temperature, 1e-9)
	assert.Equal(t, 3, cfg.Tips.SingleCandidates)
	assert.Equal(t, 50, cfg.Tips.BatchCandidates)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.toml", `
[app]
env = "prod"
http_addr = ":9000"

[generator]
model = "my-local-model"
temperature = 1.1

[tips]
api_key = "shared-secret"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "prod", cfg.App.Env)
	assert.Equal(t, ":9000", cfg.App.HTTPAddr)
	assert.Equal(t, "my-local-model", cfg.Generator.Model)
	assert.InDelta(t, 1.1, cfg.Generator.Temperature, 1e-9)
	assert.Equal(t, "shared-secret", cfg.Tips.APIKey)
	// Untouched sections still get defaults.
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, 1000, cfg.Train.Rows)
}

func TestLoadExplicitFalseSurvivesDefaulting(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.toml", `
[generator]
enabled = false
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.Generator.Enabled)
}

func TestLoadIncludes(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "base.toml", `
[app]
env = "prod"
log_level = "debug"
`)
	path := writeConfig(t, dir, "config.toml", `
include = ["base.toml"]

[app]
env = "staging"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	// The including file wins on conflicts; non-conflicting keys merge.
	assert.Equal(t, "staging", cfg.App.Env)
	assert.Equal(t, "debug", cfg.App.LogLevel)
}

func TestLoadIncludeCycle(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "a.toml", `include = ["b.toml"]`)
	writeConfig(t, dir, "b.toml", `include = ["a.toml"]`)

	_, err := Load(filepath.Join(dir, "a.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cycle")
}

func TestLoadValidationErrors(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"bad log level", "[app]\nlog_level = \"verbose\"\n", "app.log_level"},
		{"tiny training set", "[train]\nrows = 5\n", "train.rows"},
		{"temperature out of range", "[generator]\ntemperature = 3.0\n", "generator.temperature"},
		{"top_p out of range", "[generator]\ntop_p = 1.5\n", "generator.top_p"},
		{"too many retries", "[generator]\nmax_retries = 50\n", "generator.max_retries"},
		{"single exceeds batch", "[tips]\nsingle_candidates = 9\nbatch_candidates = 2\n", "tips.single_candidates"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), "config.toml", tc.body)
			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestLoadDisabledGeneratorSkipsGeneratorValidation(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.toml", `
[generator]
enabled = false
api_url = ""
model = ""
`)
	_, err := Load(path)
	assert.NoError(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
	_, err = Load("")
	assert.Error(t, err)
}
