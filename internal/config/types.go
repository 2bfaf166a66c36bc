package config

import "strings"

// Config is the top-level configuration for both the service and the
// trainer. All sections are optional in the file; defaults cover a
// local single-machine setup.
type Config struct {
	App       AppConfig       `toml:"app"`
	Model     ModelConfig     `toml:"model"`
	Train     TrainConfig     `toml:"train"`
	Generator GeneratorConfig `toml:"generator"`
	Tips      TipsConfig      `toml:"tips"`
}

type AppConfig struct {
	Env      string `toml:"env"`
	LogLevel string `toml:"log_level"`
	HTTPAddr string `toml:"http_addr"`
	LogPath  string `toml:"log_path"`
	GenLog   string `toml:"gen_log_path"`
	GenDump  bool   `toml:"gen_dump_payload"`
}

// ModelConfig points at the persisted model bundle artifact.
type ModelConfig struct {
	BundlePath string `toml:"bundle_path"`
}

// TrainConfig drives the offline training run. The CSV is optional;
// when it is absent the trainer synthesizes a labeled dataset.
type TrainConfig struct {
	DatasetCSV string `toml:"dataset_csv"`
	Rows       int    `toml:"rows"`
	Seed       int64  `toml:"seed"`
}

// GeneratorConfig describes the OpenAI-compatible completion backend
// used for tip generation.
type GeneratorConfig struct {
	Enabled           bool              `toml:"enabled"`
	APIURL            string            `toml:"api_url"`
	APIKey            string            `toml:"api_key"`
	Model             string            `toml:"model"`
	Headers           map[string]string `toml:"headers"`
	TimeoutSeconds    int               `toml:"timeout_seconds"`
	MaxRetries        int               `toml:"max_retries"`
	RequestsPerSecond float64           `toml:"requests_per_second"`
	MaxPerCall        int               `toml:"max_per_call"`
	Temperature       float64           `toml:"temperature"`
	TopP              float64           `toml:"top_p"`
	RepetitionPenalty float64           `toml:"repetition_penalty"`
	MaxTokens         int               `toml:"max_tokens"`
}

// TipsConfig controls the tip endpoints. APIKey is the shared secret
// clients must present in x-api-key; it has no default on purpose.
type TipsConfig struct {
	APIKey           string `toml:"api_key"`
	BankPath         string `toml:"bank_path"`
	SingleCandidates int    `toml:"single_candidates"`
	BatchCandidates  int    `toml:"batch_candidates"`
}

// keySet tracks which config paths were explicitly present in the
// file, so zero values set by the operator survive defaulting.
type keySet map[string]struct{}

func (k keySet) mark(path string) {
	path = strings.ToLower(strings.TrimSpace(path))
	if path == "" {
		return
	}
	k[path] = struct{}{}
}

func (k keySet) isSet(path string) bool {
	if len(k) == 0 {
		return false
	}
	path = strings.ToLower(strings.TrimSpace(path))
	if path == "" {
		return false
	}
	_, ok := k[path]
	return ok
}

// fieldDefault describes the defaulting rule for a single field.
type fieldDefault struct {
	key   string
	need  func() bool
	apply func()
}
