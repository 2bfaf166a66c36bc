package config

import "strings"

const (
	defaultAppEnv      = "dev"
	defaultAppLogLevel = "info"
	defaultAppHTTPAddr = ":8000"
	defaultAppLogPath  = "logs/calmcast.log"
	defaultAppGenLog   = "logs/calmcast-gen.log"

	defaultBundlePath = "anxiety_model.json"
	defaultDatasetCSV = "data/checkins.csv"
	defaultTrainRows  = 1000
	defaultTrainSeed  = 42

	defaultGenAPIURL         = "http://127.0.0.1:8010/v1"
	defaultGenModel          = "google/flan-t5-small"
	defaultGenTimeout        = 60
	defaultGenMaxPerCall     = 10
	defaultGenTemperature    = 0.7
	defaultGenTopP           = 0.9
	defaultGenRepPenalty     = 1.2
	defaultGenMaxTokens      = 120
	defaultTipsSingle        = 3
	defaultTipsBatch         = 50
)

func (c *Config) applyDefaults(keys keySet) {
	c.App.applyDefaults(keys)
	c.Model.applyDefaults(keys)
	c.Train.applyDefaults(keys)
	c.Generator.applyDefaults(keys)
	c.Tips.applyDefaults(keys)
}

func (a *AppConfig) applyDefaults(keys keySet) {
	if a == nil {
		return
	}
	applyFieldDefaults(keys,
		stringFieldDefault("app.env", &a.Env, defaultAppEnv),
		stringFieldDefault("app.log_level", &a.LogLevel, defaultAppLogLevel),
		stringFieldDefault("app.http_addr", &a.HTTPAddr, defaultAppHTTPAddr),
		stringFieldDefault("app.log_path", &a.LogPath, defaultAppLogPath),
		stringFieldDefault("app.gen_log_path", &a.GenLog, defaultAppGenLog),
	)
}

func (m *ModelConfig) applyDefaults(keys keySet) {
	if m == nil {
		return
	}
	applyFieldDefaults(keys,
		stringFieldDefault("model.bundle_path", &m.BundlePath, defaultBundlePath),
	)
}

func (t *TrainConfig) applyDefaults(keys keySet) {
	if t == nil {
		return
	}
	applyFieldDefaults(keys,
		stringFieldDefault("train.dataset_csv", &t.DatasetCSV, defaultDatasetCSV),
		fieldDefault{
			key:   "train.rows",
			need:  func() bool { return t.Rows <= 0 },
			apply: func() { t.Rows = defaultTrainRows },
		},
		fieldDefault{
			key:   "train.seed",
			need:  func() bool { return t.Seed == 0 },
			apply: func() { t.Seed = defaultTrainSeed },
		},
	)
}

func (g *GeneratorConfig) applyDefaults(keys keySet) {
	if g == nil {
		return
	}
	applyFieldDefaults(keys,
		boolFieldDefault("generator.enabled", &g.Enabled, true),
		stringFieldDefault("generator.api_url", &g.APIURL, defaultGenAPIURL),
		stringFieldDefault("generator.model", &g.Model, defaultGenModel),
		fieldDefault{
			key:   "generator.timeout_seconds",
			need:  func() bool { return g.TimeoutSeconds <= 0 },
			apply: func() { g.TimeoutSeconds = defaultGenTimeout },
		},
		fieldDefault{
			key:   "generator.max_per_call",
			need:  func() bool { return g.MaxPerCall <= 0 },
			apply: func() { g.MaxPerCall = defaultGenMaxPerCall },
		},
		fieldDefault{
			key:   "generator.temperature",
			need:  func() bool { return g.Temperature <= 0 },
			apply: func() { g.Temperature = defaultGenTemperature },
		},
		fieldDefault{
			key:   "generator.top_p",
			need:  func() bool { return g.TopP <= 0 },
			apply: func() { g.TopP = defaultGenTopP },
		},
		fieldDefault{
			key:   "generator.repetition_penalty",
			need:  func() bool { return g.RepetitionPenalty <= 0 },
			apply: func() { g.RepetitionPenalty = defaultGenRepPenalty },
		},
		fieldDefault{
			key:   "generator.max_tokens",
			need:  func() bool { return g.MaxTokens <= 0 },
			apply: func() { g.MaxTokens = defaultGenMaxTokens },
		},
	)
	if g.MaxRetries < 0 {
		g.MaxRetries = 0
	}
	if g.RequestsPerSecond < 0 {
		g.RequestsPerSecond = 0
	}
}

func (t *TipsConfig) applyDefaults(keys keySet) {
	if t == nil {
		return
	}
	applyFieldDefaults(keys,
		fieldDefault{
			key:   "tips.single_candidates",
			need:  func() bool { return t.SingleCandidates <= 0 },
			apply: func() { t.SingleCandidates = defaultTipsSingle },
		},
		fieldDefault{
			key:   "tips.batch_candidates",
			need:  func() bool { return t.BatchCandidates <= 0 },
			apply: func() { t.BatchCandidates = defaultTipsBatch },
		},
	)
}

func applyFieldDefaults(keys keySet, defs ...fieldDefault) {
	for _, def := range defs {
		if def.apply == nil {
			continue
		}
		if def.key != "" && keys.isSet(def.key) {
			continue
		}
		if def.need != nil && !def.need() {
			continue
		}
		def.apply()
	}
}

func stringFieldDefault(key string, target *string, def string) fieldDefault {
	return fieldDefault{
		key: key,
		need: func() bool {
			return target != nil && strings.TrimSpace(*target) == ""
		},
		apply: func() {
			if target != nil {
				*target = def
			}
		},
	}
}

func boolFieldDefault(key string, target *bool, def bool) fieldDefault {
	return fieldDefault{
		key:  key,
		need: func() bool { return target != nil },
		apply: func() {
			if target != nil {
				*target = def
			}
		},
	}
}
