package config

import (
	"fmt"
	"strings"
)

func validate(c *Config) error {
	if err := c.App.validate(); err != nil {
		return err
	}
	if err := c.Model.validate(); err != nil {
		return err
	}
	if err := c.Train.validate(); err != nil {
		return err
	}
	if err := c.Generator.validate(); err != nil {
		return err
	}
	if err := c.Tips.validate(); err != nil {
		return err
	}
	return nil
}

func (a *AppConfig) validate() error {
	if strings.TrimSpace(a.HTTPAddr) == "" {
		return fmt.Errorf("app.http_addr cannot be empty")
	}
	switch strings.ToLower(strings.TrimSpace(a.LogLevel)) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("app.log_level must be one of debug/info/warn/error, got %q", a.LogLevel)
	}
	return nil
}

func (m *ModelConfig) validate() error {
	if strings.TrimSpace(m.BundlePath) == "" {
		return fmt.Errorf("model.bundle_path cannot be empty")
	}
	return nil
}

func (t *TrainConfig) validate() error {
	if t.Rows < 10 {
		return fmt.Errorf("train.rows must be >= 10, got %d", t.Rows)
	}
	return nil
}

func (g *GeneratorConfig) validate() error {
	if !g.Enabled {
		return nil
	}
	if strings.TrimSpace(g.APIURL) == "" {
		return fmt.Errorf("generator.api_url cannot be empty while generator is enabled")
	}
	if strings.TrimSpace(g.Model) == "" {
		return fmt.Errorf("generator.model cannot be empty while generator is enabled")
	}
	if g.Temperature <= 0 || g.Temperature > 2 {
		return fmt.Errorf("generator.temperature must be in (0, 2]")
	}
	if g.TopP <= 0 || g.TopP > 1 {
		return fmt.Errorf("generator.top_p must be in (0, 1]")
	}
	if g.MaxRetries > 10 {
		return fmt.Errorf("generator.max_retries must be <= 10")
	}
	return nil
}

func (t *TipsConfig) validate() error {
	if t.SingleCandidates > t.BatchCandidates {
		return fmt.Errorf("tips.single_candidates cannot exceed tips.batch_candidates")
	}
	return nil
}
