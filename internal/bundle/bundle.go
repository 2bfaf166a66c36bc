// Package bundle persists the trained model artifact: the fitted
// pipeline, the feature manifest and the training metadata, written as
// one immutable JSON file. Serving trusts the loaded manifest over any
// hard-coded column list.
package bundle

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"calmcast/internal/feature"
	"calmcast/internal/ml"

	"github.com/tidwall/gjson"
)

// ErrModelUnavailable marks a missing or unusable bundle. The service
// refuses to start on it.
var ErrModelUnavailable = errors.New("model bundle unavailable")

// Metrics holds the holdout evaluation of one training run.
type Metrics struct {
	MAE  float64 `json:"mae"`
	RMSE float64 `json:"rmse"`
	R2   float64 `json:"r2"`
}

// Bundle is the persisted training artifact. Training always writes a
// whole new bundle; nothing updates one in place.
type Bundle struct {
	Pipeline  *ml.Pipeline `json:"pipeline"`
	Numeric   []string     `json:"numeric_features"`
	Trigger   []string     `json:"trigger_features"`
	TrainedAt string       `json:"trained_at"`
	RunID     string       `json:"run_id,omitempty"`
	NTrain    int          `json:"n_train"`
	NTest     int          `json:"n_test"`
	Metrics   Metrics      `json:"metrics"`
	Version   string       `json:"version"`
}

// Manifest derives the active feature manifest from the bundle,
// falling back to the documented legacy defaults when a bundle
// predates manifest persistence.
func (b *Bundle) Manifest() feature.Manifest {
	m := feature.Manifest{
		Numeric: append([]string(nil), b.Numeric...),
		Trigger: append([]string(nil), b.Trigger...),
	}
	if len(m.Numeric) == 0 {
		m.Numeric = feature.LegacyManifest().Numeric
	}
	if len(m.Trigger) == 0 {
		m.Trigger = []string{feature.TriggerColumn}
	}
	return m
}

// Validate checks the bundle can serve predictions: a scoreable
// pipeline and a single-mode manifest.
func (b *Bundle) Validate() error {
	if b == nil {
		return fmt.Errorf("%w: bundle is nil", ErrModelUnavailable)
	}
	if b.Pipeline == nil {
		return fmt.Errorf("%w: bundle is missing its pipeline", ErrModelUnavailable)
	}
	if err := b.Pipeline.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}
	if err := b.Manifest().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}
	return nil
}

// Keys lists the top-level keys present in the bundle file, used by
// the trainer's reload check.
func Keys(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var keys []string
	gjson.ParseBytes(raw).ForEach(func(k, _ gjson.Result) bool {
		keys = append(keys, k.String())
		return true
	})
	return keys, nil
}

// Save writes the bundle atomically: full marshal to a temp file in
// the target directory, then rename over the destination.
func Save(b *Bundle, path string) error {
	if err := b.Validate(); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding bundle failed: %w", err)
	}
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating bundle directory failed: %w", err)
		}
	}
	tmp, err := os.CreateTemp(dir, ".bundle-*.json")
	if err != nil {
		return fmt.Errorf("creating temp bundle failed: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing bundle failed: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("writing bundle failed: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing bundle failed: %w", err)
	}
	return nil
}

// Load reads, schema-checks and decodes a bundle file. Legacy bundles
// that used the `numeric` / `trigger_cols` key names are accepted; a
// missing file or an undecodable one is ErrModelUnavailable.
func Load(path string) (*Bundle, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}
	if err := validateSchema(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}
	var b Bundle
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, fmt.Errorf("%w: decoding %s failed: %v", ErrModelUnavailable, filepath.Base(path), err)
	}
	applyLegacyKeys(&b, raw)
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &b, nil
}

// applyLegacyKeys probes the raw JSON for the pre-1.3 key names and
// fills the manifest fields from them when the current names are
// absent.
func applyLegacyKeys(b *Bundle, raw []byte) {
	if len(b.Numeric) == 0 {
		if legacy := gjson.GetBytes(raw, "numeric"); legacy.IsArray() {
			for _, item := range legacy.Array() {
				b.Numeric = append(b.Numeric, item.String())
			}
		}
	}
	if len(b.Trigger) == 0 {
		if legacy := gjson.GetBytes(raw, "trigger_cols"); legacy.IsArray() {
			for _, item := range legacy.Array() {
				b.Trigger = append(b.Trigger, item.String())
			}
		}
	}
}
