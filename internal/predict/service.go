// Package predict serves anxiety scores from one loaded model bundle.
// The bundle is read at startup and never mutated, so requests score
// concurrently without coordination.
package predict

import (
	"fmt"

	"calmcast/internal/bundle"
	"calmcast/internal/feature"
	"calmcast/internal/logger"

	"github.com/shopspring/decimal"
)

// Regressor scores one feature row. The production implementation is
// the fitted ml.Pipeline; tests substitute a double.
type Regressor interface {
	Predict(row feature.Row) (float64, error)
}

// Service holds the immutable serving context: the regressor and the
// manifest it was trained against.
type Service struct {
	regressor Regressor
	manifest  feature.Manifest
	version   string
}

// NewService wires a regressor to the manifest it expects. The
// manifest is validated once here, not per request.
func NewService(r Regressor, m feature.Manifest, version string) (*Service, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: no regressor", bundle.ErrModelUnavailable)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", bundle.ErrModelUnavailable, err)
	}
	return &Service{regressor: r, manifest: m, version: version}, nil
}

// Load reads the bundle at path and builds the service from it.
// Missing or corrupt bundles refuse to start the service.
func Load(path string) (*Service, *bundle.Bundle, error) {
	b, err := bundle.Load(path)
	if err != nil {
		return nil, nil, err
	}
	m := b.Manifest()
	svc, err := NewService(b.Pipeline, m, b.Version)
	if err != nil {
		return nil, nil, err
	}
	logger.Infof("model bundle loaded: version=%s trained_at=%s numeric=%d trigger=%v",
		b.Version, b.TrainedAt, len(m.Numeric), m.Trigger)
	return svc, b, nil
}

// Manifest returns the active feature manifest.
func (s *Service) Manifest() feature.Manifest {
	return s.manifest
}

// Version returns the loaded bundle's version tag.
func (s *Service) Version() string {
	return s.version
}

// Predict builds the feature row for a check-in and scores it. The
// raw output is clamped to [0,10] and rounded to one decimal,
// half away from zero.
func (s *Service) Predict(c feature.CheckIn) (float64, error) {
	row, err := feature.BuildRow(c, s.manifest)
	if err != nil {
		return 0, err
	}
	raw, err := s.regressor.Predict(row)
	if err != nil {
		return 0, fmt.Errorf("model inference failed: %w", err)
	}
	return ClampScore(raw), nil
}

// ClampScore maps any raw model output into the reportable score
// range: [0,10] at one decimal.
func ClampScore(raw float64) float64 {
	d := decimal.NewFromFloat(raw)
	lo := decimal.Zero
	hi := decimal.NewFromInt(10)
	if d.LessThan(lo) {
		d = lo
	}
	if d.GreaterThan(hi) {
		d = hi
	}
	out, _ := d.Round(1).Float64()
	return out
}
