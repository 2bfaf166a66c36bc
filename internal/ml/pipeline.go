package ml

import (
	"fmt"

	"calmcast/internal/feature"
)

// Pipeline is the fitted model artifact: numeric passthrough columns
// in a fixed order, the trigger encoder, and the boosted ensemble. It
// is what the bundle persists and what serving scores rows with.
type Pipeline struct {
	Numeric []string  `json:"numeric"`
	Encoder *OneHot   `json:"encoder,omitempty"`
	Model   *Ensemble `json:"model"`
}

// FitPipeline vectorizes the training rows under the manifest's column
// order, fits the trigger vocabulary and the ensemble.
func FitPipeline(rows []feature.Row, y []float64, m feature.Manifest, cfg Config) (*Pipeline, error) {
	if len(rows) == 0 || len(rows) != len(y) {
		return nil, fmt.Errorf("pipeline fit requires matching non-empty rows and targets, got %d/%d", len(rows), len(y))
	}
	p := &Pipeline{Numeric: append([]string(nil), m.Numeric...)}
	switch m.TriggerMode() {
	case feature.TriggerModeSingle:
		values := make([]string, len(rows))
		for i, row := range rows {
			values[i], _ = row.Triggers()
		}
		p.Encoder = FitOneHot(feature.TriggerColumn, values)
	case feature.TriggerModeExpanded:
		// Pre-expanded indicator columns ride along as numerics.
		p.Numeric = append(p.Numeric, m.Trigger...)
	}
	x := make([][]float64, len(rows))
	for i, row := range rows {
		vec, err := p.vectorize(row)
		if err != nil {
			return nil, fmt.Errorf("training row %d: %w", i, err)
		}
		x[i] = vec
	}
	model, err := Fit(x, y, cfg)
	if err != nil {
		return nil, err
	}
	p.Model = model
	return p, nil
}

// Predict scores one feature row.
func (p *Pipeline) Predict(row feature.Row) (float64, error) {
	vec, err := p.vectorize(row)
	if err != nil {
		return 0, err
	}
	return p.Model.Predict(vec), nil
}

func (p *Pipeline) vectorize(row feature.Row) ([]float64, error) {
	vec := make([]float64, 0, len(p.Numeric)+p.Encoder.Width())
	for _, col := range p.Numeric {
		v, ok := row.Numeric(col)
		if !ok {
			return nil, fmt.Errorf("row is missing numeric column %q", col)
		}
		vec = append(vec, v)
	}
	if p.Encoder != nil {
		value, ok := row.Triggers()
		if !ok {
			return nil, fmt.Errorf("row is missing the %q column", p.Encoder.Column)
		}
		vec = p.Encoder.Encode(vec, value)
	}
	return vec, nil
}

// Validate checks a deserialized pipeline is complete enough to score
// rows; a bundle whose pipeline fails here is unusable.
func (p *Pipeline) Validate() error {
	if p == nil {
		return fmt.Errorf("pipeline is nil")
	}
	if len(p.Numeric) == 0 {
		return fmt.Errorf("pipeline declares no numeric columns")
	}
	if p.Model == nil {
		return fmt.Errorf("pipeline is missing its model")
	}
	return p.Model.Validate()
}
