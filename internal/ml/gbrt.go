package ml

import "fmt"

// Config holds the boosting hyperparameters.
type Config struct {
	Trees        int     `json:"trees"`
	LearningRate float64 `json:"learning_rate"`
	MaxDepth     int     `json:"max_depth"`
	MinLeaf      int     `json:"min_leaf"`
}

// DefaultConfig matches the conventional gradient-boosting defaults:
// 100 shallow trees at a 0.1 learning rate.
func DefaultConfig() Config {
	return Config{Trees: 100, LearningRate: 0.1, MaxDepth: 3, MinLeaf: 1}
}

func (c Config) normalized() Config {
	if c.Trees <= 0 {
		c.Trees = 100
	}
	if c.LearningRate <= 0 {
		c.LearningRate = 0.1
	}
	if c.MaxDepth <= 0 {
		c.MaxDepth = 3
	}
	if c.MinLeaf <= 0 {
		c.MinLeaf = 1
	}
	return c
}

// Ensemble is a fitted boosted-tree model: a constant base prediction
// plus shrunken tree corrections.
type Ensemble struct {
	Base         float64 `json:"base"`
	LearningRate float64 `json:"learning_rate"`
	Trees        []*Tree `json:"trees"`
}

// Fit trains an ensemble on x/y with squared-error boosting: start at
// the target mean, then repeatedly fit a tree to the residuals and add
// it with shrinkage.
func Fit(x [][]float64, y []float64, cfg Config) (*Ensemble, error) {
	if len(x) == 0 || len(x) != len(y) {
		return nil, fmt.Errorf("fit requires matching non-empty x and y, got %d/%d", len(x), len(y))
	}
	width := len(x[0])
	for i, row := range x {
		if len(row) != width {
			return nil, fmt.Errorf("fit row %d has %d features, want %d", i, len(row), width)
		}
	}
	cfg = cfg.normalized()

	var base float64
	for _, v := range y {
		base += v
	}
	base /= float64(len(y))

	ens := &Ensemble{Base: base, LearningRate: cfg.LearningRate}
	current := make([]float64, len(y))
	for i := range current {
		current[i] = base
	}
	residual := make([]float64, len(y))
	for t := 0; t < cfg.Trees; t++ {
		for i := range y {
			residual[i] = y[i] - current[i]
		}
		tree := fitTree(x, residual, cfg.MaxDepth, cfg.MinLeaf)
		ens.Trees = append(ens.Trees, tree)
		for i, row := range x {
			current[i] += cfg.LearningRate * tree.Predict(row)
		}
	}
	return ens, nil
}

// Predict scores one feature vector.
func (e *Ensemble) Predict(x []float64) float64 {
	out := e.Base
	for _, t := range e.Trees {
		out += e.LearningRate * t.Predict(x)
	}
	return out
}

// Validate checks a deserialized ensemble is usable.
func (e *Ensemble) Validate() error {
	if e == nil {
		return fmt.Errorf("ensemble is nil")
	}
	if len(e.Trees) == 0 {
		return fmt.Errorf("ensemble has no trees")
	}
	if e.LearningRate <= 0 {
		return fmt.Errorf("ensemble learning rate must be positive")
	}
	for i, t := range e.Trees {
		if t == nil {
			return fmt.Errorf("ensemble tree %d is nil", i)
		}
		if err := t.validate(); err != nil {
			return fmt.Errorf("ensemble tree %d: %w", i, err)
		}
	}
	return nil
}
