package train

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"calmcast/internal/bundle"
	"calmcast/internal/config"
	"calmcast/internal/feature"
	"calmcast/internal/logger"
	"calmcast/internal/ml"

	"github.com/google/uuid"
)

// BundleVersion tags every bundle this pipeline writes.
const BundleVersion = "1.3.0-notes"

// Result summarizes one completed training run.
type Result struct {
	BundlePath string
	RunID      string
	Strategy   string
	NTrain     int
	NTest      int
	Metrics    bundle.Metrics
}

// Run executes the whole pipeline: acquire data (CSV if present,
// synthetic otherwise), clean, build feature rows, split, fit,
// evaluate and persist the bundle, then reload it as a write
// integrity check. Training errors are fatal to the run.
func Run(cfg *config.Config) (*Result, error) {
	if cfg == nil {
		return nil, fmt.Errorf("training requires a config")
	}
	runID := uuid.NewString()
	logger.Infof("training run %s starting", runID)

	ds, source, err := acquire(cfg.Train)
	if err != nil {
		return nil, err
	}
	logger.Infof("dataset: %s, %d rows", source, len(ds.Rows))

	table, err := Clean(ds, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	trainSet, testSet, strategy, err := Split(table, cfg.Train.Seed)
	if err != nil {
		return nil, err
	}
	logger.Infof("split: %s, train=%d test=%d", strategy, len(trainSet), len(testSet))

	manifest := feature.TrainingManifest()
	trainRows, trainY := toRows(trainSet, manifest)
	testRows, testY := toRows(testSet, manifest)

	pipe, err := ml.FitPipeline(trainRows, trainY, manifest, ml.DefaultConfig())
	if err != nil {
		return nil, fmt.Errorf("model fit failed: %w", err)
	}

	predicted := make([]float64, len(testRows))
	for i, row := range testRows {
		p, err := pipe.Predict(row)
		if err != nil {
			return nil, fmt.Errorf("scoring holdout row %d failed: %w", i, err)
		}
		predicted[i] = p
	}
	metrics, err := Evaluate(predicted, testY)
	if err != nil {
		return nil, err
	}
	logger.Infof("holdout: mae=%.3f rmse=%.3f r2=%.3f", metrics.MAE, metrics.RMSE, metrics.R2)

	b := &bundle.Bundle{
		Pipeline:  pipe,
		Numeric:   manifest.Numeric,
		Trigger:   manifest.Trigger,
		TrainedAt: time.Now().UTC().Format(time.RFC3339),
		RunID:     runID,
		NTrain:    len(trainSet),
		NTest:     len(testSet),
		Metrics:   metrics,
		Version:   BundleVersion,
	}
	path := cfg.Model.BundlePath
	if err := bundle.Save(b, path); err != nil {
		return nil, fmt.Errorf("persisting bundle failed: %w", err)
	}
	if err := verifyWritten(path); err != nil {
		return nil, err
	}
	logger.Infof("bundle saved to %s (version %s)", path, BundleVersion)

	return &Result{
		BundlePath: path,
		RunID:      runID,
		Strategy:   strategy,
		NTrain:     len(trainSet),
		NTest:      len(testSet),
		Metrics:    metrics,
	}, nil
}

func acquire(cfg config.TrainConfig) (Dataset, string, error) {
	csvPath := strings.TrimSpace(cfg.DatasetCSV)
	if csvPath != "" {
		if _, err := os.Stat(csvPath); err == nil {
			ds, err := LoadCSV(csvPath)
			if err != nil {
				return Dataset{}, "", err
			}
			return ds, csvPath, nil
		}
	}
	return Synthesize(cfg.Rows, cfg.Seed), fmt.Sprintf("synthetic(n=%d seed=%d)", cfg.Rows, cfg.Seed), nil
}

func toRows(samples []Sample, m feature.Manifest) ([]feature.Row, []float64) {
	rows := make([]feature.Row, len(samples))
	y := make([]float64, len(samples))
	for i, s := range samples {
		rows[i] = feature.BuildRowAt(s.CheckIn, s.At, m)
		y[i] = s.Target
	}
	return rows, y
}

// verifyWritten reloads the just-written artifact and checks its keys,
// so a partial or undecodable write fails the run instead of the next
// service start.
func verifyWritten(path string) error {
	if _, err := bundle.Load(path); err != nil {
		return fmt.Errorf("reload check failed: %w", err)
	}
	keys, err := bundle.Keys(path)
	if err != nil {
		return fmt.Errorf("reload check failed: %w", err)
	}
	sort.Strings(keys)
	logger.Infof("reload check ok, keys: %s", strings.Join(keys, ", "))
	return nil
}
