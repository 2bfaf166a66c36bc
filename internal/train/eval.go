package train

import (
	"fmt"
	"math"

	"calmcast/internal/bundle"
)

// Evaluate computes MAE, RMSE and R² of predictions against targets.
func Evaluate(predicted, actual []float64) (bundle.Metrics, error) {
	if len(predicted) == 0 || len(predicted) != len(actual) {
		return bundle.Metrics{}, fmt.Errorf("evaluation requires matching non-empty slices, got %d/%d", len(predicted), len(actual))
	}
	n := float64(len(actual))

	var absSum, sqSum, mean float64
	for i := range actual {
		diff := predicted[i] - actual[i]
		absSum += math.Abs(diff)
		sqSum += diff * diff
		mean += actual[i]
	}
	mean /= n

	var totalVar float64
	for _, y := range actual {
		d := y - mean
		totalVar += d * d
	}
	r2 := 1.0
	if totalVar > 0 {
		r2 = 1.0 - sqSum/totalVar
	}
	return bundle.Metrics{
		MAE:  absSum / n,
		RMSE: math.Sqrt(sqSum / n),
		R2:   r2,
	}, nil
}
