package train

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluatePerfect(t *testing.T) {
	y := []float64{1, 2, 3, 4}
	m, err := Evaluate(y, y)
	require.NoError(t, err)
	assert.Zero(t, m.MAE)
	assert.Zero(t, m.RMSE)
	assert.Equal(t, 1.0, m.R2)
}

func TestEvaluateKnownValues(t *testing.T) {
	actual := []float64{0, 2, 4, 6}
	predicted := []float64{1, 1, 5, 5}
	m, err := Evaluate(predicted, actual)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, m.MAE, 1e-9)
	assert.InDelta(t, 1.0, m.RMSE, 1e-9)
	// SSE=4, total variance=20 → R²=0.8.
	assert.InDelta(t, 0.8, m.R2, 1e-9)
}

func TestEvaluateRejectsBadShapes(t *testing.T) {
	_, err := Evaluate(nil, nil)
	assert.Error(t, err)
	_, err = Evaluate([]float64{1}, []float64{1, 2})
	assert.Error(t, err)
}
