package tips

import (
	"math"

	"github.com/markcheno/go-talib"
)

// TrendDirection classifies the weekly anxiety series as rising,
// easing or steady. The series is smoothed with a 3-day moving
// average first so one spiky day does not flip the label.
func TrendDirection(values []float64) string {
	if len(values) < 2 {
		return ""
	}
	series := values
	if len(values) >= 4 {
		sma := talib.Sma(values, 3)
		// Sma leaves the warm-up slots at zero; keep the smoothed tail.
		series = sma[2:]
	}
	delta := series[len(series)-1] - series[0]
	switch {
	case math.Abs(delta) < 0.5:
		return "steady"
	case delta > 0:
		return "rising"
	default:
		return "easing"
	}
}
