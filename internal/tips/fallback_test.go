package tips

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFallbackTipsThresholds(t *testing.T) {
	high := []string{
		"Take 5 deep breaths and go for a short walk to reduce immediate stress.",
		"Try a grounding exercise: name 5 things you can see, 4 you can touch.",
		"Limit screen time for 30 minutes to lower cognitive overload.",
	}
	moderate := []string{
		"Write down one worry and schedule a 10-minute worry window later.",
		"Journal for 5 minutes to externalize anxious thoughts.",
		"Set a small achievable goal for the next hour to regain control.",
	}
	low := []string{
		"Reflect on one recent success to reinforce positive momentum.",
		"Maintain consistent sleep by going to bed 15 minutes earlier tonight.",
		"Take time to plan tomorrow so you start with clarity.",
	}

	cases := []struct {
		score float64
		want  []string
	}{
		{10, high},
		{8, high},
		{7, high},
		{6.9, moderate},
		{4, moderate},
		{3.9, low},
		{0, low},
	}
	for _, tc := range cases {
		assert.Equalf(t, tc.want, FallbackTips(tc.score), "score %.1f", tc.score)
	}
}

func TestFallbackTipsCopies(t *testing.T) {
	first := FallbackTips(8)
	first[0] = "mutated"
	assert.NotEqual(t, first[0], FallbackTips(8)[0])
}
