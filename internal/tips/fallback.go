package tips

// Static fallback sets keyed by score threshold. Order within a set
// is part of the contract; callers always get all three.
var (
	fallbackHigh = []string{
		"Take 5 deep breaths and go for a short walk to reduce immediate stress.",
		"Try a grounding exercise: name 5 things you can see, 4 you can touch.",
		"Limit screen time for 30 minutes to lower cognitive overload.",
	}
	fallbackModerate = []string{
		"Write down one worry and schedule a 10-minute worry window later.",
		"Journal for 5 minutes to externalize anxious thoughts.",
		"Set a small achievable goal for the next hour to regain control.",
	}
	fallbackLow = []string{
		"Reflect on one recent success to reinforce positive momentum.",
		"Maintain consistent sleep by going to bed 15 minutes earlier tonight.",
		"Take time to plan tomorrow so you start with clarity.",
	}
)

// FallbackTips selects the fixed tip set for a predicted score. It
// never fails: high-anxiety at 7 and above, moderate at 4 and above,
// maintenance otherwise.
func FallbackTips(score float64) []string {
	switch {
	case score >= 7:
		return append([]string(nil), fallbackHigh...)
	case score >= 4:
		return append([]string(nil), fallbackModerate...)
	default:
		return append([]string(nil), fallbackLow...)
	}
}
