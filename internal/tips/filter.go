package tips

import (
	"regexp"
	"strings"
)

// MaxTips caps every tip response.
const MaxTips = 3

var (
	leadingNumbering = regexp.MustCompile(`^[0-9]+[.)]\s*`)
	// trendEcho matches lines that are just a day:score trend dump,
	// optionally prefixed with "tips:".
	trendEcho = regexp.MustCompile(`^(tips?:\s*)?((mon|tue|wed|thu|fri|sat|sun):\d[\s,]*)+$`)
)

// actionVerbs qualify a "tips:"-prefixed line as an actual tip rather
// than a template echo.
var actionVerbs = []string{
	"try", "take", "do", "journal", "walk", "breathe", "reflect", "plan",
	"schedule", "pause", "break", "focus", "stretch", "meditate",
}

// SelectBestTips filters raw generator candidates into at most three
// usable tip lines: strip numbering, drop trend and input echoes,
// drop verb-less "tips:" lines and anything under five words, then
// deduplicate case-insensitively. First found wins, in candidate
// order.
func SelectBestTips(candidates []string) []string {
	var tips []string
	seen := make(map[string]struct{})
	for _, candidate := range candidates {
		for _, line := range strings.Split(strings.TrimSpace(candidate), "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			line = leadingNumbering.ReplaceAllString(line, "")
			low := strings.ToLower(line)
			if trendEcho.MatchString(low) {
				continue
			}
			if strings.Contains(low, "anxiety:") && strings.Contains(low, "sleep:") && strings.Contains(low, "mood:") {
				continue
			}
			if strings.HasPrefix(low, "tips:") && !containsActionVerb(low) {
				continue
			}
			if len(strings.Fields(line)) < 5 {
				continue
			}
			if _, dup := seen[low]; dup {
				continue
			}
			seen[low] = struct{}{}
			tips = append(tips, line)
			if len(tips) >= MaxTips {
				return tips
			}
		}
	}
	return tips
}

func containsActionVerb(low string) bool {
	for _, verb := range actionVerbs {
		if strings.Contains(low, verb) {
			return true
		}
	}
	return false
}
