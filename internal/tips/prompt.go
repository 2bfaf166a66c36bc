package tips

import (
	"strconv"
	"strings"
)

// TipRequest carries the latest check-in summary and the weekly
// anxiety trend a tip should respond to.
type TipRequest struct {
	PredictedAnxiety float64            `json:"predicted_anxiety"`
	Sleep            float64            `json:"sleep"`
	Energy           float64            `json:"energy"`
	Mood             float64            `json:"mood"`
	Triggers         []string           `json:"triggers"`
	WeeklyTrend      map[string]float64 `json:"weeklyTrend"`
}

// weekdayOrder fixes the trend rendering order so the prompt is
// deterministic regardless of map iteration.
var weekdayOrder = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

const promptInstruction = "You are a mental health coach. Based on the latest check-in and weekly anxiety trend, " +
	"provide three distinct, concise, actionable tips (1 sentence each) tailored to their current state. " +
	"Avoid generic or self-referential statements. Format as a numbered list."

const promptExamples = `
Example 1:
Anxiety: 2/10; Sleep: 8h; Energy: 7/10; Mood: 6/10; Triggers: Social; Trend: Mon:3, Tue:4, Wed:3, Thu:2, Fri:3, Sat:2, Sun:3.
Tip: Keep up the routine and schedule a short mindfulness break on days anxiety tends to rise.

Example 2:
Anxiety: 8/10; Sleep: 4h; Energy: 3/10; Mood: 2/10; Triggers: Work, Deadline pressure; Trend: Mon:7, Tue:8, Wed:7, Thu:6, Fri:7, Sat:5, Sun:4.
Tip: Break your work into 25-minute focused sprints with 5-minute breaks to reduce overwhelm.

Example 3:
Anxiety: 5/10; Sleep: 6h; Energy: 5/10; Mood: 4/10; Triggers: Uncertainty; Trend: Mon:5, Tue:5, Wed:6, Thu:5, Fri:4, Sat:4, Sun:5.
Tip: Write down the top three uncertainties and identify one small action to address each.
`

// BuildPrompt renders the fixed few-shot template around the current
// request, ending with a forced numbered-list opener so the generator
// leans toward list output.
func BuildPrompt(req TipRequest) string {
	var b strings.Builder
	b.WriteString(promptInstruction)
	b.WriteString("\n")
	b.WriteString(promptExamples)
	b.WriteString("\nLatest → ")
	b.WriteString("Anxiety: " + formatScore(req.PredictedAnxiety) + "/10; ")
	b.WriteString("Sleep: " + formatScore(req.Sleep) + "h; ")
	b.WriteString("Energy: " + formatScore(req.Energy) + "/10; ")
	b.WriteString("Mood: " + formatScore(req.Mood) + "/10; ")
	b.WriteString("Triggers: " + strings.Join(req.Triggers, ", ") + "; ")
	b.WriteString("Trend: " + renderTrend(req.WeeklyTrend) + ".")
	if direction := TrendDirection(trendValues(req.WeeklyTrend)); direction != "" {
		b.WriteString("\nTrend direction: " + direction + ".")
	}
	b.WriteString("\nTips:\n1.")
	return b.String()
}

// renderTrend emits "Mon:5, Tue:4, ..." for the days present, in
// fixed weekday order.
func renderTrend(trend map[string]float64) string {
	parts := make([]string, 0, len(trend))
	for _, day := range weekdayOrder {
		if score, ok := trend[day]; ok {
			parts = append(parts, day+":"+formatScore(score))
		}
	}
	return strings.Join(parts, ", ")
}

func trendValues(trend map[string]float64) []float64 {
	values := make([]float64, 0, len(trend))
	for _, day := range weekdayOrder {
		if score, ok := trend[day]; ok {
			values = append(values, score)
		}
	}
	return values
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
