// Package feature holds the feature-construction contract shared by the
// training pipeline and the prediction service. Training and serving
// must produce identical values for identical inputs, so everything in
// this package is pure and deterministic.
package feature

import "strings"

// Column groups referenced by manifests. Order is load-bearing: the
// model consumes numeric features in manifest order.
var (
	BaseNumericColumns = []string{"sleep", "energy", "mood", "anxiety_7d_avg"}
	NoteNumericColumns = []string{"notes_len", "notes_words", "notes_sentiment"}
	NoteKeywordColumns = []string{"kw_work", "kw_school", "kw_exam", "kw_sleep", "kw_social", "kw_finance", "kw_health"}
)

var positiveLexicon = map[string]struct{}{
	"calm": {}, "better": {}, "rested": {}, "relaxed": {},
	"improved": {}, "ok": {}, "good": {}, "great": {},
}

var negativeLexicon = map[string]struct{}{
	"anxious": {}, "panic": {}, "stressed": {}, "overwhelmed": {},
	"tired": {}, "exhausted": {}, "worried": {}, "nervous": {}, "insomnia": {},
}

var keywordGroups = []struct {
	column string
	words  []string
}{
	{"kw_work", []string{"work"}},
	{"kw_school", []string{"school", "class"}},
	{"kw_exam", []string{"exam", "test", "deadline"}},
	{"kw_sleep", []string{"sleep", "insomnia"}},
	{"kw_social", []string{"social", "party", "crowd"}},
	{"kw_finance", []string{"money", "rent", "bills"}},
	{"kw_health", []string{"health", "sick", "doctor"}},
}

// NoteSentiment scores text in [-1, 1] from fixed lexicons. Tokens are
// whitespace-split, stripped of surrounding .,!? and lowercased, then
// reduced to the unique set so repeats do not pile up.
func NoteSentiment(text string) float64 {
	if text == "" {
		return 0.0
	}
	unique := make(map[string]struct{})
	for _, w := range strings.Fields(text) {
		unique[strings.ToLower(strings.Trim(w, ".,!?"))] = struct{}{}
	}
	score := 0
	for w := range unique {
		if _, ok := positiveLexicon[w]; ok {
			score++
		}
		if _, ok := negativeLexicon[w]; ok {
			score--
		}
	}
	s := float64(score) / 5.0
	if s > 1.0 {
		return 1.0
	}
	if s < -1.0 {
		return -1.0
	}
	return s
}

// NotesFeaturize maps a free-text note to its numeric feature columns:
// length, word count, lexicon sentiment and the keyword flags. Missing
// notes are treated as empty.
func NotesFeaturize(text string) map[string]float64 {
	t := strings.TrimSpace(text)
	feats := map[string]float64{
		"notes_len":       float64(len([]rune(t))),
		"notes_words":     float64(len(strings.Fields(t))),
		"notes_sentiment": NoteSentiment(t),
	}
	low := strings.ToLower(t)
	for _, group := range keywordGroups {
		hit := 0.0
		for _, word := range group.words {
			if strings.Contains(low, word) {
				hit = 1.0
				break
			}
		}
		feats[group.column] = hit
	}
	return feats
}
