package feature

import (
	"encoding/json"
	"strings"

	"calmcast/internal/pkg/convert"
)

// CheckIn is one user-submitted wellbeing snapshot. Mood arrives on the
// valence scale (higher is better); the row builder inverts it before
// the model sees it.
type CheckIn struct {
	Sleep        float64
	Energy       float64
	Mood         float64
	Anxiety7dAvg float64
	Triggers     Triggers
	Timestamp    string
	Notes        string
}

// UnmarshalJSON is deliberately lenient: numeric fields accept numbers
// or numeric strings, triggers accept a string or a string array.
func (c *CheckIn) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	c.Sleep = rawFloat(raw["sleep"])
	c.Energy = rawFloat(raw["energy"])
	c.Mood = rawFloat(raw["mood"])
	c.Anxiety7dAvg = rawFloat(raw["anxiety_7d_avg"])
	c.Timestamp = rawString(raw["timestamp"])
	c.Notes = rawString(raw["notes"])
	if b, ok := raw["triggers"]; ok {
		if err := c.Triggers.UnmarshalJSON(b); err != nil {
			return err
		}
	}
	return nil
}

func rawFloat(b json.RawMessage) float64 {
	if len(b) == 0 {
		return 0
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return 0
	}
	return convert.ToFloat64(v)
}

func rawString(b json.RawMessage) string {
	if len(b) == 0 {
		return ""
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return ""
	}
	return convert.ToString(v)
}

// Triggers preserves the shape the client sent. The single-column
// encoding passes a string through as-is but joins a list with commas,
// so the string/list distinction matters downstream.
type Triggers struct {
	items  []string
	raw    string
	isList bool
}

// TriggerList builds a list-form Triggers value.
func TriggerList(items ...string) Triggers {
	return Triggers{items: append([]string(nil), items...), isList: true}
}

// TriggerString builds a string-form Triggers value.
func TriggerString(s string) Triggers {
	return Triggers{raw: s}
}

func (t *Triggers) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*t = Triggers{items: list, isList: true}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = Triggers{raw: s}
		return nil
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*t = Triggers{raw: convert.ToString(v)}
	return nil
}

func (t Triggers) MarshalJSON() ([]byte, error) {
	if t.isList {
		return json.Marshal(t.items)
	}
	return json.Marshal(t.raw)
}

// Joined returns the single-column encoding: list items joined with
// commas, or the raw string untouched.
func (t Triggers) Joined() string {
	if t.isList {
		return strings.Join(t.items, ",")
	}
	return t.raw
}

// Normalized returns lowercased, trimmed trigger names for membership
// tests against trigger_* columns. String form is split on commas with
// empties dropped.
func (t Triggers) Normalized() []string {
	if t.isList {
		out := make([]string, 0, len(t.items))
		for _, item := range t.items {
			out = append(out, strings.ToLower(strings.TrimSpace(item)))
		}
		return out
	}
	parts := strings.Split(t.raw, ",")
	out := make([]string, 0, len(parts))
	for _, item := range parts {
		item = strings.ToLower(strings.TrimSpace(item))
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
