package feature

import (
	"fmt"
	"strings"
)

// TriggerMode says how a manifest encodes triggers: one combined string
// column, or pre-expanded trigger_* indicator columns.
type TriggerMode int

const (
	TriggerModeNone TriggerMode = iota
	TriggerModeSingle
	TriggerModeExpanded
)

const (
	// TriggerColumn is the literal combined-string column name.
	TriggerColumn = "triggers"
	// TriggerPrefix marks pre-expanded indicator columns.
	TriggerPrefix = "trigger_"
)

// Manifest is the authoritative column contract of a trained model:
// the ordered numeric columns and the trigger column(s) every feature
// row must contain. Serving never hard-codes feature lists past it.
type Manifest struct {
	Numeric []string `json:"numeric_features"`
	Trigger []string `json:"trigger_features"`
}

// TrainingManifest is the manifest current training runs emit.
func TrainingManifest() Manifest {
	numeric := make([]string, 0, len(BaseNumericColumns)+len(NoteNumericColumns)+len(NoteKeywordColumns))
	numeric = append(numeric, BaseNumericColumns...)
	numeric = append(numeric, NoteNumericColumns...)
	numeric = append(numeric, NoteKeywordColumns...)
	return Manifest{Numeric: numeric, Trigger: []string{TriggerColumn}}
}

// LegacyManifest is the documented fallback for bundles that predate
// manifest persistence: the four base numerics plus the combined
// trigger column.
func LegacyManifest() Manifest {
	return Manifest{
		Numeric: append([]string(nil), BaseNumericColumns...),
		Trigger: []string{TriggerColumn},
	}
}

// Wants reports whether the manifest expects the named numeric column.
func (m Manifest) Wants(column string) bool {
	for _, c := range m.Numeric {
		if c == column {
			return true
		}
	}
	return false
}

// WantsTrigger reports whether the named column appears in the trigger
// feature list.
func (m Manifest) WantsTrigger(column string) bool {
	for _, c := range m.Trigger {
		if c == column {
			return true
		}
	}
	return false
}

// TriggerMode classifies the trigger columns. Single wins when the
// literal column is present; otherwise every column must carry the
// trigger_ prefix.
func (m Manifest) TriggerMode() TriggerMode {
	if m.WantsTrigger(TriggerColumn) {
		return TriggerModeSingle
	}
	for _, c := range m.Trigger {
		if strings.HasPrefix(c, TriggerPrefix) {
			return TriggerModeExpanded
		}
	}
	return TriggerModeNone
}

// Columns returns every column the manifest declares, numerics first.
func (m Manifest) Columns() []string {
	out := make([]string, 0, len(m.Numeric)+len(m.Trigger))
	out = append(out, m.Numeric...)
	out = append(out, m.Trigger...)
	return out
}

// Validate rejects manifests that mix both trigger encodings or carry
// trigger columns of neither shape. A mixed manifest would double
// encode triggers, so it is refused at load rather than guessed at.
func (m Manifest) Validate() error {
	single := false
	expanded := false
	for _, c := range m.Trigger {
		switch {
		case c == TriggerColumn:
			single = true
		case strings.HasPrefix(c, TriggerPrefix):
			expanded = true
		default:
			return fmt.Errorf("unrecognized trigger column %q", c)
		}
	}
	if single && expanded {
		return fmt.Errorf("manifest mixes the combined %q column with trigger_* columns", TriggerColumn)
	}
	seen := make(map[string]struct{}, len(m.Numeric))
	for _, c := range m.Numeric {
		if c == "" {
			return fmt.Errorf("manifest contains an empty numeric column name")
		}
		if _, dup := seen[c]; dup {
			return fmt.Errorf("manifest repeats numeric column %q", c)
		}
		seen[c] = struct{}{}
	}
	return nil
}
