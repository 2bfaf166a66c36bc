package feature

import "fmt"

// Row is one model-ready feature row: float values keyed by column,
// plus at most one string value for the combined trigger column.
type Row struct {
	numeric  map[string]float64
	triggers string
	hasTrig  bool
}

// NewRow returns an empty row.
func NewRow() Row {
	return Row{numeric: make(map[string]float64)}
}

// SetNumeric stores a float column value.
func (r *Row) SetNumeric(column string, v float64) {
	if r.numeric == nil {
		r.numeric = make(map[string]float64)
	}
	r.numeric[column] = v
}

// SetTriggers stores the combined trigger string column.
func (r *Row) SetTriggers(s string) {
	r.triggers = s
	r.hasTrig = true
}

// Numeric returns a float column value and whether it is present.
func (r Row) Numeric(column string) (float64, bool) {
	v, ok := r.numeric[column]
	return v, ok
}

// Triggers returns the combined trigger string and whether it is set.
func (r Row) Triggers() (string, bool) {
	return r.triggers, r.hasTrig
}

// Has reports whether the named column is populated, covering both the
// float columns and the combined trigger column.
func (r Row) Has(column string) bool {
	if column == TriggerColumn {
		return r.hasTrig
	}
	_, ok := r.numeric[column]
	return ok
}

// Len returns the number of populated columns.
func (r Row) Len() int {
	n := len(r.numeric)
	if r.hasTrig {
		n++
	}
	return n
}

// Complete verifies the row covers every column the manifest declares.
// Extra columns are allowed; the model simply never reads them.
func (r Row) Complete(m Manifest) error {
	for _, col := range m.Columns() {
		if !r.Has(col) {
			return fmt.Errorf("feature row is missing column %q", col)
		}
	}
	return nil
}
