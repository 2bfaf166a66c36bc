package ml

import "sort"

// OneHot encodes one categorical string column over the vocabulary
// observed at training time. Categories are kept sorted; values not in
// the vocabulary encode to all zeros rather than failing, so unseen
// trigger combinations at inference degrade gracefully.
type OneHot struct {
	Column     string   `json:"column"`
	Categories []string `json:"categories"`
}

// FitOneHot collects the sorted distinct values of a training column.
func FitOneHot(column string, values []string) *OneHot {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		seen[v] = struct{}{}
	}
	cats := make([]string, 0, len(seen))
	for v := range seen {
		cats = append(cats, v)
	}
	sort.Strings(cats)
	return &OneHot{Column: column, Categories: cats}
}

// Width returns the encoded vector length.
func (o *OneHot) Width() int {
	if o == nil {
		return 0
	}
	return len(o.Categories)
}

// Encode appends the indicator vector for value to dst.
func (o *OneHot) Encode(dst []float64, value string) []float64 {
	if o == nil {
		return dst
	}
	for _, cat := range o.Categories {
		if value == cat {
			dst = append(dst, 1.0)
		} else {
			dst = append(dst, 0.0)
		}
	}
	return dst
}
