// Package train implements the offline training pipeline: dataset
// acquisition, cleaning, splitting, model fitting, evaluation and
// bundle persistence. A run is deterministic for a given dataset and
// seed.
package train

import (
	"encoding/csv"
	"fmt"
	"os"
)

// Dataset is a loaded raw table before cleaning: the column order as
// read plus one string map per row.
type Dataset struct {
	Columns []string
	Rows    []map[string]string
}

// HasColumn reports whether the named column was present in the input.
func (d Dataset) HasColumn(name string) bool {
	for _, c := range d.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// LoadCSV reads a header-first CSV into a Dataset, guaranteeing the
// notes column exists (empty when the file lacks it). Short records
// are padded so every row covers the header.
func LoadCSV(path string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("opening dataset failed: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return Dataset{}, fmt.Errorf("reading dataset failed: %w", err)
	}
	if len(records) == 0 {
		return Dataset{}, fmt.Errorf("dataset %s is empty", path)
	}
	header := records[0]
	ds := Dataset{Columns: append([]string(nil), header...)}
	for _, rec := range records[1:] {
		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(rec) {
				row[col] = rec[i]
			} else {
				row[col] = ""
			}
		}
		ds.Rows = append(ds.Rows, row)
	}
	if !ds.HasColumn("notes") {
		ds.Columns = append(ds.Columns, "notes")
		for _, row := range ds.Rows {
			row["notes"] = ""
		}
	}
	return ds, nil
}
