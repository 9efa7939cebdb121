package rows

import (
	"fmt"

	"luft/internal/services"
)

// Row maps field names to raw text values. Absent and empty values are both
// treated as missing.
type Row map[string]string

// Table is a normalized, order-preserving representation of one ingested
// dataset: the field names in declaration order plus the rows. A Table is
// built once and not mutated for the remainder of a run.
type Table struct {
	Fields  []string
	Records []Row
}

// New builds a Table from a field sequence and rows. Duplicate field names are
// collapsed to their first occurrence and reported as warnings; a row carrying
// a key outside the field set is an ingest error.
func New(fields []string, records []Row) (*Table, []string, error) {
	var warnings []string

	seen := make(map[string]struct{}, len(fields))
	unique := make([]string, 0, len(fields))
	duplicates := false
	for _, field := range fields {
		if _, ok := seen[field]; ok {
			duplicates = true
			continue
		}
		seen[field] = struct{}{}
		unique = append(unique, field)
	}
	if duplicates {
		warnings = append(warnings, "duplicate column names detected")
	}

	for i, record := range records {
		for key := range record {
			if _, ok := seen[key]; !ok {
				return nil, nil, services.Wrap(services.ErrIngest, "rows", "new",
					fmt.Sprintf("row %d has unknown field %q", i+1, key), nil)
			}
		}
	}

	return &Table{Fields: unique, Records: records}, warnings, nil
}

// RowCount returns the number of rows.
func (t *Table) RowCount() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// ColumnCount returns the number of fields.
func (t *Table) ColumnCount() int {
	if t == nil {
		return 0
	}
	return len(t.Fields)
}

// Value returns the raw text for a field in a row and whether it is
// non-missing. Empty text counts as missing.
func (r Row) Value(field string) (string, bool) {
	v, ok := r[field]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}
