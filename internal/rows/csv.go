package rows

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"luft/internal/services"
)

// ReadResult carries a parsed table plus the non-fatal problems encountered
// while reading it. Row-level errors and reader warnings do not abort the
// read; they surface on the audit report instead.
type ReadResult struct {
	Table    *Table
	Errors   []string
	Warnings []string
}

// ReadCSVOptions controls optional read behavior.
type ReadCSVOptions struct {
	// MaxRows stops the read after this many data rows when positive. A
	// truncated read is recorded as a warning.
	MaxRows int
}

// ReadCSV parses a CSV file into a Table. Header fields become the field
// sequence; entirely empty rows are skipped; rows with the wrong number of
// fields are collected as row errors and excluded.
func ReadCSV(path string, opts ReadCSVOptions) (*ReadResult, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, services.Wrap(services.ErrIngest, "rows", "read-csv", "open input", err)
	}
	defer file.Close()

	return readCSV(file, opts)
}

func readCSV(r io.Reader, opts ReadCSVOptions) (*ReadResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, services.Wrap(services.ErrIngest, "rows", "read-csv", "csv file has no headers", nil)
		}
		return nil, services.Wrap(services.ErrIngest, "rows", "read-csv", "read header", err)
	}
	if len(header) == 0 {
		return nil, services.Wrap(services.ErrIngest, "rows", "read-csv", "csv file has no headers", nil)
	}

	result := &ReadResult{}
	var records []Row

	for line := 1; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", line, err))
			continue
		}
		if len(record) != len(header) {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: expected %d fields, got %d", line, len(header), len(record)))
			continue
		}

		row := make(Row, len(header))
		empty := true
		for i, field := range header {
			value := record[i]
			if value != "" {
				empty = false
			}
			row[field] = value
		}
		if empty {
			continue
		}
		records = append(records, row)

		if opts.MaxRows > 0 && len(records) >= opts.MaxRows {
			result.Warnings = append(result.Warnings, fmt.Sprintf("chunked read: stopped at %d rows", opts.MaxRows))
			break
		}
	}

	table, warnings, err := New(header, records)
	if err != nil {
		return nil, err
	}
	result.Table = table
	result.Warnings = append(warnings, result.Warnings...)
	return result, nil
}
