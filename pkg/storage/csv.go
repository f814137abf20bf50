package storage

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"dskit/pkg/table"
)

// LoadCSV reads a comma separated file with a header row.
func (s *Storage) LoadCSV(path string) (*table.Table, error) {
	return s.loadCSV(path, Options{})
}

// SaveCSV writes t with a header row and no index column.
func (s *Storage) SaveCSV(t *table.Table, path string) error {
	return s.saveCSV(t, path, Options{})
}

func (s *Storage) loadCSV(path string, opts Options) (*table.Table, error) {
	b, err := s.readFile(path)
	if err != nil {
		return nil, err
	}
	reader := csv.NewReader(bytes.NewReader(b))
	reader.Comma = opts.delimiter()
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFormat, path, err)
	}
	if len(records) == 0 {
		return table.MustNew(), nil
	}
	t, err := table.FromRecords(records[0], records[1:])
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFormat, path, err)
	}
	s.loaded(CSV, path, "rows", t.NumRows(), "columns", t.NumCols())
	return t, nil
}

func (s *Storage) saveCSV(t *table.Table, path string, opts Options) error {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	writer.Comma = opts.delimiter()
	for _, rec := range t.Records() {
		// A lone empty field would be a blank line, which readers skip.
		if len(rec) == 1 && rec[0] == "" {
			writer.Flush()
			buf.WriteString("\"\"\n")
			continue
		}
		if err := writer.Write(rec); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}
	if err := s.writeFile(path, buf.Bytes()); err != nil {
		return err
	}
	s.saved(CSV, path, buf.Len())
	return nil
}
