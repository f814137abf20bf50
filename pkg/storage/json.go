package storage

import (
	"encoding/json"
	"fmt"
	"strings"
)

// LoadJSON decodes a JSON document into out. A *table.Table target reads the
// column-oriented form written by SaveJSON.
func (s *Storage) LoadJSON(path string, out any) error {
	b, err := s.readFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrFormat, path, err)
	}
	s.loaded(JSON, path)
	return nil
}

// SaveJSON encodes v with the given indent (spaces).
func (s *Storage) SaveJSON(v any, path string, indent int) error {
	b, err := json.MarshalIndent(v, "", strings.Repeat(" ", max(indent, 0)))
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}
	if err := s.writeFile(path, b); err != nil {
		return err
	}
	s.saved(JSON, path, len(b))
	return nil
}
