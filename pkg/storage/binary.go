package storage

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"dskit/pkg/stats"
	"dskit/pkg/table"
)

// envelope lets arbitrary registered values travel through gob.
type envelope struct {
	Value any
}

func init() {
	Register(&table.Table{})
	Register(map[string]any{})
	Register([]any{})
	Register(map[string]float64{})
	Register(&stats.StandardScaler{})
}

// Register makes a concrete type storable with the binary format. Types
// other than gob's builtins must be registered before SaveBinary or
// LoadBinary meets them.
func Register(v any) {
	gob.Register(v)
}

// LoadBinary reads a value written by SaveBinary.
func (s *Storage) LoadBinary(path string) (any, error) {
	b, err := s.readFile(path)
	if err != nil {
		return nil, err
	}
	var env envelope
	if err := gob.NewDecoder(bytes.NewReader(b)).Decode(&env); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFormat, path, err)
	}
	s.loaded(Binary, path)
	return env.Value, nil
}

// LoadBinaryAs reads a value written by SaveBinary and asserts its type.
func LoadBinaryAs[T any](s *Storage, path string) (T, error) {
	var zero T
	v, err := s.LoadBinary(path)
	if err != nil {
		return zero, err
	}
	out, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s holds %T, want %T", ErrFormat, path, v, zero)
	}
	return out, nil
}

// SaveBinary serializes v with encoding/gob.
func (s *Storage) SaveBinary(v any, path string) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(&envelope{Value: v}); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}
	if err := s.writeFile(path, buf.Bytes()); err != nil {
		return err
	}
	s.saved(Binary, path, buf.Len())
	return nil
}
