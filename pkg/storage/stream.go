package storage

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"dskit/pkg/table"
)

// Chunk is one batch of rows from StreamCSV, or the error that ended the
// stream.
type Chunk struct {
	Table *table.Table
	Err   error
}

// StreamCSV reads a CSV file in chunks of up to size rows, sent on the
// returned channel. Each chunk infers its own column kinds. The channel is
// closed after the last chunk or the first error; cancel ctx to stop early.
func (s *Storage) StreamCSV(ctx context.Context, path string, size int, opts Options) (<-chan Chunk, error) {
	if size <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", size)
	}
	file, err := s.fs.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	reader := csv.NewReader(bufio.NewReader(file))
	reader.Comma = opts.delimiter()
	header, err := reader.Read()
	if err != nil && !errors.Is(err, io.EOF) {
		file.Close()
		return nil, fmt.Errorf("%w: %s: %w", ErrFormat, path, err)
	}

	out := make(chan Chunk)
	go func() {
		defer file.Close()
		defer close(out)
		if header == nil {
			return
		}
		send := func(c Chunk) bool {
			select {
			case out <- c:
				return c.Err == nil
			case <-ctx.Done():
				return false
			}
		}
		flush := func(records [][]string) bool {
			t, err := table.FromRecords(header, records)
			if err != nil {
				err = fmt.Errorf("%w: %s: %w", ErrFormat, path, err)
			}
			return send(Chunk{Table: t, Err: err})
		}

		var records [][]string
		chunks := 0
		for {
			rec, err := reader.Read()
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				send(Chunk{Err: fmt.Errorf("%w: %s: %w", ErrFormat, path, err)})
				return
			}
			records = append(records, rec)
			if len(records) < size {
				continue
			}
			if !flush(records) {
				return
			}
			chunks++
			records = nil
		}
		if len(records) > 0 {
			if !flush(records) {
				return
			}
			chunks++
		}
		s.loaded(CSV, path, "chunks", chunks)
	}()
	return out, nil
}
