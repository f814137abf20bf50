package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"dskit/pkg/logger"
	"dskit/pkg/table"

	"github.com/spf13/afero"
)

var (
	ErrNotFound = errors.New("file not found")
	ErrFormat   = errors.New("malformed content")
	ErrWrite    = errors.New("write failed")
)

// Format tags one of the supported serializations.
type Format string

const (
	CSV     Format = "csv"
	Excel   Format = "excel"
	JSON    Format = "json"
	Parquet Format = "parquet"
	Binary  Format = "binary"
	Text    Format = "text"
)

var extensions = map[string]Format{
	".csv":     CSV,
	".xlsx":    Excel,
	".xls":     Excel,
	".json":    JSON,
	".parquet": Parquet,
	".gob":     Binary,
	".bin":     Binary,
	".pkl":     Binary,
	".txt":     Text,
}

// FormatFromPath infers a format from the file extension.
func FormatFromPath(path string) (Format, error) {
	f, ok := extensions[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return "", fmt.Errorf("%w: no format for extension %q", ErrFormat, filepath.Ext(path))
	}
	return f, nil
}

// Sheet selects an Excel sheet by name, or by zero-based index when Name is
// empty.
type Sheet struct {
	Name  string
	Index int
}

func SheetName(name string) Sheet { return Sheet{Name: name} }
func SheetIndex(i int) Sheet      { return Sheet{Index: i} }

// Options carries the per-format knobs of Load and Save. Zero values pick the
// defaults: first sheet (saved as "Sheet1"), comma delimiter, indent of 2.
type Options struct {
	Sheet     Sheet
	Delimiter rune
	Indent    int
}

func (o Options) delimiter() rune {
	if o.Delimiter == 0 {
		return ','
	}
	return o.Delimiter
}

func (o Options) indent() int {
	if o.Indent <= 0 {
		return 2
	}
	return o.Indent
}

// Storage loads and saves data on a filesystem.
type Storage struct {
	fs  afero.Fs
	log logger.Logger
}

type Option func(*Storage)

func WithLogger(l logger.Logger) Option {
	return func(s *Storage) { s.log = l }
}

func New(fs afero.Fs, opts ...Option) *Storage {
	s := &Storage{fs: fs, log: logger.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewOS returns a Storage on the host filesystem.
func NewOS(opts ...Option) *Storage {
	return New(afero.NewOsFs(), opts...)
}

// Load reads path in the given format. Tabular formats return *table.Table,
// JSON returns the decoded value, Binary the stored value and Text a string.
func (s *Storage) Load(path string, format Format, opts Options) (any, error) {
	switch format {
	case CSV:
		return s.loadCSV(path, opts)
	case Excel:
		return s.LoadExcel(path, opts.Sheet)
	case Parquet:
		return s.LoadParquet(path)
	case JSON:
		var v any
		if err := s.LoadJSON(path, &v); err != nil {
			return nil, err
		}
		return v, nil
	case Binary:
		return s.LoadBinary(path)
	case Text:
		return s.LoadText(path)
	}
	return nil, fmt.Errorf("%w: unknown format %q", ErrFormat, format)
}

// Save writes data to path, creating parent directories and replacing any
// existing file.
func (s *Storage) Save(data any, path string, format Format, opts Options) error {
	switch format {
	case CSV, Excel, Parquet:
		t, ok := data.(*table.Table)
		if !ok {
			return fmt.Errorf("%w: %s needs a *table.Table, got %T", ErrWrite, format, data)
		}
		switch format {
		case CSV:
			return s.saveCSV(t, path, opts)
		case Excel:
			return s.SaveExcel(t, path, opts.Sheet.Name)
		default:
			return s.SaveParquet(t, path)
		}
	case JSON:
		return s.SaveJSON(data, path, opts.indent())
	case Binary:
		return s.SaveBinary(data, path)
	case Text:
		text, ok := data.(string)
		if !ok {
			return fmt.Errorf("%w: text needs a string, got %T", ErrWrite, data)
		}
		return s.SaveText(text, path)
	}
	return fmt.Errorf("%w: unknown format %q", ErrWrite, format)
}

func (s *Storage) readFile(path string) ([]byte, error) {
	b, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return b, nil
}

// writeFile creates the parent directories of path and replaces its content.
func (s *Storage) writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: create %s: %w", ErrWrite, dir, err)
		}
	}
	if err := afero.WriteFile(s.fs, path, data, 0o644); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}
	return nil
}

func (s *Storage) loaded(format Format, path string, keyvals ...any) {
	s.log.Debug("loaded file", append([]any{"format", format, "path", path}, keyvals...)...)
}

func (s *Storage) saved(format Format, path string, size int) {
	s.log.Debug("saved file", "format", format, "path", path, "bytes", size)
}
