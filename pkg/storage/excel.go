package storage

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"dskit/pkg/table"

	"github.com/xuri/excelize/v2"
)

const defaultSheet = "Sheet1"

// LoadExcel reads one sheet of an .xlsx workbook. The first row is the
// header. Legacy binary .xls workbooks are reported as ErrFormat.
func (s *Storage) LoadExcel(path string, sheet Sheet) (*table.Table, error) {
	b, err := s.readFile(path)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".xls") {
		return nil, fmt.Errorf("%w: %s: legacy .xls workbooks are not supported", ErrFormat, path)
	}
	f, err := excelize.OpenReader(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFormat, path, err)
	}
	defer f.Close()

	name := sheet.Name
	if name == "" {
		sheets := f.GetSheetList()
		if sheet.Index < 0 || sheet.Index >= len(sheets) {
			return nil, fmt.Errorf("%w: %s: sheet index %d out of range (%d sheets)", ErrFormat, path, sheet.Index, len(sheets))
		}
		name = sheets[sheet.Index]
	}
	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: sheet %q: %w", ErrFormat, path, name, err)
	}
	if len(rows) == 0 {
		return table.MustNew(), nil
	}
	// GetRows trims trailing empty rows; the used range still counts them.
	if last := dimensionRows(f, name); last > len(rows) {
		rows = append(rows, make([][]string, last-len(rows))...)
	}
	t, err := table.FromRecords(rows[0], rows[1:])
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFormat, path, err)
	}
	s.loaded(Excel, path, "sheet", name, "rows", t.NumRows())
	return t, nil
}

// SaveExcel writes t to a single-sheet workbook. Numeric cells are stored as
// numbers, missing cells are left empty and datetimes are written as RFC 3339
// text.
func (s *Storage) SaveExcel(t *table.Table, path, sheetName string) error {
	if sheetName == "" {
		sheetName = defaultSheet
	}
	f := excelize.NewFile()
	defer f.Close()
	if sheetName != defaultSheet {
		if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
		}
	}

	header := make([]any, t.NumCols())
	for j, name := range t.Names() {
		header[j] = name
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}
	cols := t.Columns()
	nums := make([][]float64, len(cols))
	for j, c := range cols {
		if c.Kind() == table.Numeric {
			nums[j], _ = c.Floats()
		}
	}
	for i := range t.NumRows() {
		row := make([]any, len(cols))
		for j, c := range cols {
			switch {
			case c.IsMissing(i):
			case nums[j] != nil:
				row[j] = nums[j][i]
			default:
				row[j] = c.Cell(i)
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
		}
	}

	last, err := excelize.CoordinatesToCellName(max(t.NumCols(), 1), t.NumRows()+1)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}
	if err := f.SetSheetDimension(sheetName, "A1:"+last); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}
	if err := s.writeFile(path, buf.Bytes()); err != nil {
		return err
	}
	s.saved(Excel, path, buf.Len())
	return nil
}

// dimensionRows returns the last row of the sheet's used range, or 0 when
// the workbook does not record one.
func dimensionRows(f *excelize.File, sheet string) int {
	ref, err := f.GetSheetDimension(sheet)
	if err != nil {
		return 0
	}
	_, end, ok := strings.Cut(ref, ":")
	if !ok {
		return 0
	}
	_, row, err := excelize.CellNameToCoordinates(end)
	if err != nil {
		return 0
	}
	return row
}
