package dataprocessing

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Grid is the raw two-dimensional contents of a worksheet. Cells are nil
// (empty), float64 (numeric, including spreadsheet date serials), or
// string. The grid is consumed once by BuildRecords and never mutated.
type Grid [][]any

// DecodeWorkbook reads the first worksheet of an .xlsx stream into a Grid.
// Raw cell values are requested so numeric cells and date serials arrive
// unformatted; no header inference is performed here.
func DecodeWorkbook(r io.Reader) (Grid, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	grid := make(Grid, len(rows))
	for i, row := range rows {
		cells := make([]any, len(row))
		for j, raw := range row {
			cells[j] = typedCell(f, sheets[0], i, j, raw)
		}
		grid[i] = cells
	}
	return grid, nil
}

// typedCell restores the number/string distinction that raw string
// extraction flattens. The stored cell type decides: text cells keep
// their string form even when the content looks numeric, so a
// text-formatted amount like "207.900" still reaches the locale
// cleanup intact. Only genuinely numeric cells, date serials
// included, become numbers.
func typedCell(f *excelize.File, sheet string, row, col int, raw string) any {
	if raw == "" {
		return nil
	}

	cellName, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return raw
	}
	cellType, err := f.GetCellType(sheet, cellName)
	if err != nil {
		return raw
	}

	switch cellType {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString,
		excelize.CellTypeFormula, excelize.CellTypeBool, excelize.CellTypeError:
		return raw
	}

	// Number and date cells store no type attribute in some writers, so
	// the remaining types parse by content.
	if v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
		return v
	}
	return raw
}
