package source

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/verte-zerg/rosterdiff/internal/ident"
	"github.com/verte-zerg/rosterdiff/internal/model"
)

type sheetColumn struct {
	index int
	name  string
}

// ReadWorkbook returns the raw rows of a worksheet of an .xlsx file. An empty
// sheet name selects the first worksheet. Cells are returned unformatted;
// numeric cells are rewritten in canonical form so an integer never carries a
// decimal point or exponent. String cells are returned as stored.
func ReadWorkbook(path, sheet string) ([][]string, error) {
	data, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &model.SchemaError{Source: path, Err: err}
	}
	defer func() { _ = file.Close() }()

	if sheet == "" {
		sheet = file.GetSheetName(0)
	}
	if sheet == "" {
		return nil, &model.SchemaError{Source: path, Err: errors.New("no worksheet found")}
	}
	rows, err := file.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &model.SchemaError{Source: path, Err: fmt.Errorf("failed to read sheet %q: %w", sheet, err)}
	}
	if err := canonicalNumbers(file, sheet, rows); err != nil {
		return nil, &model.SchemaError{Source: path, Err: err}
	}
	return rows, nil
}

// canonicalNumbers rewrites numeric cells in place. A cell without a type
// attribute holds a number.
func canonicalNumbers(file *excelize.File, sheet string, rows [][]string) error {
	for r, row := range rows {
		for c, value := range row {
			if value == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return fmt.Errorf("failed to address cell: %w", err)
			}
			typ, err := file.GetCellType(sheet, cell)
			if err != nil {
				return fmt.Errorf("failed to read cell %s type: %w", cell, err)
			}
			if typ == excelize.CellTypeNumber || typ == excelize.CellTypeUnset {
				row[c] = ident.CanonicalNumber(value)
			}
		}
	}
	return nil
}

// LoadSheet builds the roster from spreadsheet rows. The first row is a title
// and is discarded; the second row is the header. Unnamed columns are dropped
// and the leftmost remaining column holds the identifier. Rows with no values
// at all are skipped.
func LoadSheet(rows [][]string) (Result, error) {
	if len(rows) < 2 {
		return Result{}, &model.SchemaError{Source: "spreadsheet", Err: errors.New("missing header row")}
	}
	columns := sheetColumns(rows[1])
	if len(columns) == 0 {
		return Result{}, &model.SchemaError{Source: "spreadsheet", Err: errors.New("header row has no named columns")}
	}

	names := make([]string, len(columns))
	for i, col := range columns {
		names[i] = col.name
	}

	records := make([]model.Record, 0, len(rows)-2)
	for _, row := range rows[2:] {
		if blankRow(row) {
			continue
		}
		records = append(records, sheetRecord(row, columns))
	}
	// Identifier cleaning is trim only; cells are already strings.
	return finish(records, names, names[0]), nil
}

func sheetColumns(header []string) []sheetColumn {
	seen := map[string]struct{}{}
	var out []sheetColumn
	for i, cell := range header {
		name := strings.TrimSpace(cell)
		if name == "" {
			continue
		}
		name = uniqueName(name, seen)
		seen[name] = struct{}{}
		out = append(out, sheetColumn{index: i, name: name})
	}
	return out
}

func uniqueName(name string, seen map[string]struct{}) string {
	if _, ok := seen[name]; !ok {
		return name
	}
	for n := 1; ; n++ {
		candidate := name + "." + strconv.Itoa(n)
		if _, ok := seen[candidate]; !ok {
			return candidate
		}
	}
}

func sheetRecord(row []string, columns []sheetColumn) model.Record {
	var rec model.Record
	for _, col := range columns {
		var value any
		if col.index < len(row) && strings.TrimSpace(row[col.index]) != "" {
			value = row[col.index]
		}
		rec.Set(col.name, value)
	}
	return rec
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
