package records

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// XLSXSheetName is the worksheet WriteXLSX writes to.
const XLSXSheetName = "data"

// WriteXLSX exports the table as a workbook: header lines first, one per
// row in column A, then one row per record with one cell per field.
// Numeric fields are stored as numbers.
func (t *Table) WriteXLSX(path string) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", XLSXSheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	row := 1
	for _, h := range t.Header {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellStr(XLSXSheetName, cell, strings.TrimRight(h, "\r\n")); err != nil {
			return fmt.Errorf("failed to write header line %d: %w", row, err)
		}
		row++
	}

	for _, rec := range t.Records {
		values := make([]interface{}, len(rec))
		for i, field := range rec {
			values[i] = cellValue(i, field)
		}

		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(XLSXSheetName, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", row, err)
		}
		row++
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

// cellValue keeps the identifier column as text and stores other finite
// numbers as numbers.
func cellValue(col int, field string) interface{} {
	if col == 0 {
		return field
	}
	v, err := strconv.ParseFloat(field, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return field
	}
	return v
}
