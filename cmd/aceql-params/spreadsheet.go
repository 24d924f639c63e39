package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/xuri/excelize/v2"
)

var errRowNotFound = errors.New("row not found")

// Built-in number formats that mark a numeric cell as a date, a time of day
// or a date with time. Custom formats are not interpreted.
const (
	numFmtDateFirst = 14 // m/d/yy
	numFmtDateLast  = 17 // mmm-yy
	numFmtTimeFirst = 18 // h:mm AM/PM
	numFmtTimeLast  = 21 // h:mm:ss
	numFmtDateTime  = 22 // m/d/yy h:mm
	numFmtMinSec    = 45 // mm:ss
	numFmtElapsed   = 46 // [h]:mm:ss
	numFmtMinSecMs  = 47 // mmss.0
)

// cellDateTimeLayouts are the layouts of ISO 8601 date cells (t="d").
var cellDateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
}

// decodeSpreadsheet reads one row of a .xlsx workbook as parameters, one per
// column up to the last non-empty cell. Empty cells decode to nil.
func decodeSpreadsheet(r io.Reader, sheet string, row int) ([]any, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: workbook has no sheets", errRowNotFound)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	if row < 1 || row > len(rows) || len(rows[row-1]) == 0 {
		return nil, fmt.Errorf("%w: sheet %s has no row %d", errRowNotFound, sheet, row)
	}

	date1904, err := isDate1904(f)
	if err != nil {
		return nil, err
	}

	values := make([]any, 0, len(rows[row-1]))
	for col := 1; col <= len(rows[row-1]); col++ {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return nil, err
		}
		v, err := decodeCell(f, sheet, cell, date1904)
		if err != nil {
			return nil, fmt.Errorf("cell %s: %w", cell, err)
		}
		values = append(values, v)
	}
	return values, nil
}

func isDate1904(f *excelize.File) (bool, error) {
	props, err := f.GetWorkbookProps()
	if err != nil {
		return false, fmt.Errorf("failed to read workbook properties: %w", err)
	}
	return props.Date1904 != nil && *props.Date1904, nil
}

// decodeCell maps a cell by its stored type. Numeric cells become int64 or
// float64 unless their number format marks them as a date or a time.
func decodeCell(f *excelize.File, sheet, cell string, date1904 bool) (any, error) {
	cellType, err := f.GetCellType(sheet, cell)
	if err != nil {
		return nil, err
	}
	raw, err := f.GetCellValue(sheet, cell, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}

	switch cellType {
	case excelize.CellTypeBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: boolean %q", errInvalidParameter, raw)
		}
		return b, nil
	case excelize.CellTypeDate:
		for _, layout := range cellDateTimeLayouts {
			if t, err := time.Parse(layout, raw); err == nil {
				return t, nil
			}
		}
		return nil, fmt.Errorf("%w: date %q", errInvalidParameter, raw)
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
		return decodeNumericCell(f, sheet, cell, raw, date1904)
	case excelize.CellTypeError:
		return nil, fmt.Errorf("%w: cell error %s", errInvalidParameter, raw)
	default:
		// shared strings, inline strings and string formula results
		return raw, nil
	}
}

func decodeNumericCell(f *excelize.File, sheet, cell, raw string, date1904 bool) (any, error) {
	numFmt, err := cellNumFmt(f, sheet, cell)
	if err != nil {
		return nil, err
	}

	isDate := numFmt >= numFmtDateFirst && numFmt <= numFmtDateLast
	isTime := (numFmt >= numFmtTimeFirst && numFmt <= numFmtTimeLast) ||
		(numFmt >= numFmtMinSec && numFmt <= numFmtMinSecMs)
	if !isDate && !isTime && numFmt != numFmtDateTime {
		return decodeNumber(strings.TrimSpace(raw))
	}

	serial, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: serial date %q", errInvalidParameter, raw)
	}
	t, err := excelize.ExcelDateToTime(serial, date1904)
	if err != nil {
		return nil, fmt.Errorf("%w: serial date %q: %v", errInvalidParameter, raw, err)
	}
	switch {
	case isDate:
		return civil.DateOf(t), nil
	case isTime:
		return civil.TimeOf(t), nil
	default:
		return t, nil
	}
}

func cellNumFmt(f *excelize.File, sheet, cell string) (int, error) {
	styleID, err := f.GetCellStyle(sheet, cell)
	if err != nil {
		return 0, err
	}
	if styleID == 0 {
		return 0, nil
	}
	style, err := f.GetStyle(styleID)
	if err != nil {
		return 0, err
	}
	return style.NumFmt, nil
}
