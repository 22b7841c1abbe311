// Package export moves employee lists in and out of CSV and spreadsheet files.
package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/marcus/empdesk/internal/models"
	"github.com/xuri/excelize/v2"
)

// Format is an export file format
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// SheetName is the worksheet written by WriteXLSX
const SheetName = "Employees"

var header = []string{"id", "first_name", "last_name"}

// ErrNoRows is returned when a file has no data rows
var ErrNoRows = errors.New("no rows found")

// Write writes employees in format f
func Write(w io.Writer, f Format, employees []models.Employee) error {
	switch f {
	case FormatCSV, "":
		return WriteCSV(w, employees)
	case FormatXLSX:
		return WriteXLSX(w, employees)
	}
	return fmt.Errorf("unknown format %q", f)
}

// WriteCSV writes a header row followed by one row per employee
func WriteCSV(w io.Writer, employees []models.Employee) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, e := range employees {
		if err := cw.Write([]string{e.ID, e.FirstName, e.LastName}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes a single-sheet workbook
func WriteXLSX(w io.Writer, employees []models.Employee) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return err
	}
	if err := setRow(f, 1, header); err != nil {
		return err
	}
	for i, e := range employees {
		if err := setRow(f, i+2, []string{e.ID, e.FirstName, e.LastName}); err != nil {
			return err
		}
	}
	_ = f.SetColWidth(SheetName, "B", "C", 24)

	_, err := f.WriteTo(w)
	return err
}

func setRow(f *excelize.File, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return f.SetSheetRow(SheetName, cell, &cells)
}

// ReadRows reads every row of a CSV, XLSX or XLS file. The format is picked
// from the file extension.
func ReadRows(r io.Reader, filename string) ([][]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var rows [][]string
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".csv":
		cr := csv.NewReader(bytes.NewReader(data))
		cr.FieldsPerRecord = -1
		rows, err = cr.ReadAll()
		if err != nil {
			return nil, err
		}
	case ".xls":
		workbook, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
		if err != nil {
			return nil, err
		}
		if workbook.NumSheets() == 0 {
			return nil, fmt.Errorf("no worksheet found")
		}
		rows = workbook.ReadAllCells(100000)
	case ".xlsx":
		file, err := excelize.OpenReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer func() { _ = file.Close() }()

		sheet := file.GetSheetName(0)
		if sheet == "" {
			return nil, fmt.Errorf("no worksheet found")
		}
		rows, err = file.GetRows(sheet)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported file type %q", ext)
	}

	if len(rows) == 0 {
		return nil, ErrNoRows
	}
	return rows, nil
}

// ParseEmployees maps rows to employees. The first row is the header and
// must name first_name and last_name columns; id is optional. Blank rows
// are skipped.
func ParseEmployees(rows [][]string) ([]models.Employee, error) {
	if len(rows) == 0 {
		return nil, ErrNoRows
	}

	cols := map[string]int{"id": -1, "first_name": -1, "last_name": -1}
	for i, h := range rows[0] {
		key := normalizeHeader(h)
		if _, ok := cols[key]; ok {
			cols[key] = i
		}
	}
	for _, required := range []string{"first_name", "last_name"} {
		if cols[required] < 0 {
			return nil, fmt.Errorf("missing %s column", required)
		}
	}

	var out []models.Employee
	for _, row := range rows[1:] {
		e := models.Employee{
			ID:        cellValue(row, cols["id"]),
			FirstName: cellValue(row, cols["first_name"]),
			LastName:  cellValue(row, cols["last_name"]),
		}
		if e.FirstName == "" && e.LastName == "" {
			continue
		}
		out = append(out, e)
	}
	if len(out) == 0 {
		return nil, ErrNoRows
	}
	return out, nil
}

// normalizeHeader accepts "First Name", "first-name" and "first_name"
func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.NewReplacer(" ", "_", "-", "_").Replace(h)
	return h
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
