// Package export serializes the filtered view for download.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/drew/empdash/internal/model"
)

// Format is a download encoding
type Format string

// Supported formats
const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatJSON Format = "json"
)

// DefaultFileName is the name offered for the CSV download
const DefaultFileName = "filtered_employees.csv"

// ParseFormat maps a user supplied name to a Format
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatCSV, "":
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown export format %q (want csv, xlsx or json)", s)
	}
}

// ContentType returns the MIME type served for f
func (f Format) ContentType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatJSON:
		return "application/json"
	default:
		return "text/csv"
	}
}

// FileName swaps the extension of base (e.g. filtered_employees.csv) for f's
func (f Format) FileName(base string) string {
	if base == "" {
		base = DefaultFileName
	}
	if i := strings.LastIndex(base, "."); i > 0 {
		base = base[:i]
	}
	return base + "." + string(f)
}

// Write encodes rows in the given format
func Write(w io.Writer, f Format, rows []model.Row) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, rows)
	case FormatXLSX:
		return WriteXLSX(w, rows)
	case FormatJSON:
		return WriteJSON(w, rows)
	default:
		return fmt.Errorf("unknown export format %q", f)
	}
}

// FormatNumber renders a value in plain decimal form without exponent
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func record(r model.Row) []string {
	return []string{
		r.Name,
		strconv.Itoa(r.Age),
		FormatNumber(r.Salary),
		r.Department,
		FormatNumber(r.Bonus),
	}
}

// WriteCSV writes a header row followed by one row per employee, no index column
func WriteCSV(w io.Writer, rows []model.Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(model.Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write(record(r)); err != nil {
			return fmt.Errorf("write csv row %q: %w", r.Name, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses output of WriteCSV back into rows
func ReadCSV(r io.Reader) ([]model.Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(model.Columns)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	for i, col := range model.Columns {
		if header[i] != col {
			return nil, fmt.Errorf("unexpected csv column %d: got %q, want %q", i, header[i], col)
		}
	}

	rows := []model.Row{}
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", line, err)
		}
		row, err := parseRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("csv line %d: %w", line, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseRecord(rec []string) (model.Row, error) {
	age, err := strconv.Atoi(rec[1])
	if err != nil {
		return model.Row{}, fmt.Errorf("parse Age %q: %w", rec[1], err)
	}
	salary, err := strconv.ParseFloat(rec[2], 64)
	if err != nil {
		return model.Row{}, fmt.Errorf("parse Salary %q: %w", rec[2], err)
	}
	bonus, err := strconv.ParseFloat(rec[4], 64)
	if err != nil {
		return model.Row{}, fmt.Errorf("parse Bonus %q: %w", rec[4], err)
	}
	return model.Row{
		Employee: model.Employee{
			Name:       rec[0],
			Age:        age,
			Salary:     salary,
			Department: rec[3],
		},
		Bonus: bonus,
	}, nil
}

// WriteJSON writes the rows as an indented JSON array
func WriteJSON(w io.Writer, rows []model.Row) error {
	if rows == nil {
		rows = []model.Row{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rows); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// SheetName is the worksheet holding the exported view
const SheetName = "Employees"

// WriteXLSX writes a single-sheet workbook with the same columns as the CSV
func WriteXLSX(w io.Writer, rows []model.Row) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	for i, col := range model.Columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(SheetName, cell, col); err != nil {
			return fmt.Errorf("set header %s: %w", cell, err)
		}
	}

	for i, r := range rows {
		values := []interface{}{r.Name, r.Age, r.Salary, r.Department, r.Bonus}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("set row %d: %w", i+2, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}
