package export

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/drew/empdash/internal/dataset"
	"github.com/drew/empdash/internal/model"
	"github.com/drew/empdash/internal/pipeline"
)

func scenarioRows() []model.Row {
	base := dataset.Sample()
	return pipeline.Run(base, pipeline.DefaultParams(base, 50000), pipeline.DefaultBonusRate).Rows
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, scenarioRows()); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	want := "Name,Age,Salary,Department,Bonus\n" +
		"Alice,25,50000,HR,5000\n" +
		"Bob,30,60000,IT,6000\n" +
		"Charlie,35,80000,Finance,8000\n" +
		"David,40,90000,IT,9000\n"
	if buf.String() != want {
		t.Errorf("WriteCSV() =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestWriteCSVEmptyKeepsHeader(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}
	if buf.String() != "Name,Age,Salary,Department,Bonus\n" {
		t.Errorf("WriteCSV(nil) = %q, want header only", buf.String())
	}
}

func TestCSVRoundTrip(t *testing.T) {
	base := dataset.Sample()
	for _, min := range []float64{0, 50000, 75000, 95000} {
		rows := pipeline.Run(base, pipeline.DefaultParams(base, min), pipeline.DefaultBonusRate).Rows

		var buf bytes.Buffer
		if err := WriteCSV(&buf, rows); err != nil {
			t.Fatalf("WriteCSV() error = %v", err)
		}
		got, err := ReadCSV(&buf)
		if err != nil {
			t.Fatalf("ReadCSV() error = %v", err)
		}
		if len(rows) == 0 {
			rows = []model.Row{}
		}
		if !reflect.DeepEqual(got, rows) {
			t.Errorf("min=%v round trip = %v, want %v", min, got, rows)
		}
	}
}

func TestCSVRoundTripFractionalValues(t *testing.T) {
	rows := []model.Row{{
		Employee: model.Employee{Name: "Frac, Jr.", Age: 31, Salary: 12345.67, Department: "R&D"},
		Bonus:    1234.567,
	}}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, rows); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}
	got, err := ReadCSV(&buf)
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}
	if !reflect.DeepEqual(got, rows) {
		t.Errorf("round trip = %v, want %v", got, rows)
	}
}

func TestReadCSVErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"wrong header", "Name,Age,Pay,Department,Bonus\n"},
		{"bad age", "Name,Age,Salary,Department,Bonus\nA,x,1,HR,0.1\n"},
		{"bad salary", "Name,Age,Salary,Department,Bonus\nA,1,x,HR,0.1\n"},
		{"bad bonus", "Name,Age,Salary,Department,Bonus\nA,1,1,HR,x\n"},
		{"short row", "Name,Age,Salary,Department,Bonus\nA,1,1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadCSV(strings.NewReader(tt.input)); err == nil {
				t.Errorf("ReadCSV(%q) expected error", tt.input)
			}
		})
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{50000, "50000"},
		{5000, "5000"},
		{0.1, "0.1"},
		{1e21, "1000000000000000000000"},
		{-2.5, "-2.5"},
	}

	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, scenarioRows()); err != nil {
		t.Fatalf("WriteXLSX() error = %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer f.Close()

	got, err := f.GetRows(SheetName)
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("got %d rows, want 5 (header + 4)", len(got))
	}
	if !reflect.DeepEqual(got[0], model.Columns) {
		t.Errorf("header = %v, want %v", got[0], model.Columns)
	}
	if want := []string{"Charlie", "35", "80000", "Finance", "8000"}; !reflect.DeepEqual(got[3], want) {
		t.Errorf("row 3 = %v, want %v", got[3], want)
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, nil); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Errorf("WriteJSON(nil) = %q, want []", buf.String())
	}

	buf.Reset()
	if err := WriteJSON(&buf, scenarioRows()); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	var decoded []model.Row
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if len(decoded) != 4 || decoded[3].Name != "David" || decoded[3].Bonus != 9000 {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatCSV, false},
		{"csv", FormatCSV, false},
		{"XLSX", FormatXLSX, false},
		{" json ", FormatJSON, false},
		{"parquet", "", true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatFileNameAndContentType(t *testing.T) {
	tests := []struct {
		format   Format
		base     string
		wantName string
		wantType string
	}{
		{FormatCSV, "", "filtered_employees.csv", "text/csv"},
		{FormatXLSX, "filtered_employees.csv", "filtered_employees.xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"},
		{FormatJSON, "staff", "staff.json", "application/json"},
	}

	for _, tt := range tests {
		if got := tt.format.FileName(tt.base); got != tt.wantName {
			t.Errorf("%s.FileName(%q) = %q, want %q", tt.format, tt.base, got, tt.wantName)
		}
		if got := tt.format.ContentType(); got != tt.wantType {
			t.Errorf("%s.ContentType() = %q, want %q", tt.format, got, tt.wantType)
		}
	}
}

func TestWriteUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, Format("yaml"), nil); err == nil {
		t.Error("expected error for unknown format")
	}
}
