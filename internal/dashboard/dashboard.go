// Package dashboard renders the HTML dashboard and writes static report directories.
package dashboard

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/drew/empdash/internal/chart"
	"github.com/drew/empdash/internal/export"
	"github.com/drew/empdash/internal/model"
	"github.com/drew/empdash/internal/telemetry"
)

// Report file names
const (
	ReportHTML      = "report.html"
	SummaryJSON     = "summary.json"
	SalaryPNG       = "salary.png"
	DepartmentsPNG  = "departments.png"
	timestampLayout = "2006-01-02 15:04:05"
)

// ReservedName reports whether name is taken by a generated report file and so
// cannot be used for the CSV export. The check ignores case.
func ReservedName(name string) bool {
	for _, reserved := range []string{ReportHTML, SummaryJSON, SalaryPNG, DepartmentsPNG} {
		if strings.EqualFold(name, reserved) {
			return true
		}
	}
	return false
}

// Summary is the machine-readable companion of report.html
type Summary struct {
	Title            string       `json:"title"`
	Generated        string       `json:"generated"`
	TotalEmployees   int          `json:"totalEmployees"`
	MatchedEmployees int          `json:"matchedEmployees"`
	Result           model.Result `json:"result"`
}

// WriteReport writes report.html, summary.json, the CSV export and both chart
// images for page into dir, creating it if needed. page.FileName names the CSV.
func WriteReport(ctx context.Context, dir string, page Page) error {
	ctx, span := telemetry.Tracer().Start(ctx, "dashboard.WriteReport")
	defer span.End()

	if page.FileName == "" {
		page.FileName = export.DefaultFileName
	}
	if ReservedName(page.FileName) {
		return fmt.Errorf("export file name %q collides with a report file", page.FileName)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create report dir: %w", err)
	}

	page.Live = false
	page.Generated = time.Now().Format(timestampLayout)
	page.SalaryChart = SalaryPNG
	page.DepartmentChart = DepartmentsPNG
	page.CSVLink = page.FileName

	summary := Summary{
		Title:            page.Title,
		Generated:        page.Generated,
		TotalEmployees:   page.Total,
		MatchedEmployees: len(page.Result.Rows),
		Result:           page.Result,
	}

	files := map[string]func(io.Writer) error{
		ReportHTML: func(w io.Writer) error { return RenderPage(w, page) },
		SummaryJSON: func(w io.Writer) error {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(summary)
		},
		page.FileName: func(w io.Writer) error { return export.WriteCSV(w, page.Result.Rows) },
		SalaryPNG: func(w io.Writer) error {
			return chart.SalaryByEmployee(page.Result.Rows).WritePNG(w)
		},
		DepartmentsPNG: func(w io.Writer) error {
			return chart.AverageByDepartment(page.Result.Departments).WritePNG(w)
		},
	}

	g, ctx := errgroup.WithContext(ctx)
	for name, write := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := writeFile(filepath.Join(dir, name), write); err != nil {
				return fmt.Errorf("failed to write %s: %w", name, err)
			}
			return nil
		})
	}
	return g.Wait()
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	bw := bufio.NewWriter(f)
	if err := write(bw); err != nil {
		return err
	}
	return bw.Flush()
}
