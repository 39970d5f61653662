package dashboard

import (
	"html/template"
	"io"
	"math"
	"slices"
	"strconv"

	"github.com/drew/empdash/assets"
	"github.com/drew/empdash/internal/dataset"
	"github.com/drew/empdash/internal/model"
	"github.com/drew/empdash/internal/numfmt"
)

// Page is the data behind one rendering of the dashboard
type Page struct {
	Title     string
	Result    model.Result
	Available []string
	SalaryMin float64
	SalaryMax float64
	Total     int

	// Live pages render the filter form; static reports show the filters as text
	Live      bool
	Generated string

	SalaryChart     string
	DepartmentChart string
	CSVLink         string
	XLSXLink        string
	JSONLink        string
	FileName        string
}

// NewPage fills the dataset-derived fields of a page for result
func NewPage(title string, employees []model.Employee, result model.Result) Page {
	lo, hi := dataset.SalaryRange(employees)
	return Page{
		Title:     title,
		Result:    result,
		Available: dataset.Departments(employees),
		SalaryMin: lo,
		SalaryMax: hi,
		Total:     len(employees),
	}
}

// Columns returns the table header
func (Page) Columns() []string {
	return model.Columns
}

// StatLabels returns the row labels of the statistics table
func (Page) StatLabels() []string {
	return model.StatLabels
}

var pageTemplate = template.Must(template.New("dashboard").Funcs(template.FuncMap{
	"money":      numfmt.Money,
	"stat":       numfmt.Stat,
	"plain":      plain,
	"isNaN":      math.IsNaN,
	"selected":   selected,
	"stylesheet": func() template.CSS { return template.CSS(assets.Stylesheet) },
}).Parse(assets.DashboardTemplate))

// RenderPage writes the dashboard HTML for page to w
func RenderPage(w io.Writer, page Page) error {
	return pageTemplate.Execute(w, page)
}

func selected(depts []string, dept string) bool {
	return slices.Contains(depts, dept)
}

// plain formats a number for HTML attributes
func plain(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
