package ui

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/acarl005/stripansi"

	"github.com/drew/empdash/internal/chart"
	"github.com/drew/empdash/internal/model"
	"github.com/drew/empdash/internal/numfmt"
)

// UIMode represents the UI rendering mode
type UIMode string

// UI mode constants
const (
	UIModeBasic UIMode = "basic"
	UIModeFull  UIMode = "full"
)

// ParseUIMode maps a config or flag value to a UIMode, defaulting to basic
func ParseUIMode(s string) UIMode {
	if UIMode(s) == UIModeFull {
		return UIModeFull
	}
	return UIModeBasic
}

// Renderer writes the dashboard to a terminal
type Renderer struct {
	out    io.Writer
	mode   UIMode
	colors *Colors
	width  int
}

// NewRenderer creates a new UI renderer writing to out
func NewRenderer(out io.Writer, mode UIMode, enableColors bool) *Renderer {
	// Disable colors if not a TTY
	if !WriterIsTTY(out) {
		enableColors = false
	}

	return &Renderer{
		out:    out,
		mode:   mode,
		colors: NewColors(enableColors),
		width:  GetTerminalWidth(out),
	}
}

// Render writes every section of the dashboard for one result
func (r *Renderer) Render(title string, result model.Result) {
	r.RenderHeader(title, result.Params)
	r.RenderTable(result.Rows)
	r.RenderStats(result.Stats)
	r.RenderDepartmentMeans(result.Departments)
	r.RenderChart(chart.SalaryByEmployee(result.Rows), r.colors.Cyan)
	r.RenderChart(chart.AverageByDepartment(result.Departments), r.colors.Yellow)
}

// RenderHeader renders the title and the active filters
func (r *Renderer) RenderHeader(title string, params model.Params) {
	depts := strings.Join(params.Departments, ", ")
	if depts == "" {
		depts = "(none)"
	}
	filters := fmt.Sprintf("Minimum salary: %s | Departments: %s", numfmt.Money(params.MinSalary), depts)

	switch r.mode {
	case UIModeFull:
		inner := r.width - 2
		line := strings.Repeat("═", inner)
		fmt.Fprintf(r.out, "╔%s╗\n", line)
		fmt.Fprintf(r.out, "║%s║\n", padRight(" "+r.colors.Bold(title), inner))
		fmt.Fprintf(r.out, "║%s║\n", padRight(" "+filters, inner))
		fmt.Fprintf(r.out, "╚%s╝\n", line)
	default:
		fmt.Fprintln(r.out, r.colors.Bold(title))
		fmt.Fprintln(r.out, filters)
	}
	fmt.Fprintln(r.out)
}

func (r *Renderer) section(name string) {
	fmt.Fprintln(r.out, r.colors.Blue(name))
}

// RenderTable renders the filtered view
func (r *Renderer) RenderTable(rows []model.Row) {
	r.section("Filtered Employee Data")
	if len(rows) == 0 {
		fmt.Fprintln(r.out, r.colors.Yellow("No employees match the current filters."))
		fmt.Fprintln(r.out)
		return
	}

	cells := make([][]string, 0, len(rows))
	for _, row := range rows {
		cells = append(cells, []string{
			row.Name,
			strconv.Itoa(row.Age),
			numfmt.Money(row.Salary),
			row.Department,
			r.colors.Green(numfmt.Money(row.Bonus)),
		})
	}
	r.writeGrid(model.Columns, cells, []bool{false, true, true, false, true})
}

// RenderStats renders describe() output with one column per numeric field
func (r *Renderer) RenderStats(stats []model.ColumnStats) {
	r.section("Descriptive Statistics")

	header := []string{""}
	rightAlign := []bool{false}
	for _, s := range stats {
		header = append(header, s.Column)
		rightAlign = append(rightAlign, true)
	}

	cells := make([][]string, len(model.StatLabels))
	for i, label := range model.StatLabels {
		cells[i] = []string{label}
		for _, s := range stats {
			v := s.Values()[i]
			text := numfmt.Stat(v)
			if text == "NaN" {
				text = r.colors.Gray(text)
			}
			cells[i] = append(cells[i], text)
		}
	}
	r.writeGrid(header, cells, rightAlign)
}

// RenderDepartmentMeans renders the aggregate view
func (r *Renderer) RenderDepartmentMeans(means []model.DepartmentMean) {
	r.section("Average Salary by Department")
	if len(means) == 0 {
		fmt.Fprintln(r.out, r.colors.Gray("(empty)"))
		fmt.Fprintln(r.out)
		return
	}

	cells := make([][]string, len(means))
	for i, m := range means {
		cells[i] = []string{m.Department, numfmt.Money(m.MeanSalary), strconv.Itoa(m.Count)}
	}
	r.writeGrid([]string{"Department", "Salary", "Employees"}, cells, []bool{false, true, true})
}

// RenderChart draws a horizontal bar chart scaled to the terminal width
func (r *Renderer) RenderChart(spec chart.Spec, colorize func(string) string) {
	r.section(spec.Title)
	if len(spec.Bars) == 0 {
		fmt.Fprintln(r.out, r.colors.Gray("(no data)"))
		fmt.Fprintln(r.out)
		return
	}

	labelWidth := 0
	valueWidth := 0
	for _, b := range spec.Bars {
		labelWidth = max(labelWidth, visibleWidth(b.Label))
		valueWidth = max(valueWidth, visibleWidth(numfmt.Money(b.Value)))
	}
	barWidth := r.width - labelWidth - valueWidth - 4
	if barWidth < 10 {
		barWidth = 10
	}

	top := spec.Max()
	for _, b := range spec.Bars {
		fmt.Fprintf(r.out, "%s %s %s\n",
			padRight(b.Label, labelWidth),
			r.colors.Bar(b.Value, top, barWidth, colorize),
			padLeft(numfmt.Money(b.Value), valueWidth))
	}
	fmt.Fprintln(r.out)
}

// Verbose prints a gray diagnostic line when verbose is set
func (r *Renderer) Verbose(verbose bool, format string, args ...interface{}) {
	if !verbose {
		return
	}
	fmt.Fprintln(r.out, r.colors.Gray(fmt.Sprintf(format, args...)))
}

// Success prints a green confirmation line
func (r *Renderer) Success(format string, args ...interface{}) {
	fmt.Fprintln(r.out, r.colors.Green("✓ ")+fmt.Sprintf(format, args...))
}

func (r *Renderer) writeGrid(header []string, rows [][]string, rightAlign []bool) {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = visibleWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], visibleWidth(cell))
		}
	}

	line := func(cells []string) string {
		parts := make([]string, len(cells))
		for i, c := range cells {
			if rightAlign[i] {
				parts[i] = padLeft(c, widths[i])
			} else {
				parts[i] = padRight(c, widths[i])
			}
		}
		return strings.TrimRight(strings.Join(parts, "  "), " ")
	}

	boldHeader := make([]string, len(header))
	for i, h := range header {
		boldHeader[i] = r.colors.Bold(h)
	}
	fmt.Fprintln(r.out, line(boldHeader))

	rule := make([]string, len(widths))
	for i, w := range widths {
		rule[i] = strings.Repeat("─", w)
	}
	fmt.Fprintln(r.out, r.colors.Gray(strings.Join(rule, "  ")))

	for _, row := range rows {
		fmt.Fprintln(r.out, line(row))
	}
	fmt.Fprintln(r.out)
}

// visibleWidth counts printed runes, ignoring ANSI escape sequences
func visibleWidth(s string) int {
	return utf8.RuneCountInString(stripansi.Strip(s))
}

func padRight(s string, width int) string {
	if n := width - visibleWidth(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

func padLeft(s string, width int) string {
	if n := width - visibleWidth(s); n > 0 {
		return strings.Repeat(" ", n) + s
	}
	return s
}
