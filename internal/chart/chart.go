// Package chart draws the dashboard's two bar charts.
package chart

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/drew/empdash/internal/model"
)

// Default image size
const (
	Width  = 6 * vg.Inch
	Height = 4 * vg.Inch
)

var (
	skyBlue = color.RGBA{R: 135, G: 206, B: 235, A: 255}
	orange  = color.RGBA{R: 255, G: 165, B: 0, A: 255}
)

// Bar is one labeled bar
type Bar struct {
	Label string
	Value float64
}

// Spec describes a single bar chart
type Spec struct {
	Title  string
	XLabel string
	YLabel string
	Color  color.Color
	Bars   []Bar
}

// SalaryByEmployee charts each employee's salary
func SalaryByEmployee(rows []model.Row) Spec {
	bars := make([]Bar, len(rows))
	for i, r := range rows {
		bars[i] = Bar{Label: r.Name, Value: r.Salary}
	}
	return Spec{
		Title:  "Salary Comparison",
		XLabel: "Employee Name",
		YLabel: "Salary",
		Color:  skyBlue,
		Bars:   bars,
	}
}

// AverageByDepartment charts the per-department mean salary
func AverageByDepartment(means []model.DepartmentMean) Spec {
	bars := make([]Bar, len(means))
	for i, m := range means {
		bars[i] = Bar{Label: m.Department, Value: m.MeanSalary}
	}
	return Spec{
		Title:  "Average Salary by Department",
		XLabel: "Department",
		YLabel: "Average Salary",
		Color:  orange,
		Bars:   bars,
	}
}

// Max returns the tallest bar value, or 0 when there are no bars
func (s Spec) Max() float64 {
	max := 0.0
	for _, b := range s.Bars {
		max = math.Max(max, b.Value)
	}
	return max
}

// Plot builds the gonum plot for s. An empty spec yields axes without bars.
func (s Spec) Plot() (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = s.Title
	p.X.Label.Text = s.XLabel
	p.Y.Label.Text = s.YLabel
	p.Y.Min = 0

	if len(s.Bars) == 0 {
		return p, nil
	}

	values := make(plotter.Values, len(s.Bars))
	labels := make([]string, len(s.Bars))
	for i, b := range s.Bars {
		values[i] = b.Value
		labels[i] = b.Label
	}

	bars, err := plotter.NewBarChart(values, vg.Points(30))
	if err != nil {
		return nil, fmt.Errorf("build bar chart %q: %w", s.Title, err)
	}
	bars.Color = s.Color
	bars.LineStyle.Width = vg.Length(0)

	p.Add(bars)
	p.NominalX(labels...)
	p.X.Tick.Label.YAlign = draw.YCenter
	p.X.Tick.Label.XAlign = draw.XCenter
	p.Y.Max = s.Max() * 1.1

	return p, nil
}

// WritePNG renders s as a PNG image
func (s Spec) WritePNG(w io.Writer) error {
	p, err := s.Plot()
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(Width, Height, "png")
	if err != nil {
		return fmt.Errorf("render %q: %w", s.Title, err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write %q: %w", s.Title, err)
	}
	return nil
}
