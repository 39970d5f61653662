// Package pipeline turns the base employee table and a set of filter parameters
// into the filtered view, its statistics and the per-department aggregate.
//
// Every function here is pure: inputs are never mutated and each call builds new
// slices, so the same (dataset, params) pair always yields the same Result.
package pipeline

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/drew/empdash/internal/dataset"
	"github.com/drew/empdash/internal/model"
)

// DefaultBonusRate is the share of salary paid as bonus
const DefaultBonusRate = 0.10

// DefaultMinSalary is the slider's initial position
const DefaultMinSalary = 50000

// DefaultParams selects every department present in the table
func DefaultParams(employees []model.Employee, minSalary float64) model.Params {
	return model.Params{
		MinSalary:   minSalary,
		Departments: dataset.Departments(employees),
	}
}

// Run evaluates the whole pipeline for one render cycle
func Run(employees []model.Employee, params model.Params, bonusRate float64) model.Result {
	filtered := Filter(employees, params)
	stats := Describe(filtered)
	rows := AddBonus(filtered, bonusRate)

	return model.Result{
		Params:      params,
		Rows:        rows,
		Stats:       stats,
		Departments: MeanByDepartment(rows),
	}
}

// Filter keeps employees with Salary >= MinSalary whose department is selected,
// preserving the input order
func Filter(employees []model.Employee, params model.Params) []model.Employee {
	selected := make(map[string]struct{}, len(params.Departments))
	for _, d := range params.Departments {
		selected[d] = struct{}{}
	}

	out := make([]model.Employee, 0, len(employees))
	for _, e := range employees {
		if e.Salary < params.MinSalary {
			continue
		}
		if _, ok := selected[e.Department]; !ok {
			continue
		}
		out = append(out, e)
	}
	return out
}

// AddBonus returns view rows with Bonus = Salary * rate
func AddBonus(employees []model.Employee, rate float64) []model.Row {
	rows := make([]model.Row, len(employees))
	for i, e := range employees {
		rows[i] = model.Row{Employee: e, Bonus: e.Salary * rate}
	}
	return rows
}

// Describe summarizes the numeric columns (Age, Salary)
func Describe(employees []model.Employee) []model.ColumnStats {
	ages := make([]float64, len(employees))
	salaries := make([]float64, len(employees))
	for i, e := range employees {
		ages[i] = float64(e.Age)
		salaries[i] = e.Salary
	}
	return []model.ColumnStats{
		describeColumn("Age", ages),
		describeColumn("Salary", salaries),
	}
}

func describeColumn(name string, values []float64) model.ColumnStats {
	nan := math.NaN()
	s := model.ColumnStats{
		Column: name,
		Count:  len(values),
		Mean:   nan,
		Std:    nan,
		Min:    nan,
		Q25:    nan,
		Q50:    nan,
		Q75:    nan,
		Max:    nan,
	}
	if len(values) == 0 {
		return s
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	s.Mean = stat.Mean(sorted, nil)
	if len(sorted) > 1 {
		s.Std = stat.StdDev(sorted, nil)
	}
	s.Min = floats.Min(sorted)
	s.Max = floats.Max(sorted)
	s.Q25 = quantile(sorted, 0.25)
	s.Q50 = quantile(sorted, 0.50)
	s.Q75 = quantile(sorted, 0.75)
	return s
}

// quantile interpolates linearly between closest ranks at (n-1)*p.
// sorted must be ascending and non-empty.
func quantile(sorted []float64, p float64) float64 {
	h := float64(len(sorted)-1) * p
	lo := math.Floor(h)
	i := int(lo)
	if i+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	return sorted[i] + (h-lo)*(sorted[i+1]-sorted[i])
}

// MeanByDepartment averages salary per department present in rows,
// ordered by department name
func MeanByDepartment(rows []model.Row) []model.DepartmentMean {
	groups := make(map[string][]float64)
	for _, r := range rows {
		groups[r.Department] = append(groups[r.Department], r.Salary)
	}

	out := make([]model.DepartmentMean, 0, len(groups))
	for dept, salaries := range groups {
		out = append(out, model.DepartmentMean{
			Department: dept,
			MeanSalary: stat.Mean(salaries, nil),
			Count:      len(salaries),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Department < out[j].Department
	})
	return out
}

// ClampSalary pins v into [lo, hi] the way the salary slider does
func ClampSalary(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
