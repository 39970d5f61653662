// Package model holds the plain data types shared by the pipeline and its surfaces.
package model

import (
	"encoding/json"
	"math"
)

// Employee is a single row of the base dataset
type Employee struct {
	Name       string  `json:"name"`
	Age        int     `json:"age"`
	Salary     float64 `json:"salary"`
	Department string  `json:"department"`
}

// Params are the two filter inputs read on every render cycle
type Params struct {
	MinSalary   float64  `json:"minSalary"`
	Departments []string `json:"departments"`
}

// Row is an employee in the filtered view, carrying the derived bonus
type Row struct {
	Employee
	Bonus float64 `json:"bonus"`
}

// Columns is the column order of the filtered view and its exports
var Columns = []string{"Name", "Age", "Salary", "Department", "Bonus"}

// ColumnStats is the describe() summary of one numeric column.
// Every field except Count is NaN when the column is empty.
type ColumnStats struct {
	Column string  `json:"column"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Q25    float64 `json:"q25"`
	Q50    float64 `json:"q50"`
	Q75    float64 `json:"q75"`
	Max    float64 `json:"max"`
}

// MarshalJSON encodes NaN statistics as null
func (s ColumnStats) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Column string   `json:"column"`
		Count  int      `json:"count"`
		Mean   *float64 `json:"mean"`
		Std    *float64 `json:"std"`
		Min    *float64 `json:"min"`
		Q25    *float64 `json:"q25"`
		Q50    *float64 `json:"q50"`
		Q75    *float64 `json:"q75"`
		Max    *float64 `json:"max"`
	}{
		Column: s.Column,
		Count:  s.Count,
		Mean:   finite(s.Mean),
		Std:    finite(s.Std),
		Min:    finite(s.Min),
		Q25:    finite(s.Q25),
		Q50:    finite(s.Q50),
		Q75:    finite(s.Q75),
		Max:    finite(s.Max),
	})
}

// Values returns the statistics in describe() row order
func (s ColumnStats) Values() []float64 {
	return []float64{float64(s.Count), s.Mean, s.Std, s.Min, s.Q25, s.Q50, s.Q75, s.Max}
}

// StatLabels are the row labels matching ColumnStats.Values
var StatLabels = []string{"count", "mean", "std", "min", "25%", "50%", "75%", "max"}

func finite(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// DepartmentMean is one entry of the aggregate view
type DepartmentMean struct {
	Department string  `json:"department"`
	MeanSalary float64 `json:"meanSalary"`
	Count      int     `json:"count"`
}

// Result is everything derived from one evaluation of the pipeline
type Result struct {
	Params      Params           `json:"params"`
	Rows        []Row            `json:"rows"`
	Stats       []ColumnStats    `json:"stats"`
	Departments []DepartmentMean `json:"departmentMeans"`
}

// Empty reports whether no employee passed the filter
func (r Result) Empty() bool {
	return len(r.Rows) == 0
}
