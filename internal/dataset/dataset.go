// Package dataset provides the built-in employee table the dashboard works on.
package dataset

import "github.com/drew/empdash/internal/model"

// Sample returns a fresh copy of the hardcoded employee table.
// Callers may not rely on sharing the slice; each call allocates.
func Sample() []model.Employee {
	return []model.Employee{
		{Name: "Alice", Age: 25, Salary: 50000, Department: "HR"},
		{Name: "Bob", Age: 30, Salary: 60000, Department: "IT"},
		{Name: "Charlie", Age: 35, Salary: 80000, Department: "Finance"},
		{Name: "David", Age: 40, Salary: 90000, Department: "IT"},
		{Name: "Eva", Age: 22, Salary: 45000, Department: "HR"},
	}
}

// Departments returns the distinct departments in order of first appearance
func Departments(employees []model.Employee) []string {
	seen := make(map[string]struct{}, len(employees))
	var out []string
	for _, e := range employees {
		if _, ok := seen[e.Department]; ok {
			continue
		}
		seen[e.Department] = struct{}{}
		out = append(out, e.Department)
	}
	return out
}

// SalaryRange returns the lowest and highest salary in the table.
// Both are zero for an empty table.
func SalaryRange(employees []model.Employee) (lo, hi float64) {
	for i, e := range employees {
		if i == 0 || e.Salary < lo {
			lo = e.Salary
		}
		if i == 0 || e.Salary > hi {
			hi = e.Salary
		}
	}
	return lo, hi
}
