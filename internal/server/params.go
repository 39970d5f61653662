package server

import (
	"fmt"
	"math"
	"net/url"
	"strconv"

	"github.com/drew/empdash/internal/export"
	"github.com/drew/empdash/internal/model"
	"github.com/drew/empdash/internal/pipeline"
)

// Query parameter names
const (
	paramMinSalary = "min_salary"
	paramDept      = "dept"
	paramApplied   = "applied"
)

// paramError is returned for malformed query parameters and maps to 400
type paramError struct {
	param string
	err   error
}

func (e *paramError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.param, e.err)
}

func (e *paramError) Unwrap() error {
	return e.err
}

// params builds filter parameters from a query. Missing values fall back to
// the server defaults; min_salary is clamped to the dataset range like the slider.
func (s *Server) params(q url.Values) (model.Params, error) {
	p := model.Params{
		MinSalary:   s.defaults.MinSalary,
		Departments: s.defaults.Departments,
	}

	if raw := q.Get(paramMinSalary); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err == nil && (math.IsNaN(v) || math.IsInf(v, 0)) {
			err = fmt.Errorf("%q is not a finite number", raw)
		}
		if err != nil {
			return model.Params{}, &paramError{param: paramMinSalary, err: err}
		}
		p.MinSalary = pipeline.ClampSalary(v, s.salaryLo, s.salaryHi)
	}

	// A submitted form with nothing checked selects no departments.
	if q.Has(paramApplied) || q.Has(paramDept) {
		depts, err := pipeline.ResolveDepartments(q[paramDept], s.departments)
		if err != nil {
			return model.Params{}, &paramError{param: paramDept, err: err}
		}
		p.Departments = depts
	}

	return p, nil
}

// query encodes p so links reproduce the same view
func query(p model.Params) url.Values {
	q := url.Values{}
	q.Set(paramMinSalary, export.FormatNumber(p.MinSalary))
	q.Set(paramApplied, "1")
	for _, d := range p.Departments {
		q.Add(paramDept, d)
	}
	return q
}
