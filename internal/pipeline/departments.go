package pipeline

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
)

// ResolveDepartments expands department selectors against the available departments.
// A selector is an exact name or a glob such as "F*" or "{HR,IT}". The result keeps the
// order of available and contains each department once; selectors matching nothing
// contribute nothing.
func ResolveDepartments(selectors []string, available []string) ([]string, error) {
	for _, sel := range selectors {
		if !doublestar.ValidatePattern(sel) {
			return nil, fmt.Errorf("invalid department selector %q", sel)
		}
	}

	out := []string{}
	for _, dept := range available {
		for _, sel := range selectors {
			ok, err := doublestar.Match(sel, dept)
			if err != nil {
				return nil, fmt.Errorf("match department selector %q: %w", sel, err)
			}
			if ok {
				out = append(out, dept)
				break
			}
		}
	}
	return out, nil
}
