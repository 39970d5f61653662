// Package features holds the godog scenarios for empdash.
package features

import (
	"fmt"
	"os"
	"strings"

	"github.com/drew/empdash/internal/config"
	"github.com/drew/empdash/internal/export"
	"github.com/drew/empdash/internal/model"
)

// sharedContext holds ALL state for a scenario - used by all step definitions
type sharedContext struct {
	// Pipeline fields
	employees []model.Employee
	result    model.Result

	// Download fields
	format   export.Format
	fileName string
	download []byte

	// Config fields
	tempDir    string
	configPath string
	validation *config.ValidationResult
}

// ensureTempDir creates the scenario's scratch directory on first use
func (c *sharedContext) ensureTempDir() error {
	if c.tempDir != "" {
		return nil
	}
	dir, err := os.MkdirTemp("", "empdash-features-")
	if err != nil {
		return err
	}
	c.tempDir = dir
	return nil
}

// cleanup removes anything the scenario wrote to disk
func (c *sharedContext) cleanup() {
	if c.tempDir != "" {
		os.RemoveAll(c.tempDir)
	}
}

// splitList parses a comma separated step argument. Commas inside {...}
// belong to a glob alternation and do not split.
func splitList(s string) []string {
	out := []string{}
	add := func(part string) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	depth, start := 0, 0
	for i, r := range s {
		switch r {
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				add(s[start:i])
				start = i + 1
			}
		}
	}
	add(s[start:])
	return out
}

func names(rows []model.Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Name
	}
	return out
}

func expectList(what string, got, want []string) error {
	if strings.Join(got, ", ") != strings.Join(want, ", ") {
		return fmt.Errorf("expected %s %v, got %v", what, want, got)
	}
	return nil
}
