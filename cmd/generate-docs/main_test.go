package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/drew/empdash/internal/config"
)

func TestExampleTOMLLoads(t *testing.T) {
	content, err := exampleTOML(buildDocumentation())
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "config.example.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("generated example does not load: %v\n%s", err, content)
	}
	if cfg.Dashboard.MinSalary == nil || *cfg.Dashboard.MinSalary != 50000 {
		t.Errorf("minSalary = %v, want 50000", cfg.Dashboard.MinSalary)
	}
	if cfg.Server.Addr != "localhost:8501" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}

	result, err := config.ValidateConfigFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !result.Valid {
		t.Errorf("generated example is invalid: %v", result.Errors)
	}
}

func TestExtractSection(t *testing.T) {
	section := extractSection("log", "Structured logging", config.GetDefaults().Log)

	if len(section.Fields) != 2 {
		t.Fatalf("got %d fields, want 2", len(section.Fields))
	}
	level := section.Fields[0]
	if level.Name != "level" || level.Default != `"info"` || level.Env != "EMPDASH_LOG_LEVEL" {
		t.Errorf("level field = %+v", level)
	}
	if strings.Join(level.ValidValues, ",") != "debug,info,warn,error" {
		t.Errorf("ValidValues = %v", level.ValidValues)
	}
}

func TestJSONSchema(t *testing.T) {
	content, err := jsonSchema(buildDocumentation())
	if err != nil {
		t.Fatal(err)
	}
	var schema struct {
		Properties map[string]struct {
			Properties map[string]map[string]interface{} `json:"properties"`
		} `json:"properties"`
	}
	if err := json.Unmarshal([]byte(content), &schema); err != nil {
		t.Fatalf("schema is not JSON: %v", err)
	}
	bonus := schema.Properties["dashboard"].Properties["bonusRate"]
	if bonus["type"] != "number" || bonus["default"] != 0.1 {
		t.Errorf("bonusRate schema = %v", bonus)
	}
	depts := schema.Properties["dashboard"].Properties["departments"]
	if depts["type"] != "array" {
		t.Errorf("departments schema = %v", depts)
	}
}

func TestMarkdownDocs(t *testing.T) {
	content, err := markdownDocs(buildDocumentation())
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"### `[dashboard]`", "`EMPDASH_ADDR`", "| `fileName` | string | `\"filtered_employees.csv\"`"} {
		if !strings.Contains(content, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}
