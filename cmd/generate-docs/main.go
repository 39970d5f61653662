// Copyright 2025 Andrew Khoury
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// generate-docs generates documentation from config structs using reflection
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/drew/empdash/internal/config"
)

// FieldDoc represents documentation for a single field
type FieldDoc struct {
	Name        string
	Type        string
	Default     string
	Env         string
	Description string
	ValidValues []string
}

// SectionDoc represents documentation for a config section
type SectionDoc struct {
	Name        string
	Description string
	Fields      []FieldDoc
}

func main() {
	if len(os.Args) > 1 && os.Args[1] == "--help" {
		fmt.Println("Usage: generate-docs [output-dir]")
		fmt.Println("Generates documentation from config structs:")
		fmt.Println("  - config.example.toml")
		fmt.Println("  - config.schema.json")
		fmt.Println("  - docs/configuration.md")
		return
	}

	outDir := "."
	if len(os.Args) > 1 {
		outDir = os.Args[1]
	}

	docs := buildDocumentation()

	outputs := []struct {
		path    string
		content func([]SectionDoc) (string, error)
	}{
		{"config.example.toml", exampleTOML},
		{"config.schema.json", jsonSchema},
		{filepath.Join("docs", "configuration.md"), markdownDocs},
	}

	for _, out := range outputs {
		content, err := out.content(docs)
		if err == nil {
			err = writeOutput(filepath.Join(outDir, out.path), content)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error generating %s: %v\n", out.path, err)
			os.Exit(1)
		}
		fmt.Printf("✓ Generated %s\n", out.path)
	}
}

func writeOutput(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0644)
}

func buildDocumentation() []SectionDoc {
	defaults := config.GetDefaults()

	return []SectionDoc{
		extractSection("dashboard", "Initial filters and page settings", defaults.Dashboard),
		extractSection("server", "HTTP server for `empdash serve`", defaults.Server),
		extractSection("export", "File downloads and `empdash export`", defaults.Export),
		extractSection("log", "Structured logging", defaults.Log),
		extractSection("telemetry", "OpenTelemetry tracing (disabled unless an endpoint is set)", defaults.Telemetry),
	}
}

// extractSection uses reflection to extract field documentation from struct tags
func extractSection(name, description string, defaultValue interface{}) SectionDoc {
	section := SectionDoc{
		Name:        name,
		Description: description,
		Fields:      []FieldDoc{},
	}

	t := reflect.TypeOf(defaultValue)
	v := reflect.ValueOf(defaultValue)

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		// Skip unexported fields
		if !field.IsExported() {
			continue
		}

		// Skip internal fields (no doc tag)
		docTag := field.Tag.Get("doc")
		tomlTag := field.Tag.Get("toml")
		if docTag == "" || tomlTag == "" {
			continue
		}

		fieldDoc := FieldDoc{
			Name:        tomlTag,
			Type:        getFieldType(field.Type),
			Default:     getDefaultValue(v.Field(i)),
			Env:         field.Tag.Get("env"),
			Description: docTag,
		}

		if enumTag := field.Tag.Get("enum"); enumTag != "" {
			fieldDoc.ValidValues = strings.Split(enumTag, ",")
		}

		section.Fields = append(section.Fields, fieldDoc)
	}

	return section
}

// getFieldType returns a string representation of the field type
func getFieldType(t reflect.Type) string {
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "int"
	case reflect.Float32, reflect.Float64:
		return "float"
	case reflect.Bool:
		return "bool"
	case reflect.Slice:
		return "[]" + getFieldType(t.Elem())
	case reflect.Ptr:
		return getFieldType(t.Elem())
	default:
		return t.String()
	}
}

// getDefaultValue returns the TOML literal of the default value, or "" when unset
func getDefaultValue(v reflect.Value) string {
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return ""
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.String:
		if v.String() == "" {
			return ""
		}
		return strconv.Quote(v.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Float32, reflect.Float64:
		s := strconv.FormatFloat(v.Float(), 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	case reflect.Slice:
		if v.Len() == 0 {
			return ""
		}
		items := make([]string, v.Len())
		for i := range items {
			items[i] = getDefaultValue(v.Index(i))
		}
		return "[" + strings.Join(items, ", ") + "]"
	default:
		return ""
	}
}

func exampleTOML(docs []SectionDoc) (string, error) {
	var sb strings.Builder

	sb.WriteString(`# =============================================================================
# empdash Configuration Reference
# =============================================================================
# This is a comprehensive example showing ALL available configuration options.
# Copy sections you need to your own empdash.toml, or run "empdash init".
#
# Precedence: command-line flags > EMPDASH_* environment > this file > defaults
# =============================================================================

`)

	for _, section := range docs {
		sb.WriteString("# -----------------------------------------------------------------------------\n")
		sb.WriteString(fmt.Sprintf("# [%s] - %s\n", section.Name, section.Description))
		sb.WriteString("# -----------------------------------------------------------------------------\n\n")
		sb.WriteString(fmt.Sprintf("[%s]\n", section.Name))

		for _, field := range section.Fields {
			sb.WriteString(fmt.Sprintf("# %s\n", field.Description))
			if field.Env != "" {
				sb.WriteString(fmt.Sprintf("# Environment: %s\n", field.Env))
			}
			if len(field.ValidValues) > 0 {
				sb.WriteString(fmt.Sprintf("# Valid values: %s\n", strings.Join(field.ValidValues, ", ")))
			}
			if field.Default == "" {
				sb.WriteString(fmt.Sprintf("# %s = \n", field.Name))
			} else {
				sb.WriteString(fmt.Sprintf("%s = %s\n", field.Name, field.Default))
			}
			sb.WriteString("\n")
		}
	}

	return sb.String(), nil
}

func jsonSchema(docs []SectionDoc) (string, error) {
	properties := map[string]interface{}{}

	for _, section := range docs {
		fields := map[string]interface{}{}
		for _, field := range section.Fields {
			fieldSchema := map[string]interface{}{
				"description": field.Description,
			}

			switch field.Type {
			case "string":
				fieldSchema["type"] = "string"
			case "int":
				fieldSchema["type"] = "integer"
			case "float":
				fieldSchema["type"] = "number"
			case "bool":
				fieldSchema["type"] = "boolean"
			case "[]string":
				fieldSchema["type"] = "array"
				fieldSchema["items"] = map[string]string{"type": "string"}
			}

			if field.Default != "" {
				var def interface{}
				if err := json.Unmarshal([]byte(field.Default), &def); err == nil {
					fieldSchema["default"] = def
				}
			}

			if len(field.ValidValues) > 0 {
				fieldSchema["enum"] = field.ValidValues
			}

			fields[field.Name] = fieldSchema
		}

		properties[section.Name] = map[string]interface{}{
			"type":                 "object",
			"description":          section.Description,
			"properties":           fields,
			"additionalProperties": false,
		}
	}

	schema := map[string]interface{}{
		"$schema":              "http://json-schema.org/draft-07/schema#",
		"title":                "empdash Configuration",
		"description":          "Configuration schema for the empdash employee dashboard",
		"type":                 "object",
		"properties":           properties,
		"additionalProperties": false,
	}

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}

func markdownDocs(docs []SectionDoc) (string, error) {
	var sb strings.Builder

	sb.WriteString("# Configuration\n\n")
	sb.WriteString("empdash reads `empdash.toml` from the working directory, or the file given with `-config`.\n")
	sb.WriteString("Unknown keys are rejected. Run `empdash validate` to check a file and `empdash init` to create one.\n\n")
	sb.WriteString("Values are resolved in this order, later wins: built-in defaults, the config file, `EMPDASH_*` environment variables, command-line flags.\n\n")

	for _, section := range docs {
		sb.WriteString("### `[" + section.Name + "]`\n\n")
		sb.WriteString(section.Description + "\n\n")

		sb.WriteString("| Field | Type | Default | Environment | Description |\n")
		sb.WriteString("|-------|------|---------|-------------|-------------|\n")

		for _, field := range section.Fields {
			defaultVal := "-"
			if field.Default != "" {
				defaultVal = "`" + field.Default + "`"
			}
			env := "-"
			if field.Env != "" {
				env = "`" + field.Env + "`"
			}
			desc := field.Description
			if len(field.ValidValues) > 0 {
				desc += fmt.Sprintf(" (valid: `%s`)", strings.Join(field.ValidValues, "`, `"))
			}
			sb.WriteString(fmt.Sprintf("| `%s` | %s | %s | %s | %s |\n",
				field.Name, field.Type, defaultVal, env, desc))
		}

		sb.WriteString("\n")
	}

	return sb.String(), nil
}
