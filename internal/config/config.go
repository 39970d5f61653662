// Package config handles loading, validation, and merging of empdash configuration files.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

// DefaultPath is the config file looked up when no -config flag is given
const DefaultPath = "empdash.toml"

// Config represents the complete empdash configuration
type Config struct {
	Dashboard DashboardConfig `toml:"dashboard"`
	Server    ServerConfig    `toml:"server"`
	Export    ExportConfig    `toml:"export"`
	Log       LogConfig       `toml:"log"`
	Telemetry TelemetryConfig `toml:"telemetry"`
}

// DashboardConfig holds the filter defaults and page settings
type DashboardConfig struct {
	// Page and terminal title
	Title string `toml:"title" doc:"Page and terminal title"`
	// Initial minimum salary filter
	MinSalary *float64 `toml:"minSalary" env:"EMPDASH_MIN_SALARY" doc:"Initial minimum salary filter; the web slider clamps it to the dataset salary range"`
	// Initially selected departments
	Departments []string `toml:"departments" doc:"Initially selected departments or glob patterns (empty selects all)"`
	// Share of salary paid as bonus
	BonusRate *float64 `toml:"bonusRate" doc:"Share of salary paid as bonus, between 0 and 1"`
	// Terminal UI mode
	UIMode string `toml:"uiMode" doc:"Terminal UI mode: basic or full" enum:"basic,full"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	// Listen address
	Addr string `toml:"addr" env:"EMPDASH_ADDR" doc:"HTTP listen address"`
	// Header read timeout
	ReadHeaderTimeoutMs int `toml:"readHeaderTimeoutMs" doc:"How long to wait for request headers, in milliseconds"`
	// Graceful shutdown timeout
	ShutdownTimeoutMs int `toml:"shutdownTimeoutMs" doc:"How long to wait for in-flight requests on shutdown, in milliseconds"`
}

// ExportConfig holds download settings
type ExportConfig struct {
	// CSV download file name
	FileName string `toml:"fileName" doc:"CSV download file name; other formats swap the extension"`
}

// LogConfig holds structured logging settings
type LogConfig struct {
	// Minimum level
	Level string `toml:"level" env:"EMPDASH_LOG_LEVEL" doc:"Minimum log level" enum:"debug,info,warn,error"`
	// Handler format
	Format string `toml:"format" env:"EMPDASH_LOG_FORMAT" doc:"Log output format" enum:"json,text"`
}

// TelemetryConfig holds tracing settings
type TelemetryConfig struct {
	// OTLP/HTTP endpoint; tracing is off when empty
	Endpoint string `toml:"endpoint" env:"EMPDASH_OTEL_ENDPOINT" doc:"OTLP/HTTP traces endpoint URL; tracing is disabled when empty"`
	// Reported service name
	ServiceName string `toml:"serviceName" doc:"Service name reported with traces"`
}

// LoadConfig loads configuration from a TOML file.
// With an empty path it looks for empdash.toml and returns nil, nil when absent.
func LoadConfig(path string) (*Config, error) {
	explicitPath := path != ""
	if path == "" {
		path = DefaultPath
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		// If user explicitly specified a config file, fail
		if explicitPath {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, nil
	}

	var cfg Config
	metadata, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	// Check for unknown fields
	undecoded := metadata.Undecoded()
	if len(undecoded) > 0 {
		var unknownFields []string
		for _, key := range undecoded {
			unknownFields = append(unknownFields, key.String())
		}
		return nil, fmt.Errorf("unknown fields in config: %s", strings.Join(unknownFields, ", "))
	}

	return &cfg, nil
}

// ApplyEnv overrides config values from EMPDASH_* environment variables
func ApplyEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads the file at path (if any), merges defaults and applies the environment
func Load(path string) (Config, error) {
	fileCfg, err := LoadConfig(path)
	if err != nil {
		return Config{}, err
	}
	cfg := MergeWithDefaults(fileCfg)
	if err := ApplyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// GenerateDefaultConfig creates a minimal config file
func GenerateDefaultConfig(path string) (err error) {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close config file: %w", cerr)
		}
	}()

	content := `# empdash configuration file

[dashboard]
title = "Employee Data Analysis Dashboard"
minSalary = 50000
# departments = ["HR", "IT"]
bonusRate = 0.10

[server]
addr = "localhost:8501"

[export]
fileName = "filtered_employees.csv"

[log]
level = "info"
format = "text"
`

	if _, err := f.WriteString(content); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
