package config

import "time"

// GetDefaults returns the default configuration
func GetDefaults() Config {
	return Config{
		Dashboard: DashboardConfig{
			Title:     "Employee Data Analysis Dashboard",
			MinSalary: float64Ptr(50000),
			BonusRate: float64Ptr(0.10),
			UIMode:    "basic",
		},
		Server: ServerConfig{
			Addr:                "localhost:8501",
			ReadHeaderTimeoutMs: 5000,
			ShutdownTimeoutMs:   5000,
		},
		Export: ExportConfig{
			FileName: "filtered_employees.csv",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Telemetry: TelemetryConfig{
			ServiceName: "empdash",
		},
	}
}

// MergeWithDefaults merges loaded config with defaults
func MergeWithDefaults(cfg *Config) Config {
	defaults := GetDefaults()

	if cfg == nil {
		return defaults
	}

	merged := *cfg

	if merged.Dashboard.Title == "" {
		merged.Dashboard.Title = defaults.Dashboard.Title
	}
	if merged.Dashboard.MinSalary == nil {
		merged.Dashboard.MinSalary = defaults.Dashboard.MinSalary
	}
	if merged.Dashboard.BonusRate == nil {
		merged.Dashboard.BonusRate = defaults.Dashboard.BonusRate
	}
	if merged.Dashboard.UIMode == "" {
		merged.Dashboard.UIMode = defaults.Dashboard.UIMode
	}

	if merged.Server.Addr == "" {
		merged.Server.Addr = defaults.Server.Addr
	}
	if merged.Server.ReadHeaderTimeoutMs == 0 {
		merged.Server.ReadHeaderTimeoutMs = defaults.Server.ReadHeaderTimeoutMs
	}
	if merged.Server.ShutdownTimeoutMs == 0 {
		merged.Server.ShutdownTimeoutMs = defaults.Server.ShutdownTimeoutMs
	}

	if merged.Export.FileName == "" {
		merged.Export.FileName = defaults.Export.FileName
	}

	if merged.Log.Level == "" {
		merged.Log.Level = defaults.Log.Level
	}
	if merged.Log.Format == "" {
		merged.Log.Format = defaults.Log.Format
	}

	if merged.Telemetry.ServiceName == "" {
		merged.Telemetry.ServiceName = defaults.Telemetry.ServiceName
	}

	return merged
}

// ReadHeaderTimeout returns the configured header timeout as a duration
func (s ServerConfig) ReadHeaderTimeout() time.Duration {
	return time.Duration(s.ReadHeaderTimeoutMs) * time.Millisecond
}

// ShutdownTimeout returns the configured shutdown timeout as a duration
func (s ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(s.ShutdownTimeoutMs) * time.Millisecond
}

func float64Ptr(f float64) *float64 {
	return &f
}
