// empdash - employee dashboard
//
// Filters the built-in employee table by minimum salary and department and
// shows the result as an HTTP dashboard, a terminal report, file exports or a
// static report directory.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/drew/empdash/internal/config"
	"github.com/drew/empdash/internal/dashboard"
	"github.com/drew/empdash/internal/dataset"
	"github.com/drew/empdash/internal/export"
	"github.com/drew/empdash/internal/logger"
	"github.com/drew/empdash/internal/model"
	"github.com/drew/empdash/internal/pipeline"
	"github.com/drew/empdash/internal/server"
	"github.com/drew/empdash/internal/telemetry"
	"github.com/drew/empdash/internal/ui"
)

// sliceFlag allows repeating -dept
type sliceFlag []string

func (s *sliceFlag) String() string {
	return fmt.Sprintf("%v", *s)
}

func (s *sliceFlag) Set(val string) error {
	*s = append(*s, val)
	return nil
}

const defaultReportDir = "empdash-report"

var commands = []string{"serve", "show", "export", "report", "validate", "init"}

// options holds every CLI flag; set records which ones were given explicitly
type options struct {
	config    string
	minSalary float64
	depts     sliceFlag
	uiMode    string
	noColor   bool
	verbose   bool
	addr      string
	format    string
	output    string
	outDir    string
	set       map[string]bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one CLI invocation and returns the process exit code
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := "serve"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		cmd, args = args[0], args[1:]
	}

	opts, err := parseFlags(cmd, args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "ERROR: %v\n", err)
		return 2
	}

	switch cmd {
	case "validate":
		return runValidate(opts, stdout, stderr)
	case "init":
		return runInit(opts, stdout, stderr)
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(stderr, "ERROR: %v\n", err)
		return 1
	}

	result, err := config.ValidateConfig(&cfg)
	if err != nil {
		fmt.Fprintf(stderr, "ERROR: %v\n", err)
		return 1
	}
	if !result.Valid || (opts.verbose && len(result.Warnings) > 0) {
		path := opts.config
		if path == "" {
			path = config.DefaultPath
		}
		config.PrintValidationResult(stderr, path, result)
		if !result.Valid {
			return 1
		}
	}

	log, err := logger.New(stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintf(stderr, "ERROR: %v\n", err)
		return 1
	}

	shutdown, err := telemetry.Setup(ctx, cfg.Telemetry.Endpoint, cfg.Telemetry.ServiceName)
	if err != nil {
		log.Warn("tracing disabled", "error", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			log.Warn("flush traces", "error", err)
		}
	}()

	enableColors := !opts.noColor && ui.IsColorEnabled(stdout)
	renderer := ui.NewRenderer(stdout, ui.ParseUIMode(cfg.Dashboard.UIMode), enableColors)

	switch cmd {
	case "serve":
		err = runServe(ctx, cfg, log, renderer)
	case "show":
		err = runShow(cfg, opts, renderer)
	case "export":
		err = runExport(cfg, opts, stdout, renderer)
	case "report":
		err = runReport(ctx, cfg, opts, renderer)
	}
	if err != nil {
		log.Error(cmd+" failed", "error", err)
		fmt.Fprintf(stderr, "ERROR: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags(cmd string, args []string, stderr io.Writer) (*options, error) {
	known := false
	for _, c := range commands {
		if c == cmd {
			known = true
		}
	}
	if !known {
		return nil, fmt.Errorf("unknown command %q (want %s)", cmd, strings.Join(commands, ", "))
	}

	opts := &options{set: map[string]bool{}}
	fs := flag.NewFlagSet("empdash "+cmd, flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.config, "config", "", "Path to config file (default: empdash.toml)")
	fs.Float64Var(&opts.minSalary, "min-salary", pipeline.DefaultMinSalary, "Minimum salary filter (overrides config)")
	fs.Var(&opts.depts, "dept", "Select a department or glob pattern (can be specified multiple times)")
	fs.StringVar(&opts.uiMode, "ui", "basic", "UI mode: basic, full")
	fs.BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	fs.BoolVar(&opts.verbose, "verbose", false, "Verbose output")

	switch cmd {
	case "serve":
		fs.StringVar(&opts.addr, "addr", "", "HTTP listen address (overrides config)")
	case "export":
		fs.StringVar(&opts.format, "format", "csv", "Export format: csv, xlsx, json")
		fs.StringVar(&opts.output, "o", "", "Output file, - for stdout (default: configured file name)")
	case "report":
		fs.StringVar(&opts.outDir, "out", defaultReportDir, "Report output directory")
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })
	return opts, nil
}

// loadConfig applies file, env and then explicit flags on top of defaults
func loadConfig(opts *options) (config.Config, error) {
	cfg, err := config.Load(opts.config)
	if err != nil {
		return config.Config{}, err
	}

	if opts.set["min-salary"] {
		v := opts.minSalary
		cfg.Dashboard.MinSalary = &v
	}
	if opts.set["dept"] {
		cfg.Dashboard.Departments = opts.depts
	}
	if opts.set["ui"] {
		cfg.Dashboard.UIMode = opts.uiMode
	}
	if opts.set["addr"] {
		cfg.Server.Addr = opts.addr
	}
	return cfg, nil
}

// evaluate runs the pipeline once with the configured filters
func evaluate(cfg config.Config) (model.Result, []model.Employee, error) {
	employees := dataset.Sample()
	params := pipeline.DefaultParams(employees, *cfg.Dashboard.MinSalary)
	if len(cfg.Dashboard.Departments) > 0 {
		depts, err := pipeline.ResolveDepartments(cfg.Dashboard.Departments, params.Departments)
		if err != nil {
			return model.Result{}, nil, err
		}
		params.Departments = depts
	}
	return pipeline.Run(employees, params, *cfg.Dashboard.BonusRate), employees, nil
}

func runServe(ctx context.Context, cfg config.Config, log *slog.Logger, renderer *ui.Renderer) error {
	srv, err := server.New(server.Config{
		Addr:              cfg.Server.Addr,
		Title:             cfg.Dashboard.Title,
		FileName:          cfg.Export.FileName,
		BonusRate:         *cfg.Dashboard.BonusRate,
		MinSalary:         *cfg.Dashboard.MinSalary,
		Departments:       cfg.Dashboard.Departments,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout(),
		ShutdownTimeout:   cfg.Server.ShutdownTimeout(),
		Logger:            log,
	}, dataset.Sample())
	if err != nil {
		return err
	}
	renderer.Success("%s at http://%s", cfg.Dashboard.Title, cfg.Server.Addr)
	return srv.ListenAndServe(ctx)
}

func runShow(cfg config.Config, opts *options, renderer *ui.Renderer) error {
	result, _, err := evaluate(cfg)
	if err != nil {
		return err
	}
	renderer.Verbose(opts.verbose, "Bonus rate %.2f, %d row(s)", *cfg.Dashboard.BonusRate, len(result.Rows))
	renderer.Render(cfg.Dashboard.Title, result)
	return nil
}

func runExport(cfg config.Config, opts *options, stdout io.Writer, renderer *ui.Renderer) (err error) {
	format, err := export.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	result, _, err := evaluate(cfg)
	if err != nil {
		return err
	}

	path := opts.output
	if path == "" {
		path = format.FileName(cfg.Export.FileName)
	}
	if path == "-" {
		return export.Write(stdout, format, result.Rows)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()
	if err := export.Write(f, format, result.Rows); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	renderer.Success("Wrote %d row(s) to %s", len(result.Rows), path)
	return nil
}

func runReport(ctx context.Context, cfg config.Config, opts *options, renderer *ui.Renderer) error {
	result, employees, err := evaluate(cfg)
	if err != nil {
		return err
	}
	page := dashboard.NewPage(cfg.Dashboard.Title, employees, result)
	page.FileName = cfg.Export.FileName
	if err := dashboard.WriteReport(ctx, opts.outDir, page); err != nil {
		return err
	}
	renderer.Success("Report written to %s", opts.outDir)
	return nil
}

func runValidate(opts *options, stdout, stderr io.Writer) int {
	path := opts.config
	if path == "" {
		path = config.DefaultPath
	}
	result, err := config.ValidateConfigFile(path)
	if err != nil {
		fmt.Fprintf(stderr, "ERROR: %v\n", err)
		return 1
	}
	config.PrintValidationResult(stdout, path, result)
	if !result.Valid {
		return 1
	}
	return 0
}

func runInit(opts *options, stdout, stderr io.Writer) int {
	path := opts.config
	if path == "" {
		path = config.DefaultPath
	}
	if err := config.GenerateDefaultConfig(path); err != nil {
		fmt.Fprintf(stderr, "ERROR: %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "Generated %s\n", path)
	return 0
}
