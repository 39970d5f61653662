// Package server exposes the employee dashboard over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/drew/empdash/internal/dataset"
	"github.com/drew/empdash/internal/export"
	"github.com/drew/empdash/internal/logger"
	"github.com/drew/empdash/internal/model"
	"github.com/drew/empdash/internal/pipeline"
)

// Config holds the server settings resolved from config file, env and flags
type Config struct {
	Addr              string
	Title             string
	FileName          string
	BonusRate         float64
	MinSalary         float64
	Departments       []string
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
	Logger            *slog.Logger
}

// Server serves the dashboard page, downloads, charts and the JSON view
type Server struct {
	cfg         Config
	log         *slog.Logger
	employees   []model.Employee
	departments []string
	salaryLo    float64
	salaryHi    float64
	defaults    model.Params
	httpServer  *http.Server
}

// New builds a server over employees. Default departments are resolved once
// so an invalid pattern fails at startup rather than per request.
func New(cfg Config, employees []model.Employee) (*Server, error) {
	if cfg.Logger == nil {
		cfg.Logger = logger.Discard()
	}
	if cfg.FileName == "" {
		cfg.FileName = export.DefaultFileName
	}
	if cfg.ReadHeaderTimeout <= 0 {
		cfg.ReadHeaderTimeout = 5 * time.Second
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 5 * time.Second
	}

	s := &Server{
		cfg:         cfg,
		log:         cfg.Logger.With("component", "server"),
		employees:   employees,
		departments: dataset.Departments(employees),
	}
	s.salaryLo, s.salaryHi = dataset.SalaryRange(employees)

	depts := s.departments
	if len(cfg.Departments) > 0 {
		resolved, err := pipeline.ResolveDepartments(cfg.Departments, s.departments)
		if err != nil {
			return nil, err
		}
		depts = resolved
	}
	s.defaults = model.Params{
		MinSalary:   pipeline.ClampSalary(cfg.MinSalary, s.salaryLo, s.salaryHi),
		Departments: depts,
	}

	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
	return s, nil
}

// ListenAndServe runs the HTTP server until the context ends.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until the context ends, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.log.Info("dashboard listening", "addr", ln.Addr().String())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve http: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		s.log.Info("dashboard stopped")
		return nil
	})
	return g.Wait()
}
