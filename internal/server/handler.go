package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strconv"

	"go.opentelemetry.io/otel/attribute"

	"github.com/drew/empdash/internal/chart"
	"github.com/drew/empdash/internal/dashboard"
	"github.com/drew/empdash/internal/export"
	"github.com/drew/empdash/internal/model"
	"github.com/drew/empdash/internal/pipeline"
	"github.com/drew/empdash/internal/telemetry"
)

// Route paths
const (
	PathDownloadCSV  = "/download.csv"
	PathDownloadXLSX = "/download.xlsx"
	PathAPIView      = "/api/view"
	PathChartSalary  = "/chart/salary.png"
	PathChartDept    = "/chart/departments.png"
	PathHealth       = "/healthz"
)

const (
	contentTypeHTML = "text/html; charset=utf-8"
	contentTypePNG  = "image/png"
	contentTypeText = "text/plain; charset=utf-8"
	contentTypeJSON = "application/json"
)

// Handler returns the routed handler wrapped in tracing and access logging
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("GET "+PathDownloadCSV, s.handleDownload(export.FormatCSV))
	mux.HandleFunc("GET "+PathDownloadXLSX, s.handleDownload(export.FormatXLSX))
	mux.HandleFunc("GET "+PathAPIView, s.handleAPIView)
	mux.HandleFunc("GET "+PathChartSalary, s.handleChart(func(r model.Result) chart.Spec {
		return chart.SalaryByEmployee(r.Rows)
	}))
	mux.HandleFunc("GET "+PathChartDept, s.handleChart(func(r model.Result) chart.Spec {
		return chart.AverageByDepartment(r.Departments)
	}))
	mux.HandleFunc("GET "+PathHealth, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", contentTypeText)
		_, _ = w.Write([]byte("ok"))
	})
	return traced(s.accessLog(mux))
}

// evaluate parses filter params from r and runs the pipeline
func (s *Server) evaluate(w http.ResponseWriter, r *http.Request) (model.Result, bool) {
	params, err := s.params(r.URL.Query())
	if err != nil {
		var pe *paramError
		if errors.As(err, &pe) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return model.Result{}, false
		}
		s.fail(r.Context(), w, "parse params", err)
		return model.Result{}, false
	}

	_, span := telemetry.Tracer().Start(r.Context(), "pipeline.Run")
	result := pipeline.Run(s.employees, params, s.cfg.BonusRate)
	span.SetAttributes(
		attribute.Float64("empdash.min_salary", params.MinSalary),
		attribute.StringSlice("empdash.departments", params.Departments),
		attribute.Int("empdash.rows", len(result.Rows)),
	)
	span.End()

	s.log.DebugContext(r.Context(), "view computed",
		"min_salary", params.MinSalary,
		"departments", params.Departments,
		"rows", len(result.Rows))
	return result, true
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	result, ok := s.evaluate(w, r)
	if !ok {
		return
	}

	qs := "?" + query(result.Params).Encode()
	page := dashboard.NewPage(s.cfg.Title, s.employees, result)
	page.Live = true
	page.FileName = s.cfg.FileName
	page.SalaryChart = PathChartSalary + qs
	page.DepartmentChart = PathChartDept + qs
	page.CSVLink = PathDownloadCSV + qs
	page.XLSXLink = PathDownloadXLSX + qs
	page.JSONLink = PathAPIView + qs

	var buf bytes.Buffer
	if err := dashboard.RenderPage(&buf, page); err != nil {
		s.fail(r.Context(), w, "render page", err)
		return
	}
	w.Header().Set("Content-Type", contentTypeHTML)
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleDownload(format export.Format) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, ok := s.evaluate(w, r)
		if !ok {
			return
		}

		var buf bytes.Buffer
		if err := export.Write(&buf, format, result.Rows); err != nil {
			s.fail(r.Context(), w, "encode "+string(format), err)
			return
		}
		w.Header().Set("Content-Type", format.ContentType())
		w.Header().Set("Content-Disposition", attachment(format.FileName(s.cfg.FileName)))
		w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
		_, _ = buf.WriteTo(w)
	}
}

// attachment builds a Content-Disposition value, using RFC 2231 encoding for
// names outside the token set. A name that cannot be encoded falls back to a
// bare attachment.
func attachment(name string) string {
	if v := mime.FormatMediaType("attachment", map[string]string{"filename": name}); v != "" {
		return v
	}
	return "attachment"
}

func (s *Server) handleAPIView(w http.ResponseWriter, r *http.Request) {
	result, ok := s.evaluate(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(result); err != nil {
		s.fail(r.Context(), w, "encode view", err)
		return
	}
	w.Header().Set("Content-Type", contentTypeJSON)
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleChart(build func(model.Result) chart.Spec) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, ok := s.evaluate(w, r)
		if !ok {
			return
		}

		var buf bytes.Buffer
		if err := build(result).WritePNG(&buf); err != nil {
			s.fail(r.Context(), w, "render chart", err)
			return
		}
		w.Header().Set("Content-Type", contentTypePNG)
		w.Header().Set("Cache-Control", "no-store")
		_, _ = buf.WriteTo(w)
	}
}

// fail logs err and answers 500
func (s *Server) fail(ctx context.Context, w http.ResponseWriter, op string, err error) {
	s.log.ErrorContext(ctx, op+" failed", "error", err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
