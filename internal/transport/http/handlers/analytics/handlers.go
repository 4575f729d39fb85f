package analyticshandler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"hranalytics/internal/domain/analytics"
	"hranalytics/internal/transport/http/api"
	"hranalytics/internal/transport/http/middleware"
	"hranalytics/internal/transport/http/shared"
)

type Handler struct {
	Service *analytics.Service
}

func NewHandler(service *analytics.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/analytics", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/dashboard", h.handleDashboard)
		r.Get("/reports", h.handleReports)
		r.Get("/metrics", h.handleMetrics)
		r.Get("/payroll-runs/{runID}/summary", h.handlePayrollRunSummary)
		r.Get("/payroll-runs/{runID}/summary.pdf", h.handlePayrollRunSummaryPDF)
		r.Get("/employees", h.handleEmployeeAnalytics)
		r.Get("/financial", h.handleFinancialSummary)
	})
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.Service.Dashboard(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	api.Success(w, dashboard, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleReports(w http.ResponseWriter, r *http.Request) {
	reportType := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("type")))
	if reportType == "" {
		reportType = analytics.ReportAll
	}

	validator := shared.NewValidator()
	if !analytics.ValidReportType(reportType) {
		validator.Add("type", "must be one of all, payroll, employee, attendance")
	}
	if validator.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	bundle, err := h.Service.Reports(r.Context(), reportType)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	api.Success(w, bundle, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleMetrics(w http.ResponseWriter, r *http.Request) {
	bundle, err := h.Service.Metrics(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	api.Success(w, bundle, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handlePayrollRunSummary(w http.ResponseWriter, r *http.Request) {
	runID, ok := h.parseRunID(w, r)
	if !ok {
		return
	}

	summary, err := h.Service.PayrollRunSummary(r.Context(), runID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	api.Success(w, summary, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handlePayrollRunSummaryPDF(w http.ResponseWriter, r *http.Request) {
	runID, ok := h.parseRunID(w, r)
	if !ok {
		return
	}

	summary, err := h.Service.PayrollRunSummary(r.Context(), runID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	rendered, err := analytics.RenderPayrollSummaryPDF(summary)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "render_failed", "failed to render summary", middleware.GetRequestID(r.Context()))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=payroll-run-%d-summary.pdf", runID))
	_, _ = w.Write(rendered)
}

func (h *Handler) handleEmployeeAnalytics(w http.ResponseWriter, r *http.Request) {
	validator := shared.NewValidator()
	now := time.Now()
	start := now.AddDate(-1, 0, 0)
	end := now

	if raw := r.URL.Query().Get("start_date"); raw != "" {
		if parsed, ok := validator.Date("start_date", raw); ok {
			start = parsed
		}
	}
	if raw := r.URL.Query().Get("end_date"); raw != "" {
		if parsed, ok := validator.Date("end_date", raw); ok {
			end = parsed
		}
	}
	// An inverted range is not an error; it yields an empty turnover
	// series downstream.
	if validator.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	report, err := h.Service.EmployeeAnalytics(r.Context(), start, end)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	api.Success(w, report, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleFinancialSummary(w http.ResponseWriter, r *http.Request) {
	validator := shared.NewValidator()
	year := time.Now().Year()

	if raw := r.URL.Query().Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			validator.Add("year", "must be an integer year")
		} else {
			validator.IntRange("year", parsed, 1900, 2200, "must be between 1900 and 2200")
			year = parsed
		}
	}
	if validator.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	summary, err := h.Service.FinancialSummary(r.Context(), year)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	api.Success(w, summary, middleware.GetRequestID(r.Context()))
}

func (h *Handler) parseRunID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "runID")
	runID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || runID <= 0 {
		api.Fail(w, http.StatusBadRequest, "validation_error", "run id must be a positive integer", middleware.GetRequestID(r.Context()))
		return 0, false
	}
	return runID, true
}

// writeServiceError translates domain failures; detail was already
// logged at capture inside the service.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, analytics.ErrRunNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "payroll run not found", requestID)
	case errors.Is(err, analytics.ErrSourceUnavailable):
		api.Fail(w, http.StatusServiceUnavailable, "source_unavailable", "data source unavailable, retry later", requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, "internal_error", "failed to generate analytics", requestID)
	}
}
