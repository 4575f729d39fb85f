package analytics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
)

// Report type selectors accepted by Reports.
const (
	ReportAll        = "all"
	ReportPayroll    = "payroll"
	ReportEmployee   = "employee"
	ReportAttendance = "attendance"
)

// Service assembles reports and metric bundles from row-source
// fetches. It holds no mutable state and is safe for concurrent use.
type Service struct {
	store   StoreAPI
	samples SampleProvider
	now     func() time.Time
}

func NewService(store StoreAPI, samples SampleProvider) *Service {
	return &Service{store: store, samples: samples, now: time.Now}
}

// PayrollRunSummary computes the full summary for one payroll run.
// A missing run is ErrRunNotFound; any other fetch failure is a
// source failure for the whole request.
func (s *Service) PayrollRunSummary(ctx context.Context, runID int64) (PayrollSummary, error) {
	run, err := s.store.RunByID(ctx, runID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return PayrollSummary{}, ErrRunNotFound
		}
		return PayrollSummary{}, s.sourceFailure("payroll run lookup", err)
	}

	payslips, err := s.store.PayslipsForRun(ctx, runID)
	if err != nil {
		return PayrollSummary{}, s.sourceFailure("payslips fetch", err)
	}

	return BuildPayrollSummary(run, payslips), nil
}

// EmployeeAnalytics combines demographics, department distribution and
// the turnover series for the inclusive [start, end] window. A window
// with start after end is legal and simply yields an empty series.
func (s *Service) EmployeeAnalytics(ctx context.Context, start, end time.Time) (EmployeeAnalytics, error) {
	employees, err := s.store.ActiveEmployees(ctx)
	if err != nil {
		return EmployeeAnalytics{}, s.sourceFailure("active employees fetch", err)
	}
	departments, err := s.store.Departments(ctx)
	if err != nil {
		return EmployeeAnalytics{}, s.sourceFailure("departments fetch", err)
	}
	staff, err := s.store.ActiveStaff(ctx)
	if err != nil {
		return EmployeeAnalytics{}, s.sourceFailure("staff fetch", err)
	}
	terminations, err := s.store.TerminationDates(ctx, start, end)
	if err != nil {
		return EmployeeAnalytics{}, s.sourceFailure("terminations fetch", err)
	}

	demographics := Demographics(employees, s.now())
	distribution := DepartmentDistributions(departments, staff)

	staffed := 0
	for _, dept := range distribution {
		if dept.EmployeeCount > 0 {
			staffed++
		}
	}

	return EmployeeAnalytics{
		Demographics:           demographics,
		DepartmentDistribution: distribution,
		TurnoverAnalysis:       TurnoverSeries(terminations, start, end),
		Summary: EmployeeSummary{
			TotalActiveEmployees: staffed,
			TotalDepartments:     len(distribution),
			// Mean of the group means, kept for parity with the
			// historical figure; not a population-weighted mean.
			AvgTenureDays: MeanOfGroupMeans(demographics),
		},
	}, nil
}

// FinancialSummary rolls up one calendar year. Months without a
// completed run are absent from monthly_payroll; annual totals sum
// whatever months are present.
func (s *Service) FinancialSummary(ctx context.Context, year int) (FinancialSummary, error) {
	runs, err := s.store.CompletedRunTotalsInYear(ctx, year)
	if err != nil {
		return FinancialSummary{}, s.sourceFailure("yearly run totals fetch", err)
	}
	deductions, err := s.store.DeductionsInYear(ctx, year)
	if err != nil {
		return FinancialSummary{}, s.sourceFailure("yearly deductions fetch", err)
	}

	monthly := MonthlyRollup(runs)
	return FinancialSummary{
		Year:              year,
		MonthlyPayroll:    monthly,
		BenefitsBreakdown: DeductionBreakdown(deductions),
		AnnualTotals:      AnnualTotalsOf(monthly),
	}, nil
}

// Dashboard builds the combined dashboard payload. Unlike Reports,
// every section here is required: the first failed query fails the
// whole request.
func (s *Service) Dashboard(ctx context.Context) (Dashboard, error) {
	statuses, err := s.store.EmployeeStatuses(ctx)
	if err != nil {
		return Dashboard{}, s.sourceFailure("employee statuses fetch", err)
	}
	runs, err := s.store.CompletedRunTotals(ctx)
	if err != nil {
		return Dashboard{}, s.sourceFailure("completed runs fetch", err)
	}
	departments, err := s.store.Departments(ctx)
	if err != nil {
		return Dashboard{}, s.sourceFailure("departments fetch", err)
	}
	staff, err := s.store.ActiveStaff(ctx)
	if err != nil {
		return Dashboard{}, s.sourceFailure("staff fetch", err)
	}

	distribution := DepartmentDistributions(departments, staff)
	headcounts := make([]DepartmentHeadcount, 0, len(distribution))
	for _, dept := range distribution {
		headcounts = append(headcounts, DepartmentHeadcount{Department: dept.Department, EmployeeCount: dept.EmployeeCount})
	}

	return Dashboard{
		EmployeeStats:    EmployeeStatsOf(statuses, s.now()),
		PayrollStats:     PayrollStatsOf(runs),
		DepartmentStats:  headcounts,
		RecentActivities: s.samples.RecentActivities(s.now()),
	}, nil
}

// Reports computes the sub-reports selected by reportType. For the
// composite "all" request each sub-report is an independent section: a
// failed one is logged once and degrades to null instead of sinking
// the other sections.
func (s *Service) Reports(ctx context.Context, reportType string) (ReportBundle, error) {
	var bundle ReportBundle

	if reportType == ReportPayroll || reportType == ReportAll {
		report, err := s.store.RecentRunReport(ctx, 12)
		if err == nil {
			if report == nil {
				report = []RunReportRow{}
			}
			bundle.PayrollReport = report
		} else if !s.tolerateSection(reportType, "payroll report", err) {
			return ReportBundle{}, s.sourceFailure("payroll report fetch", err)
		}
	}

	if reportType == ReportEmployee || reportType == ReportAll {
		employees, err := s.store.ActiveEmployees(ctx)
		if err == nil {
			bundle.EmployeeReport = GenderBreakdown(employees, s.now())
		} else if !s.tolerateSection(reportType, "employee report", err) {
			return ReportBundle{}, s.sourceFailure("employee report fetch", err)
		}
	}

	if reportType == ReportAttendance || reportType == ReportAll {
		bundle.AttendanceReport = s.samples.AttendanceReport()
	}

	return bundle, nil
}

// Metrics is pure composition: three independent aggregates, no
// cross-metric derivation.
func (s *Service) Metrics(ctx context.Context) (MetricsBundle, error) {
	statuses, err := s.store.EmployeeStatuses(ctx)
	if err != nil {
		return MetricsBundle{}, s.sourceFailure("employee statuses fetch", err)
	}
	trailing, err := s.store.CompletedRunTotalsSince(ctx, s.now().AddDate(-1, 0, 0))
	if err != nil {
		return MetricsBundle{}, s.sourceFailure("trailing run totals fetch", err)
	}

	stats := EmployeeStatsOf(statuses, s.now())
	return MetricsBundle{
		EmployeeMetrics: EmployeeMetrics{
			TotalEmployees:  stats.TotalEmployees,
			ActiveEmployees: stats.ActiveEmployees,
			AvgTenureDays:   stats.AvgTenureDays,
		},
		PayrollMetrics:      PayrollMetricsOf(trailing),
		ProductivityMetrics: s.samples.ProductivityMetrics(),
	}, nil
}

// ValidReportType reports whether the selector is one Reports accepts.
func ValidReportType(reportType string) bool {
	switch reportType {
	case ReportAll, ReportPayroll, ReportEmployee, ReportAttendance:
		return true
	}
	return false
}

// tolerateSection logs a failed sub-report once and tells the caller
// whether the composite request should carry on without it.
func (s *Service) tolerateSection(reportType, section string, err error) bool {
	if reportType != ReportAll {
		return false
	}
	slog.Error("report section degraded", "section", section, "err", err)
	return true
}

// sourceFailure logs the fetch failure once at capture and wraps it as
// a retryable source error; the raw detail never crosses the HTTP
// boundary.
func (s *Service) sourceFailure(operation string, err error) error {
	slog.Error("row source failure", "operation", operation, "err", err)
	return fmt.Errorf("%w: %s", ErrSourceUnavailable, operation)
}
