package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
)

type fakeStore struct {
	runs         map[int64]RunRow
	payslips     map[int64][]PayslipRow
	employees    []EmployeeRow
	statuses     []EmployeeStatusRow
	departments  []string
	staff        []StaffRow
	terminations []time.Time
	runTotals    []RunTotalsRow
	runReport    []RunReportRow
	deductions   []DeductionRow

	failEmployees bool
	failRunReport bool
}

var errBoom = errors.New("connection refused")

func (f *fakeStore) RunByID(ctx context.Context, runID int64) (RunRow, error) {
	run, ok := f.runs[runID]
	if !ok {
		return RunRow{}, pgx.ErrNoRows
	}
	return run, nil
}

func (f *fakeStore) PayslipsForRun(ctx context.Context, runID int64) ([]PayslipRow, error) {
	return f.payslips[runID], nil
}

func (f *fakeStore) ActiveEmployees(ctx context.Context) ([]EmployeeRow, error) {
	if f.failEmployees {
		return nil, errBoom
	}
	return f.employees, nil
}

func (f *fakeStore) EmployeeStatuses(ctx context.Context) ([]EmployeeStatusRow, error) {
	return f.statuses, nil
}

func (f *fakeStore) Departments(ctx context.Context) ([]string, error) {
	return f.departments, nil
}

func (f *fakeStore) ActiveStaff(ctx context.Context) ([]StaffRow, error) {
	return f.staff, nil
}

func (f *fakeStore) TerminationDates(ctx context.Context, start, end time.Time) ([]time.Time, error) {
	var inRange []time.Time
	for _, when := range f.terminations {
		if !when.Before(start) && !when.After(end) {
			inRange = append(inRange, when)
		}
	}
	return inRange, nil
}

func (f *fakeStore) CompletedRunTotals(ctx context.Context) ([]RunTotalsRow, error) {
	return f.runTotals, nil
}

func (f *fakeStore) CompletedRunTotalsInYear(ctx context.Context, year int) ([]RunTotalsRow, error) {
	var inYear []RunTotalsRow
	for _, run := range f.runTotals {
		if run.PayPeriodEnd.Year() == year {
			inYear = append(inYear, run)
		}
	}
	return inYear, nil
}

func (f *fakeStore) CompletedRunTotalsSince(ctx context.Context, since time.Time) ([]RunTotalsRow, error) {
	var trailing []RunTotalsRow
	for _, run := range f.runTotals {
		if !run.PayPeriodEnd.Before(since) {
			trailing = append(trailing, run)
		}
	}
	return trailing, nil
}

func (f *fakeStore) RecentRunReport(ctx context.Context, limit int) ([]RunReportRow, error) {
	if f.failRunReport {
		return nil, errBoom
	}
	if len(f.runReport) > limit {
		return f.runReport[:limit], nil
	}
	return f.runReport, nil
}

func (f *fakeStore) DeductionsInYear(ctx context.Context, year int) ([]DeductionRow, error) {
	return f.deductions, nil
}

func newTestService(store *fakeStore) *Service {
	svc := NewService(store, StaticSamples{})
	svc.now = func() time.Time { return date(2024, time.July, 1) }
	return svc
}

func TestPayrollRunSummaryNotFound(t *testing.T) {
	svc := newTestService(&fakeStore{runs: map[int64]RunRow{}})

	_, err := svc.PayrollRunSummary(context.Background(), 42)
	if !errors.Is(err, ErrRunNotFound) {
		t.Fatalf("expected ErrRunNotFound, got %v", err)
	}
	if errors.Is(err, ErrSourceUnavailable) {
		t.Fatalf("missing run must not look retryable: %v", err)
	}
}

func TestPayrollRunSummaryHappyPath(t *testing.T) {
	store := &fakeStore{
		runs: map[int64]RunRow{
			5: {RunID: 5, PayPeriodStart: date(2024, time.May, 1), PayPeriodEnd: date(2024, time.May, 31)},
		},
		payslips: map[int64][]PayslipRow{
			5: {
				{EmployeeID: 1, Department: "Ops", Gross: money(1000), Deductions: money(100), Net: money(900)},
				{EmployeeID: 2, Department: "Ops", Gross: money(2000), Deductions: money(200), Net: money(1800)},
				{EmployeeID: 3, Gross: money(3000), Deductions: money(300), Net: money(2700)},
			},
		},
	}
	svc := newTestService(store)

	summary, err := svc.PayrollRunSummary(context.Background(), 5)
	if err != nil {
		t.Fatalf("summary error: %v", err)
	}
	if summary.TotalGrossPay == nil || *summary.TotalGrossPay != 6000 {
		t.Fatalf("expected total gross 6000, got %v", summary.TotalGrossPay)
	}
	if summary.AverageGrossPay == nil || *summary.AverageGrossPay != 2000 {
		t.Fatalf("expected average gross 2000, got %v", summary.AverageGrossPay)
	}
	if len(summary.DepartmentBreakdown) != 2 {
		t.Fatalf("expected Ops plus unassigned bucket, got %+v", summary.DepartmentBreakdown)
	}
	bands := summary.SalaryRanges
	if bands.Under30000 != 3 {
		t.Fatalf("expected all payslips under 30000, got %+v", bands)
	}
}

func TestEmployeeAnalyticsSummary(t *testing.T) {
	salary := money(60000)
	store := &fakeStore{
		employees: []EmployeeRow{
			{Gender: "F", MaritalStatus: "Single", HireDate: date(2024, time.June, 21)},
			{Gender: "M", MaritalStatus: "Married", HireDate: date(2024, time.June, 1)},
		},
		departments: []string{"Engineering", "Legal"},
		staff: []StaffRow{
			{Department: "Engineering", BaseSalary: &salary},
		},
		terminations: []time.Time{date(2024, time.February, 10)},
	}
	svc := newTestService(store)

	report, err := svc.EmployeeAnalytics(context.Background(), date(2024, time.January, 1), date(2024, time.December, 31))
	if err != nil {
		t.Fatalf("analytics error: %v", err)
	}

	if report.Summary.TotalDepartments != 2 {
		t.Fatalf("expected 2 departments, got %d", report.Summary.TotalDepartments)
	}
	if report.Summary.TotalActiveEmployees != 1 {
		t.Fatalf("expected 1 staffed department, got %d", report.Summary.TotalActiveEmployees)
	}
	// Group means are 10 and 30 days; the summary takes their plain mean.
	if report.Summary.AvgTenureDays == nil || *report.Summary.AvgTenureDays != 20 {
		t.Fatalf("expected mean-of-means 20, got %v", report.Summary.AvgTenureDays)
	}
	if len(report.TurnoverAnalysis) != 1 || report.TurnoverAnalysis[0].Month != 2 {
		t.Fatalf("unexpected turnover series: %+v", report.TurnoverAnalysis)
	}
}

func TestEmployeeAnalyticsInvertedRange(t *testing.T) {
	store := &fakeStore{
		terminations: []time.Time{date(2024, time.February, 10)},
	}
	svc := newTestService(store)

	report, err := svc.EmployeeAnalytics(context.Background(), date(2024, time.December, 31), date(2024, time.January, 1))
	if err != nil {
		t.Fatalf("inverted range must not error: %v", err)
	}
	if len(report.TurnoverAnalysis) != 0 {
		t.Fatalf("expected empty turnover series, got %+v", report.TurnoverAnalysis)
	}
}

func TestFinancialSummarySparseYear(t *testing.T) {
	store := &fakeStore{
		runTotals: []RunTotalsRow{
			{PayPeriodEnd: date(2024, time.January, 31), TotalGross: money(1000), TotalDeductions: money(100), TotalNet: money(900)},
			{PayPeriodEnd: date(2024, time.September, 30), TotalGross: money(2000), TotalDeductions: money(200), TotalNet: money(1800)},
			{PayPeriodEnd: date(2023, time.December, 31), TotalGross: money(9999), TotalDeductions: money(999), TotalNet: money(9000)},
		},
		deductions: []DeductionRow{
			{TypeName: "Tax", Amount: money(250)},
			{TypeName: "Pension", Amount: money(50)},
		},
	}
	svc := newTestService(store)

	summary, err := svc.FinancialSummary(context.Background(), 2024)
	if err != nil {
		t.Fatalf("financial summary error: %v", err)
	}
	if summary.Year != 2024 {
		t.Fatalf("expected year 2024, got %d", summary.Year)
	}
	if len(summary.MonthlyPayroll) != 2 {
		t.Fatalf("expected 2 sparse months, got %d", len(summary.MonthlyPayroll))
	}
	if summary.AnnualTotals.TotalGrossPay == nil || *summary.AnnualTotals.TotalGrossPay != 3000 {
		t.Fatalf("expected annual gross 3000, got %v", summary.AnnualTotals.TotalGrossPay)
	}
	if summary.BenefitsBreakdown[0].DeductionType != "Tax" {
		t.Fatalf("expected Tax first, got %+v", summary.BenefitsBreakdown)
	}
}

func TestReportsPayrollOnly(t *testing.T) {
	store := &fakeStore{
		runReport: []RunReportRow{{RunID: 1, Status: "completed", PayslipCount: 10}},
	}
	svc := newTestService(store)

	bundle, err := svc.Reports(context.Background(), ReportPayroll)
	if err != nil {
		t.Fatalf("reports error: %v", err)
	}
	if bundle.PayrollReport == nil {
		t.Fatal("expected payroll report populated")
	}
	if bundle.EmployeeReport != nil || bundle.AttendanceReport != nil {
		t.Fatalf("expected unrequested sections to stay null, got %+v", bundle)
	}
}

func TestReportsAllToleratesSectionFailure(t *testing.T) {
	store := &fakeStore{
		runReport:     []RunReportRow{{RunID: 1}},
		failEmployees: true,
	}
	svc := newTestService(store)

	bundle, err := svc.Reports(context.Background(), ReportAll)
	if err != nil {
		t.Fatalf("composite request must tolerate a failed section: %v", err)
	}
	if bundle.PayrollReport == nil || bundle.AttendanceReport == nil {
		t.Fatalf("expected surviving sections populated, got %+v", bundle)
	}
	if bundle.EmployeeReport != nil {
		t.Fatal("expected failed section to degrade to null")
	}
}

func TestReportsSingleSectionFailureFailsRequest(t *testing.T) {
	store := &fakeStore{failRunReport: true}
	svc := newTestService(store)

	_, err := svc.Reports(context.Background(), ReportPayroll)
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Fatalf("expected source failure, got %v", err)
	}
}

func TestMetricsComposition(t *testing.T) {
	store := &fakeStore{
		statuses: []EmployeeStatusRow{
			{Active: true, HireDate: date(2024, time.June, 1)},
			{Active: false, HireDate: date(2020, time.January, 1)},
		},
		runTotals: []RunTotalsRow{
			{PayPeriodEnd: date(2024, time.May, 31), TotalGross: money(8000)},
			// Older than the trailing 12 months, must be excluded.
			{PayPeriodEnd: date(2022, time.May, 31), TotalGross: money(7000)},
		},
	}
	svc := newTestService(store)

	bundle, err := svc.Metrics(context.Background())
	if err != nil {
		t.Fatalf("metrics error: %v", err)
	}
	if bundle.EmployeeMetrics.TotalEmployees != 2 || bundle.EmployeeMetrics.ActiveEmployees != 1 {
		t.Fatalf("unexpected employee metrics: %+v", bundle.EmployeeMetrics)
	}
	if bundle.PayrollMetrics.TotalRuns != 1 {
		t.Fatalf("expected only trailing-window runs, got %+v", bundle.PayrollMetrics)
	}
	if bundle.PayrollMetrics.TotalPaid == nil || *bundle.PayrollMetrics.TotalPaid != 8000 {
		t.Fatalf("expected total paid 8000, got %v", bundle.PayrollMetrics.TotalPaid)
	}
	if bundle.ProductivityMetrics.AttendanceRate == 0 {
		t.Fatal("expected placeholder productivity metrics")
	}
}

func TestDashboardComposition(t *testing.T) {
	store := &fakeStore{
		statuses: []EmployeeStatusRow{
			{Active: true, HireDate: date(2024, time.January, 1)},
		},
		runTotals: []RunTotalsRow{
			{PayPeriodEnd: date(2024, time.May, 31), TotalGross: money(5000)},
		},
		departments: []string{"Engineering"},
		staff:       []StaffRow{{Department: "Engineering"}},
	}
	svc := newTestService(store)

	dashboard, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("dashboard error: %v", err)
	}
	if dashboard.EmployeeStats.TotalEmployees != 1 {
		t.Fatalf("unexpected employee stats: %+v", dashboard.EmployeeStats)
	}
	if dashboard.PayrollStats.TotalPayrollRuns != 1 {
		t.Fatalf("unexpected payroll stats: %+v", dashboard.PayrollStats)
	}
	if len(dashboard.DepartmentStats) != 1 || dashboard.DepartmentStats[0].EmployeeCount != 1 {
		t.Fatalf("unexpected department stats: %+v", dashboard.DepartmentStats)
	}
	if len(dashboard.RecentActivities) == 0 {
		t.Fatal("expected placeholder activities")
	}
}

func TestValidReportType(t *testing.T) {
	for _, valid := range []string{ReportAll, ReportPayroll, ReportEmployee, ReportAttendance} {
		if !ValidReportType(valid) {
			t.Fatalf("expected %q to be valid", valid)
		}
	}
	if ValidReportType("financial") || ValidReportType("") {
		t.Fatal("expected unknown selectors to be rejected")
	}
}
