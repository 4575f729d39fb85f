package analytics

import (
	"time"

	"github.com/shopspring/decimal"
)

// Row types are the shapes the row source hands to the aggregator. All
// monetary columns are carried as decimals until the final rounding at
// the response boundary.

type RunRow struct {
	RunID          int64
	PayPeriodStart time.Time
	PayPeriodEnd   time.Time
	Status         string
}

type PayslipRow struct {
	EmployeeID int64
	FirstName  string
	LastName   string
	JobTitle   string
	Department string // empty when the employee has no department assignment
	Gross      decimal.Decimal
	Deductions decimal.Decimal
	Net        decimal.Decimal
}

type EmployeeRow struct {
	Gender        string
	MaritalStatus string
	HireDate      time.Time
}

type EmployeeStatusRow struct {
	Active   bool
	HireDate time.Time
}

type StaffRow struct {
	Department string
	BaseSalary *decimal.Decimal // nil when no active salary record exists
}

type RunTotalsRow struct {
	PayPeriodEnd    time.Time
	TotalGross      decimal.Decimal
	TotalDeductions decimal.Decimal
	TotalNet        decimal.Decimal
}

type RunReportRow struct {
	RunID           int64   `json:"payroll_run_id"`
	PayPeriodStart  string  `json:"pay_period_start"`
	PayPeriodEnd    string  `json:"pay_period_end"`
	TotalGrossPay   float64 `json:"total_gross_pay"`
	TotalDeductions float64 `json:"total_deductions"`
	TotalNetPay     float64 `json:"total_net_pay"`
	Status          string  `json:"status"`
	PayslipCount    int     `json:"payslip_count"`
}

type DeductionRow struct {
	TypeName string
	Amount   decimal.Decimal
}

// Derived summary shapes. Means and sums over empty row sets come back
// as nil and serialize to JSON null; a numeric zero would wrongly read
// as "no activity" where the truth is "no data".

type DepartmentAgg struct {
	Department    string  `json:"department"`
	EmployeeCount int     `json:"employee_count"`
	TotalGross    float64 `json:"total_gross"`
	AvgGross      float64 `json:"avg_gross"`
	TotalNet      float64 `json:"total_net"`
	AvgNet        float64 `json:"avg_net"`
}

type SalaryBands struct {
	Under30000  int `json:"under_30000"`
	Band30to50  int `json:"30000_50000"`
	Band50to75  int `json:"50000_75000"`
	Band75to100 int `json:"75000_100000"`
	Over100000  int `json:"over_100000"`
}

type PayrollSummary struct {
	PayrollRunID        int64           `json:"payroll_run_id"`
	PayPeriodStart      string          `json:"pay_period_start"`
	PayPeriodEnd        string          `json:"pay_period_end"`
	TotalEmployees      int             `json:"total_employees"`
	TotalGrossPay       *float64        `json:"total_gross_pay"`
	TotalDeductions     *float64        `json:"total_deductions"`
	TotalNetPay         *float64        `json:"total_net_pay"`
	AverageGrossPay     *float64        `json:"average_gross_pay"`
	AverageNetPay       *float64        `json:"average_net_pay"`
	DepartmentBreakdown []DepartmentAgg `json:"department_breakdown"`
	SalaryRanges        SalaryBands     `json:"salary_ranges"`
}

type DemographicGroup struct {
	Gender        string   `json:"gender"`
	MaritalStatus string   `json:"marital_status"`
	Count         int      `json:"count"`
	AvgTenureDays *float64 `json:"avg_tenure_days"`
}

type GenderGroup struct {
	Gender        string   `json:"gender"`
	Count         int      `json:"count"`
	AvgTenureDays *float64 `json:"avg_tenure_days"`
}

type DepartmentDistribution struct {
	Department    string   `json:"department"`
	EmployeeCount int      `json:"employee_count"`
	AvgSalary     *float64 `json:"avg_salary"`
}

type TurnoverPoint struct {
	Year         int `json:"year"`
	Month        int `json:"month"`
	Terminations int `json:"terminations"`
}

type EmployeeSummary struct {
	TotalActiveEmployees int      `json:"total_active_employees"`
	TotalDepartments     int      `json:"total_departments"`
	AvgTenureDays        *float64 `json:"avg_tenure_days"`
}

type EmployeeAnalytics struct {
	Demographics           []DemographicGroup       `json:"demographics"`
	DepartmentDistribution []DepartmentDistribution `json:"department_distribution"`
	TurnoverAnalysis       []TurnoverPoint          `json:"turnover_analysis"`
	Summary                EmployeeSummary          `json:"summary"`
}

type MonthlyPayroll struct {
	Month           int     `json:"month"`
	TotalGross      float64 `json:"total_gross"`
	TotalDeductions float64 `json:"total_deductions"`
	TotalNet        float64 `json:"total_net"`
}

type DeductionTypeTotal struct {
	DeductionType string  `json:"deduction_type"`
	TotalAmount   float64 `json:"total_amount"`
}

type AnnualTotals struct {
	TotalGrossPay   *float64 `json:"total_gross_pay"`
	TotalDeductions *float64 `json:"total_deductions"`
	TotalNetPay     *float64 `json:"total_net_pay"`
}

type FinancialSummary struct {
	Year              int                  `json:"year"`
	MonthlyPayroll    []MonthlyPayroll     `json:"monthly_payroll"`
	BenefitsBreakdown []DeductionTypeTotal `json:"benefits_breakdown"`
	AnnualTotals      AnnualTotals         `json:"annual_totals"`
}

type EmployeeStats struct {
	TotalEmployees    int      `json:"total_employees"`
	ActiveEmployees   int      `json:"active_employees"`
	InactiveEmployees int      `json:"inactive_employees"`
	AvgTenureDays     *float64 `json:"avg_tenure_days"`
}

type PayrollStats struct {
	TotalPayrollRuns int      `json:"total_payroll_runs"`
	TotalGrossPay    *float64 `json:"total_gross_pay"`
	AvgGrossPay      *float64 `json:"avg_gross_pay"`
	LastPayrollDate  *string  `json:"last_payroll_date"`
}

type DepartmentHeadcount struct {
	Department    string `json:"department"`
	EmployeeCount int    `json:"employee_count"`
}

type Dashboard struct {
	EmployeeStats    EmployeeStats         `json:"employee_stats"`
	PayrollStats     PayrollStats          `json:"payroll_stats"`
	DepartmentStats  []DepartmentHeadcount `json:"department_stats"`
	RecentActivities []Activity            `json:"recent_activities"`
}

type ReportBundle struct {
	PayrollReport    []RunReportRow  `json:"payroll_report"`
	EmployeeReport   []GenderGroup   `json:"employee_report"`
	AttendanceReport []AttendanceDay `json:"attendance_report"`
}

type EmployeeMetrics struct {
	TotalEmployees  int      `json:"total_employees"`
	ActiveEmployees int      `json:"active_employees"`
	AvgTenureDays   *float64 `json:"avg_tenure_days"`
}

type PayrollMetrics struct {
	TotalRuns   int      `json:"total_runs"`
	AvgGrossPay *float64 `json:"avg_gross_pay"`
	TotalPaid   *float64 `json:"total_paid"`
}

type MetricsBundle struct {
	EmployeeMetrics     EmployeeMetrics     `json:"employee_metrics"`
	PayrollMetrics      PayrollMetrics      `json:"payroll_metrics"`
	ProductivityMetrics ProductivityMetrics `json:"productivity_metrics"`
}

// Placeholder shapes served by the SampleProvider. See placeholder.go.

type Activity struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Timestamp   string `json:"timestamp"`
}

type AttendanceDay struct {
	Date    string `json:"date"`
	Present int    `json:"present"`
	Absent  int    `json:"absent"`
	Late    int    `json:"late"`
}

type ProductivityMetrics struct {
	AttendanceRate    float64 `json:"attendance_rate"`
	ProductivityScore float64 `json:"productivity_score"`
	OvertimeHours     float64 `json:"overtime_hours"`
}
