package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// UnassignedDepartment labels payslip rows whose employee carries no
// department; they are bucketed, never dropped.
const UnassignedDepartment = "Unassigned"

// DepartmentBreakdown groups payslips by department and computes gross
// and net sums, means and headcount per group, rounded to cents.
// Groups are ordered by headcount descending, ties by name ascending so
// results are reproducible.
func DepartmentBreakdown(payslips []PayslipRow) []DepartmentAgg {
	type bucket struct {
		count int
		gross decimal.Decimal
		net   decimal.Decimal
	}
	buckets := map[string]*bucket{}
	for _, slip := range payslips {
		name := slip.Department
		if name == "" {
			name = UnassignedDepartment
		}
		b, ok := buckets[name]
		if !ok {
			b = &bucket{}
			buckets[name] = b
		}
		b.count++
		b.gross = b.gross.Add(slip.Gross)
		b.net = b.net.Add(slip.Net)
	}

	breakdown := make([]DepartmentAgg, 0, len(buckets))
	for name, b := range buckets {
		countDec := decimal.NewFromInt(int64(b.count))
		breakdown = append(breakdown, DepartmentAgg{
			Department:    name,
			EmployeeCount: b.count,
			TotalGross:    roundMoney(b.gross),
			AvgGross:      roundMoney(b.gross.Div(countDec)),
			TotalNet:      roundMoney(b.net),
			AvgNet:        roundMoney(b.net.Div(countDec)),
		})
	}
	sort.Slice(breakdown, func(i, j int) bool {
		if breakdown[i].EmployeeCount != breakdown[j].EmployeeCount {
			return breakdown[i].EmployeeCount > breakdown[j].EmployeeCount
		}
		return breakdown[i].Department < breakdown[j].Department
	})
	return breakdown
}

// SalaryBandCounts buckets gross pay into the five fixed bands. Edges
// are half-open, lower bound inclusive, so every payslip lands in
// exactly one band and the counts always sum to len(payslips).
func SalaryBandCounts(payslips []PayslipRow) SalaryBands {
	var (
		b30  = decimal.NewFromInt(30000)
		b50  = decimal.NewFromInt(50000)
		b75  = decimal.NewFromInt(75000)
		b100 = decimal.NewFromInt(100000)
	)
	var bands SalaryBands
	for _, slip := range payslips {
		switch {
		case slip.Gross.LessThan(b30):
			bands.Under30000++
		case slip.Gross.LessThan(b50):
			bands.Band30to50++
		case slip.Gross.LessThan(b75):
			bands.Band50to75++
		case slip.Gross.LessThan(b100):
			bands.Band75to100++
		default:
			bands.Over100000++
		}
	}
	return bands
}

// Demographics cross-tabs active employees by gender and marital
// status with headcount and mean tenure in days. Groups come back in
// (gender, marital status) ascending order.
func Demographics(rows []EmployeeRow, now time.Time) []DemographicGroup {
	type key struct{ gender, marital string }
	counts := map[key]int{}
	tenureSums := map[key]int{}
	for _, row := range rows {
		k := key{row.Gender, row.MaritalStatus}
		counts[k]++
		tenureSums[k] += daysBetween(row.HireDate, now)
	}

	groups := make([]DemographicGroup, 0, len(counts))
	for k, count := range counts {
		avg := float64(tenureSums[k]) / float64(count)
		groups = append(groups, DemographicGroup{
			Gender:        k.gender,
			MaritalStatus: k.marital,
			Count:         count,
			AvgTenureDays: &avg,
		})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Gender != groups[j].Gender {
			return groups[i].Gender < groups[j].Gender
		}
		return groups[i].MaritalStatus < groups[j].MaritalStatus
	})
	return groups
}

// GenderBreakdown is the single-key variant used by the employee
// report.
func GenderBreakdown(rows []EmployeeRow, now time.Time) []GenderGroup {
	counts := map[string]int{}
	tenureSums := map[string]int{}
	for _, row := range rows {
		counts[row.Gender]++
		tenureSums[row.Gender] += daysBetween(row.HireDate, now)
	}

	groups := make([]GenderGroup, 0, len(counts))
	for gender, count := range counts {
		avg := float64(tenureSums[gender]) / float64(count)
		groups = append(groups, GenderGroup{Gender: gender, Count: count, AvgTenureDays: &avg})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Gender < groups[j].Gender })
	return groups
}

// DepartmentDistributions reports headcount and mean base salary for
// every known department, keeping zero-headcount departments in the
// output. Ordered by headcount descending, name ascending on ties.
func DepartmentDistributions(departments []string, staff []StaffRow) []DepartmentDistribution {
	counts := map[string]int{}
	salarySums := map[string]decimal.Decimal{}
	salaryCounts := map[string]int{}
	for _, row := range staff {
		counts[row.Department]++
		if row.BaseSalary != nil {
			salarySums[row.Department] = salarySums[row.Department].Add(*row.BaseSalary)
			salaryCounts[row.Department]++
		}
	}

	dist := make([]DepartmentDistribution, 0, len(departments))
	for _, name := range departments {
		entry := DepartmentDistribution{Department: name, EmployeeCount: counts[name]}
		if n := salaryCounts[name]; n > 0 {
			avg := roundMoney(salarySums[name].Div(decimal.NewFromInt(int64(n))))
			entry.AvgSalary = &avg
		}
		dist = append(dist, entry)
	}
	sort.Slice(dist, func(i, j int) bool {
		if dist[i].EmployeeCount != dist[j].EmployeeCount {
			return dist[i].EmployeeCount > dist[j].EmployeeCount
		}
		return dist[i].Department < dist[j].Department
	})
	return dist
}

// TurnoverSeries counts terminations per calendar month inside the
// inclusive [start, end] window. Months with no terminations are
// omitted, mirroring a GROUP BY over the raw rows; callers wanting
// zero-filled series must fill gaps themselves.
func TurnoverSeries(terminations []time.Time, start, end time.Time) []TurnoverPoint {
	type period struct{ year, month int }
	counts := map[period]int{}
	for _, when := range terminations {
		if when.Before(start) || when.After(end) {
			continue
		}
		counts[period{when.Year(), int(when.Month())}]++
	}

	series := make([]TurnoverPoint, 0, len(counts))
	for p, count := range counts {
		series = append(series, TurnoverPoint{Year: p.year, Month: p.month, Terminations: count})
	}
	sort.Slice(series, func(i, j int) bool {
		if series[i].Year != series[j].Year {
			return series[i].Year < series[j].Year
		}
		return series[i].Month < series[j].Month
	})
	return series
}

// MonthlyRollup sums completed payroll-run totals per calendar month.
// Sparse by construction: a month with no completed runs produces no
// row.
func MonthlyRollup(runs []RunTotalsRow) []MonthlyPayroll {
	grosses := map[int]decimal.Decimal{}
	deductions := map[int]decimal.Decimal{}
	nets := map[int]decimal.Decimal{}
	for _, run := range runs {
		m := int(run.PayPeriodEnd.Month())
		grosses[m] = grosses[m].Add(run.TotalGross)
		deductions[m] = deductions[m].Add(run.TotalDeductions)
		nets[m] = nets[m].Add(run.TotalNet)
	}

	rollup := make([]MonthlyPayroll, 0, len(grosses))
	for month := range grosses {
		rollup = append(rollup, MonthlyPayroll{
			Month:           month,
			TotalGross:      roundMoney(grosses[month]),
			TotalDeductions: roundMoney(deductions[month]),
			TotalNet:        roundMoney(nets[month]),
		})
	}
	sort.Slice(rollup, func(i, j int) bool { return rollup[i].Month < rollup[j].Month })
	return rollup
}

// AnnualTotalsOf sums whatever monthly rows are present; with no rows
// the totals stay null rather than claiming a zero-cost year.
func AnnualTotalsOf(monthly []MonthlyPayroll) AnnualTotals {
	if len(monthly) == 0 {
		return AnnualTotals{}
	}
	var gross, deductions, net float64
	for _, row := range monthly {
		gross += row.TotalGross
		deductions += row.TotalDeductions
		net += row.TotalNet
	}
	return AnnualTotals{TotalGrossPay: &gross, TotalDeductions: &deductions, TotalNetPay: &net}
}

// DeductionBreakdown sums deduction amounts per type, largest total
// first, ties by type name.
func DeductionBreakdown(rows []DeductionRow) []DeductionTypeTotal {
	totals := map[string]decimal.Decimal{}
	for _, row := range rows {
		totals[row.TypeName] = totals[row.TypeName].Add(row.Amount)
	}

	breakdown := make([]DeductionTypeTotal, 0, len(totals))
	for name, total := range totals {
		breakdown = append(breakdown, DeductionTypeTotal{DeductionType: name, TotalAmount: roundMoney(total)})
	}
	sort.Slice(breakdown, func(i, j int) bool {
		if breakdown[i].TotalAmount != breakdown[j].TotalAmount {
			return breakdown[i].TotalAmount > breakdown[j].TotalAmount
		}
		return breakdown[i].DeductionType < breakdown[j].DeductionType
	})
	return breakdown
}

// BuildPayrollSummary assembles the full summary for one payroll run
// from its payslips.
func BuildPayrollSummary(run RunRow, payslips []PayslipRow) PayrollSummary {
	summary := PayrollSummary{
		PayrollRunID:        run.RunID,
		PayPeriodStart:      run.PayPeriodStart.Format("2006-01-02"),
		PayPeriodEnd:        run.PayPeriodEnd.Format("2006-01-02"),
		TotalEmployees:      len(payslips),
		DepartmentBreakdown: DepartmentBreakdown(payslips),
		SalaryRanges:        SalaryBandCounts(payslips),
	}
	if len(payslips) == 0 {
		return summary
	}

	var gross, deductions, net decimal.Decimal
	for _, slip := range payslips {
		gross = gross.Add(slip.Gross)
		deductions = deductions.Add(slip.Deductions)
		net = net.Add(slip.Net)
	}
	count := decimal.NewFromInt(int64(len(payslips)))
	summary.TotalGrossPay = moneyPtr(gross)
	summary.TotalDeductions = moneyPtr(deductions)
	summary.TotalNetPay = moneyPtr(net)
	summary.AverageGrossPay = moneyPtr(gross.Div(count))
	summary.AverageNetPay = moneyPtr(net.Div(count))
	return summary
}

// EmployeeStatsOf counts employees by status and averages tenure over
// the active ones.
func EmployeeStatsOf(rows []EmployeeStatusRow, now time.Time) EmployeeStats {
	stats := EmployeeStats{TotalEmployees: len(rows)}
	tenureSum := 0
	for _, row := range rows {
		if row.Active {
			stats.ActiveEmployees++
			tenureSum += daysBetween(row.HireDate, now)
		} else {
			stats.InactiveEmployees++
		}
	}
	if stats.ActiveEmployees > 0 {
		avg := float64(tenureSum) / float64(stats.ActiveEmployees)
		stats.AvgTenureDays = &avg
	}
	return stats
}

// PayrollStatsOf summarizes completed payroll runs for the dashboard.
func PayrollStatsOf(runs []RunTotalsRow) PayrollStats {
	stats := PayrollStats{TotalPayrollRuns: len(runs)}
	if len(runs) == 0 {
		return stats
	}

	var total decimal.Decimal
	last := runs[0].PayPeriodEnd
	for _, run := range runs {
		total = total.Add(run.TotalGross)
		if run.PayPeriodEnd.After(last) {
			last = run.PayPeriodEnd
		}
	}
	stats.TotalGrossPay = moneyPtr(total)
	stats.AvgGrossPay = moneyPtr(total.Div(decimal.NewFromInt(int64(len(runs)))))
	lastDate := last.Format("2006-01-02")
	stats.LastPayrollDate = &lastDate
	return stats
}

// PayrollMetricsOf summarizes a trailing window of completed runs for
// the metrics facade.
func PayrollMetricsOf(runs []RunTotalsRow) PayrollMetrics {
	m := PayrollMetrics{TotalRuns: len(runs)}
	if len(runs) == 0 {
		return m
	}
	var total decimal.Decimal
	for _, run := range runs {
		total = total.Add(run.TotalGross)
	}
	m.TotalPaid = moneyPtr(total)
	m.AvgGrossPay = moneyPtr(total.Div(decimal.NewFromInt(int64(len(runs)))))
	return m
}

// MeanOfGroupMeans averages the per-group tenure means. This matches
// the historical figure exactly: it is a mean of means, not a
// population mean weighted by group size. Callers depend on the
// existing number, so it stays.
func MeanOfGroupMeans(groups []DemographicGroup) *float64 {
	sum := 0.0
	n := 0
	for _, group := range groups {
		if group.AvgTenureDays != nil {
			sum += *group.AvgTenureDays
			n++
		}
	}
	if n == 0 {
		return nil
	}
	mean := sum / float64(n)
	return &mean
}

// daysBetween counts whole calendar days from a to b, date-diff style:
// time-of-day is discarded before subtracting.
func daysBetween(a, b time.Time) int {
	aDate := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bDate := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bDate.Sub(aDate).Hours() / 24)
}

func roundMoney(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}

func moneyPtr(d decimal.Decimal) *float64 {
	f := roundMoney(d)
	return &f
}
