package analytics

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

func (s *Store) RunByID(ctx context.Context, runID int64) (RunRow, error) {
	var run RunRow
	err := s.DB.QueryRow(ctx, `
    SELECT id, pay_period_start, pay_period_end, status
    FROM payroll_runs
    WHERE id = $1
  `, runID).Scan(&run.RunID, &run.PayPeriodStart, &run.PayPeriodEnd, &run.Status)
	if err != nil {
		return RunRow{}, err
	}
	return run, nil
}

func (s *Store) PayslipsForRun(ctx context.Context, runID int64) ([]PayslipRow, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT ps.employee_id, e.first_name, e.last_name, COALESCE(e.job_title, ''),
           COALESCE(d.name, ''),
           ps.gross_pay::text, ps.total_deductions::text, ps.net_pay::text
    FROM payslips ps
    JOIN employees e ON ps.employee_id = e.id
    LEFT JOIN departments d ON e.department_id = d.id
    WHERE ps.payroll_run_id = $1
  `, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payslips []PayslipRow
	for rows.Next() {
		var slip PayslipRow
		var gross, deductions, net string
		if err := rows.Scan(&slip.EmployeeID, &slip.FirstName, &slip.LastName, &slip.JobTitle, &slip.Department, &gross, &deductions, &net); err != nil {
			return nil, err
		}
		if slip.Gross, err = decimal.NewFromString(gross); err != nil {
			return nil, err
		}
		if slip.Deductions, err = decimal.NewFromString(deductions); err != nil {
			return nil, err
		}
		if slip.Net, err = decimal.NewFromString(net); err != nil {
			return nil, err
		}
		payslips = append(payslips, slip)
	}
	return payslips, rows.Err()
}

func (s *Store) ActiveEmployees(ctx context.Context) ([]EmployeeRow, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT COALESCE(gender, ''), COALESCE(marital_status, ''), hire_date
    FROM employees
    WHERE is_active
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []EmployeeRow
	for rows.Next() {
		var emp EmployeeRow
		if err := rows.Scan(&emp.Gender, &emp.MaritalStatus, &emp.HireDate); err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

func (s *Store) EmployeeStatuses(ctx context.Context) ([]EmployeeStatusRow, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT is_active, hire_date
    FROM employees
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var statuses []EmployeeStatusRow
	for rows.Next() {
		var status EmployeeStatusRow
		if err := rows.Scan(&status.Active, &status.HireDate); err != nil {
			return nil, err
		}
		statuses = append(statuses, status)
	}
	return statuses, rows.Err()
}

func (s *Store) Departments(ctx context.Context) ([]string, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT name
    FROM departments
    ORDER BY name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (s *Store) ActiveStaff(ctx context.Context) ([]StaffRow, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT COALESCE(d.name, ''), sal.base_salary::text
    FROM employees e
    LEFT JOIN departments d ON e.department_id = d.id
    LEFT JOIN salaries sal ON sal.employee_id = e.id AND sal.is_active
    WHERE e.is_active
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var staff []StaffRow
	for rows.Next() {
		var row StaffRow
		var salary *string
		if err := rows.Scan(&row.Department, &salary); err != nil {
			return nil, err
		}
		if salary != nil {
			parsed, err := decimal.NewFromString(*salary)
			if err != nil {
				return nil, err
			}
			row.BaseSalary = &parsed
		}
		staff = append(staff, row)
	}
	return staff, rows.Err()
}

func (s *Store) TerminationDates(ctx context.Context, start, end time.Time) ([]time.Time, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT termination_date
    FROM employees
    WHERE termination_date BETWEEN $1 AND $2
  `, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var when time.Time
		if err := rows.Scan(&when); err != nil {
			return nil, err
		}
		dates = append(dates, when)
	}
	return dates, rows.Err()
}

func (s *Store) CompletedRunTotals(ctx context.Context) ([]RunTotalsRow, error) {
	return s.runTotals(ctx, `
    SELECT pay_period_end, total_gross_pay::text, total_deductions::text, total_net_pay::text
    FROM payroll_runs
    WHERE status = 'completed'
  `)
}

func (s *Store) CompletedRunTotalsInYear(ctx context.Context, year int) ([]RunTotalsRow, error) {
	return s.runTotals(ctx, `
    SELECT pay_period_end, total_gross_pay::text, total_deductions::text, total_net_pay::text
    FROM payroll_runs
    WHERE status = 'completed' AND EXTRACT(YEAR FROM pay_period_end) = $1
  `, year)
}

func (s *Store) CompletedRunTotalsSince(ctx context.Context, since time.Time) ([]RunTotalsRow, error) {
	return s.runTotals(ctx, `
    SELECT pay_period_end, total_gross_pay::text, total_deductions::text, total_net_pay::text
    FROM payroll_runs
    WHERE status = 'completed' AND pay_period_end >= $1
  `, since)
}

func (s *Store) runTotals(ctx context.Context, query string, args ...any) ([]RunTotalsRow, error) {
	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var totals []RunTotalsRow
	for rows.Next() {
		var row RunTotalsRow
		var gross, deductions, net string
		if err := rows.Scan(&row.PayPeriodEnd, &gross, &deductions, &net); err != nil {
			return nil, err
		}
		if row.TotalGross, err = decimal.NewFromString(gross); err != nil {
			return nil, err
		}
		if row.TotalDeductions, err = decimal.NewFromString(deductions); err != nil {
			return nil, err
		}
		if row.TotalNet, err = decimal.NewFromString(net); err != nil {
			return nil, err
		}
		totals = append(totals, row)
	}
	return totals, rows.Err()
}

func (s *Store) RecentRunReport(ctx context.Context, limit int) ([]RunReportRow, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT pr.id, pr.pay_period_start, pr.pay_period_end,
           pr.total_gross_pay, pr.total_deductions, pr.total_net_pay,
           pr.status, COUNT(ps.id)
    FROM payroll_runs pr
    LEFT JOIN payslips ps ON pr.id = ps.payroll_run_id
    GROUP BY pr.id
    ORDER BY pr.pay_period_end DESC
    LIMIT $1
  `, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var report []RunReportRow
	for rows.Next() {
		var row RunReportRow
		var start, end time.Time
		if err := rows.Scan(&row.RunID, &start, &end, &row.TotalGrossPay, &row.TotalDeductions, &row.TotalNetPay, &row.Status, &row.PayslipCount); err != nil {
			return nil, err
		}
		row.PayPeriodStart = start.Format("2006-01-02")
		row.PayPeriodEnd = end.Format("2006-01-02")
		report = append(report, row)
	}
	return report, rows.Err()
}

func (s *Store) DeductionsInYear(ctx context.Context, year int) ([]DeductionRow, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT dt.name, d.amount::text
    FROM deductions d
    JOIN deduction_types dt ON d.deduction_type_id = dt.id
    WHERE EXTRACT(YEAR FROM d.effective_date) = $1
  `, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deductions []DeductionRow
	for rows.Next() {
		var row DeductionRow
		var amount string
		if err := rows.Scan(&row.TypeName, &amount); err != nil {
			return nil, err
		}
		if row.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, err
		}
		deductions = append(deductions, row)
	}
	return deductions, rows.Err()
}
