package analytics

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// RenderPayrollSummaryPDF renders a payroll-run summary as a one-page
// PDF for download.
func RenderPayrollSummaryPDF(summary PayrollSummary) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, fmt.Sprintf("Payroll Run %d Summary", summary.PayrollRunID))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s to %s", summary.PayPeriodStart, summary.PayPeriodEnd))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Employees: %d", summary.TotalEmployees))
	pdf.Ln(7)
	pdf.Cell(0, 8, "Total gross: "+moneyLabel(summary.TotalGrossPay))
	pdf.Ln(7)
	pdf.Cell(0, 8, "Total deductions: "+moneyLabel(summary.TotalDeductions))
	pdf.Ln(7)
	pdf.Cell(0, 8, "Total net: "+moneyLabel(summary.TotalNetPay))
	pdf.Ln(7)
	pdf.Cell(0, 8, "Average gross: "+moneyLabel(summary.AverageGrossPay))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Department breakdown")
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 11)
	for _, dept := range summary.DepartmentBreakdown {
		pdf.Cell(0, 7, fmt.Sprintf("%s: %d employees, gross %.2f, net %.2f", dept.Department, dept.EmployeeCount, dept.TotalGross, dept.TotalNet))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Salary bands")
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 11)
	for _, band := range []struct {
		label string
		count int
	}{
		{"Under 30,000", summary.SalaryRanges.Under30000},
		{"30,000 - 50,000", summary.SalaryRanges.Band30to50},
		{"50,000 - 75,000", summary.SalaryRanges.Band50to75},
		{"75,000 - 100,000", summary.SalaryRanges.Band75to100},
		{"100,000 and above", summary.SalaryRanges.Over100000},
	} {
		pdf.Cell(0, 7, fmt.Sprintf("%s: %d", band.label, band.count))
		pdf.Ln(6)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func moneyLabel(value *float64) string {
	if value == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", *value)
}
