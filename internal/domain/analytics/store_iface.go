package analytics

import (
	"context"
	"time"
)

// StoreAPI is the row source: one method per logical query, each
// returning typed rows for the aggregator. The concrete SQL lives in
// the Store; the service and its tests only see this interface.
type StoreAPI interface {
	RunByID(ctx context.Context, runID int64) (RunRow, error)
	PayslipsForRun(ctx context.Context, runID int64) ([]PayslipRow, error)
	ActiveEmployees(ctx context.Context) ([]EmployeeRow, error)
	EmployeeStatuses(ctx context.Context) ([]EmployeeStatusRow, error)
	Departments(ctx context.Context) ([]string, error)
	ActiveStaff(ctx context.Context) ([]StaffRow, error)
	TerminationDates(ctx context.Context, start, end time.Time) ([]time.Time, error)
	CompletedRunTotals(ctx context.Context) ([]RunTotalsRow, error)
	CompletedRunTotalsInYear(ctx context.Context, year int) ([]RunTotalsRow, error)
	CompletedRunTotalsSince(ctx context.Context, since time.Time) ([]RunTotalsRow, error)
	RecentRunReport(ctx context.Context, limit int) ([]RunReportRow, error)
	DeductionsInYear(ctx context.Context, year int) ([]DeductionRow, error)
}
