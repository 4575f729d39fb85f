package analytics

import "time"

// SampleProvider supplies the report sections that have no real data
// source yet: attendance, recent activity and productivity figures.
// The service takes it as a dependency so a real provider can replace
// the static one without touching the aggregation code.
type SampleProvider interface {
	RecentActivities(now time.Time) []Activity
	AttendanceReport() []AttendanceDay
	ProductivityMetrics() ProductivityMetrics
}

// StaticSamples returns fixed illustrative figures. None of its output
// is derived from stored data.
type StaticSamples struct{}

func (StaticSamples) RecentActivities(now time.Time) []Activity {
	stamp := now.UTC().Format(time.RFC3339)
	return []Activity{
		{Type: "employee_added", Description: "New employee added", Timestamp: stamp},
		{Type: "payroll_processed", Description: "Monthly payroll processed", Timestamp: stamp},
	}
}

func (StaticSamples) AttendanceReport() []AttendanceDay {
	return []AttendanceDay{
		{Date: "2024-01-01", Present: 45, Absent: 5, Late: 3},
		{Date: "2024-01-02", Present: 47, Absent: 3, Late: 2},
	}
}

func (StaticSamples) ProductivityMetrics() ProductivityMetrics {
	return ProductivityMetrics{
		AttendanceRate:    95.5,
		ProductivityScore: 87.2,
		OvertimeHours:     120.5,
	}
}
