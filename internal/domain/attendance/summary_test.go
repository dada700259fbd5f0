package attendance

import (
	"testing"
	"time"
)

func ts(day, hour int) time.Time {
	return time.Date(2025, 6, day, hour, 0, 0, 0, time.UTC)
}

func tsPtr(day, hour int) *time.Time {
	t := ts(day, hour)
	return &t
}

func TestBuildMonthlySummary(t *testing.T) {
	recordings := []Recording{
		{EmployeeID: "emp-1", ClockIn: ts(2, 9), ClockOut: tsPtr(2, 17)},
		{EmployeeID: "emp-1", ClockIn: ts(3, 9), ClockOut: tsPtr(3, 18)},
		{EmployeeID: "emp-1", ClockIn: ts(3, 19), ClockOut: tsPtr(3, 20)},
		{EmployeeID: "emp-1", ClockIn: ts(4, 9)},
	}

	summary := BuildMonthlySummary("emp-1", 2025, time.June, recordings)

	if summary.DaysPresent != 3 {
		t.Fatalf("expected 3 distinct days, got %d", summary.DaysPresent)
	}
	if summary.TotalHours != 18 {
		t.Fatalf("expected 18 hours, got %v", summary.TotalHours)
	}
	if summary.OpenEntries != 1 {
		t.Fatalf("expected 1 open entry, got %d", summary.OpenEntries)
	}
	if summary.AverageHours != 6 {
		t.Fatalf("expected average 6, got %v", summary.AverageHours)
	}
}

func TestBuildMonthlySummaryEmpty(t *testing.T) {
	summary := BuildMonthlySummary("emp-1", 2025, time.June, nil)
	if summary.DaysPresent != 0 || summary.TotalHours != 0 || summary.AverageHours != 0 {
		t.Fatalf("expected zero summary, got %+v", summary)
	}
}
