package attendance

import (
	"math"
	"time"
)

// BuildMonthlySummary folds a month of recordings into presence and
// hour totals. Entries without a clock-out contribute to OpenEntries
// but not to hours; distinct calendar days count once for presence.
func BuildMonthlySummary(employeeID string, year int, month time.Month, recordings []Recording) MonthlySummary {
	summary := MonthlySummary{EmployeeID: employeeID, Year: year, Month: int(month)}

	seen := map[string]bool{}
	for _, rec := range recordings {
		day := rec.ClockIn.UTC().Format("2006-01-02")
		if !seen[day] {
			seen[day] = true
			summary.DaysPresent++
		}
		if rec.ClockOut == nil {
			summary.OpenEntries++
			continue
		}
		summary.TotalHours += rec.ClockOut.Sub(rec.ClockIn).Hours()
	}

	if summary.DaysPresent > 0 {
		summary.AverageHours = math.Round(summary.TotalHours/float64(summary.DaysPresent)*100) / 100
	}
	summary.TotalHours = math.Round(summary.TotalHours*100) / 100
	return summary
}
