package attendance

import "time"

type Recording struct {
	ID         string     `json:"id"`
	EmployeeID string     `json:"employeeId"`
	ClockIn    time.Time  `json:"clockIn"`
	ClockOut   *time.Time `json:"clockOut,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

type MonthlySummary struct {
	EmployeeID   string  `json:"employeeId"`
	Year         int     `json:"year"`
	Month        int     `json:"month"`
	DaysPresent  int     `json:"daysPresent"`
	TotalHours   float64 `json:"totalHours"`
	AverageHours float64 `json:"averageHours"`
	OpenEntries  int     `json:"openEntries"`
}
