package leave

import "time"

type LeaveType struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	IsPaid    bool      `json:"isPaid"`
	CreatedAt time.Time `json:"createdAt"`
}

type LeaveRecord struct {
	ID          string     `json:"id"`
	EmployeeID  string     `json:"employeeId"`
	LeaveTypeID string     `json:"leaveTypeId"`
	StartDate   time.Time  `json:"startDate"`
	EndDate     time.Time  `json:"endDate"`
	Days        int        `json:"days"`
	Reason      string     `json:"reason,omitempty"`
	Status      string     `json:"status"`
	ApprovedBy  string     `json:"approvedBy,omitempty"`
	ApprovedAt  *time.Time `json:"approvedAt,omitempty"`
	Comments    string     `json:"comments,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// LeaveYearWindow is the anniversary-anchored accounting year of one
// employee. It is derived, never persisted, and always exactly one
// year long: [Start, End] where End is the day before the next
// anniversary.
type LeaveYearWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// BalanceSnapshot is the full balance breakdown at a point in time.
// It is recomputed on every query so it always reflects the latest
// committed records.
type BalanceSnapshot struct {
	EmployeeID        string    `json:"employeeId"`
	CurrentBalance    int       `json:"currentBalance"`
	AnnualEntitlement int       `json:"annualEntitlement"`
	UsedThisYear      int       `json:"usedThisYear"`
	CarriedForward    int       `json:"carriedForward"`
	LeaveYearStart    time.Time `json:"leaveYearStart"`
	LeaveYearEnd      time.Time `json:"leaveYearEnd"`
}

type CarryoverResult struct {
	EmployeeID           string `json:"employeeId"`
	PreviousBalance      int    `json:"previousBalance"`
	CarriedForward       int    `json:"carriedForward"`
	NewAnnualEntitlement int    `json:"newAnnualEntitlement"`
	Success              bool   `json:"success"`

	// Applied is false when the run was a no-op: the boundary was
	// already rolled over, or the employee is in the first leave year.
	Applied bool   `json:"applied"`
	Error   string `json:"error,omitempty"`
}

type BulkCarryoverResult struct {
	Processed int               `json:"processed"`
	Succeeded int               `json:"succeeded"`
	Failed    int               `json:"failed"`
	Results   []CarryoverResult `json:"results"`
}
