package leave

import (
	"context"
	"time"
)

// EmployeeProfile is the slice of the employee row the engine needs.
// The store validates shapes at this boundary so the engine never
// depends on the employees schema directly.
type EmployeeProfile struct {
	ID                 string
	HiringDate         *time.Time
	CarriedForwardDays int

	// CarryoverAppliedFor is the start of the leave year the stored
	// carryover was written for; nil when no rollover has run yet.
	CarryoverAppliedFor *time.Time

	EmploymentStatus string
}

// EmployeeAnchor pairs an active employee with its hiring date for
// carryover iteration; hiring date is guaranteed non-null here.
type EmployeeAnchor struct {
	ID         string
	HiringDate time.Time
}

// RecordSpan is the date span of one leave record.
type RecordSpan struct {
	StartDate time.Time
	EndDate   time.Time
}

// BalanceStore is what balance computation reads.
type BalanceStore interface {
	GetEmployee(ctx context.Context, employeeID string) (EmployeeProfile, error)
	QueryApprovedLeaveRecords(ctx context.Context, employeeID string, from, to time.Time) ([]RecordSpan, error)
}

// CarryoverStore adds the writes and listing the carryover processor needs.
type CarryoverStore interface {
	BalanceStore
	ListActiveEmployeesWithHiringDate(ctx context.Context) ([]EmployeeAnchor, error)

	// UpdateCarriedForward writes the carryover amount. A non-nil
	// appliedFor also stamps the leave-year start it was written for;
	// nil leaves the existing stamp untouched.
	UpdateCarriedForward(ctx context.Context, employeeID string, days int, appliedFor *time.Time) error
}

// AdmissionStore opens the transactional boundary around the
// read-check-write sequence of request admission.
type AdmissionStore interface {
	BeginAdmission(ctx context.Context) (AdmissionTx, error)
}

// AdmissionTx serializes admissions per employee: LockEmployee takes a
// row lock that holds until Commit or Rollback, so two concurrent
// admissions for the same employee cannot both read the pre-write
// balance.
type AdmissionTx interface {
	// LockEmployee loads the employee profile under an exclusive row lock.
	LockEmployee(ctx context.Context, employeeID string) (EmployeeProfile, error)

	// SumReservedDays totals the inclusive day spans of approved and
	// pending records whose start date falls inside [from, to].
	SumReservedDays(ctx context.Context, employeeID string, from, to time.Time) (int, error)

	InsertLeaveRecord(ctx context.Context, params InsertLeaveRecordParams) (LeaveRecord, error)

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

type InsertLeaveRecordParams struct {
	EmployeeID  string
	LeaveTypeID string
	StartDate   time.Time
	EndDate     time.Time
	Days        int
	Reason      string
}
