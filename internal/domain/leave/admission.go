package leave

import (
	"context"
	"fmt"
	"time"
)

type AdmitParams struct {
	EmployeeID  string
	LeaveTypeID string
	StartDate   time.Time
	EndDate     time.Time
	Reason      string
}

// Admit runs the balance check and the insert inside one transaction,
// holding a per-employee lock so concurrent requests cannot both pass
// the check against the same balance. Pending requests count as
// reserved days here; a request admitted but not yet approved still
// holds its days until it is rejected or cancelled.
func Admit(ctx context.Context, store AdmissionStore, now time.Time, params AdmitParams) (LeaveRecord, error) {
	days, err := InclusiveDays(params.StartDate, params.EndDate)
	if err != nil {
		return LeaveRecord{}, err
	}

	tx, err := store.BeginAdmission(ctx)
	if err != nil {
		return LeaveRecord{}, fmt.Errorf("begin admission: %w", err)
	}
	defer tx.Rollback(ctx)

	profile, err := tx.LockEmployee(ctx, params.EmployeeID)
	if err != nil {
		return LeaveRecord{}, err
	}
	if profile.HiringDate == nil {
		return LeaveRecord{}, fmt.Errorf("employee %s: %w", params.EmployeeID, ErrMissingHiringDate)
	}

	window := ResolveLeaveYear(*profile.HiringDate, now)
	reserved, err := tx.SumReservedDays(ctx, params.EmployeeID, window.Start, window.End)
	if err != nil {
		return LeaveRecord{}, fmt.Errorf("sum reserved days for %s: %w", params.EmployeeID, err)
	}

	available := Entitlement(profile.CarriedForwardDays) - reserved
	if available < 0 {
		available = 0
	}
	if days > available {
		return LeaveRecord{}, &InsufficientBalanceError{Requested: days, Available: available}
	}

	record, err := tx.InsertLeaveRecord(ctx, InsertLeaveRecordParams{
		EmployeeID:  params.EmployeeID,
		LeaveTypeID: params.LeaveTypeID,
		StartDate:   params.StartDate,
		EndDate:     params.EndDate,
		Days:        days,
		Reason:      params.Reason,
	})
	if err != nil {
		return LeaveRecord{}, fmt.Errorf("insert leave record: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return LeaveRecord{}, fmt.Errorf("commit admission: %w", err)
	}
	return record, nil
}
