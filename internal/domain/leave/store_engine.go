package leave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

func (s *Store) GetEmployee(ctx context.Context, employeeID string) (EmployeeProfile, error) {
	var profile EmployeeProfile
	err := s.DB.QueryRow(ctx, `
    SELECT id, hiring_date, carried_forward_days, carryover_applied_for, status
    FROM employees
    WHERE id = $1
  `, employeeID).Scan(&profile.ID, &profile.HiringDate, &profile.CarriedForwardDays, &profile.CarryoverAppliedFor, &profile.EmploymentStatus)
	if errors.Is(err, pgx.ErrNoRows) {
		return EmployeeProfile{}, ErrEmployeeNotFound
	}
	if err != nil {
		return EmployeeProfile{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return profile, nil
}

func (s *Store) QueryApprovedLeaveRecords(ctx context.Context, employeeID string, from, to time.Time) ([]RecordSpan, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT start_date, end_date
    FROM leave_records
    WHERE employee_id = $1 AND status = $2 AND start_date BETWEEN $3 AND $4
  `, employeeID, StatusApproved, from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var spans []RecordSpan
	for rows.Next() {
		var span RecordSpan
		if err := rows.Scan(&span.StartDate, &span.EndDate); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		spans = append(spans, span)
	}
	return spans, nil
}

func (s *Store) ListActiveEmployeesWithHiringDate(ctx context.Context) ([]EmployeeAnchor, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, hiring_date
    FROM employees
    WHERE status = 'active' AND hiring_date IS NOT NULL
    ORDER BY hiring_date
  `)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var anchors []EmployeeAnchor
	for rows.Next() {
		var anchor EmployeeAnchor
		if err := rows.Scan(&anchor.ID, &anchor.HiringDate); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		anchors = append(anchors, anchor)
	}
	return anchors, nil
}

func (s *Store) UpdateCarriedForward(ctx context.Context, employeeID string, days int, appliedFor *time.Time) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE employees
    SET carried_forward_days = $1,
        carryover_applied_for = COALESCE($2, carryover_applied_for),
        updated_at = now()
    WHERE id = $3
  `, days, appliedFor, employeeID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrEmployeeNotFound
	}
	return nil
}

func (s *Store) BeginAdmission(ctx context.Context) (AdmissionTx, error) {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return &admissionTx{tx: tx}, nil
}

type admissionTx struct {
	tx pgx.Tx
}

func (a *admissionTx) LockEmployee(ctx context.Context, employeeID string) (EmployeeProfile, error) {
	var profile EmployeeProfile
	err := a.tx.QueryRow(ctx, `
    SELECT id, hiring_date, carried_forward_days, carryover_applied_for, status
    FROM employees
    WHERE id = $1
    FOR UPDATE
  `, employeeID).Scan(&profile.ID, &profile.HiringDate, &profile.CarriedForwardDays, &profile.CarryoverAppliedFor, &profile.EmploymentStatus)
	if errors.Is(err, pgx.ErrNoRows) {
		return EmployeeProfile{}, ErrEmployeeNotFound
	}
	if err != nil {
		return EmployeeProfile{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return profile, nil
}

func (a *admissionTx) SumReservedDays(ctx context.Context, employeeID string, from, to time.Time) (int, error) {
	var total int
	err := a.tx.QueryRow(ctx, `
    SELECT COALESCE(SUM(end_date - start_date + 1), 0)
    FROM leave_records
    WHERE employee_id = $1 AND status IN ($2,$3) AND start_date BETWEEN $4 AND $5
  `, employeeID, StatusApproved, StatusPending, from, to).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return total, nil
}

func (a *admissionTx) InsertLeaveRecord(ctx context.Context, params InsertLeaveRecordParams) (LeaveRecord, error) {
	var record LeaveRecord
	err := a.tx.QueryRow(ctx, `
    INSERT INTO leave_records (employee_id, leave_type_id, start_date, end_date, days, reason, status)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
    RETURNING id, employee_id, leave_type_id, start_date, end_date, days, reason, status, created_at
  `, params.EmployeeID, params.LeaveTypeID, params.StartDate, params.EndDate, params.Days, params.Reason, StatusPending).Scan(
		&record.ID,
		&record.EmployeeID,
		&record.LeaveTypeID,
		&record.StartDate,
		&record.EndDate,
		&record.Days,
		&record.Reason,
		&record.Status,
		&record.CreatedAt,
	)
	if err != nil {
		return LeaveRecord{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return record, nil
}

func (a *admissionTx) Commit(ctx context.Context) error {
	return a.tx.Commit(ctx)
}

func (a *admissionTx) Rollback(ctx context.Context) error {
	return a.tx.Rollback(ctx)
}
