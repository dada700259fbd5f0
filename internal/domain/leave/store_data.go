package leave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"peoplehub/internal/domain/auth"
)

func (s *Store) ListTypes(ctx context.Context) ([]LeaveType, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, code, is_paid, created_at
    FROM leave_types
    ORDER BY name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []LeaveType
	for rows.Next() {
		var t LeaveType
		if err := rows.Scan(&t.ID, &t.Name, &t.Code, &t.IsPaid, &t.CreatedAt); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, nil
}

func (s *Store) CreateType(ctx context.Context, payload LeaveType) (string, error) {
	var id string
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO leave_types (name, code, is_paid)
    VALUES ($1,$2,$3)
    RETURNING id
  `, payload.Name, payload.Code, payload.IsPaid).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

type RequestListResult struct {
	Requests []LeaveRecord `json:"requests"`
	Total    int           `json:"total"`
}

func (s *Store) ListRequests(ctx context.Context, roleName, employeeID, managerEmployeeID string, limit, offset int) (RequestListResult, error) {
	query := `
    SELECT id, employee_id, leave_type_id, start_date, end_date, days, reason, status, COALESCE(approved_by::text, ''), approved_at, COALESCE(comments, ''), created_at
    FROM leave_records
  `
	var args []any

	if roleName == auth.RoleEmployee {
		query += " WHERE employee_id = $1"
		args = append(args, employeeID)
	}
	if roleName == auth.RoleManager {
		query += " WHERE employee_id IN (SELECT id FROM employees WHERE manager_id = $1)"
		args = append(args, managerEmployeeID)
	}
	query += " ORDER BY created_at DESC"

	countQuery := "SELECT COUNT(1) FROM leave_records"
	if roleName == auth.RoleEmployee {
		countQuery += " WHERE employee_id = $1"
	}
	if roleName == auth.RoleManager {
		countQuery += " WHERE employee_id IN (SELECT id FROM employees WHERE manager_id = $1)"
	}
	var total int
	if err := s.DB.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return RequestListResult{}, err
	}

	limitPos := len(args) + 1
	offsetPos := len(args) + 2
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", limitPos, offsetPos)
	args = append(args, limit, offset)

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return RequestListResult{}, err
	}
	defer rows.Close()

	var requests []LeaveRecord
	for rows.Next() {
		var req LeaveRecord
		if err := rows.Scan(&req.ID, &req.EmployeeID, &req.LeaveTypeID, &req.StartDate, &req.EndDate, &req.Days, &req.Reason, &req.Status, &req.ApprovedBy, &req.ApprovedAt, &req.Comments, &req.CreatedAt); err != nil {
			return RequestListResult{}, err
		}
		requests = append(requests, req)
	}
	return RequestListResult{Requests: requests, Total: total}, nil
}

func (s *Store) GetRequest(ctx context.Context, requestID string) (LeaveRecord, error) {
	var req LeaveRecord
	err := s.DB.QueryRow(ctx, `
    SELECT id, employee_id, leave_type_id, start_date, end_date, days, reason, status, COALESCE(approved_by::text, ''), approved_at, COALESCE(comments, ''), created_at
    FROM leave_records
    WHERE id = $1
  `, requestID).Scan(
		&req.ID,
		&req.EmployeeID,
		&req.LeaveTypeID,
		&req.StartDate,
		&req.EndDate,
		&req.Days,
		&req.Reason,
		&req.Status,
		&req.ApprovedBy,
		&req.ApprovedAt,
		&req.Comments,
		&req.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return LeaveRecord{}, ErrRequestNotFound
	}
	if err != nil {
		return LeaveRecord{}, err
	}
	return req, nil
}

// UpdateRequestStatus transitions a pending request and stamps the
// approver. The status guard in the WHERE clause makes the transition
// race-safe: only one concurrent decision can win.
func (s *Store) UpdateRequestStatus(ctx context.Context, requestID, status, approverID, comments string) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE leave_records
    SET status = $1, approved_by = $2, approved_at = now(), comments = $3
    WHERE id = $4 AND status = $5
  `, status, approverID, comments, requestID, StatusPending)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInvalidState
	}
	return nil
}

func (s *Store) CancelRequest(ctx context.Context, requestID string) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE leave_records SET status = $1 WHERE id = $2 AND status = $3
  `, StatusCancelled, requestID, StatusPending)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInvalidState
	}
	return nil
}

type CalendarExportRow struct {
	ID            string
	EmployeeID    string
	LeaveTypeName string
	StartDate     time.Time
	EndDate       time.Time
	Status        string
}

func (s *Store) CalendarExportRows(ctx context.Context, statuses []string, employeeID string) ([]CalendarExportRow, error) {
	query := `
    SELECT lr.id, lr.employee_id, lt.name, lr.start_date, lr.end_date, lr.status
    FROM leave_records lr
    JOIN leave_types lt ON lr.leave_type_id = lt.id
    WHERE lr.status = ANY($1)
  `
	args := []any{statuses}
	if employeeID != "" {
		query += " AND lr.employee_id = $2"
		args = append(args, employeeID)
	}
	query += " ORDER BY lr.start_date"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CalendarExportRow
	for rows.Next() {
		var row CalendarExportRow
		if err := rows.Scan(&row.ID, &row.EmployeeID, &row.LeaveTypeName, &row.StartDate, &row.EndDate, &row.Status); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, nil
}
